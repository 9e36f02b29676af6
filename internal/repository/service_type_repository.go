package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// ErrServiceTypeNotFound is returned for unknown service type ids.
var ErrServiceTypeNotFound = errors.New("service type not found")

// ServiceTypeRepo wraps the `service_types` taxonomy table.
type ServiceTypeRepo struct {
	db *sql.DB
}

func NewServiceTypeRepo(db *sql.DB) *ServiceTypeRepo {
	return &ServiceTypeRepo{db: db}
}

// List returns every service type ordered by name.
func (r *ServiceTypeRepo) List(ctx context.Context) ([]model.ServiceType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM service_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ServiceType
	for rows.Next() {
		var st model.ServiceType
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a service type. A duplicate name yields ErrConflict.
func (r *ServiceTypeRepo) Create(ctx context.Context, name string) (model.ServiceType, error) {
	st := model.ServiceType{ID: uuid.NewString(), Name: name}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO service_types (id, name) VALUES (?, ?)`, st.ID, st.Name); err != nil {
		if isDuplicate(err) {
			return model.ServiceType{}, ErrConflict
		}
		return model.ServiceType{}, err
	}
	return st, nil
}

// Rename changes the display name of a service type.
func (r *ServiceTypeRepo) Rename(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE service_types SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	return affectedOrNotFound(res, ErrServiceTypeNotFound)
}

// Delete removes a service type. Facilitators keep the stale id in their
// list; it simply stops matching any filter option.
func (r *ServiceTypeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM service_types WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrServiceTypeNotFound)
}
