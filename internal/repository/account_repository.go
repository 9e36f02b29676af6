package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// ErrAdminNotFound is returned when an admin account cannot be found.
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepo wraps the `admins` table.
type AdminRepo struct {
	db *sql.DB
}

func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// Create inserts an admin with an already hashed password.
func (r *AdminRepo) Create(ctx context.Context, email, hash string) (*model.Admin, error) {
	a := &model.Admin{ID: uuid.NewString(), Email: strings.ToLower(strings.TrimSpace(email)), PasswordHash: hash}
	_, err := r.db.ExecContext(ctx, `INSERT INTO admins (id, email, password_hash) VALUES (?,?,?)`, a.ID, a.Email, a.PasswordHash)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return a, nil
}

func (r *AdminRepo) get(ctx context.Context, where string, arg any) (*model.Admin, error) {
	var a model.Admin
	err := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, created_at FROM admins WHERE `+where+` LIMIT 1`, arg).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByEmail fetches an admin by normalised email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return r.get(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// GetByID fetches an admin by id.
func (r *AdminRepo) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	return r.get(ctx, "id = ?", id)
}

// UpdateCredentials replaces email and password hash.
func (r *AdminRepo) UpdateCredentials(ctx context.Context, id, email, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admins SET email = ?, password_hash = ? WHERE id = ?`,
		strings.ToLower(strings.TrimSpace(email)), hash, id)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	return affectedOrNotFound(res, ErrAdminNotFound)
}
