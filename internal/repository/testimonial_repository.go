package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// ErrTestimonialNotFound is returned when a testimonial cannot be found.
var ErrTestimonialNotFound = errors.New("testimonial not found")

const testimonialColumns = `id, author_name, text, photo, display_order, is_active`

// TestimonialRepo wraps the `main_testimonials` table.
type TestimonialRepo struct {
	db *sql.DB
}

func NewTestimonialRepo(db *sql.DB) *TestimonialRepo {
	return &TestimonialRepo{db: db}
}

func scanTestimonial(s rowScanner) (*model.Testimonial, error) {
	var t model.Testimonial
	if err := s.Scan(&t.ID, &t.AuthorName, &t.Text, &t.Photo, &t.DisplayOrder, &t.IsActive); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialRepo) list(ctx context.Context, q string) ([]model.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns the carousel quotes by display order.
func (r *TestimonialRepo) ListActive(ctx context.Context) ([]model.Testimonial, error) {
	return r.list(ctx, `SELECT `+testimonialColumns+` FROM main_testimonials WHERE is_active = 1 ORDER BY display_order ASC, created_at ASC`)
}

// ListAll returns every quote for the back office.
func (r *TestimonialRepo) ListAll(ctx context.Context) ([]model.Testimonial, error) {
	return r.list(ctx, `SELECT `+testimonialColumns+` FROM main_testimonials ORDER BY display_order ASC, created_at ASC`)
}

// GetByID fetches one quote.
func (r *TestimonialRepo) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	t, err := scanTestimonial(r.db.QueryRowContext(ctx, `SELECT `+testimonialColumns+` FROM main_testimonials WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTestimonialNotFound
	}
	return t, err
}

// Create inserts t, assigning a uuid when t.ID is empty.
func (r *TestimonialRepo) Create(ctx context.Context, t *model.Testimonial) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO main_testimonials (id, author_name, text, photo, display_order, is_active)
		VALUES (?,?,?,?,?,?)`,
		t.ID, t.AuthorName, t.Text, t.Photo, t.DisplayOrder, t.IsActive)
	return err
}

// Update overwrites the editable columns.
func (r *TestimonialRepo) Update(ctx context.Context, t *model.Testimonial) error {
	res, err := r.db.ExecContext(ctx, `UPDATE main_testimonials SET author_name = ?, text = ?, photo = ?, display_order = ?,
		is_active = ? WHERE id = ?`,
		t.AuthorName, t.Text, t.Photo, t.DisplayOrder, t.IsActive, t.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrTestimonialNotFound)
}

// Reorder sets display_order to the position of each id in ids, starting
// at 1. Every id must exist.
func (r *TestimonialRepo) Reorder(ctx context.Context, ids []string) error {
	return reorder(ctx, r.db, "main_testimonials", ids, ErrTestimonialNotFound)
}

// Delete removes a quote.
func (r *TestimonialRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM main_testimonials WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrTestimonialNotFound)
}
