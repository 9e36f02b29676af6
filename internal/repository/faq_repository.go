package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// ErrFAQNotFound is returned when an FAQ item cannot be found.
var ErrFAQNotFound = errors.New("faq item not found")

const faqColumns = `id, question, answer, display_order, is_active, created_at, updated_at`

// FAQRepo wraps the `faq_items` table.
type FAQRepo struct {
	db *sql.DB
}

func NewFAQRepo(db *sql.DB) *FAQRepo {
	return &FAQRepo{db: db}
}

func scanFAQ(s rowScanner) (*model.FAQItem, error) {
	var (
		it                 model.FAQItem
		created, updatedAt time.Time
	)
	if err := s.Scan(&it.ID, &it.Question, &it.Answer, &it.DisplayOrder, &it.IsActive, &created, &updatedAt); err != nil {
		return nil, err
	}
	it.CreatedAt, it.UpdatedAt = &created, &updatedAt
	return &it, nil
}

func (r *FAQRepo) list(ctx context.Context, q string) ([]model.FAQItem, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FAQItem
	for rows.Next() {
		it, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns the visible questions by display order.
func (r *FAQRepo) ListActive(ctx context.Context) ([]model.FAQItem, error) {
	return r.list(ctx, `SELECT `+faqColumns+` FROM faq_items WHERE is_active = 1 ORDER BY display_order ASC, created_at ASC`)
}

// ListAll returns every question for the back office.
func (r *FAQRepo) ListAll(ctx context.Context) ([]model.FAQItem, error) {
	return r.list(ctx, `SELECT `+faqColumns+` FROM faq_items ORDER BY display_order ASC, created_at ASC`)
}

// GetByID fetches one question regardless of its active flag.
func (r *FAQRepo) GetByID(ctx context.Context, id string) (*model.FAQItem, error) {
	it, err := scanFAQ(r.db.QueryRowContext(ctx, `SELECT `+faqColumns+` FROM faq_items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFAQNotFound
	}
	return it, err
}

// Create inserts it, assigning a uuid when it.ID is empty.
func (r *FAQRepo) Create(ctx context.Context, it *model.FAQItem) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO faq_items (id, question, answer, display_order, is_active) VALUES (?,?,?,?,?)`,
		it.ID, it.Question, it.Answer, it.DisplayOrder, it.IsActive)
	return err
}

// Update overwrites the editable columns.
func (r *FAQRepo) Update(ctx context.Context, it *model.FAQItem) error {
	res, err := r.db.ExecContext(ctx, `UPDATE faq_items SET question = ?, answer = ?, display_order = ?, is_active = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		it.Question, it.Answer, it.DisplayOrder, it.IsActive, it.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrFAQNotFound)
}

// SetActive toggles visibility on the public site.
func (r *FAQRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE faq_items SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrFAQNotFound)
}

// Reorder sets display_order to the position of each id in ids, starting
// at 1. Every id must exist.
func (r *FAQRepo) Reorder(ctx context.Context, ids []string) error {
	return reorder(ctx, r.db, "faq_items", ids, ErrFAQNotFound)
}

// Delete removes a question.
func (r *FAQRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faq_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrFAQNotFound)
}
