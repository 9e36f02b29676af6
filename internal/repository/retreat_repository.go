package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// ErrRetreatNotFound is returned when a retreat cannot be found.
var ErrRetreatNotFound = errors.New("retreat not found")

const retreatColumns = `id, slug, title, city, date_text, image, description, content, format,
	price_from, link, is_active, show_on_home, display_order, created_at`

// RetreatRepo wraps the `retreats` table.
type RetreatRepo struct {
	db *sql.DB
}

func NewRetreatRepo(db *sql.DB) *RetreatRepo {
	return &RetreatRepo{db: db}
}

func scanRetreat(s rowScanner) (*model.Retreat, error) {
	var (
		rt                         model.Retreat
		slug, description, content sql.NullString
		format                     []byte
		createdAt                  time.Time
	)
	if err := s.Scan(&rt.ID, &slug, &rt.Title, &rt.City, &rt.DateText, &rt.Image, &description, &content, &format,
		&rt.PriceFrom, &rt.Link, &rt.IsActive, &rt.ShowOnHome, &rt.DisplayOrder, &createdAt); err != nil {
		return nil, err
	}
	rt.Slug, rt.Description, rt.Content = slug.String, description.String, content.String
	if err := scanJSON(format, &rt.Format); err != nil {
		return nil, err
	}
	rt.CreatedAt = &createdAt
	return &rt, nil
}

func (r *RetreatRepo) list(ctx context.Context, q string, args ...any) ([]model.Retreat, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Retreat
	for rows.Next() {
		rt, err := scanRetreat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns active retreats by display order.
func (r *RetreatRepo) ListActive(ctx context.Context) ([]model.Retreat, error) {
	return r.list(ctx, `SELECT `+retreatColumns+` FROM retreats WHERE is_active = 1 ORDER BY display_order ASC, created_at ASC`)
}

// ListForHome returns the active retreats flagged for the home page.
func (r *RetreatRepo) ListForHome(ctx context.Context) ([]model.Retreat, error) {
	return r.list(ctx, `SELECT `+retreatColumns+` FROM retreats WHERE is_active = 1 AND show_on_home = 1 ORDER BY display_order ASC`)
}

// FindActiveBySlug returns matching active retreats, newest first.
func (r *RetreatRepo) FindActiveBySlug(ctx context.Context, slug string) ([]model.Retreat, error) {
	return r.list(ctx, `SELECT `+retreatColumns+` FROM retreats WHERE slug = ? AND is_active = 1 ORDER BY created_at DESC`, slug)
}

// ListAll returns every retreat for the back office.
func (r *RetreatRepo) ListAll(ctx context.Context) ([]model.Retreat, error) {
	return r.list(ctx, `SELECT `+retreatColumns+` FROM retreats ORDER BY display_order ASC, created_at DESC`)
}

// GetByID fetches a retreat regardless of its active flag.
func (r *RetreatRepo) GetByID(ctx context.Context, id string) (*model.Retreat, error) {
	rt, err := scanRetreat(r.db.QueryRowContext(ctx, `SELECT `+retreatColumns+` FROM retreats WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRetreatNotFound
	}
	return rt, err
}

// SlugExists reports whether another retreat already uses slug.
func (r *RetreatRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM retreats WHERE slug = ? AND id <> ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}

// Create inserts rt, assigning a uuid when rt.ID is empty.
func (r *RetreatRepo) Create(ctx context.Context, rt *model.Retreat) error {
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	format, err := jsonColumn(rt.Format)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO retreats (id, slug, title, city, date_text, image, description,
		content, format, price_from, link, is_active, show_on_home, display_order)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rt.ID, nullIfEmpty(rt.Slug), rt.Title, rt.City, rt.DateText, rt.Image, rt.Description, rt.Content,
		format, rt.PriceFrom, rt.Link, rt.IsActive, rt.ShowOnHome, rt.DisplayOrder)
	return err
}

// Update overwrites every editable column of the retreat.
func (r *RetreatRepo) Update(ctx context.Context, rt *model.Retreat) error {
	format, err := jsonColumn(rt.Format)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE retreats SET slug = ?, title = ?, city = ?, date_text = ?, image = ?,
		description = ?, content = ?, format = ?, price_from = ?, link = ?, is_active = ?, show_on_home = ?,
		display_order = ? WHERE id = ?`,
		nullIfEmpty(rt.Slug), rt.Title, rt.City, rt.DateText, rt.Image, rt.Description, rt.Content, format,
		rt.PriceFrom, rt.Link, rt.IsActive, rt.ShowOnHome, rt.DisplayOrder, rt.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrRetreatNotFound)
}

// Delete removes a retreat.
func (r *RetreatRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM retreats WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrRetreatNotFound)
}
