package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// SEORepo wraps the `seo_settings` table.
type SEORepo struct {
	db *sql.DB
}

func NewSEORepo(db *sql.DB) *SEORepo {
	return &SEORepo{db: db}
}

const seoColumns = `meta_title, meta_description, meta_image, og_title, og_description, og_image`

// whereItem filters by item id equality, or by item_id IS NULL when itemID
// is empty. The two predicates are never relaxed together.
func whereItem(itemID string) (string, []any) {
	if itemID == "" {
		return "item_id IS NULL", nil
	}
	return "item_id = ?", []any{itemID}
}

// Find returns the metadata for the pair, or nil and no error when no row
// exists.
func (r *SEORepo) Find(ctx context.Context, pageType, itemID string) (*model.SEOData, error) {
	cond, extra := whereItem(itemID)
	args := append([]any{pageType}, extra...)
	var d model.SEOData
	err := r.db.QueryRowContext(ctx,
		`SELECT `+seoColumns+` FROM seo_settings WHERE page_type = ? AND `+cond+` LIMIT 1`, args...).
		Scan(&d.MetaTitle, &d.MetaDescription, &d.MetaImage, &d.OGTitle, &d.OGDescription, &d.OGImage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Upsert writes the metadata for the pair, updating the existing row when
// there is one.
func (r *SEORepo) Upsert(ctx context.Context, pageType, itemID string, d model.SEOData) error {
	cond, extra := whereItem(itemID)
	args := append([]any{pageType}, extra...)

	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM seo_settings WHERE page_type = ? AND `+cond+` LIMIT 1`, args...).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO seo_settings (id, page_type, item_id, `+seoColumns+`) VALUES (?,?,?,?,?,?,?,?,?)`,
			uuid.NewString(), pageType, nullIfEmpty(itemID),
			d.MetaTitle, d.MetaDescription, d.MetaImage, d.OGTitle, d.OGDescription, d.OGImage)
		return err
	case err != nil:
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE seo_settings SET meta_title = ?, meta_description = ?, meta_image = ?, og_title = ?,
		 og_description = ?, og_image = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		d.MetaTitle, d.MetaDescription, d.MetaImage, d.OGTitle, d.OGDescription, d.OGImage, id)
	return err
}
