package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// ErrBlockNotFound is returned when a site block has never been saved.
var ErrBlockNotFound = errors.New("site block not found")

const sortSettingsID = "main"

// SettingsRepo covers the singleton configuration tables: the facilitator
// sort settings row and the JSON site content blocks.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetSortMethod returns the stored strategy or model.DefaultSortMethod when
// the row is missing. The stored value is returned verbatim even if it is
// not a known strategy.
func (r *SettingsRepo) GetSortMethod(ctx context.Context) (model.SortMethod, error) {
	var m string
	err := r.db.QueryRowContext(ctx, `SELECT sort_method FROM facilitators_sort_settings WHERE id = ?`, sortSettingsID).Scan(&m)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSortMethod, nil
	}
	if err != nil {
		return "", err
	}
	return model.SortMethod(m), nil
}

// SetSortMethod upserts the singleton row.
func (r *SettingsRepo) SetSortMethod(ctx context.Context, m model.SortMethod) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO facilitators_sort_settings (id, sort_method) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE sort_method = VALUES(sort_method)`, sortSettingsID, string(m))
	return err
}

// GetBlock returns the stored payload of a content block.
func (r *SettingsRepo) GetBlock(ctx context.Context, name string) (*model.SiteBlock, error) {
	var (
		b       model.SiteBlock
		payload []byte
	)
	err := r.db.QueryRowContext(ctx, `SELECT name, payload, updated_at FROM site_blocks WHERE name = ?`, name).
		Scan(&b.Name, &payload, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Payload = json.RawMessage(payload)
	return &b, nil
}

// PutBlock upserts a content block. Callers validate the payload first.
func (r *SettingsRepo) PutBlock(ctx context.Context, name string, payload json.RawMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO site_blocks (name, payload) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = CURRENT_TIMESTAMP`, name, []byte(payload))
	return err
}
