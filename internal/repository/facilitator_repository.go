package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// ErrFacilitatorNotFound is returned when a facilitator cannot be found.
var ErrFacilitatorNotFound = errors.New("facilitator not found")

const facilitatorColumns = `id, slug, name, email, password_hash, city, cities, tagline, description,
	service_types, sessions, format, photo, video_url, cost, contacts, reviews,
	title_prefix, cta_text, cta_href, rating, sort_order, featured, is_active, created_at, updated_at`

// FacilitatorRepo encapsulates all queries against the `facilitators` table.
type FacilitatorRepo struct {
	db *sql.DB
}

func NewFacilitatorRepo(db *sql.DB) *FacilitatorRepo {
	return &FacilitatorRepo{db: db}
}

func scanFacilitator(s rowScanner) (*model.Facilitator, error) {
	var (
		f                                            model.Facilitator
		slug, email, hash, description               sql.NullString
		serviceTypes, sessions, format, contacts, rv []byte
		rating                                       sql.NullFloat64
		sortOrder                                    sql.NullInt64
		createdAt, updatedAt                         time.Time
	)
	if err := s.Scan(&f.ID, &slug, &f.Name, &email, &hash, &f.City, &f.Cities, &f.Tagline, &description,
		&serviceTypes, &sessions, &format, &f.Photo, &f.VideoURL, &f.Cost, &contacts, &rv,
		&f.TitlePrefix, &f.CTAText, &f.CTAHref, &rating, &sortOrder, &f.Featured, &f.IsActive,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	f.Slug, f.Email, f.PasswordHash, f.Description = slug.String, email.String, hash.String, description.String
	for _, c := range []struct {
		raw []byte
		dst any
	}{{serviceTypes, &f.ServiceTypes}, {sessions, &f.Sessions}, {format, &f.Format}, {contacts, &f.Contacts}, {rv, &f.Reviews}} {
		if err := scanJSON(c.raw, c.dst); err != nil {
			return nil, fmt.Errorf("facilitator %s: %w", f.ID, err)
		}
	}
	if rating.Valid {
		v := rating.Float64
		f.Rating = &v
	}
	if sortOrder.Valid {
		v := int(sortOrder.Int64)
		f.SortOrder = &v
	}
	f.CreatedAt, f.UpdatedAt = &createdAt, &updatedAt
	return &f, nil
}

func (r *FacilitatorRepo) list(ctx context.Context, q string, args ...any) ([]model.Facilitator, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Facilitator
	for rows.Next() {
		f, err := scanFacilitator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns every active facilitator. Ordering for display is the
// catalog engine's job; rows come back oldest first.
func (r *FacilitatorRepo) ListActive(ctx context.Context) ([]model.Facilitator, error) {
	return r.list(ctx, `SELECT `+facilitatorColumns+` FROM facilitators WHERE is_active = 1 ORDER BY created_at ASC, id ASC`)
}

// FindActiveBySlug returns all active facilitators with the slug, newest
// first, so a duplicate slug resolves to the most recent row.
func (r *FacilitatorRepo) FindActiveBySlug(ctx context.Context, slug string) ([]model.Facilitator, error) {
	return r.list(ctx, `SELECT `+facilitatorColumns+` FROM facilitators WHERE slug = ? AND is_active = 1 ORDER BY created_at DESC`, slug)
}

// ListAll returns every facilitator for the back office, newest first.
func (r *FacilitatorRepo) ListAll(ctx context.Context) ([]model.Facilitator, error) {
	return r.list(ctx, `SELECT `+facilitatorColumns+` FROM facilitators ORDER BY created_at DESC`)
}

// GetByID fetches a facilitator regardless of its active flag.
func (r *FacilitatorRepo) GetByID(ctx context.Context, id string) (*model.Facilitator, error) {
	f, err := scanFacilitator(r.db.QueryRowContext(ctx, `SELECT `+facilitatorColumns+` FROM facilitators WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilitatorNotFound
	}
	return f, err
}

// GetByEmail fetches a facilitator account by normalised email.
func (r *FacilitatorRepo) GetByEmail(ctx context.Context, email string) (*model.Facilitator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	f, err := scanFacilitator(r.db.QueryRowContext(ctx, `SELECT `+facilitatorColumns+` FROM facilitators WHERE email = ? LIMIT 1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilitatorNotFound
	}
	return f, err
}

// SlugExists reports whether another facilitator already uses slug.
// excludeID skips the row being updated.
func (r *FacilitatorRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM facilitators WHERE slug = ? AND id <> ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}

func facilitatorArgs(f *model.Facilitator) ([]any, error) {
	st, err := jsonColumn(f.ServiceTypes)
	if err != nil {
		return nil, err
	}
	sess, err := jsonColumn(f.Sessions)
	if err != nil {
		return nil, err
	}
	format, err := jsonColumn(f.Format)
	if err != nil {
		return nil, err
	}
	contacts, err := jsonColumn(f.Contacts)
	if err != nil {
		return nil, err
	}
	reviews, err := jsonColumn(f.Reviews)
	if err != nil {
		return nil, err
	}
	var rating, sortOrder any
	if f.Rating != nil {
		rating = *f.Rating
	}
	if f.SortOrder != nil {
		sortOrder = *f.SortOrder
	}
	return []any{nullIfEmpty(f.Slug), f.Name, nullIfEmpty(strings.ToLower(strings.TrimSpace(f.Email))), f.City, f.Cities,
		f.Tagline, f.Description, st, sess, format, f.Photo, f.VideoURL, f.Cost, contacts, reviews,
		f.TitlePrefix, f.CTAText, f.CTAHref, rating, sortOrder, f.Featured, f.IsActive}, nil
}

// Create inserts f, assigning a new uuid when f.ID is empty. PasswordHash is
// stored as given.
func (r *FacilitatorRepo) Create(ctx context.Context, f *model.Facilitator) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	args, err := facilitatorArgs(f)
	if err != nil {
		return err
	}
	args = append([]any{f.ID, nullIfEmpty(f.PasswordHash)}, args...)
	_, err = r.db.ExecContext(ctx, `INSERT INTO facilitators (id, password_hash, slug, name, email, city, cities,
		tagline, description, service_types, sessions, format, photo, video_url, cost, contacts, reviews,
		title_prefix, cta_text, cta_href, rating, sort_order, featured, is_active)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`, args...)
	if isDuplicate(err) {
		return ErrEmailExists
	}
	return err
}

// Update overwrites every editable column of the facilitator with f.ID.
func (r *FacilitatorRepo) Update(ctx context.Context, f *model.Facilitator) error {
	args, err := facilitatorArgs(f)
	if err != nil {
		return err
	}
	args = append(args, f.ID)
	res, err := r.db.ExecContext(ctx, `UPDATE facilitators SET slug = ?, name = ?, email = ?, city = ?, cities = ?,
		tagline = ?, description = ?, service_types = ?, sessions = ?, format = ?, photo = ?, video_url = ?,
		cost = ?, contacts = ?, reviews = ?, title_prefix = ?, cta_text = ?, cta_href = ?, rating = ?,
		sort_order = ?, featured = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, args...)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	return affectedOrNotFound(res, ErrFacilitatorNotFound)
}

// UpdateProfile saves the fields a facilitator may edit on their own
// account. Placement fields (featured, rating, sort order, active) are left
// to the back office.
func (r *FacilitatorRepo) UpdateProfile(ctx context.Context, f *model.Facilitator) error {
	sess, err := jsonColumn(f.Sessions)
	if err != nil {
		return err
	}
	format, err := jsonColumn(f.Format)
	if err != nil {
		return err
	}
	contacts, err := jsonColumn(f.Contacts)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE facilitators SET name = ?, city = ?, cities = ?, tagline = ?,
		description = ?, sessions = ?, format = ?, photo = ?, video_url = ?, cost = ?, contacts = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		f.Name, f.City, f.Cities, f.Tagline, f.Description, sess, format, f.Photo, f.VideoURL, f.Cost, contacts, f.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrFacilitatorNotFound)
}

// SetActive toggles public visibility.
func (r *FacilitatorRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE facilitators SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrFacilitatorNotFound)
}

// SetPassword replaces the stored bcrypt hash.
func (r *FacilitatorRepo) SetPassword(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE facilitators SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, hash, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrFacilitatorNotFound)
}

// Delete removes the facilitator and its refresh tokens.
func (r *FacilitatorRepo) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE subject_id = ? AND role = ?`, id, model.RoleFacilitator); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM facilitators WHERE id = ?`, id); err != nil {
		return err
	}
	err = affectedOrNotFound(res, ErrFacilitatorNotFound)
	return err
}
