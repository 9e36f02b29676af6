package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// ErrPostNotFound is returned when a blog post cannot be found.
var ErrPostNotFound = errors.New("post not found")

const postColumns = `id, slug, title, excerpt, image, category, date_text, reading_time, content,
	is_active, display_order, created_at`

// BlogQuery narrows the public listing. Empty fields are ignored.
type BlogQuery struct {
	Text     string
	Category string
}

// BlogRepo wraps the `blog_posts` table.
type BlogRepo struct {
	db *sql.DB
}

func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{db: db}
}

func scanPost(s rowScanner) (*model.BlogPost, error) {
	var (
		p                model.BlogPost
		excerpt, content sql.NullString
		createdAt        time.Time
	)
	if err := s.Scan(&p.ID, &p.Slug, &p.Title, &excerpt, &p.Image, &p.Category, &p.DateText, &p.ReadingTime,
		&content, &p.IsActive, &p.DisplayOrder, &createdAt); err != nil {
		return nil, err
	}
	p.Excerpt, p.Content = excerpt.String, content.String
	p.CreatedAt = &createdAt
	return &p, nil
}

func (r *BlogRepo) list(ctx context.Context, q string, args ...any) ([]model.BlogPost, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns active posts by display order, optionally filtered by
// a text match on title/excerpt and an exact category.
func (r *BlogRepo) ListActive(ctx context.Context, q BlogQuery) ([]model.BlogPost, error) {
	where := []string{"is_active = 1"}
	args := []any{}
	if t := strings.TrimSpace(q.Text); t != "" {
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?)")
		like := "%" + strings.ToLower(t) + "%"
		args = append(args, like, like)
	}
	if q.Category != "" {
		where = append(where, "category = ?")
		args = append(args, q.Category)
	}
	return r.list(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE `+strings.Join(where, " AND ")+
		` ORDER BY display_order ASC, created_at DESC`, args...)
}

// FindActiveBySlug returns matching active posts, newest first.
func (r *BlogRepo) FindActiveBySlug(ctx context.Context, slug string) ([]model.BlogPost, error) {
	return r.list(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE slug = ? AND is_active = 1 ORDER BY created_at DESC`, slug)
}

// ListAll returns every post for the back office.
func (r *BlogRepo) ListAll(ctx context.Context) ([]model.BlogPost, error) {
	return r.list(ctx, `SELECT `+postColumns+` FROM blog_posts ORDER BY display_order ASC, created_at DESC`)
}

// GetByID fetches a post regardless of its active flag.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	return p, err
}

// SlugExists reports whether another post already uses slug.
func (r *BlogRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts WHERE slug = ? AND id <> ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}

// Create inserts p, assigning a uuid when p.ID is empty.
func (r *BlogRepo) Create(ctx context.Context, p *model.BlogPost) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO blog_posts (id, slug, title, excerpt, image, category, date_text,
		reading_time, content, is_active, display_order) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Slug, p.Title, p.Excerpt, p.Image, p.Category, p.DateText, p.ReadingTime, p.Content, p.IsActive, p.DisplayOrder)
	return err
}

// Update overwrites every editable column of the post.
func (r *BlogRepo) Update(ctx context.Context, p *model.BlogPost) error {
	res, err := r.db.ExecContext(ctx, `UPDATE blog_posts SET slug = ?, title = ?, excerpt = ?, image = ?, category = ?,
		date_text = ?, reading_time = ?, content = ?, is_active = ?, display_order = ? WHERE id = ?`,
		p.Slug, p.Title, p.Excerpt, p.Image, p.Category, p.DateText, p.ReadingTime, p.Content, p.IsActive, p.DisplayOrder, p.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrPostNotFound)
}

// Delete removes a post.
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrPostNotFound)
}
