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

// ErrSubscriberNotFound is returned when deleting an unknown subscription.
var ErrSubscriberNotFound = errors.New("subscriber not found")

// SubscriberRepo wraps `newsletter_subscribers`.
type SubscriberRepo struct {
	db *sql.DB
}

func NewSubscriberRepo(db *sql.DB) *SubscriberRepo {
	return &SubscriberRepo{db: db}
}

// Subscribe stores a normalised email. A repeated email yields
// ErrEmailExists so the caller can answer "already subscribed".
func (r *SubscriberRepo) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	s := &model.Subscriber{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		SubscribedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO newsletter_subscribers (id, email, subscribed_at) VALUES (?,?,?)`,
		s.ID, s.Email, s.SubscribedAt)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return s, nil
}

// List returns every subscription, newest first.
func (r *SubscriberRepo) List(ctx context.Context) ([]model.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, email, subscribed_at FROM newsletter_subscribers ORDER BY subscribed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Subscriber
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.SubscribedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a subscription by id.
func (r *SubscriberRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM newsletter_subscribers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrSubscriberNotFound)
}
