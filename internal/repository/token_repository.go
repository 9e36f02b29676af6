package repository

import (
	"context"
	"database/sql"
	"time"
)

// Subject identifies the owner of a refresh token.
type Subject struct {
	ID   string
	Role string
}

// TokenRepo persists and validates refresh token hashes for both admins
// and facilitators.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token hash row.
func (r *TokenRepo) StoreRefresh(ctx context.Context, sub Subject, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (subject_id, role, token_hash, expires_at) VALUES (?,?,?,?)",
		sub.ID, sub.Role, tokenHash, exp)
	return err
}

// ValidateRefresh returns the subject if a non-revoked, non-expired token
// exists. Anything else is reported as sql.ErrNoRows.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (Subject, error) {
	var (
		sub       Subject
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT subject_id, role, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&sub.ID, &sub.Role, &expiresAt, &revokedAt)
	if err != nil {
		return Subject{}, err
	}
	if revokedAt.Valid || time.Now().UTC().After(expiresAt) {
		return Subject{}, sql.ErrNoRows
	}
	return sub, nil
}

// RevokeByHash marks a token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAll revokes every active token of the subject, e.g. after a
// password change.
func (r *TokenRepo) RevokeAll(ctx context.Context, sub Subject) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE subject_id=? AND role=? AND revoked_at IS NULL",
		sub.ID, sub.Role)
	return err
}
