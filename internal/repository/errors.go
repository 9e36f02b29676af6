// Package repository holds the MySQL data access layer. Each repo wraps a
// *sql.DB and reports missing rows with a sentinel error so handlers can
// answer 404 instead of 500.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate it into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot proceed because of existing
// state. Handlers translate it into 409.
var ErrConflict = errors.New("conflict")

// ErrSlugTaken is returned when an explicitly provided slug is already used
// by another row.
var ErrSlugTaken = errors.New("slug already taken")

// ErrEmailExists is returned on a duplicate email (accounts, newsletter).
var ErrEmailExists = errors.New("email already exists")

// isDuplicate reports whether err is a MySQL unique-key violation (1062).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return err != nil && strings.Contains(err.Error(), "1062")
}

// nullIfEmpty stores "" as SQL NULL so optional unique columns do not clash.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// jsonColumn marshals v for a JSON column. Nil slices are stored as [].
func jsonColumn(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return []byte("[]"), nil
	}
	return b, nil
}

// scanJSON decodes a nullable JSON column into dst, leaving dst untouched
// for NULL or empty values.
func scanJSON(raw []byte, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// affectedOrNotFound maps a zero-row update/delete to notFound.
func affectedOrNotFound(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// reorder rewrites display_order of table in one transaction. table is
// always a constant from this package.
func reorder(ctx context.Context, db *sql.DB, table string, ids []string, notFound error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
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
	for i, id := range ids {
		var res sql.Result
		if res, err = tx.ExecContext(ctx, `UPDATE `+table+` SET display_order = ? WHERE id = ?`, i+1, id); err != nil {
			return err
		}
		if err = affectedOrNotFound(res, notFound); err != nil {
			return err
		}
	}
	return nil
}
