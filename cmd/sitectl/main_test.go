package main

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/energopraktiki/internal/config"
	"github.com/iliyamo/energopraktiki/internal/database"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	prevLoad, prevOpen := loadConfig, openDB
	loadConfig = func() config.Config { return config.Config{BcryptCost: bcrypt.MinCost} }
	openDB = func(config.Config) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { loadConfig, openDB = prevLoad, prevOpen })
	return mock
}

func TestSlugCommand(t *testing.T) {
	out, err := execute(t, "slug", "Ёжик", "в", "тумане")
	require.NoError(t, err)
	assert.Equal(t, "yozhik-v-tumane\n", out)

	_, err = execute(t, "slug", "!!!")
	assert.Error(t, err)
}

func TestCodesCommand(t *testing.T) {
	out, err := execute(t, "codes")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "1\tA7K2M9X1", lines[0])
	assert.Equal(t, "4\tD8S3T4W5", lines[3])
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := execute(t, "hash-password", "--cost", "4", "long-enough")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("long-enough")))

	_, err = execute(t, "hash-password", "short")
	assert.Error(t, err)
}

func TestBlocksValidate(t *testing.T) {
	out, err := execute(t, "blocks")
	require.NoError(t, err)
	assert.Contains(t, out, "hero\n")

	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"title":"Практики"}`), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"subtitle":"no title"}`), 0o644))

	out, err = execute(t, "blocks", "validate", "hero", good)
	require.NoError(t, err)
	assert.Equal(t, "hero: ok\n", out)

	_, err = execute(t, "blocks", "validate", "hero", bad)
	assert.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	mock := withMockDB(t)
	for _, s := range database.Statements() {
		mock.ExpectExec(regexp.QuoteMeta(s)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "applied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCreate(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectExec("INSERT INTO admins").
		WithArgs(sqlmock.AnyArg(), "owner@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	out, err := execute(t, "admin", "create", "--email", "Owner@Example.com", "--password", "long-enough")
	require.NoError(t, err)
	assert.Contains(t, out, "created admin owner@example.com")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCreateDuplicate(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectExec("INSERT INTO admins").WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := execute(t, "admin", "create", "--email", "owner@example.com", "--password", "long-enough")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAdminCreateRejectsWeakPassword(t *testing.T) {
	withMockDB(t)
	_, err := execute(t, "admin", "create", "--email", "owner@example.com", "--password", "short")
	assert.Error(t, err)
}
