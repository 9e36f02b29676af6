package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/energopraktiki/internal/config"
)

// exercise runs the shared contract against any backend.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "schedule_1", `{"a":1}`))
	v, err := s.Get(ctx, "schedule_1")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, v)

	// last write wins
	require.NoError(t, s.Set(ctx, "schedule_1", `{"a":2}`))
	v, err = s.Get(ctx, "schedule_1")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, v)

	require.NoError(t, s.Remove(ctx, "schedule_1"))
	_, err = s.Get(ctx, "schedule_1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Remove(ctx, "never-set"))
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewRedis(rdb, "kv:")
	exercise(t, s)

	require.NoError(t, s.Set(context.Background(), "seo_data:home", "x"))
	assert.True(t, mr.Exists("kv:seo_data:home"))
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "local.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exercise(t, s)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "k", "v"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestOpenSelectsBackend(t *testing.T) {
	st, err := Open(config.KVConfig{Backend: config.KVMemory}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, st)

	st, err = Open(config.KVConfig{Backend: config.KVRedis}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, st, "redis without a client degrades to memory")

	st, err = Open(config.KVConfig{Backend: config.KVSQLite, SQLitePath: filepath.Join(t.TempDir(), "x.db")}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, st)
	_ = st.(*SQLite).Close()

	_, err = Open(config.KVConfig{Backend: "etcd"}, nil, nil)
	assert.Error(t, err)
}
