// Package kv is the local string key-value persistence shared by the SEO
// metadata cache and the editable schedule store. Writes are whole-value
// replacements and the last write wins.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/energopraktiki/internal/config"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// Store is a synchronous string-keyed get/set/remove capability.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Open selects the backend named by cfg.Backend. rdb may be nil; a redis
// backend without a client degrades to memory with a warning.
func Open(cfg config.KVConfig, rdb *redis.Client, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Backend {
	case config.KVRedis:
		if rdb == nil {
			logger.Warn("kv: redis unavailable, using in-memory store")
			return NewMemory(), nil
		}
		return NewRedis(rdb, cfg.Prefix), nil
	case config.KVSQLite:
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("kv: open sqlite: %w", err)
		}
		return s, nil
	case config.KVMemory, "":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("kv: unknown backend %q", cfg.Backend)
}
