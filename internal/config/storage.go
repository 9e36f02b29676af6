package config

import (
	"strings"
	"time"
)

// KV backends understood by kv.Open.
const (
	KVMemory = "memory"
	KVRedis  = "redis"
	KVSQLite = "sqlite"
)

// KVConfig selects and configures the local key-value store backing the
// SEO cache and the editable schedules.
type KVConfig struct {
	Backend    string // memory|redis|sqlite
	SQLitePath string // file used by the sqlite backend
	Prefix     string // key prefix for the redis backend
}

// LoadKVConfig reads KV_BACKEND, KV_SQLITE_PATH and KV_PREFIX.
func LoadKVConfig() KVConfig {
	return KVConfig{
		Backend:    strings.ToLower(envStr("KV_BACKEND", KVMemory)),
		SQLitePath: envStr("KV_SQLITE_PATH", "data/local.db"),
		Prefix:     envStr("KV_PREFIX", "kv:"),
	}
}

// SEOConfig holds the SEO metadata cache lifetime.
type SEOConfig struct {
	TTL time.Duration
}

// LoadSEOConfig reads SEO_CACHE_TTL (default one hour).
func LoadSEOConfig() SEOConfig {
	ttl := envDur("SEO_CACHE_TTL", time.Hour)
	if ttl <= 0 {
		ttl = time.Hour
	}
	return SEOConfig{TTL: ttl}
}
