package config

import (
	"strings"
	"time"
)

// CacheConfig controls the Redis response cache mounted on the public
// content routes (retreats, blog, SEO, site blocks, FAQ, testimonials).
// Facilitator listings never go through it because their order may be
// re-rolled per request. Admin writes purge everything under Prefix.
type CacheConfig struct {
	Enabled bool
	// Methods are the upper-cased verbs eligible for caching.
	Methods map[string]bool
	// TTL bounds staleness for edits made outside the admin API.
	TTL time.Duration
	// KeyStrategy is one of route, route_query, method_route or
	// method_route_query. Content lists page and filter by query string,
	// so route_query is the default.
	KeyStrategy string
	// Prefix namespaces the keys; PurgeCache scans "<Prefix>:*".
	Prefix string
	// MaxBodyBytes skips storing larger responses, e.g. long blog posts
	// with inline images.
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* variables.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 5*time.Minute),
		KeyStrategy:  strings.ToLower(envStr("CACHE_KEY_STRATEGY", "route_query")),
		Prefix:       envStr("CACHE_PREFIX", "content"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return cfg
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
