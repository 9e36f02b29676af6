// Package seo serves per-page head metadata through a time-boxed cache in
// the local key-value store.
package seo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/iliyamo/energopraktiki/internal/kv"
	"github.com/iliyamo/energopraktiki/internal/logging"
	"github.com/iliyamo/energopraktiki/internal/model"
)

// DefaultTTL is how long a cached entry stays fresh.
const DefaultTTL = time.Hour

const keyPrefix = "seo_data:"

// Source is the remote lookup. It returns nil data and a nil error when no
// row exists for the pair; an empty itemID means "item_id IS NULL".
type Source interface {
	Find(ctx context.Context, pageType, itemID string) (*model.SEOData, error)
}

// entry is the cached JSON value.
type entry struct {
	Data      model.SEOData `json:"data"`
	Timestamp int64         `json:"timestamp"` // unix millis at write time
}

// Loader fronts Source with the cache. Concurrent misses for the same key
// each query the source; there is no request coalescing.
type Loader struct {
	Source Source
	Store  kv.Store
	TTL    time.Duration
	Now    func() time.Time
}

// NewLoader returns a Loader with the default TTL and wall clock.
func NewLoader(src Source, store kv.Store, ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Loader{Source: src, Store: store, TTL: ttl, Now: time.Now}
}

// Key builds the cache key for a page/item pair. The page type is escaped
// so the first ':' after the prefix always separates it from the item id.
func Key(pageType, itemID string) string {
	k := keyPrefix + url.QueryEscape(pageType)
	if itemID == "" {
		return k
	}
	return k + ":" + itemID
}

// Load returns the metadata for the pair or nil when none exists. A fresh
// cache entry is returned without touching Source. Absent rows are not
// cached, so a newly added row shows up on the next call. Cache and source
// failures are logged and never returned.
func (l *Loader) Load(ctx context.Context, pageType, itemID string) *model.SEOData {
	key := Key(pageType, itemID)
	if d, ok := l.cached(ctx, key); ok {
		return d
	}
	return l.fetch(ctx, pageType, itemID)
}

// Refresh skips the cache read and rewrites the entry from Source. The
// admin editor calls it after saving so the next Load sees the new values.
func (l *Loader) Refresh(ctx context.Context, pageType, itemID string) *model.SEOData {
	d := l.fetch(ctx, pageType, itemID)
	if d == nil && l.Store != nil {
		if err := l.Store.Remove(ctx, Key(pageType, itemID)); err != nil {
			logging.FromContext(ctx).Warn("seo cache remove failed", slog.String("key", Key(pageType, itemID)), slog.Any("err", err))
		}
	}
	return d
}

func (l *Loader) cached(ctx context.Context, key string) (*model.SEOData, bool) {
	if l.Store == nil {
		return nil, false
	}
	log := logging.FromContext(ctx)
	raw, err := l.Store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Warn("seo cache read failed", slog.String("key", key), slog.Any("err", err))
		}
		return nil, false
	}
	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		log.Warn("seo cache entry corrupt", slog.String("key", key), slog.Any("err", err))
		return nil, false
	}
	age := l.now().Sub(time.UnixMilli(e.Timestamp))
	if age > l.ttl() || age < 0 {
		if err := l.Store.Remove(ctx, key); err != nil {
			log.Warn("seo cache remove failed", slog.String("key", key), slog.Any("err", err))
		}
		return nil, false
	}
	d := e.Data
	return &d, true
}

func (l *Loader) fetch(ctx context.Context, pageType, itemID string) *model.SEOData {
	log := logging.FromContext(ctx)
	if l.Source == nil {
		return nil
	}
	d, err := l.Source.Find(ctx, pageType, itemID)
	if err != nil {
		log.Warn("seo lookup failed", slog.String("page_type", pageType), slog.String("item_id", itemID), slog.Any("err", err))
		return nil
	}
	if d == nil {
		return nil
	}
	if l.Store != nil {
		b, err := json.Marshal(entry{Data: *d, Timestamp: l.now().UnixMilli()})
		if err == nil {
			err = l.Store.Set(ctx, Key(pageType, itemID), string(b))
		}
		if err != nil {
			log.Warn("seo cache write failed", slog.String("page_type", pageType), slog.Any("err", err))
		}
	}
	return d
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Loader) ttl() time.Duration {
	if l.TTL > 0 {
		return l.TTL
	}
	return DefaultTTL
}

// Merge fills every empty field of data from defaults. A nil data yields
// the defaults unchanged.
func Merge(data *model.SEOData, defaults model.SEOData) model.SEOData {
	if data == nil {
		return defaults
	}
	out := *data
	pick := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	pick(&out.MetaTitle, defaults.MetaTitle)
	pick(&out.MetaDescription, defaults.MetaDescription)
	pick(&out.MetaImage, defaults.MetaImage)
	pick(&out.OGTitle, defaults.OGTitle)
	pick(&out.OGDescription, defaults.OGDescription)
	pick(&out.OGImage, defaults.OGImage)
	return out
}
