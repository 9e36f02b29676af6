package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/iliyamo/energopraktiki/internal/config"
)

// localBucket is the in-process limiter used when Redis is unreachable.
// Limits are per instance only.
type localBucket struct {
	cfg   config.RateLimitConfig
	limit rate.Limit
	now   func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
	swept    time.Time
}

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

func newLocalBucket(cfg config.RateLimitConfig) *localBucket {
	refill := cfg.RefillTokens
	if refill < 1 {
		refill = 1
	}
	every := cfg.RefillInterval / time.Duration(refill)
	if every <= 0 {
		every = time.Second
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	return &localBucket{
		cfg:      cfg,
		limit:    rate.Every(every),
		now:      time.Now,
		visitors: map[string]*visitor{},
	}
}

func (b *localBucket) limiter(key string) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	if now.Sub(b.swept) > b.cfg.TTL {
		for k, v := range b.visitors {
			if now.Sub(v.seen) > b.cfg.TTL {
				delete(b.visitors, k)
			}
		}
		b.swept = now
	}
	v, ok := b.visitors[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(b.limit, b.cfg.Capacity)}
		b.visitors[key] = v
	}
	v.seen = now
	return v.lim
}

func (b *localBucket) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		lim := b.limiter(buildRateKey(b.cfg, c))
		r := lim.ReserveN(b.now(), 1)
		if delay := r.DelayFrom(b.now()); delay > 0 {
			r.CancelAt(b.now())
			secs := int(math.Ceil(delay.Seconds()))
			c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error":       "too_many_requests",
				"message":     "rate limit exceeded",
				"retry_after": secs,
			})
		}
		c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(b.cfg.Capacity))
		return next(c)
	}
}
