package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/logging"
)

// requestTimeout bounds every store round trip made by a handler.
const requestTimeout = 5 * time.Second

func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

func logger(c echo.Context) *slog.Logger {
	return logging.FromContext(c.Request().Context())
}

// splitList parses a comma separated query value into trimmed, non-empty
// items.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// queryInt returns the integer query parameter or def when it is missing
// or malformed.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Purger drops cached public responses after a write so the public site
// reflects edits immediately. A nil Purger does nothing.
type Purger func(ctx context.Context) error

func (p Purger) purge(c echo.Context) {
	if p == nil {
		return
	}
	if err := p(context.WithoutCancel(c.Request().Context())); err != nil {
		logger(c).Warn("cache purge failed", slog.Any("err", err))
	}
}
