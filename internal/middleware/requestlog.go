package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/logging"
)

// TraceHeader carries the request trace id in both directions.
const TraceHeader = "X-Trace-ID"

// RequestLogger logs the start and end of every request with a trace id.
// An incoming X-Trace-ID is reused when it is a valid UUID. The request
// scoped logger is put in the request context for handlers and services.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			traceID := req.Header.Get(TraceHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.NewString()
			}
			c.Response().Header().Set(TraceHeader, traceID)

			reqLog := base.With(slog.String("trace_id", traceID))
			c.SetRequest(req.WithContext(logging.WithLogger(req.Context(), reqLog)))

			httpLog := reqLog.With(
				slog.String("http_method", req.Method),
				slog.String("http_path", req.URL.Path),
				slog.String("remote_addr", c.RealIP()),
			)
			start := time.Now()
			httpLog.Debug("request started")

			err := next(c)
			if err != nil {
				// let echo write the error response so the status is final
				c.Error(err)
			}

			status := c.Response().Status
			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			}
			httpLog.Log(req.Context(), level, "request finished",
				slog.Int("status_code", status),
				slog.Int64("bytes_written", c.Response().Size),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return nil
		}
	}
}
