// Package resolver turns a route parameter into exactly one entity or a
// well-defined not-found result.
package resolver

import (
	"context"
	"log/slog"

	"github.com/iliyamo/energopraktiki/internal/logging"
)

// Result is the outcome of Resolve. When Found is false Value is the zero
// value and the caller renders its not-found view.
type Result[T any] struct {
	Value        T
	Found        bool
	FromFallback bool
}

// Resolver looks an entity up by slug in the remote store and falls back to
// the bundled dataset when the store errors or returns nothing.
type Resolver[T any] struct {
	// Remote returns every row whose slug equals the parameter, most
	// recently created first. The first row wins.
	Remote func(ctx context.Context, slug string) ([]T, error)
	// Fallback looks the parameter up in the bundled data, usually by id so
	// links created before slugs existed still resolve.
	Fallback func(param string) (T, bool)
	// Kind names the entity in log lines.
	Kind string
}

// Resolve never returns an error; remote failures are logged and
// compensated by the fallback lookup.
func (r Resolver[T]) Resolve(ctx context.Context, param string) Result[T] {
	if param == "" {
		return Result[T]{}
	}
	log := logging.FromContext(ctx)

	if r.Remote != nil {
		rows, err := r.Remote(ctx, param)
		switch {
		case err != nil:
			log.Warn("remote lookup failed, using bundled data",
				slog.String("kind", r.Kind), slog.String("param", param), slog.Any("err", err))
		case len(rows) > 0:
			if len(rows) > 1 {
				log.Warn("duplicate slug, taking most recent",
					slog.String("kind", r.Kind), slog.String("slug", param), slog.Int("rows", len(rows)))
			}
			return Result[T]{Value: rows[0], Found: true}
		}
	}

	if r.Fallback != nil {
		if v, ok := r.Fallback(param); ok {
			return Result[T]{Value: v, Found: true, FromFallback: true}
		}
	}
	return Result[T]{}
}
