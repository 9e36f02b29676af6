package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/energopraktiki/internal/repository"
	"github.com/iliyamo/energopraktiki/internal/slug"
)

var errInvalidSlug = errors.New("slug must be lowercase latin letters, digits and inner hyphens")

type slugExists func(ctx context.Context, slug, excludeID string) (bool, error)

// slugRequest describes one slug decision for a create (ID empty) or an
// update.
type slugRequest struct {
	Kind     string // fallback prefix: facilitator, retreat, post
	Provided string // operator supplied, may be empty
	Current  string // slug stored on the row being updated
	Source   string // name or title to generate from
	ID       string
}

// assignSlug picks the slug to store. A provided slug must be valid; an
// empty one keeps the current slug or is generated from Source, falling
// back to "<kind>-<unixmillis>". A clash on create, or with a generated
// slug, gets "-<unixmillis>" appended; an explicitly provided slug that
// clashes on update is rejected with ErrSlugTaken.
func assignSlug(ctx context.Context, exists slugExists, r slugRequest, now time.Time) (string, error) {
	provided := strings.TrimSpace(r.Provided)
	if provided != "" && !slug.Validate(provided) {
		return "", errInvalidSlug
	}
	s := provided
	if s == "" {
		s = r.Current
	}
	if s != "" && s == r.Current {
		return s, nil
	}
	if s == "" {
		s = slug.Generate(r.Source)
	}
	if s == "" {
		s = fmt.Sprintf("%s-%d", r.Kind, now.UnixMilli())
	}
	taken, err := exists(ctx, s, r.ID)
	if err != nil {
		return "", err
	}
	if !taken {
		return s, nil
	}
	if r.ID != "" && provided != "" {
		return "", repository.ErrSlugTaken
	}
	return fmt.Sprintf("%s-%d", s, now.UnixMilli()), nil
}
