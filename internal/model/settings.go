package model

import (
	"encoding/json"
	"time"
)

// SortMethod is the site-wide strategy for ordering non-featured
// facilitators. It is stored as a plain string in `facilitators_sort_settings`
// so unknown values survive round trips; the catalog engine passes the list
// through unchanged for them.
type SortMethod string

const (
	SortRandom        SortMethod = "random"
	SortRating        SortMethod = "rating"
	SortCreatedAtDesc SortMethod = "created_at_desc"
	SortCreatedAtAsc  SortMethod = "created_at_asc"
	SortCustomOrder   SortMethod = "custom_order"
)

// DefaultSortMethod is used when no settings row exists.
const DefaultSortMethod = SortRandom

// Valid reports whether m is one of the known strategies.
func (m SortMethod) Valid() bool {
	switch m {
	case SortRandom, SortRating, SortCreatedAtDesc, SortCreatedAtAsc, SortCustomOrder:
		return true
	}
	return false
}

// SiteBlock is a singleton JSON content block (hero, footer, contacts...).
// Payload is validated against the block's schema before it is stored.
type SiteBlock struct {
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}
