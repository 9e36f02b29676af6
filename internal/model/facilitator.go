package model

import (
	"strings"
	"time"
)

// Session kinds and formats offered by facilitators. The values are the
// same strings stored in the database and shown in the UI filter chips.
const (
	SessionIndividual = "Индивидуальные"
	SessionGroup      = "Групповые"

	FormatOnline  = "Онлайн"
	FormatOffline = "Оффлайн"
)

// Contacts holds optional messenger links for a facilitator.
type Contacts struct {
	Telegram string `json:"telegram,omitempty" yaml:"telegram,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty" yaml:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Review is a testimonial shown on a facilitator page.
type Review struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Text  string `json:"text" yaml:"text"`
	Photo string `json:"photo" yaml:"photo"`
}

// Facilitator is a practitioner profile, the core browsable catalog entity.
// It mirrors a row of the `facilitators` table.
//
// Rating, SortOrder and CreatedAt are optional: the catalog engine treats a
// missing rating or sort order as 0 and a missing creation time as the Unix
// epoch.
type Facilitator struct {
	ID           string     `json:"id" yaml:"id"`
	Slug         string     `json:"slug,omitempty" yaml:"slug,omitempty"`
	Name         string     `json:"name" yaml:"name"`
	Email        string     `json:"-" yaml:"-"`
	PasswordHash string     `json:"-" yaml:"-"`
	City         string     `json:"city" yaml:"city"`
	Cities       string     `json:"cities,omitempty" yaml:"cities,omitempty"`
	Tagline      string     `json:"tagline" yaml:"tagline"`
	Description  string     `json:"description,omitempty" yaml:"description,omitempty"`
	ServiceTypes []string   `json:"service_types" yaml:"service_types"`
	Sessions     []string   `json:"sessions" yaml:"sessions"`
	Format       []string   `json:"format" yaml:"format"`
	Photo        string     `json:"photo,omitempty" yaml:"photo,omitempty"`
	VideoURL     string     `json:"video_url,omitempty" yaml:"video_url,omitempty"`
	Cost         string     `json:"cost,omitempty" yaml:"cost,omitempty"`
	Contacts     Contacts   `json:"contacts" yaml:"contacts"`
	Reviews      []Review   `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	TitlePrefix  string     `json:"title_prefix,omitempty" yaml:"title_prefix,omitempty"`
	CTAText      string     `json:"cta_text,omitempty" yaml:"cta_text,omitempty"`
	CTAHref      string     `json:"cta_href,omitempty" yaml:"cta_href,omitempty"`
	Rating       *float64   `json:"rating,omitempty" yaml:"rating,omitempty"`
	SortOrder    *int       `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
	Featured     bool       `json:"featured" yaml:"featured"`
	IsActive     bool       `json:"is_active" yaml:"is_active"`
	CreatedAt    *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" yaml:"-"`
}

// RatingValue returns the rating or 0 when absent.
func (f Facilitator) RatingValue() float64 {
	if f.Rating == nil {
		return 0
	}
	return *f.Rating
}

// SortOrderValue returns the custom sort position or 0 when absent.
func (f Facilitator) SortOrderValue() int {
	if f.SortOrder == nil {
		return 0
	}
	return *f.SortOrder
}

// CreatedAtValue returns the creation time or the Unix epoch when absent.
func (f Facilitator) CreatedAtValue() time.Time {
	if f.CreatedAt == nil {
		return time.Unix(0, 0).UTC()
	}
	return *f.CreatedAt
}

// PathKey is the identifier used in outward-facing links: the slug when
// present, the id otherwise.
func (f Facilitator) PathKey() string {
	if f.Slug != "" {
		return f.Slug
	}
	return f.ID
}

// SecondaryCities splits the comma-joined Cities field into trimmed,
// non-empty names.
func (f Facilitator) SecondaryCities() []string {
	if f.Cities == "" {
		return nil
	}
	parts := strings.Split(f.Cities, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
