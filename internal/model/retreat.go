package model

import "time"

// Retreat is a multi-day event listed in the catalog. It has no featured
// flag; ordering is by DisplayOrder ascending.
type Retreat struct {
	ID           string     `json:"id" yaml:"id"`
	Slug         string     `json:"slug,omitempty" yaml:"slug,omitempty"`
	Title        string     `json:"title" yaml:"title"`
	City         string     `json:"city" yaml:"city"`
	DateText     string     `json:"date_text" yaml:"date_text"`
	Image        string     `json:"image,omitempty" yaml:"image,omitempty"`
	Description  string     `json:"description,omitempty" yaml:"description,omitempty"`
	Content      string     `json:"content,omitempty" yaml:"content,omitempty"`
	ContentHTML  string     `json:"content_html,omitempty" yaml:"-"`
	Format       []string   `json:"format" yaml:"format"`
	PriceFrom    int        `json:"price_from" yaml:"price_from"`
	Link         string     `json:"link,omitempty" yaml:"link,omitempty"`
	IsActive     bool       `json:"is_active" yaml:"is_active"`
	ShowOnHome   bool       `json:"show_on_home" yaml:"show_on_home"`
	DisplayOrder int        `json:"display_order" yaml:"display_order"`
	CreatedAt    *time.Time `json:"created_at,omitempty" yaml:"-"`
}

// PathKey returns the slug when present, the id otherwise.
func (r Retreat) PathKey() string {
	if r.Slug != "" {
		return r.Slug
	}
	return r.ID
}
