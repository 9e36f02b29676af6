package model

import "time"

// BlogPost is an article in the blog section.
type BlogPost struct {
	ID           string     `json:"id" yaml:"id"`
	Slug         string     `json:"slug" yaml:"slug"`
	Title        string     `json:"title" yaml:"title"`
	Excerpt      string     `json:"excerpt" yaml:"excerpt"`
	Image        string     `json:"image,omitempty" yaml:"image,omitempty"`
	Category     string     `json:"category" yaml:"category"`
	DateText     string     `json:"date_text" yaml:"date_text"`
	ReadingTime  string     `json:"reading_time,omitempty" yaml:"reading_time,omitempty"`
	Content      string     `json:"content,omitempty" yaml:"content,omitempty"`
	ContentHTML  string     `json:"content_html,omitempty" yaml:"-"`
	IsActive     bool       `json:"is_active" yaml:"is_active"`
	DisplayOrder int        `json:"display_order" yaml:"display_order"`
	CreatedAt    *time.Time `json:"created_at,omitempty" yaml:"-"`
}
