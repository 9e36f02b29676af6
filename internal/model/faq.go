package model

import "time"

// FAQItem is a question shown on facilitator pages, ordered by
// DisplayOrder.
type FAQItem struct {
	ID           string     `json:"id"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	DisplayOrder int        `json:"display_order"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Testimonial is a client quote in the home page carousel.
type Testimonial struct {
	ID           string `json:"id" yaml:"id"`
	AuthorName   string `json:"author_name" yaml:"author_name"`
	Text         string `json:"text" yaml:"text"`
	Photo        string `json:"photo,omitempty" yaml:"photo,omitempty"`
	DisplayOrder int    `json:"display_order" yaml:"display_order"`
	IsActive     bool   `json:"is_active" yaml:"-"`
}
