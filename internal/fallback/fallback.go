// Package fallback exposes the catalog bundled into the binary. Handlers
// serve it when the database is unreachable or has no matching row, so old
// links such as /facilitators/2 keep working.
package fallback

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/energopraktiki/internal/model"
)

//go:embed data.yaml
var raw []byte

type detailDefaults struct {
	Rating      float64        `yaml:"rating"`
	Cost        string         `yaml:"cost"`
	VideoURL    string         `yaml:"video_url"`
	TitlePrefix string         `yaml:"title_prefix"`
	CTAText     string         `yaml:"cta_text"`
	Reviews     []model.Review `yaml:"reviews"`
}

type dataset struct {
	Defaults     detailDefaults      `yaml:"detail_defaults"`
	Facilitators []model.Facilitator `yaml:"facilitators"`
	Retreats     []model.Retreat     `yaml:"retreats"`
	Posts        []model.BlogPost    `yaml:"posts"`
	Testimonials []model.Testimonial `yaml:"testimonials"`
}

var (
	once sync.Once
	data dataset
)

func load() dataset {
	once.Do(func() {
		d, err := parse(raw)
		if err != nil {
			// the file ships with the binary; a parse error is a build defect
			panic(err)
		}
		data = d
	})
	return data
}

func parse(b []byte) (dataset, error) {
	var d dataset
	if err := yaml.Unmarshal(b, &d); err != nil {
		return dataset{}, fmt.Errorf("fallback: parse data.yaml: %w", err)
	}
	for i := range d.Facilitators {
		f := &d.Facilitators[i]
		f.IsActive = true
		f.Featured = false
		rating := d.Defaults.Rating
		f.Rating = &rating
		f.Cost = d.Defaults.Cost
		f.VideoURL = d.Defaults.VideoURL
		f.TitlePrefix = d.Defaults.TitlePrefix
		f.CTAText = d.Defaults.CTAText
		f.CTAHref = f.Contacts.Email
		if f.CTAHref == "" {
			f.CTAHref = "/contacts"
		}
		f.Reviews = d.Defaults.Reviews
	}
	for i := range d.Retreats {
		d.Retreats[i].IsActive = true
	}
	for i := range d.Posts {
		d.Posts[i].IsActive = true
	}
	for i := range d.Testimonials {
		d.Testimonials[i].IsActive = true
	}
	return d, nil
}

// Facilitators returns a fresh copy of the bundled facilitators.
func Facilitators() []model.Facilitator {
	src := load().Facilitators
	out := make([]model.Facilitator, len(src))
	for i, f := range src {
		out[i] = cloneFacilitator(f)
	}
	return out
}

// FacilitatorByID looks a bundled facilitator up by id.
func FacilitatorByID(id string) (model.Facilitator, bool) {
	for _, f := range load().Facilitators {
		if f.ID == id {
			return cloneFacilitator(f), true
		}
	}
	return model.Facilitator{}, false
}

// Retreats returns a fresh copy of the bundled retreats.
func Retreats() []model.Retreat {
	src := load().Retreats
	out := make([]model.Retreat, len(src))
	for i, r := range src {
		r.Format = slices.Clone(r.Format)
		out[i] = r
	}
	return out
}

// RetreatByIDOrSlug matches either field.
func RetreatByIDOrSlug(key string) (model.Retreat, bool) {
	for _, r := range Retreats() {
		if r.ID == key || (r.Slug != "" && r.Slug == key) {
			return r, true
		}
	}
	return model.Retreat{}, false
}

// Posts returns a fresh copy of the bundled blog posts.
func Posts() []model.BlogPost {
	return slices.Clone(load().Posts)
}

// PostBySlug matches slug or id.
func PostBySlug(key string) (model.BlogPost, bool) {
	for _, p := range load().Posts {
		if p.Slug == key || p.ID == key {
			return p, true
		}
	}
	return model.BlogPost{}, false
}

// Testimonials returns a fresh copy of the home page quotes.
func Testimonials() []model.Testimonial {
	return slices.Clone(load().Testimonials)
}

func cloneFacilitator(f model.Facilitator) model.Facilitator {
	f.Sessions = slices.Clone(f.Sessions)
	f.Format = slices.Clone(f.Format)
	f.ServiceTypes = slices.Clone(f.ServiceTypes)
	f.Reviews = slices.Clone(f.Reviews)
	if f.Rating != nil {
		r := *f.Rating
		f.Rating = &r
	}
	return f
}
