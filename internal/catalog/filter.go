// Package catalog implements the facilitator listing pipeline: predicate
// filtering, featured-first placement and truncation to a display count.
//
// Everything here is pure. Inputs are never mutated and the results are
// freshly allocated slices.
package catalog

import (
	"strings"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// Sentinels sent by the UI dropdowns meaning "do not filter".
const (
	AllCities   = "Все города"
	AllServices = "Все услуги"
)

// Predicates is the user's filter selection. Zero values disable the
// corresponding predicate.
type Predicates struct {
	// Query is matched case-insensitively against name, tagline and city.
	Query string
	// City must equal the facilitator's city unless empty or AllCities.
	City string
	// ServiceType must be contained in the facilitator's service types
	// unless empty or AllServices.
	ServiceType string
	// Sessions and Formats match when they share at least one element with
	// the facilitator's set. An empty selection matches everything.
	Sessions []string
	Formats  []string

	// IncludeSecondaryCities makes the city predicate also accept matches in
	// the comma-joined Cities list. The home page block uses it.
	IncludeSecondaryCities bool
}

// Filter returns the facilitators that are featured or satisfy every
// predicate in p, keeping input order.
func Filter(list []model.Facilitator, p Predicates) []model.Facilitator {
	q := strings.ToLower(strings.TrimSpace(p.Query))
	out := make([]model.Facilitator, 0, len(list))
	for _, f := range list {
		if f.Featured || p.match(f, q) {
			out = append(out, f)
		}
	}
	return out
}

func (p Predicates) match(f model.Facilitator, q string) bool {
	if q != "" && !containsFold(q, f.Name, f.Tagline, f.City) {
		return false
	}
	if p.City != "" && p.City != AllCities && !p.cityMatches(f) {
		return false
	}
	if p.ServiceType != "" && p.ServiceType != AllServices && !contains(f.ServiceTypes, p.ServiceType) {
		return false
	}
	if len(p.Sessions) > 0 && !overlaps(f.Sessions, p.Sessions) {
		return false
	}
	if len(p.Formats) > 0 && !overlaps(f.Format, p.Formats) {
		return false
	}
	return true
}

func (p Predicates) cityMatches(f model.Facilitator) bool {
	if f.City == p.City {
		return true
	}
	if !p.IncludeSecondaryCities {
		return false
	}
	return contains(f.SecondaryCities(), p.City)
}

// containsFold reports whether any field contains the already lowercased q.
func containsFold(q string, fields ...string) bool {
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func overlaps(have, want []string) bool {
	for _, w := range want {
		if contains(have, w) {
			return true
		}
	}
	return false
}
