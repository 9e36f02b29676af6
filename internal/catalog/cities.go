package catalog

import (
	"strings"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// CityOptions builds the city dropdown: AllCities first, then every distinct
// primary and secondary city in first-seen order.
func CityOptions(list []model.Facilitator) []string {
	seen := make(map[string]struct{})
	out := []string{AllCities}
	add := func(c string) {
		c = strings.TrimSpace(c)
		if c == "" {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, f := range list {
		add(f.City)
		for _, c := range f.SecondaryCities() {
			add(c)
		}
	}
	return out
}
