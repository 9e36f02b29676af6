package catalog

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/iliyamo/energopraktiki/internal/model"
)

// ErrUnknownSortMethod is returned by ParseSortMethod for values outside the
// known strategies.
var ErrUnknownSortMethod = errors.New("unknown sort method")

// ParseSortMethod validates an operator-supplied strategy name.
func ParseSortMethod(s string) (model.SortMethod, error) {
	m := model.SortMethod(strings.TrimSpace(s))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSortMethod, s)
	}
	return m, nil
}

// Placer orders facilitators for display. The zero value is ready to use and
// shuffles with the process-wide random source.
type Placer struct {
	// Rand, when set, drives the random strategy. Tests inject a seeded
	// source here.
	Rand *rand.Rand
}

// Place returns list reordered by method with every featured facilitator
// ahead of every regular one. Featured entries keep their input order
// except under custom_order, where both partitions are sorted by sort order.
// Unknown methods leave both partitions in input order.
//
// The random strategy draws a new permutation on every call.
func (p Placer) Place(list []model.Facilitator, method model.SortMethod) []model.Facilitator {
	featured := make([]model.Facilitator, 0, len(list))
	regular := make([]model.Facilitator, 0, len(list))
	for _, f := range list {
		if f.Featured {
			featured = append(featured, f)
		} else {
			regular = append(regular, f)
		}
	}

	switch method {
	case model.SortRandom:
		p.shuffle(regular)
	case model.SortRating:
		sort.SliceStable(regular, func(i, j int) bool {
			return regular[i].RatingValue() > regular[j].RatingValue()
		})
	case model.SortCreatedAtDesc:
		sort.SliceStable(regular, func(i, j int) bool {
			return regular[i].CreatedAtValue().After(regular[j].CreatedAtValue())
		})
	case model.SortCreatedAtAsc:
		sort.SliceStable(regular, func(i, j int) bool {
			return regular[i].CreatedAtValue().Before(regular[j].CreatedAtValue())
		})
	case model.SortCustomOrder:
		byCustomOrder(featured)
		byCustomOrder(regular)
	}

	return append(featured, regular...)
}

func (p Placer) shuffle(list []model.Facilitator) {
	swap := func(i, j int) { list[i], list[j] = list[j], list[i] }
	if p.Rand != nil {
		p.Rand.Shuffle(len(list), swap)
		return
	}
	rand.Shuffle(len(list), swap)
}

func byCustomOrder(list []model.Facilitator) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SortOrderValue() < list[j].SortOrderValue()
	})
}

// Truncate limits list to n entries. n <= 0 means no limit.
func Truncate(list []model.Facilitator, n int) []model.Facilitator {
	if n <= 0 || n >= len(list) {
		return list
	}
	return list[:n]
}
