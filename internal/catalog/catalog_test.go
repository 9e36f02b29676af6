package catalog

import (
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/energopraktiki/internal/model"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrT(v time.Time) *time.Time {
	return &v
}

func ids(list []model.Facilitator) []string {
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = f.ID
	}
	return out
}

func sample() []model.Facilitator {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Facilitator{
		{ID: "1", Name: "Алина Соколова", City: "Москва", Cities: "Тула, Калуга", Tagline: "Помогаю раскрыть сердце",
			ServiceTypes: []string{"st-kundalini"}, Sessions: []string{model.SessionIndividual, model.SessionGroup},
			Format: []string{model.FormatOnline, model.FormatOffline}, Rating: ptrF(4.9), SortOrder: ptrI(3), CreatedAt: ptrT(base)},
		{ID: "2", Name: "Марк Иванов", City: "Санкт-Петербург", Tagline: "Мягкая проводимость энергии",
			ServiceTypes: []string{"st-breath"}, Sessions: []string{model.SessionIndividual},
			Format: []string{model.FormatOnline}, Rating: ptrF(4.5), SortOrder: ptrI(1), CreatedAt: ptrT(base.Add(48 * time.Hour))},
		{ID: "3", Name: "Елена Мирная", City: "Казань", Tagline: "Путь к ясности через дыхание",
			ServiceTypes: []string{"st-breath", "st-kundalini"}, Sessions: []string{model.SessionGroup},
			Format: []string{model.FormatOnline}, Featured: true, SortOrder: ptrI(9), CreatedAt: ptrT(base.Add(24 * time.Hour))},
		{ID: "4", Name: "Роман Север", City: "Новосибирск", Tagline: "Осознанность тела",
			Sessions: []string{model.SessionIndividual, model.SessionGroup}, Format: []string{model.FormatOffline}},
		{ID: "5", Name: "Ольга Тихая", City: "Москва", Tagline: "Тишина ума",
			Format: []string{model.FormatOffline}, Featured: true, SortOrder: ptrI(2), Rating: ptrF(3)},
	}
}

func TestFilterPredicates(t *testing.T) {
	list := sample()
	cases := []struct {
		name string
		p    Predicates
		want []string
	}{
		{"empty selection keeps all", Predicates{}, []string{"1", "2", "3", "4", "5"}},
		{"all cities sentinel", Predicates{City: AllCities, ServiceType: AllServices}, []string{"1", "2", "3", "4", "5"}},
		{"city exact", Predicates{City: "Москва"}, []string{"1", "3", "5"}},
		{"secondary city ignored by default", Predicates{City: "Тула"}, []string{"3", "5"}},
		{"secondary city on home", Predicates{City: "Тула", IncludeSecondaryCities: true}, []string{"1", "3", "5"}},
		{"query on tagline case-insensitive", Predicates{Query: "ЭНЕРГИИ"}, []string{"2", "3", "5"}},
		{"query on city", Predicates{Query: "новосиб"}, []string{"3", "4", "5"}},
		{"service type", Predicates{ServiceType: "st-kundalini"}, []string{"1", "3", "5"}},
		{"sessions overlap", Predicates{Sessions: []string{model.SessionGroup}}, []string{"1", "3", "4", "5"}},
		{"formats either", Predicates{Formats: []string{model.FormatOnline, model.FormatOffline}}, []string{"1", "2", "3", "4", "5"}},
		{"and-combined", Predicates{City: "Москва", Formats: []string{model.FormatOnline}, Sessions: []string{model.SessionIndividual}}, []string{"1", "3", "5"}},
		{"nothing matches but featured", Predicates{Query: "zzz"}, []string{"3", "5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(list, tc.p))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlaceKeepsExactlyTheFilteredSet(t *testing.T) {
	list := sample()
	preds := []Predicates{{}, {City: "Москва"}, {Query: "zzz"}, {Formats: []string{model.FormatOnline}}}
	methods := []model.SortMethod{model.SortRandom, model.SortRating, model.SortCreatedAtDesc,
		model.SortCreatedAtAsc, model.SortCustomOrder, "bogus"}
	pl := Placer{Rand: rand.New(rand.NewPCG(1, 2))}

	for _, p := range preds {
		filtered := ids(Filter(list, p))
		for _, m := range methods {
			got := ids(pl.Place(Filter(list, p), m))
			sorted := append([]string(nil), got...)
			sort.Strings(sorted)
			want := append([]string(nil), filtered...)
			sort.Strings(want)
			assert.Equal(t, want, sorted, "method %s", m)
		}
	}
}

func TestPlaceFeaturedFirst(t *testing.T) {
	pl := Placer{Rand: rand.New(rand.NewPCG(7, 7))}
	methods := []model.SortMethod{model.SortRandom, model.SortRating, model.SortCreatedAtDesc,
		model.SortCreatedAtAsc, model.SortCustomOrder, "unknown"}
	for _, m := range methods {
		out := pl.Place(sample(), m)
		lastFeatured, firstRegular := -1, len(out)
		for i, f := range out {
			if f.Featured {
				lastFeatured = i
			} else if i < firstRegular {
				firstRegular = i
			}
		}
		assert.Less(t, lastFeatured, firstRegular, "method %s", m)
	}
}

func TestPlaceCustomOrder(t *testing.T) {
	list := []model.Facilitator{
		{ID: "a", SortOrder: ptrI(3)},
		{ID: "b", SortOrder: ptrI(1)},
		{ID: "c", SortOrder: ptrI(2)},
	}
	got := ids(Placer{}.Place(list, model.SortCustomOrder))
	assert.Equal(t, []string{"b", "c", "a"}, got)

	// featured partition is sorted too, and never mixes with regular items
	got = ids(Placer{}.Place(sample(), model.SortCustomOrder))
	assert.Equal(t, []string{"5", "3", "4", "2", "1"}, got)
}

func TestPlaceRatingDescMissingAsZero(t *testing.T) {
	list := []model.Facilitator{
		{ID: "two", Rating: ptrF(2)},
		{ID: "five", Rating: ptrF(5)},
		{ID: "none"},
	}
	got := ids(Placer{}.Place(list, model.SortRating))
	assert.Equal(t, []string{"five", "two", "none"}, got)
}

func TestPlaceCreatedAt(t *testing.T) {
	got := ids(Placer{}.Place(sample(), model.SortCreatedAtDesc))
	assert.Equal(t, []string{"3", "5", "2", "1", "4"}, got)

	got = ids(Placer{}.Place(sample(), model.SortCreatedAtAsc))
	assert.Equal(t, []string{"3", "5", "4", "1", "2"}, got)
}

func TestPlaceUnknownMethodPassesThrough(t *testing.T) {
	got := ids(Placer{}.Place(sample(), "by_name"))
	assert.Equal(t, []string{"3", "5", "1", "2", "4"}, got)
}

func TestPlaceDoesNotMutateInput(t *testing.T) {
	list := sample()
	before := ids(list)
	_ = Placer{Rand: rand.New(rand.NewPCG(3, 4))}.Place(list, model.SortRandom)
	_ = Placer{}.Place(list, model.SortRating)
	assert.Equal(t, before, ids(list))
}

func TestPlaceRandomRerolls(t *testing.T) {
	list := make([]model.Facilitator, 12)
	for i := range list {
		list[i] = model.Facilitator{ID: string(rune('a' + i))}
	}
	pl := Placer{Rand: rand.New(rand.NewPCG(42, 42))}
	first := ids(pl.Place(list, model.SortRandom))
	differs := false
	for i := 0; i < 5 && !differs; i++ {
		differs = !cmp.Equal(first, ids(pl.Place(list, model.SortRandom)))
	}
	assert.True(t, differs, "random placement should reshuffle between calls")
}

func TestParseSortMethod(t *testing.T) {
	m, err := ParseSortMethod(" rating ")
	require.NoError(t, err)
	assert.Equal(t, model.SortRating, m)

	_, err = ParseSortMethod("alphabetical")
	assert.ErrorIs(t, err, ErrUnknownSortMethod)
}

func TestTruncate(t *testing.T) {
	list := sample()
	assert.Len(t, Truncate(list, 2), 2)
	assert.Len(t, Truncate(list, 0), 5)
	assert.Len(t, Truncate(list, -1), 5)
	assert.Len(t, Truncate(list, 50), 5)
}

func TestCityOptions(t *testing.T) {
	got := CityOptions(sample())
	want := []string{AllCities, "Москва", "Тула", "Калуга", "Санкт-Петербург", "Казань", "Новосибирск"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("CityOptions mismatch (-want +got):\n%s", diff)
	}
}
