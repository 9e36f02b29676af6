package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/energopraktiki/internal/model"
)

func TestFacilitatorsBundle(t *testing.T) {
	list := Facilitators()
	require.Len(t, list, 4)
	for _, f := range list {
		assert.True(t, f.IsActive)
		assert.False(t, f.Featured)
		require.NotNil(t, f.Rating)
		assert.InDelta(t, 4.9, *f.Rating, 0.0001)
		assert.Equal(t, "от 5000 рублей", f.Cost)
		assert.Equal(t, "Записаться", f.CTAText)
		assert.Len(t, f.Reviews, 3)
	}
	assert.Equal(t, "Алина Соколова", list[0].Name)
	assert.Equal(t, "mailto:alina@example.com", list[0].CTAHref)
}

func TestFacilitatorByID(t *testing.T) {
	f, ok := FacilitatorByID("2")
	require.True(t, ok)
	assert.Equal(t, "Марк Иванов", f.Name)
	assert.Equal(t, []string{model.SessionIndividual}, f.Sessions)

	_, ok = FacilitatorByID("99")
	assert.False(t, ok)
}

func TestCopiesAreIndependent(t *testing.T) {
	a := Facilitators()
	a[0].Format[0] = "changed"
	*a[0].Rating = 1
	b := Facilitators()
	assert.Equal(t, model.FormatOnline, b[0].Format[0])
	assert.InDelta(t, 4.9, *b[0].Rating, 0.0001)
}

func TestRetreatLookup(t *testing.T) {
	require.Len(t, Retreats(), 3)

	r, ok := RetreatByIDOrSlug("r3")
	require.True(t, ok)
	assert.Equal(t, 4500, r.PriceFrom)

	r, ok = RetreatByIDOrSlug("probuzhdenie-i-tishina")
	require.True(t, ok)
	assert.Equal(t, "r1", r.ID)

	_, ok = RetreatByIDOrSlug("r9")
	assert.False(t, ok)
}

func TestPosts(t *testing.T) {
	posts := Posts()
	require.NotEmpty(t, posts)
	p, ok := PostBySlug(posts[0].Slug)
	require.True(t, ok)
	assert.Equal(t, posts[0].Title, p.Title)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := parse([]byte("facilitators: {not: [a list"))
	assert.Error(t, err)
}

func TestTestimonialsBundle(t *testing.T) {
	list := Testimonials()
	require.Len(t, list, 4)
	assert.Equal(t, "Мария", list[0].AuthorName)
	for i, tm := range list {
		assert.True(t, tm.IsActive)
		assert.Equal(t, i+1, tm.DisplayOrder)
	}

	list[0].AuthorName = "changed"
	assert.Equal(t, "Мария", Testimonials()[0].AuthorName)
}
