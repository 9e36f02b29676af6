package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/energopraktiki/internal/fallback"
	"github.com/iliyamo/energopraktiki/internal/model"
)

var errDown = errors.New("connection refused")

func facilitators(remote func(context.Context, string) ([]model.Facilitator, error)) Resolver[model.Facilitator] {
	return Resolver[model.Facilitator]{Remote: remote, Fallback: fallback.FacilitatorByID, Kind: "facilitator"}
}

func TestResolveRemoteHit(t *testing.T) {
	r := facilitators(func(_ context.Context, slug string) ([]model.Facilitator, error) {
		return []model.Facilitator{{ID: "uuid-1", Slug: slug, Name: "Remote"}}, nil
	})
	res := r.Resolve(context.Background(), "alina-sokolova")
	assert.True(t, res.Found)
	assert.False(t, res.FromFallback)
	assert.Equal(t, "Remote", res.Value.Name)
}

func TestResolveDuplicateSlugTakesFirst(t *testing.T) {
	r := facilitators(func(context.Context, string) ([]model.Facilitator, error) {
		return []model.Facilitator{{ID: "newest"}, {ID: "older"}}, nil
	})
	res := r.Resolve(context.Background(), "dup")
	assert.True(t, res.Found)
	assert.Equal(t, "newest", res.Value.ID)
}

func TestResolveRemoteFailureUsesFallback(t *testing.T) {
	r := facilitators(func(context.Context, string) ([]model.Facilitator, error) {
		return nil, errDown
	})
	res := r.Resolve(context.Background(), "2")
	assert.True(t, res.Found)
	assert.True(t, res.FromFallback)
	assert.Equal(t, "Марк Иванов", res.Value.Name)
}

func TestResolveEmptyRemoteUsesFallback(t *testing.T) {
	r := facilitators(func(context.Context, string) ([]model.Facilitator, error) {
		return nil, nil
	})
	res := r.Resolve(context.Background(), "4")
	assert.True(t, res.Found)
	assert.Equal(t, "Роман Север", res.Value.Name)
}

func TestResolveNotFound(t *testing.T) {
	r := facilitators(func(context.Context, string) ([]model.Facilitator, error) {
		return nil, errDown
	})
	assert.NotPanics(t, func() {
		res := r.Resolve(context.Background(), "no-such-person")
		assert.False(t, res.Found)
		assert.Equal(t, model.Facilitator{}, res.Value)
	})
}

func TestResolveEmptyParam(t *testing.T) {
	called := false
	r := facilitators(func(context.Context, string) ([]model.Facilitator, error) {
		called = true
		return nil, nil
	})
	assert.False(t, r.Resolve(context.Background(), "").Found)
	assert.False(t, called)
}

func TestResolveWithoutRemote(t *testing.T) {
	r := Resolver[model.Retreat]{Fallback: fallback.RetreatByIDOrSlug}
	res := r.Resolve(context.Background(), "r2")
	assert.True(t, res.Found)
	assert.Equal(t, "Москва", res.Value.City)
}
