package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/repository"
)

// The interfaces below are the slices of the repository layer each handler
// needs. The repository structs satisfy them; tests pass in-memory fakes.

type FacilitatorReader interface {
	ListActive(ctx context.Context) ([]model.Facilitator, error)
	FindActiveBySlug(ctx context.Context, slug string) ([]model.Facilitator, error)
}

type FacilitatorStore interface {
	FacilitatorReader
	ListAll(ctx context.Context) ([]model.Facilitator, error)
	GetByID(ctx context.Context, id string) (*model.Facilitator, error)
	GetByEmail(ctx context.Context, email string) (*model.Facilitator, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, f *model.Facilitator) error
	Update(ctx context.Context, f *model.Facilitator) error
	UpdateProfile(ctx context.Context, f *model.Facilitator) error
	SetActive(ctx context.Context, id string, active bool) error
	SetPassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}

type RetreatStore interface {
	ListActive(ctx context.Context) ([]model.Retreat, error)
	ListForHome(ctx context.Context) ([]model.Retreat, error)
	FindActiveBySlug(ctx context.Context, slug string) ([]model.Retreat, error)
	ListAll(ctx context.Context) ([]model.Retreat, error)
	GetByID(ctx context.Context, id string) (*model.Retreat, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, r *model.Retreat) error
	Update(ctx context.Context, r *model.Retreat) error
	Delete(ctx context.Context, id string) error
}

// FAQStore is the question list shown on facilitator pages.
type FAQStore interface {
	ListActive(ctx context.Context) ([]model.FAQItem, error)
	ListAll(ctx context.Context) ([]model.FAQItem, error)
	GetByID(ctx context.Context, id string) (*model.FAQItem, error)
	Create(ctx context.Context, it *model.FAQItem) error
	Update(ctx context.Context, it *model.FAQItem) error
	SetActive(ctx context.Context, id string, active bool) error
	Reorder(ctx context.Context, ids []string) error
	Delete(ctx context.Context, id string) error
}

// TestimonialStore is the home page quote carousel.
type TestimonialStore interface {
	ListActive(ctx context.Context) ([]model.Testimonial, error)
	ListAll(ctx context.Context) ([]model.Testimonial, error)
	GetByID(ctx context.Context, id string) (*model.Testimonial, error)
	Create(ctx context.Context, t *model.Testimonial) error
	Update(ctx context.Context, t *model.Testimonial) error
	Reorder(ctx context.Context, ids []string) error
	Delete(ctx context.Context, id string) error
}

type BlogStore interface {
	ListActive(ctx context.Context, q repository.BlogQuery) ([]model.BlogPost, error)
	FindActiveBySlug(ctx context.Context, slug string) ([]model.BlogPost, error)
	ListAll(ctx context.Context) ([]model.BlogPost, error)
	GetByID(ctx context.Context, id string) (*model.BlogPost, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, p *model.BlogPost) error
	Update(ctx context.Context, p *model.BlogPost) error
	Delete(ctx context.Context, id string) error
}

type ServiceTypeStore interface {
	List(ctx context.Context) ([]model.ServiceType, error)
	Create(ctx context.Context, name string) (model.ServiceType, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type SettingsStore interface {
	GetSortMethod(ctx context.Context) (model.SortMethod, error)
	SetSortMethod(ctx context.Context, m model.SortMethod) error
	GetBlock(ctx context.Context, name string) (*model.SiteBlock, error)
	PutBlock(ctx context.Context, name string, payload json.RawMessage) error
}

type SEOStore interface {
	Find(ctx context.Context, pageType, itemID string) (*model.SEOData, error)
	Upsert(ctx context.Context, pageType, itemID string, d model.SEOData) error
}

// SEOLoader is the cached read path in front of SEOStore.
type SEOLoader interface {
	Load(ctx context.Context, pageType, itemID string) *model.SEOData
	Refresh(ctx context.Context, pageType, itemID string) *model.SEOData
}

type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	GetByID(ctx context.Context, id string) (*model.Admin, error)
	UpdateCredentials(ctx context.Context, id, email, hash string) error
}

type TokenStore interface {
	StoreRefresh(ctx context.Context, sub repository.Subject, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (repository.Subject, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAll(ctx context.Context, sub repository.Subject) error
}

type SubscriberStore interface {
	Subscribe(ctx context.Context, email string) (*model.Subscriber, error)
	List(ctx context.Context) ([]model.Subscriber, error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher sends domain events to the broker.
type EventPublisher interface {
	PublishNewsletterSubscribed(ctx context.Context, email, source string) error
}
