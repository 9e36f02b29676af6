package handler

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/repository"
)

var errDown = errors.New("store unavailable")

type fakeFacilitators struct {
	mu    sync.Mutex
	rows  []model.Facilitator
	fail  bool
	calls int
}

func (s *fakeFacilitators) ListActive(context.Context) ([]model.Facilitator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail {
		return nil, errDown
	}
	var out []model.Facilitator
	for _, f := range s.rows {
		if f.IsActive {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeFacilitators) FindActiveBySlug(_ context.Context, slug string) ([]model.Facilitator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errDown
	}
	var out []model.Facilitator
	for _, f := range s.rows {
		if f.IsActive && f.Slug == slug {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeFacilitators) ListAll(context.Context) ([]model.Facilitator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Facilitator(nil), s.rows...), nil
}

func (s *fakeFacilitators) find(id string) int {
	for i, f := range s.rows {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (s *fakeFacilitators) GetByID(_ context.Context, id string) (*model.Facilitator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.find(id); i >= 0 {
		f := s.rows[i]
		return &f, nil
	}
	return nil, repository.ErrFacilitatorNotFound
}

func (s *fakeFacilitators) GetByEmail(_ context.Context, email string) (*model.Facilitator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.rows {
		if f.Email == email {
			return &f, nil
		}
	}
	return nil, repository.ErrFacilitatorNotFound
}

func (s *fakeFacilitators) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.rows {
		if f.Slug == slug && f.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeFacilitators) Create(_ context.Context, f *model.Facilitator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = "new-" + f.Slug
	}
	for _, r := range s.rows {
		if f.Email != "" && r.Email == f.Email {
			return repository.ErrEmailExists
		}
	}
	s.rows = append(s.rows, *f)
	return nil
}

func (s *fakeFacilitators) Update(_ context.Context, f *model.Facilitator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(f.ID)
	if i < 0 {
		return repository.ErrFacilitatorNotFound
	}
	s.rows[i] = *f
	return nil
}

func (s *fakeFacilitators) UpdateProfile(ctx context.Context, f *model.Facilitator) error {
	return s.Update(ctx, f)
}

func (s *fakeFacilitators) SetActive(_ context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(id)
	if i < 0 {
		return repository.ErrFacilitatorNotFound
	}
	s.rows[i].IsActive = active
	return nil
}

func (s *fakeFacilitators) SetPassword(_ context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(id)
	if i < 0 {
		return repository.ErrFacilitatorNotFound
	}
	s.rows[i].PasswordHash = hash
	return nil
}

func (s *fakeFacilitators) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(id)
	if i < 0 {
		return repository.ErrFacilitatorNotFound
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}

type fakeSettings struct {
	method model.SortMethod
	blocks map[string]json.RawMessage
	fail   bool
}

func (s *fakeSettings) GetSortMethod(context.Context) (model.SortMethod, error) {
	if s.fail {
		return "", errDown
	}
	if s.method == "" {
		return model.DefaultSortMethod, nil
	}
	return s.method, nil
}

func (s *fakeSettings) SetSortMethod(_ context.Context, m model.SortMethod) error {
	s.method = m
	return nil
}

func (s *fakeSettings) GetBlock(_ context.Context, name string) (*model.SiteBlock, error) {
	p, ok := s.blocks[name]
	if !ok {
		return nil, repository.ErrBlockNotFound
	}
	return &model.SiteBlock{Name: name, Payload: p}, nil
}

func (s *fakeSettings) PutBlock(_ context.Context, name string, payload json.RawMessage) error {
	if s.blocks == nil {
		s.blocks = map[string]json.RawMessage{}
	}
	s.blocks[name] = payload
	return nil
}

type fakeServiceTypes struct {
	items []model.ServiceType
	fail  bool
}

func (s *fakeServiceTypes) List(context.Context) ([]model.ServiceType, error) {
	if s.fail {
		return nil, errDown
	}
	return s.items, nil
}

func (s *fakeServiceTypes) Create(_ context.Context, name string) (model.ServiceType, error) {
	for _, st := range s.items {
		if st.Name == name {
			return model.ServiceType{}, repository.ErrConflict
		}
	}
	st := model.ServiceType{ID: "st-" + name, Name: name}
	s.items = append(s.items, st)
	return st, nil
}

func (s *fakeServiceTypes) Rename(_ context.Context, id, name string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Name = name
			return nil
		}
	}
	return repository.ErrServiceTypeNotFound
}

func (s *fakeServiceTypes) Delete(_ context.Context, id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrServiceTypeNotFound
}

type fakeBlog struct {
	posts []model.BlogPost
	fail  bool
}

func (s *fakeBlog) ListActive(context.Context, repository.BlogQuery) ([]model.BlogPost, error) {
	if s.fail {
		return nil, errDown
	}
	return append([]model.BlogPost(nil), s.posts...), nil
}

func (s *fakeBlog) FindActiveBySlug(_ context.Context, slug string) ([]model.BlogPost, error) {
	if s.fail {
		return nil, errDown
	}
	var out []model.BlogPost
	for _, p := range s.posts {
		if p.Slug == slug {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeBlog) ListAll(ctx context.Context) ([]model.BlogPost, error) {
	return s.ListActive(ctx, repository.BlogQuery{})
}

func (s *fakeBlog) GetByID(_ context.Context, id string) (*model.BlogPost, error) {
	for _, p := range s.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrPostNotFound
}

func (s *fakeBlog) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	for _, p := range s.posts {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeBlog) Create(_ context.Context, p *model.BlogPost) error {
	p.ID = "post-" + p.Slug
	s.posts = append(s.posts, *p)
	return nil
}

func (s *fakeBlog) Update(_ context.Context, p *model.BlogPost) error {
	for i := range s.posts {
		if s.posts[i].ID == p.ID {
			s.posts[i] = *p
			return nil
		}
	}
	return repository.ErrPostNotFound
}

func (s *fakeBlog) Delete(_ context.Context, id string) error {
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrPostNotFound
}

type fakeRetreats struct {
	rows []model.Retreat
	fail bool
}

func (s *fakeRetreats) ListActive(context.Context) ([]model.Retreat, error) {
	if s.fail {
		return nil, errDown
	}
	return s.rows, nil
}

func (s *fakeRetreats) ListForHome(ctx context.Context) ([]model.Retreat, error) {
	return s.ListActive(ctx)
}

func (s *fakeRetreats) FindActiveBySlug(_ context.Context, slug string) ([]model.Retreat, error) {
	if s.fail {
		return nil, errDown
	}
	var out []model.Retreat
	for _, r := range s.rows {
		if r.Slug == slug {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRetreats) ListAll(ctx context.Context) ([]model.Retreat, error) {
	return s.ListActive(ctx)
}

func (s *fakeRetreats) GetByID(_ context.Context, id string) (*model.Retreat, error) {
	for _, r := range s.rows {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, repository.ErrRetreatNotFound
}

func (s *fakeRetreats) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	for _, r := range s.rows {
		if r.Slug == slug && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRetreats) Create(_ context.Context, r *model.Retreat) error {
	r.ID = "retreat-" + r.Slug
	s.rows = append(s.rows, *r)
	return nil
}

func (s *fakeRetreats) Update(_ context.Context, r *model.Retreat) error {
	for i := range s.rows {
		if s.rows[i].ID == r.ID {
			s.rows[i] = *r
			return nil
		}
	}
	return repository.ErrRetreatNotFound
}

func (s *fakeRetreats) Delete(_ context.Context, id string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrRetreatNotFound
}

type fakeSubscribers struct {
	rows []model.Subscriber
}

func (s *fakeSubscribers) Subscribe(_ context.Context, email string) (*model.Subscriber, error) {
	for _, r := range s.rows {
		if r.Email == email {
			return nil, repository.ErrEmailExists
		}
	}
	sub := model.Subscriber{ID: "sub-" + email, Email: email, SubscribedAt: time.Unix(0, 0).UTC()}
	s.rows = append(s.rows, sub)
	return &sub, nil
}

func (s *fakeSubscribers) List(context.Context) ([]model.Subscriber, error) { return s.rows, nil }

func (s *fakeSubscribers) Delete(_ context.Context, id string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrSubscriberNotFound
}

type fakePublisher struct {
	emails []string
	err    error
}

func (p *fakePublisher) PublishNewsletterSubscribed(_ context.Context, email, _ string) error {
	p.emails = append(p.emails, email)
	return p.err
}

type fakeAdmins struct {
	rows []model.Admin
}

func (s *fakeAdmins) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range s.rows {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repository.ErrAdminNotFound
}

func (s *fakeAdmins) GetByID(_ context.Context, id string) (*model.Admin, error) {
	for _, a := range s.rows {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrAdminNotFound
}

func (s *fakeAdmins) UpdateCredentials(_ context.Context, id, email, hash string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Email, s.rows[i].PasswordHash = email, hash
			return nil
		}
	}
	return repository.ErrAdminNotFound
}

type tokenRow struct {
	sub     repository.Subject
	exp     time.Time
	revoked bool
}

type fakeTokens struct {
	rows map[string]*tokenRow
}

func (s *fakeTokens) StoreRefresh(_ context.Context, sub repository.Subject, hash string, exp time.Time) error {
	if s.rows == nil {
		s.rows = map[string]*tokenRow{}
	}
	s.rows[hash] = &tokenRow{sub: sub, exp: exp}
	return nil
}

func (s *fakeTokens) ValidateRefresh(_ context.Context, hash string) (repository.Subject, error) {
	r, ok := s.rows[hash]
	if !ok || r.revoked || time.Now().After(r.exp) {
		return repository.Subject{}, errors.New("no rows")
	}
	return r.sub, nil
}

func (s *fakeTokens) RevokeByHash(_ context.Context, hash string) error {
	if r, ok := s.rows[hash]; ok {
		r.revoked = true
	}
	return nil
}

func (s *fakeTokens) RevokeAll(_ context.Context, sub repository.Subject) error {
	for _, r := range s.rows {
		if r.sub == sub {
			r.revoked = true
		}
	}
	return nil
}

type fakeSEO struct {
	rows map[string]model.SEOData
}

func (s *fakeSEO) Find(_ context.Context, pageType, itemID string) (*model.SEOData, error) {
	d, ok := s.rows[pageType+"|"+itemID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *fakeSEO) Upsert(_ context.Context, pageType, itemID string, d model.SEOData) error {
	if s.rows == nil {
		s.rows = map[string]model.SEOData{}
	}
	s.rows[pageType+"|"+itemID] = d
	return nil
}

type fakeFAQ struct {
	rows []model.FAQItem
	fail bool
}

func (s *fakeFAQ) ListActive(context.Context) ([]model.FAQItem, error) {
	if s.fail {
		return nil, errDown
	}
	var out []model.FAQItem
	for _, it := range s.rows {
		if it.IsActive {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *fakeFAQ) ListAll(context.Context) ([]model.FAQItem, error) {
	if s.fail {
		return nil, errDown
	}
	return s.rows, nil
}

func (s *fakeFAQ) find(id string) int {
	for i, it := range s.rows {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *fakeFAQ) GetByID(_ context.Context, id string) (*model.FAQItem, error) {
	if i := s.find(id); i >= 0 {
		it := s.rows[i]
		return &it, nil
	}
	return nil, repository.ErrFAQNotFound
}

func (s *fakeFAQ) Create(_ context.Context, it *model.FAQItem) error {
	if it.ID == "" {
		it.ID = "faq-new"
	}
	s.rows = append(s.rows, *it)
	return nil
}

func (s *fakeFAQ) Update(_ context.Context, it *model.FAQItem) error {
	i := s.find(it.ID)
	if i < 0 {
		return repository.ErrFAQNotFound
	}
	s.rows[i] = *it
	return nil
}

func (s *fakeFAQ) SetActive(_ context.Context, id string, active bool) error {
	i := s.find(id)
	if i < 0 {
		return repository.ErrFAQNotFound
	}
	s.rows[i].IsActive = active
	return nil
}

func (s *fakeFAQ) Reorder(_ context.Context, ids []string) error {
	for _, id := range ids {
		if s.find(id) < 0 {
			return repository.ErrFAQNotFound
		}
	}
	for n, id := range ids {
		s.rows[s.find(id)].DisplayOrder = n + 1
	}
	return nil
}

func (s *fakeFAQ) Delete(_ context.Context, id string) error {
	i := s.find(id)
	if i < 0 {
		return repository.ErrFAQNotFound
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}

type fakeTestimonials struct {
	rows []model.Testimonial
	fail bool
}

func (s *fakeTestimonials) ListActive(context.Context) ([]model.Testimonial, error) {
	if s.fail {
		return nil, errDown
	}
	var out []model.Testimonial
	for _, t := range s.rows {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTestimonials) ListAll(context.Context) ([]model.Testimonial, error) {
	if s.fail {
		return nil, errDown
	}
	return s.rows, nil
}

func (s *fakeTestimonials) find(id string) int {
	for i, t := range s.rows {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *fakeTestimonials) GetByID(_ context.Context, id string) (*model.Testimonial, error) {
	if i := s.find(id); i >= 0 {
		t := s.rows[i]
		return &t, nil
	}
	return nil, repository.ErrTestimonialNotFound
}

func (s *fakeTestimonials) Create(_ context.Context, t *model.Testimonial) error {
	if t.ID == "" {
		t.ID = "t-new"
	}
	s.rows = append(s.rows, *t)
	return nil
}

func (s *fakeTestimonials) Update(_ context.Context, t *model.Testimonial) error {
	i := s.find(t.ID)
	if i < 0 {
		return repository.ErrTestimonialNotFound
	}
	s.rows[i] = *t
	return nil
}

func (s *fakeTestimonials) Reorder(_ context.Context, ids []string) error {
	for _, id := range ids {
		if s.find(id) < 0 {
			return repository.ErrTestimonialNotFound
		}
	}
	for n, id := range ids {
		s.rows[s.find(id)].DisplayOrder = n + 1
	}
	return nil
}

func (s *fakeTestimonials) Delete(_ context.Context, id string) error {
	i := s.find(id)
	if i < 0 {
		return repository.ErrTestimonialNotFound
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}
