// Package schedule keeps facilitator-edited session lists in the local
// key-value store and maps facilitators to short shareable codes.
package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/energopraktiki/internal/kv"
	"github.com/iliyamo/energopraktiki/internal/logging"
	"github.com/iliyamo/energopraktiki/internal/model"
)

const keyPrefix = "schedule_"

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// document is the persisted value: the whole list is rewritten on every
// mutation.
type document struct {
	FacilitatorID string                  `json:"facilitatorId"`
	Sessions      []model.ScheduleSession `json:"sessions"`
}

// Store is the editable schedule store. Mutations are serialised within the
// process; across processes the last write wins.
type Store struct {
	KV    kv.Store
	Seeds map[string][]model.ScheduleSession
	Now   func() time.Time
	Rand  *rand.Rand

	mu sync.Mutex
}

// NewStore returns a Store over st seeded with DefaultSeeds.
func NewStore(st kv.Store) *Store {
	return &Store{KV: st, Seeds: DefaultSeeds(), Now: time.Now}
}

// Key returns the storage key for a facilitator.
func Key(facilitatorID string) string { return keyPrefix + facilitatorID }

// Get returns the persisted sessions, or the seed list when nothing valid is
// stored. Unknown ids without a seed yield an empty, non-nil slice.
func (s *Store) Get(ctx context.Context, facilitatorID string) []model.ScheduleSession {
	return s.load(ctx, facilitatorID).Sessions
}

// Add appends a session with a freshly generated id and persists the list.
func (s *Store) Add(ctx context.Context, facilitatorID string, in model.ScheduleSession) (model.ScheduleSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx, facilitatorID)
	in.ID = s.newSessionID()
	doc.Sessions = append(doc.Sessions, in)
	if err := s.save(ctx, doc); err != nil {
		return model.ScheduleSession{}, err
	}
	return in, nil
}

// Update merges patch into the session with the given id. An unknown id is
// a silent no-op and reports false.
func (s *Store) Update(ctx context.Context, facilitatorID, sessionID string, patch model.SessionPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx, facilitatorID)
	i := slices.IndexFunc(doc.Sessions, func(x model.ScheduleSession) bool { return x.ID == sessionID })
	if i < 0 {
		return false, nil
	}
	patch.Apply(&doc.Sessions[i])
	return true, s.save(ctx, doc)
}

// Delete removes the session with the given id and persists the list.
// Removing an unknown id leaves the sessions unchanged.
func (s *Store) Delete(ctx context.Context, facilitatorID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx, facilitatorID)
	doc.Sessions = slices.DeleteFunc(doc.Sessions, func(x model.ScheduleSession) bool { return x.ID == sessionID })
	return s.save(ctx, doc)
}

func (s *Store) load(ctx context.Context, facilitatorID string) document {
	log := logging.FromContext(ctx)
	raw, err := s.KV.Get(ctx, Key(facilitatorID))
	if err == nil {
		var doc document
		if err := json.Unmarshal([]byte(raw), &doc); err == nil {
			doc.FacilitatorID = facilitatorID
			if doc.Sessions == nil {
				doc.Sessions = []model.ScheduleSession{}
			}
			return doc
		}
		log.Warn("schedule entry corrupt, using defaults", slog.String("facilitator_id", facilitatorID))
	} else if !errors.Is(err, kv.ErrNotFound) {
		log.Warn("schedule read failed, using defaults", slog.String("facilitator_id", facilitatorID), slog.Any("err", err))
	}
	seed := slices.Clone(s.Seeds[facilitatorID])
	if seed == nil {
		seed = []model.ScheduleSession{}
	}
	return document{FacilitatorID: facilitatorID, Sessions: seed}
}

func (s *Store) save(ctx context.Context, doc document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.KV.Set(ctx, Key(doc.FacilitatorID), string(b)); err != nil {
		return fmt.Errorf("schedule: save %s: %w", doc.FacilitatorID, err)
	}
	return nil
}

// newSessionID returns session_<unixmillis>_<9 base36 chars>. Callers hold mu.
func (s *Store) newSessionID() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	var b strings.Builder
	b.WriteString("session_")
	b.WriteString(strconv.FormatInt(now().UnixMilli(), 10))
	b.WriteByte('_')
	for i := 0; i < 9; i++ {
		b.WriteByte(base36[s.intn(len(base36))])
	}
	return b.String()
}

func (s *Store) intn(n int) int {
	if s.Rand != nil {
		return s.Rand.IntN(n)
	}
	return rand.IntN(n)
}
