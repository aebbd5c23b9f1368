package memory

import (
	"context"
	"sync"
	"time"

	"staybook/internal/domain/pricing"
	"staybook/internal/domain/reservation"
)

// DraftStore keeps reservation drafts in memory, one per session id.
// Entries older than the TTL are evicted lazily on access, mirroring the
// Redis-backed store's expiry behavior.
type DraftStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]draftEntry
	now   func() time.Time
}

type draftEntry struct {
	draft   *reservation.Draft
	savedAt time.Time
}

// NewDraftStore builds an empty store. A zero ttl disables expiry.
func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{
		ttl:   ttl,
		items: make(map[string]draftEntry),
		now:   time.Now,
	}
}

// SetClock overrides the store's time source; tests use it to force expiry.
func (s *DraftStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Save stores a copy of the draft. Like the Redis store, which serializes,
// later mutations of the caller's draft stay invisible until saved again.
func (s *DraftStore) Save(ctx context.Context, sessionID string, draft *reservation.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sessionID] = draftEntry{draft: cloneDraft(draft), savedAt: s.now()}
	return nil
}

func (s *DraftStore) Load(ctx context.Context, sessionID string) (*reservation.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[sessionID]
	if !ok {
		return nil, reservation.ErrDraftNotFound
	}
	if s.ttl > 0 && s.now().Sub(entry.savedAt) > s.ttl {
		delete(s.items, sessionID)
		return nil, reservation.ErrDraftNotFound
	}
	return cloneDraft(entry.draft), nil
}

// cloneDraft copies the draft along with its owned slices and quote so the
// stored state never aliases a handler's working copy. Pending events belong
// to the mutating caller and are not part of the snapshot.
func cloneDraft(d *reservation.Draft) *reservation.Draft {
	cp := *d
	cp.Items = append([]pricing.LineItem(nil), d.Items...)
	if d.Quote != nil {
		quote := *d.Quote
		cp.Quote = &quote
	}
	cp.ClearEvents()
	return &cp
}

func (s *DraftStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sessionID)
	return nil
}

var _ reservation.DraftStore = (*DraftStore)(nil)
