// Package draft provides an in-memory autosave store for in-progress profile
// edits. Drafts are per user, expire after a TTL, and are discarded once the
// edit is merged into the durable record.
package draft

import (
	"encoding/json"
	"sync"
	"time"
)

// Draft is one autosaved, not-yet-merged profile edit.
type Draft struct {
	UserID   string          `json:"user_id"`
	Fragment json.RawMessage `json:"fragment"`
	SavedAt  time.Time       `json:"saved_at"`
}

type item struct {
	draft      Draft
	expiration time.Time
}

// Store holds drafts keyed by user with a fixed TTL. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates a draft store. A non-positive ttl defaults to 24 hours.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		items: make(map[string]item),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Save stores the user's current draft, replacing any previous one.
func (s *Store) Save(userID string, fragment json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now()
	s.items[userID] = item{
		draft:      Draft{UserID: userID, Fragment: fragment, SavedAt: at},
		expiration: at.Add(s.ttl),
	}
}

// Get returns the user's draft if one exists and has not expired.
func (s *Store) Get(userID string) (Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, found := s.items[userID]
	if !found || s.now().After(it.expiration) {
		return Draft{}, false
	}
	return it.draft, true
}

// Discard removes the user's draft, typically after a successful merge.
func (s *Store) Discard(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, userID)
}

// Sweep removes all expired drafts and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now()
	dropped := 0
	for key, it := range s.items {
		if at.After(it.expiration) {
			delete(s.items, key)
			dropped++
		}
	}
	return dropped
}
