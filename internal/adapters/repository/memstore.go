package repository

import (
	"context"
	"sync"

	"github.com/okian/gigfeed/internal/domain/model"
)

// defaultCapacity sizes the counter map for a small guild's event set.
const defaultCapacity = 64

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity pre-sizes the counter map.
func WithInitialCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// MemStore implements Store with a mutex-guarded map. The map lock only
// covers entry creation and lookup; the counters themselves are atomic,
// so increments never hold the map lock.
type MemStore struct {
	mu       sync.RWMutex
	byID     map[string]*model.Stats
	capacity int
}

// NewMemStore creates an in-memory counter store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.byID = make(map[string]*model.Stats, s.capacity)
	return s
}

// Stats returns the live counter pair for eventID, creating it at zero on
// first access.
func (s *MemStore) Stats(_ context.Context, eventID string) *model.Stats {
	s.mu.RLock()
	st, ok := s.byID[eventID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock; another caller may have created it.
	if st, ok := s.byID[eventID]; ok {
		return st
	}
	st = &model.Stats{}
	s.byID[eventID] = st
	return st
}

// Increment bumps the counter named by action for eventID and returns the
// live pair.
func (s *MemStore) Increment(ctx context.Context, eventID string, action model.InterestAction) *model.Stats {
	st := s.Stats(ctx, eventID)
	st.Add(action)
	return st
}

// Count returns the number of events with counters.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
