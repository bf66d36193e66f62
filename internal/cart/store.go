package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Store owns one session's cart state. All access goes through the reducer
// dispatch path under a single mutex, so concurrent requests for the same
// session serialize their transitions.
type Store struct {
	mu    sync.Mutex
	state State
}

func NewStore() *Store {
	return &Store{}
}

// Dispatch applies the action and returns the resulting state snapshot.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, action)
	return s.state
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Count() int {
	return s.Snapshot().Count()
}

func (s *Store) Total() decimal.Decimal {
	return s.Snapshot().Total()
}
