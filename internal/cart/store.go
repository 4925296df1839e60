package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps the active carts of a POS instance, keyed by session ID.
// Requests from different sessions arrive concurrently, so the map is
// mutex-guarded; each cart itself is owned by exactly one session and is
// mutated only through Mutate.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Create starts a new empty cart session and returns its ID.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.carts[id] = New()
	s.mu.Unlock()
	return id
}

// Mutate runs fn against the cart for id under the store lock. It returns
// false when the session does not exist.
func (s *Store) Mutate(id string, fn func(*Cart)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	if !ok {
		return false
	}
	fn(c)
	return true
}

// Snapshot returns the lines and total of the cart for id.
func (s *Store) Snapshot(id string) ([]Line, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	if !ok {
		return nil, "", false
	}
	return c.Lines(), c.Total().StringFixed(2), true
}

// Delete tears the session down. Deleting an unknown session is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}
