package server

import (
	"sync"

	"github.com/matzehuels/wrapped/pkg/pipeline"
)

// DefaultCapacity bounds how many results the store keeps.
const DefaultCapacity = 256

// Store keeps generated results in memory, keyed by result ID.
// When full, the oldest result is evicted. Nothing outlives the process.
type Store struct {
	mu       sync.RWMutex
	results  map[string]*pipeline.Result
	order    []string
	capacity int
}

// NewStore creates a store holding at most capacity results.
// A capacity <= 0 selects [DefaultCapacity].
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		results:  make(map[string]*pipeline.Result),
		capacity: capacity,
	}
}

// Put stores res under res.ID, evicting the oldest entry if needed.
func (s *Store) Put(res *pipeline.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[res.ID]; !ok {
		s.order = append(s.order, res.ID)
	}
	s.results[res.ID] = res
	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}
}

// Get returns the result for id.
func (s *Store) Get(id string) (*pipeline.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[id]
	return res, ok
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
