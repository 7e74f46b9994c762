package store

import (
	"sort"
	"sync"

	"github.com/calvinwijaya/blackjack-sim/internal/sim"
)

// MemoryStore is an in-memory implementation of run storage
type MemoryStore struct {
	runs map[string]*sim.Run
	mu   sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]*sim.Run),
	}
}

func (s *MemoryStore) SaveRun(r *sim.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[r.ID] = r
	return nil
}

func (s *MemoryStore) GetRun(id string) (*sim.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.runs[id]
	if !exists {
		return nil, ErrNotFound
	}

	return r, nil
}

func (s *MemoryStore) GetAllRuns() ([]*sim.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*sim.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CompletedAt.After(runs[j].CompletedAt)
	})

	return runs, nil
}

func (s *MemoryStore) DeleteRun(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[id]; !exists {
		return ErrNotFound
	}
	delete(s.runs, id)

	return nil
}
