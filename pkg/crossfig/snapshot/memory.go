package snapshot

import (
	"fmt"
	"sync"
)

// MemoryStore keeps snapshots in memory. Suitable for tests and
// one-shot tooling; nothing survives the process.
type MemoryStore struct {
	mu     sync.RWMutex
	byRun  map[string]Record
	byName map[string][]Record // per manifest, append order
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byRun:  make(map[string]Record),
		byName: make(map[string][]Record),
	}
}

// Save implements Store.
func (s *MemoryStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if rec.RunID == "" {
		return fmt.Errorf("snapshot: run ID is required")
	}
	if _, exists := s.byRun[rec.RunID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRun, rec.RunID)
	}

	s.byRun[rec.RunID] = rec
	s.byName[rec.Manifest] = append(s.byName[rec.Manifest], rec)
	return nil
}

// Latest implements Store.
func (s *MemoryStore) Latest(manifest string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, false, ErrStoreClosed
	}
	recs := s.byName[manifest]
	if len(recs) == 0 {
		return Record{}, false, nil
	}
	return recs[len(recs)-1], true, nil
}

// List implements Store.
func (s *MemoryStore) List(manifest string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	recs := s.byName[manifest]

	out := make([]Record, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, recs[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
