package memory

import (
	"context"
	"sync"

	"warden/contexts/threat-response/sentinel-executor/ports"
)

// Store is the in-memory adapter backing the executor settings and the
// stream dedup set.
type Store struct {
	mu        sync.Mutex
	threshold uint8
	seen      map[uint64]struct{}
}

// NewStore builds a store at the default trip point with an empty dedup set.
func NewStore() *Store {
	return &Store{
		threshold: ports.DefaultAutoPauseThreshold,
		seen:      make(map[uint64]struct{}),
	}
}

func (s *Store) AutoPauseThreshold(_ context.Context) (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threshold, nil
}

func (s *Store) SetAutoPauseThreshold(_ context.Context, threshold uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threshold = threshold
	return nil
}

func (s *Store) ReserveSequence(_ context.Context, sequenceID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.seen[sequenceID]; seen {
		return true, nil
	}
	s.seen[sequenceID] = struct{}{}
	return false, nil
}
