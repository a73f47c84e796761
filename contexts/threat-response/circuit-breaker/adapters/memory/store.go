package memory

import (
	"context"
	"sync"
	"time"

	"warden/contexts/threat-response/circuit-breaker/domain/entities"
)

// Default window configuration for local wiring.
const (
	DefaultThreshold      = 1_000_000
	DefaultWindowDuration = time.Hour
)

// Store is the in-memory state adapter for the breaker window.
type Store struct {
	mu     sync.RWMutex
	window entities.VolumeWindow
}

// NewStore builds a store with an immediately live default window.
func NewStore() *Store {
	return &Store{
		window: entities.VolumeWindow{
			Threshold:      DefaultThreshold,
			WindowDuration: DefaultWindowDuration,
			WindowStart:    time.Now().UTC(),
		},
	}
}

func (s *Store) Window(_ context.Context) (entities.VolumeWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window, nil
}

func (s *Store) SaveWindow(_ context.Context, window entities.VolumeWindow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = window
	return nil
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
