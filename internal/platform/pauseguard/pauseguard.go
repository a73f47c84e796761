// Package pauseguard provides the process-wide halt switch shared by the
// authority and threat-response modules. It is the in-process stand-in for
// an external pause controller: one bit, concurrency-safe, idempotent.
package pauseguard

import (
	"context"
	"sync"
	"time"
)

// Guard is the shared halt switch. Pausing twice is not an error; the
// second call simply confirms the halted state.
type Guard struct {
	mu       sync.RWMutex
	paused   bool
	pausedAt time.Time
}

// New returns a guard in the running state.
func New() *Guard {
	return &Guard{}
}

func (g *Guard) Pause(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.paused {
		g.paused = true
		g.pausedAt = time.Now().UTC()
	}
	return nil
}

func (g *Guard) Resume(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = false
	g.pausedAt = time.Time{}
	return nil
}

func (g *Guard) IsPaused(_ context.Context) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.paused, nil
}

// PausedAt reports when the current pause started; zero when running.
func (g *Guard) PausedAt() time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pausedAt
}
