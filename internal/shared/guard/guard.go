package guard

import (
	"errors"
	"sync/atomic"
)

// ErrReentrantCall is returned when an operation is entered while a prior
// invocation on the same component is still in flight.
var ErrReentrantCall = errors.New("re-entrant call rejected")

// Guard is a per-component in-progress latch. Mutating operations acquire it
// before any externally visible work and release it through the returned
// function, so an early return or failure can never leave the latch held.
//
// Usage:
//
//	release, err := g.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer release()
type Guard struct {
	held atomic.Bool
}

// Acquire takes the latch or fails immediately with ErrReentrantCall.
// The returned release function is idempotent-safe under defer.
func (g *Guard) Acquire() (func(), error) {
	if !g.held.CompareAndSwap(false, true) {
		return nil, ErrReentrantCall
	}
	return func() { g.held.Store(false) }, nil
}

// Held reports whether the latch is currently taken. Intended for tests.
func (g *Guard) Held() bool {
	return g.held.Load()
}
