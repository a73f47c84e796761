package guard

import (
	"errors"
	"testing"
)

func TestGuardAcquireRelease(t *testing.T) {
	var g Guard

	release, err := g.Acquire()
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	if !g.Held() {
		t.Fatalf("expected latch held after acquire")
	}

	if _, err := g.Acquire(); !errors.Is(err, ErrReentrantCall) {
		t.Fatalf("expected ErrReentrantCall, got %v", err)
	}

	release()
	if g.Held() {
		t.Fatalf("expected latch released")
	}

	release2, err := g.Acquire()
	if err != nil {
		t.Fatalf("re-acquire after release failed: %v", err)
	}
	release2()
}
