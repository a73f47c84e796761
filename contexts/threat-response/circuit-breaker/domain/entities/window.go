package entities

import "time"

// VolumeWindow is the breaker's rolling accounting state. The window resets
// lazily: expiry is checked on the next observation, not by a timer.
type VolumeWindow struct {
	Threshold      uint64
	WindowDuration time.Duration
	CurrentVolume  uint64
	WindowStart    time.Time
}

// Expired reports whether the window has rolled over at the given instant.
func (w VolumeWindow) Expired(now time.Time) bool {
	return !now.Before(w.WindowStart.Add(w.WindowDuration))
}

// WouldBreach reports whether adding amount pushes the window past threshold.
// The comparison is phrased to stay correct when the sum would overflow.
func (w VolumeWindow) WouldBreach(amount uint64) bool {
	return amount > w.Threshold || w.CurrentVolume > w.Threshold-amount
}
