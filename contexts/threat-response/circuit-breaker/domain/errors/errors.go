package errors

import "errors"

var (
	// ErrThresholdExceeded aborts an observation whose amount would push the
	// windowed volume past the configured threshold.
	ErrThresholdExceeded = errors.New("volume threshold exceeded")

	// ErrInvalidConfiguration rejects zero thresholds, zero window durations
	// and zero observation amounts.
	ErrInvalidConfiguration = errors.New("invalid breaker configuration")

	// ErrUnauthorized rejects privileged commands from actors without the
	// coordinator tier.
	ErrUnauthorized = errors.New("actor not authorized")

	// ErrMissingActor rejects privileged commands without a caller identity.
	ErrMissingActor = errors.New("actor identity is required")
)
