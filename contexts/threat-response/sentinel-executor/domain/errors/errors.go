package errors

import "errors"

var (
	// ErrInvalidConfiguration rejects thresholds outside [0, 100].
	ErrInvalidConfiguration = errors.New("invalid sentinel configuration")

	// ErrUnauthorized rejects threshold changes from actors without the
	// coordinator tier.
	ErrUnauthorized = errors.New("actor not authorized")

	// ErrMissingActor rejects privileged commands without a caller identity.
	ErrMissingActor = errors.New("actor identity is required")
)
