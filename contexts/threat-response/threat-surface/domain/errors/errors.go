package errors

import "errors"

var (
	// ErrPatternRegistered rejects a manual registration for a pattern id
	// already in the catalog.
	ErrPatternRegistered = errors.New("pattern already registered")

	// ErrPatternNotFound rejects removal or lookup of an unknown pattern id.
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrInvalidConfiguration rejects blank descriptions, blank pattern ids
	// and undefined risk levels.
	ErrInvalidConfiguration = errors.New("invalid threat input")

	// ErrUnauthorized rejects mutations from actors without the coordinator
	// tier.
	ErrUnauthorized = errors.New("actor not authorized")

	// ErrMissingActor rejects mutations without a caller identity.
	ErrMissingActor = errors.New("actor identity is required")
)
