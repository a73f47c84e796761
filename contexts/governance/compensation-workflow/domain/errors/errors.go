package errors

import "errors"

var (
	// ErrProposalNotFound rejects operations on unknown proposal ids.
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrInvalidConfiguration rejects zero amounts and blank victims.
	ErrInvalidConfiguration = errors.New("invalid proposal")

	// ErrUnauthorized rejects proposals and approvals from actors without
	// the required tier.
	ErrUnauthorized = errors.New("actor not authorized")

	// ErrMissingActor rejects commands without a caller identity.
	ErrMissingActor = errors.New("actor identity is required")

	// ErrAlreadyApproved rejects a second approval of the same proposal.
	ErrAlreadyApproved = errors.New("proposal already approved")

	// ErrNotApproved rejects execution of an unapproved proposal.
	ErrNotApproved = errors.New("proposal not approved")

	// ErrAlreadyExecuted rejects execution of an already paid proposal.
	ErrAlreadyExecuted = errors.New("proposal already executed")

	// ErrInsufficientReserve rejects a payout the vault cannot cover.
	ErrInsufficientReserve = errors.New("insufficient reserve balance")
)
