package errors

import "errors"

var (
	// ErrUnauthorized rejects approvals, validations and admin changes from
	// actors without the required tier.
	ErrUnauthorized = errors.New("actor not authorized")

	// ErrAlreadyApproved rejects a repeat approval by the same approver for
	// the same candidate within the current epoch.
	ErrAlreadyApproved = errors.New("candidate already approved by this approver")

	// ErrInsufficientApprovals rejects a validation below quorum.
	ErrInsufficientApprovals = errors.New("insufficient approvals")

	// ErrRateLimited rejects a validation inside the minimum interval.
	ErrRateLimited = errors.New("upgrade rate limited")

	// ErrInvalidConfiguration rejects zero quorum, non-positive intervals
	// and blank candidates.
	ErrInvalidConfiguration = errors.New("invalid upgrade configuration")

	// ErrMissingActor rejects commands without a caller identity.
	ErrMissingActor = errors.New("actor identity is required")
)
