package entities

import "time"

// ApprovalKey identifies one approval within one epoch. Advancing the epoch
// nonce orphans every key minted under the previous value.
type ApprovalKey struct {
	Nonce     uint64
	Candidate string
	Approver  string
}

// Approval is one recorded sign-off.
type Approval struct {
	Key        ApprovalKey
	ApprovedAt time.Time
}

// Policy is the authorizer's tunable state.
type Policy struct {
	RequiredApprovals int
	MinInterval       time.Duration
	Nonce             uint64
	LastUpgrade       time.Time
}

// RateLimited reports whether an execution at now would violate the
// minimum interval. A zero LastUpgrade means no upgrade has executed yet.
func (p Policy) RateLimited(now time.Time) bool {
	if p.LastUpgrade.IsZero() {
		return false
	}
	return now.Before(p.LastUpgrade.Add(p.MinInterval))
}
