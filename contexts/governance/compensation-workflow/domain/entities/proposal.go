package entities

import "time"

// Proposal is one restitution case moving through the workflow.
type Proposal struct {
	ProposalID string    `json:"proposal_id"`
	Proposer   string    `json:"proposer"`
	Victim     string    `json:"victim"`
	Amount     uint64    `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`

	Approved   bool      `json:"approved"`
	ApprovedBy string    `json:"approved_by,omitempty"`
	ApprovedAt time.Time `json:"approved_at,omitempty"`

	// Executed is a one-way latch; it never returns to false once set.
	Executed   bool      `json:"executed"`
	ExecutedBy string    `json:"executed_by,omitempty"`
	ExecutedAt time.Time `json:"executed_at,omitempty"`
}
