package http

import "time"

// ProposeRequest opens one restitution case.
type ProposeRequest struct {
	Victim string `json:"victim"`
	Amount uint64 `json:"amount"`
}

// ProposalDTO is one proposal in transport shape.
type ProposalDTO struct {
	ProposalID string     `json:"proposal_id"`
	Proposer   string     `json:"proposer"`
	Victim     string     `json:"victim"`
	Amount     uint64     `json:"amount"`
	CreatedAt  time.Time  `json:"created_at"`
	Approved   bool       `json:"approved"`
	ApprovedBy string     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	Executed   bool       `json:"executed"`
	ExecutedBy string     `json:"executed_by,omitempty"`
	ExecutedAt *time.Time `json:"executed_at,omitempty"`
}

// ListProposalsResponse lists every proposal.
type ListProposalsResponse struct {
	Proposals []ProposalDTO `json:"proposals"`
}

// ReserveBalanceResponse reports the payable reserve.
type ReserveBalanceResponse struct {
	Balance uint64 `json:"balance"`
}

// ErrorResponse is the transport error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
