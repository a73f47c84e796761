package http

import "time"

// ApproveUpgradeRequest registers one sign-off.
type ApproveUpgradeRequest struct {
	Candidate string `json:"candidate"`
}

// ApproveUpgradeResponse reports progress toward quorum.
type ApproveUpgradeResponse struct {
	Nonce     uint64 `json:"nonce"`
	Approvals int    `json:"approvals"`
	Required  int    `json:"required"`
}

// ValidateUpgradeRequest asks for final clearance.
type ValidateUpgradeRequest struct {
	Candidate string `json:"candidate"`
}

// ValidateUpgradeResponse reports the epoch the system moved to.
type ValidateUpgradeResponse struct {
	Candidate  string    `json:"candidate"`
	NewNonce   uint64    `json:"new_nonce"`
	ExecutedAt time.Time `json:"executed_at"`
}

// SetRequiredApprovalsRequest retunes the quorum.
type SetRequiredApprovalsRequest struct {
	Required int `json:"required"`
}

// SetMinIntervalRequest retunes the rate limit; the interval uses Go
// duration syntax ("24h", "90m").
type SetMinIntervalRequest struct {
	MinInterval string `json:"min_interval"`
}

// CandidateStatusResponse is quorum progress for one candidate.
type CandidateStatusResponse struct {
	Candidate   string `json:"candidate"`
	Nonce       uint64 `json:"nonce"`
	Approvals   int    `json:"approvals"`
	Required    int    `json:"required"`
	RateLimited bool   `json:"rate_limited"`
}

// StatusResponse acknowledges a state-changing command.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the transport error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
