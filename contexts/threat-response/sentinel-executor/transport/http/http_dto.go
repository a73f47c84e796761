package http

// EvaluateRequest presents one record to the gate.
type EvaluateRequest struct {
	SequenceID    uint64 `json:"sequence_id"`
	Source        string `json:"source,omitempty"`
	Severity      string `json:"severity"`
	RiskScore     uint8  `json:"risk_score"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// EvaluateResponse reports whether the gate fired.
type EvaluateResponse struct {
	Paused    bool  `json:"paused"`
	Threshold uint8 `json:"threshold"`
}

// UpdateThresholdRequest retunes the trip point.
type UpdateThresholdRequest struct {
	Threshold uint8 `json:"threshold"`
}

// StatusResponse is the executor's externally visible state.
type StatusResponse struct {
	AutoPauseThreshold uint8 `json:"auto_pause_threshold"`
	Paused             bool  `json:"paused"`
}

// AckResponse acknowledges a state-changing command.
type AckResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the transport error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
