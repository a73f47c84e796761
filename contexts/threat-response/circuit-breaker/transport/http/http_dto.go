package http

import "time"

// ObserveRequest reports one unit of value flow.
type ObserveRequest struct {
	Amount        uint64 `json:"amount"`
	Origin        string `json:"origin,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// WindowResponse is the breaker window state returned by observe and the
// window query.
type WindowResponse struct {
	CurrentVolume  uint64    `json:"current_volume"`
	Threshold      uint64    `json:"threshold"`
	WindowStart    time.Time `json:"window_start"`
	WindowDuration string    `json:"window_duration,omitempty"`
	WindowReset    bool      `json:"window_reset,omitempty"`
}

// UpdateThresholdRequest retunes the breach ceiling.
type UpdateThresholdRequest struct {
	Threshold uint64 `json:"threshold"`
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
