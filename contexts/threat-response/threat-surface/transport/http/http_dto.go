package http

import "time"

// LogThreatRequest reports one hostile sighting.
type LogThreatRequest struct {
	Description   string `json:"description"`
	Risk          string `json:"risk"`
	PatternID     string `json:"pattern_id"`
	Suspect       string `json:"suspect,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// LogThreatResponse describes the committed sighting.
type LogThreatResponse struct {
	EventID           string `json:"event_id"`
	SequenceID        uint64 `json:"sequence_id"`
	PatternRegistered bool   `json:"pattern_registered"`
	SuspectPinned     bool   `json:"suspect_pinned"`
}

// RegisterPatternRequest adds one pattern by hand.
type RegisterPatternRequest struct {
	PatternID   string `json:"pattern_id"`
	Description string `json:"description"`
}

// PatternDTO is one catalog entry.
type PatternDTO struct {
	PatternID    string    `json:"pattern_id"`
	Description  string    `json:"description"`
	Source       string    `json:"source"`
	RegisteredBy string    `json:"registered_by"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ListPatternsResponse is the catalog with its count.
type ListPatternsResponse struct {
	Count    int          `json:"count"`
	Patterns []PatternDTO `json:"patterns"`
}

// SuspectScoreResponse is one actor's suspicion score.
type SuspectScoreResponse struct {
	Actor     string     `json:"actor"`
	Score     uint8      `json:"score"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ThreatEventDTO is one history entry.
type ThreatEventDTO struct {
	EventID     string    `json:"event_id"`
	Description string    `json:"description"`
	Risk        string    `json:"risk"`
	PatternID   string    `json:"pattern_id"`
	Suspect     string    `json:"suspect,omitempty"`
	ReportedBy  string    `json:"reported_by"`
	LoggedAt    time.Time `json:"logged_at"`
	SequenceID  uint64    `json:"sequence_id,omitempty"`
}

// ThreatHistoryResponse lists recent sightings, newest first.
type ThreatHistoryResponse struct {
	Threats []ThreatEventDTO `json:"threats"`
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
