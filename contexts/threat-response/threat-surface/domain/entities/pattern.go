package entities

import "time"

// Pattern registration provenance.
const (
	PatternSourceManual = "manual"
	PatternSourceAuto   = "auto"
)

// MaxSuspectScore is the ceiling a suspect score is pinned to when an
// elevated sighting names an actor.
const MaxSuspectScore = 100

// ThreatPattern is one catalog entry keyed by its stable pattern id.
type ThreatPattern struct {
	PatternID    string    `json:"pattern_id"`
	Description  string    `json:"description"`
	Source       string    `json:"source"`
	RegisteredBy string    `json:"registered_by"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ThreatEvent is one history entry. SequenceID links back to the forensic
// record the sighting produced, when one was written.
type ThreatEvent struct {
	EventID     string    `json:"event_id"`
	Description string    `json:"description"`
	Risk        RiskLevel `json:"risk"`
	PatternID   string    `json:"pattern_id"`
	Suspect     string    `json:"suspect,omitempty"`
	ReportedBy  string    `json:"reported_by"`
	LoggedAt    time.Time `json:"logged_at"`
	SequenceID  uint64    `json:"sequence_id,omitempty"`
}

// SuspectScore is the read-model row for one actor under suspicion.
type SuspectScore struct {
	Actor     string    `json:"actor"`
	Score     uint8     `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}
