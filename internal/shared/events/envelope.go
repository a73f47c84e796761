package events

import "time"

// Topic names used on the internal bus.
const (
	TopicAuditRecorded = "audit.recorded"
	TopicSegmentSealed = "audit.segment_sealed"
)

// Envelope is the shared event shape used in Warden.
// Every state-changing operation that reports to the forensic ledger surfaces
// here as one envelope, suitable for off-process indexing.
type Envelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	SourceService string    `json:"source_service"`
	OccurredAtUTC time.Time `json:"occurred_at_utc"`
	CorrelationID string    `json:"correlation_id"`

	// Audit linkage: the global ledger sequence id plus the reporting
	// component, severity, and category of the underlying record.
	SequenceID uint64 `json:"sequence_id"`
	Reporter   string `json:"reporter"`
	Severity   string `json:"severity"`
	Category   string `json:"category"`

	Payload any `json:"payload,omitempty"`
}
