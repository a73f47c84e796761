package entities

import "time"

// FingerprintSize is the byte length of the two reserved hash slots.
const FingerprintSize = 32

// RecordSchemaVersion is the current audit record schema.
const RecordSchemaVersion = 1

// ForensicRecord is one immutable, globally sequenced audit-log entry.
// Field order follows the stable audit contract consumed by downstream
// forensic tooling; do not reorder.
type ForensicRecord struct {
	Source           string    `json:"source"`
	Actor            string    `json:"actor"`
	Origin           string    `json:"origin"`
	Counterparty     string    `json:"counterparty,omitempty"`
	Severity         Severity  `json:"severity"`
	Category         string    `json:"category"`
	Detail           string    `json:"detail"`
	RiskScore        uint8     `json:"risk_score"`
	ReporterNonce    uint64    `json:"reporter_nonce"`
	NetworkID        string    `json:"network_id"`
	BlockHeight      uint64    `json:"block_height"`
	OccurredAt       time.Time `json:"occurred_at"`
	ResourceUsage    uint64    `json:"resource_usage"`
	ValueMoved       uint64    `json:"value_moved"`
	StateFingerprint []byte    `json:"state_fingerprint,omitempty"`
	TxFingerprint    []byte    `json:"tx_fingerprint,omitempty"`
	SelectorTag      string    `json:"selector_tag,omitempty"`
	SchemaVersion    int       `json:"schema_version"`
	ActionRequired   bool      `json:"action_required"`
	UpgradedLogic    bool      `json:"upgraded_logic"`
	Environment      string    `json:"environment"`
	CorrelationID    string    `json:"correlation_id,omitempty"`
	PolicyHash       string    `json:"policy_hash,omitempty"`
	SequenceID       uint64    `json:"sequence_id"`
	Metadata         []byte    `json:"metadata,omitempty"`
	Proof            []byte    `json:"proof,omitempty"`
}

// MaxRiskScore caps the numeric risk dimension.
const MaxRiskScore = 100
