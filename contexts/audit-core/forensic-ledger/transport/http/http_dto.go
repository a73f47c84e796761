package http

import "time"

// RecordEventRequest is the request body for appending one audit record.
// Fingerprint, metadata, and proof blobs travel base64-encoded.
type RecordEventRequest struct {
	Source           string `json:"source"`
	Actor            string `json:"actor,omitempty"`
	Origin           string `json:"origin,omitempty"`
	Counterparty     string `json:"counterparty,omitempty"`
	Severity         string `json:"severity"`
	Category         string `json:"category"`
	Detail           string `json:"detail,omitempty"`
	RiskScore        uint8  `json:"risk_score"`
	BlockHeight      uint64 `json:"block_height,omitempty"`
	ResourceUsage    uint64 `json:"resource_usage,omitempty"`
	ValueMoved       uint64 `json:"value_moved,omitempty"`
	StateFingerprint []byte `json:"state_fingerprint,omitempty"`
	TxFingerprint    []byte `json:"tx_fingerprint,omitempty"`
	SelectorTag      string `json:"selector_tag,omitempty"`
	ActionRequired   bool   `json:"action_required,omitempty"`
	UpgradedLogic    bool   `json:"upgraded_logic,omitempty"`
	CorrelationID    string `json:"correlation_id,omitempty"`
	PolicyHash       string `json:"policy_hash,omitempty"`
	Metadata         []byte `json:"metadata,omitempty"`
	Proof            []byte `json:"proof,omitempty"`
}

// RecordEventResponse returns the assigned ordering identifiers.
type RecordEventResponse struct {
	SequenceID    uint64    `json:"sequence_id"`
	ReporterNonce uint64    `json:"reporter_nonce"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// RecordDTO mirrors the stable audit record contract.
type RecordDTO struct {
	Source           string    `json:"source"`
	Actor            string    `json:"actor,omitempty"`
	Origin           string    `json:"origin,omitempty"`
	Counterparty     string    `json:"counterparty,omitempty"`
	Severity         string    `json:"severity"`
	Category         string    `json:"category"`
	Detail           string    `json:"detail,omitempty"`
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

// ListRecordsResponse is one sequence-ordered page.
type ListRecordsResponse struct {
	Records []RecordDTO `json:"records"`
	Total   uint64      `json:"total"`
}

// SealRequest triggers one sealing pass.
type SealRequest struct {
	BatchLimit int `json:"batch_limit,omitempty"`
}

// SealCertificateDTO describes one attestation certificate.
type SealCertificateDTO struct {
	CertificateID string    `json:"certificate_id"`
	Fingerprint   string    `json:"fingerprint"`
	NotarySeal    string    `json:"notary_seal"`
	Authority     string    `json:"authority"`
	FromSequence  uint64    `json:"from_sequence"`
	ToSequence    uint64    `json:"to_sequence"`
	RecordCount   int       `json:"record_count"`
	SealedAt      time.Time `json:"sealed_at"`
}

// SealResponse reports whether a certificate was produced.
type SealResponse struct {
	Sealed      bool                `json:"sealed"`
	Certificate *SealCertificateDTO `json:"certificate,omitempty"`
}

// ListSealsResponse carries every certificate in sealing order.
type ListSealsResponse struct {
	Seals []SealCertificateDTO `json:"seals"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
