package entities

import "time"

// SealCertificate attests one contiguous ledger segment. The fingerprint is
// the upper-case SHA-256 of the segment's canonical (sorted-key) JSON, so any
// holder of the records can re-derive and verify it offline.
type SealCertificate struct {
	CertificateID string    `json:"certificate_id"`
	Fingerprint   string    `json:"fingerprint"`
	NotarySeal    string    `json:"notary_seal"`
	Authority     string    `json:"authority"`
	FromSequence  uint64    `json:"from_sequence"`
	ToSequence    uint64    `json:"to_sequence"`
	RecordCount   int       `json:"record_count"`
	SealedAt      time.Time `json:"sealed_at"`
}
