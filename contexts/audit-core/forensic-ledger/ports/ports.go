package ports

import (
	"context"
	"time"

	"warden/contexts/audit-core/forensic-ledger/domain/entities"
	"warden/internal/shared/events"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for certificates and envelopes.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Repository is the append-only write/read boundary for the ledger.
// Append assigns the global sequence id and the per-reporter nonce atomically
// with the write; implementations must never reuse or skip an id for an
// accepted record.
type Repository interface {
	Append(ctx context.Context, record entities.ForensicRecord) (entities.ForensicRecord, error)
	GetRecord(ctx context.Context, sequenceID uint64) (entities.ForensicRecord, error)
	ListRecords(ctx context.Context, fromSequence uint64, limit int) ([]entities.ForensicRecord, error)
	CountRecords(ctx context.Context) (uint64, error)
}

// SealStore persists attestation certificates plus the resume cursor.
type SealStore interface {
	LastSealedSequence(ctx context.Context) (uint64, bool, error)
	SaveSeal(ctx context.Context, cert entities.SealCertificate, lastSequence uint64) error
	ListSeals(ctx context.Context) ([]entities.SealCertificate, error)
}

// EventPublisher notifies optional downstream subscribers. Publish failures
// are a subscriber problem, never the ledger's: callers log and continue.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, envelope events.Envelope) error
}
