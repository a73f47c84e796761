package ports

import "context"

// DefaultAutoPauseThreshold is the risk score a critical record must reach
// to trip the automatic pause.
const DefaultAutoPauseThreshold = 90

// PauseGuard is the halt switch the gate trips.
type PauseGuard interface {
	Pause(ctx context.Context) error
	IsPaused(ctx context.Context) (bool, error)
}

// Settings persists the single tunable threshold.
type Settings interface {
	AutoPauseThreshold(ctx context.Context) (uint8, error)
	SetAutoPauseThreshold(ctx context.Context, threshold uint8) error
}

// Dedup remembers which ledger sequence ids the stream consumer has already
// evaluated, so redelivery cannot double-fire the gate.
type Dedup interface {
	ReserveSequence(ctx context.Context, sequenceID uint64) (alreadySeen bool, err error)
}

// Authority is the narrow slice of the access coordinator this module needs.
type Authority interface {
	IsOperationAllowed(ctx context.Context, actor string, role string) (bool, error)
}

// AuditEntry is the module-local shape of a forensic report.
type AuditEntry struct {
	Actor          string
	Severity       string
	Category       string
	Detail         string
	RiskScore      uint8
	CorrelationID  string
	ActionRequired bool
}

// AuditRecorder reports executor actions to the forensic ledger.
type AuditRecorder interface {
	RecordSecurityEvent(ctx context.Context, entry AuditEntry) (uint64, error)
}
