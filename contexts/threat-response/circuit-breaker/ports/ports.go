package ports

import (
	"context"
	"time"

	"warden/contexts/threat-response/circuit-breaker/domain/entities"
)

// Clock abstracts time for deterministic window tests.
type Clock interface {
	Now() time.Time
}

// StateStore persists the single rolling window.
type StateStore interface {
	Window(ctx context.Context) (entities.VolumeWindow, error)
	SaveWindow(ctx context.Context, window entities.VolumeWindow) error
}

// Authority is the narrow slice of the access coordinator the breaker needs.
type Authority interface {
	IsOperationAllowed(ctx context.Context, actor string, role string) (bool, error)
}

// Escalator requests the machine escalation path on a breach. The adapter
// owns the service identity it escalates under; the breach abort never
// depends on the escalation outcome.
type Escalator interface {
	TriggerEmergencyPause(ctx context.Context, reason string) error
}

// AuditEntry is the breaker-local shape of a forensic report.
type AuditEntry struct {
	Actor          string
	Severity       string
	Category       string
	Detail         string
	RiskScore      uint8
	CorrelationID  string
	ActionRequired bool
}

// AuditRecorder reports security-relevant transitions to the forensic ledger.
type AuditRecorder interface {
	RecordSecurityEvent(ctx context.Context, entry AuditEntry) (uint64, error)
}
