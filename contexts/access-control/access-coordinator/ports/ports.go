package ports

import (
	"context"
	"time"

	"warden/contexts/access-control/access-coordinator/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// Repository is the write/read boundary for authority state: actor-to-role
// grants, sector flags, and the single global lockdown bit. The execution
// environment serializes mutating calls, so reads always observe the latest
// committed value.
type Repository interface {
	HasRole(ctx context.Context, actor string, role entities.Role) (bool, error)
	ActorRoles(ctx context.Context, actor string) ([]entities.Role, error)
	GrantRole(ctx context.Context, actor string, role entities.Role, now time.Time) error
	RevokeRole(ctx context.Context, actor string, role entities.Role) error

	LockdownState(ctx context.Context) (bool, error)
	SetLockdown(ctx context.Context, active bool) error

	SectorStatus(ctx context.Context, sectorID string) (entities.SectorStatus, error)
	SetSectorStatus(ctx context.Context, status entities.SectorStatus) error
	ListSectors(ctx context.Context) ([]entities.SectorStatus, error)
}

// AuditEntry is the module-local shape handed to the forensic bridge.
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
// On mandatory paths a recorder failure aborts the caller's operation.
type AuditRecorder interface {
	RecordSecurityEvent(ctx context.Context, entry AuditEntry) (uint64, error)
}

// PauseGuard is the external pause capability engaged by emergency signals.
type PauseGuard interface {
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	IsPaused(ctx context.Context) (bool, error)
}
