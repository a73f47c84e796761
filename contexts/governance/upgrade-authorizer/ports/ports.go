package ports

import (
	"context"
	"time"

	"warden/contexts/governance/upgrade-authorizer/domain/entities"
)

// Clock abstracts time for deterministic rate-limit tests.
type Clock interface {
	Now() time.Time
}

// Store persists the policy and the epoch-scoped approval set.
type Store interface {
	Policy(ctx context.Context) (entities.Policy, error)
	SavePolicy(ctx context.Context, policy entities.Policy) error

	RecordApproval(ctx context.Context, approval entities.Approval) error
	RemoveApproval(ctx context.Context, key entities.ApprovalKey) error
	HasApproved(ctx context.Context, key entities.ApprovalKey) (bool, error)
	ApprovalCount(ctx context.Context, nonce uint64, candidate string) (int, error)
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

// AuditRecorder reports governance transitions to the forensic ledger.
type AuditRecorder interface {
	RecordSecurityEvent(ctx context.Context, entry AuditEntry) (uint64, error)
}
