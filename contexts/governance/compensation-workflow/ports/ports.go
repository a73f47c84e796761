package ports

import (
	"context"
	"time"

	"warden/contexts/governance/compensation-workflow/domain/entities"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints proposal ids.
type IDGenerator interface {
	NewID() string
}

// Repository persists proposals.
type Repository interface {
	SaveProposal(ctx context.Context, proposal entities.Proposal) error
	DeleteProposal(ctx context.Context, proposalID string) error
	GetProposal(ctx context.Context, proposalID string) (entities.Proposal, error)
	ListProposals(ctx context.Context) ([]entities.Proposal, error)
}

// ReserveVault is the funding source for payouts. ReleaseFunds performs its
// own sufficient-balance check and fails atomically; Refund is its exact
// inverse, returning the funds to the reserve and reversing the recipient's
// payout when a workflow has to unwind after a successful release.
type ReserveVault interface {
	ReleaseFunds(ctx context.Context, recipient string, amount uint64) error
	Refund(ctx context.Context, recipient string, amount uint64) error
	Balance(ctx context.Context) (uint64, error)
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

// AuditRecorder reports workflow transitions to the forensic ledger.
type AuditRecorder interface {
	RecordSecurityEvent(ctx context.Context, entry AuditEntry) (uint64, error)
}
