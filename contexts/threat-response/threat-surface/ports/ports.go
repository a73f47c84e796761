package ports

import (
	"context"
	"time"

	"warden/contexts/threat-response/threat-surface/domain/entities"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints unique identifiers for threat events.
type IDGenerator interface {
	NewID() string
}

// Catalog is the pattern registry. Implementations must keep count and
// listing consistent and reject duplicate ids.
type Catalog interface {
	RegisterPattern(ctx context.Context, pattern entities.ThreatPattern) error
	RemovePattern(ctx context.Context, patternID string) (entities.ThreatPattern, error)
	HasPattern(ctx context.Context, patternID string) (bool, error)
	PatternCount(ctx context.Context) (int, error)
	ListPatterns(ctx context.Context) ([]entities.ThreatPattern, error)
}

// History is the append-only sighting log.
type History interface {
	AppendThreat(ctx context.Context, event entities.ThreatEvent) error
	ListThreats(ctx context.Context, limit int) ([]entities.ThreatEvent, error)
	RemoveThreat(ctx context.Context, eventID string) error
}

// Suspects is the per-actor suspicion read model.
type Suspects interface {
	SuspectScore(ctx context.Context, actor string) (entities.SuspectScore, bool, error)
	SetSuspectScore(ctx context.Context, score entities.SuspectScore) error
	ClearSuspectScore(ctx context.Context, actor string) error
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

// AuditRecorder reports sightings and catalog changes to the forensic ledger.
type AuditRecorder interface {
	RecordSecurityEvent(ctx context.Context, entry AuditEntry) (uint64, error)
}
