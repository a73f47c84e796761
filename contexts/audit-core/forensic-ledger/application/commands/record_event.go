package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "warden/contexts/audit-core/forensic-ledger/application"
	"warden/contexts/audit-core/forensic-ledger/domain/entities"
	domainerrors "warden/contexts/audit-core/forensic-ledger/domain/errors"
	"warden/contexts/audit-core/forensic-ledger/ports"
	"warden/internal/shared/events"
)

// RecordEventCommand is the transport-agnostic input for one ledger append.
// The sequence id, reporter nonce, and ordering anchor are assigned internally.
type RecordEventCommand struct {
	Source           string
	Actor            string
	Origin           string
	Counterparty     string
	Severity         entities.Severity
	Category         string
	Detail           string
	RiskScore        uint8
	BlockHeight      uint64
	ResourceUsage    uint64
	ValueMoved       uint64
	StateFingerprint []byte
	TxFingerprint    []byte
	SelectorTag      string
	ActionRequired   bool
	UpgradedLogic    bool
	CorrelationID    string
	PolicyHash       string
	Metadata         []byte
	Proof            []byte
}

// RecordEventResult carries the assigned ordering identifiers.
type RecordEventResult struct {
	SequenceID    uint64    `json:"sequence_id"`
	ReporterNonce uint64    `json:"reporter_nonce"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// RecordEventUseCase appends one record to the forensic ledger. This is the
// most frequently called primitive in the core: malformed input is rejected
// before the counter advances, and a subscriber delivery failure is logged and
// swallowed so it can never roll back the append.
type RecordEventUseCase struct {
	Repository  ports.Repository
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	NetworkID   string
	Environment string
	Logger      *slog.Logger
}

// Execute validates, appends, and notifies.
func (u RecordEventUseCase) Execute(ctx context.Context, cmd RecordEventCommand) (RecordEventResult, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.Source) == "" {
		return RecordEventResult{}, domainerrors.ErrMissingSource
	}
	if strings.TrimSpace(cmd.Category) == "" {
		return RecordEventResult{}, domainerrors.ErrMissingCategory
	}
	if !cmd.Severity.Valid() {
		return RecordEventResult{}, domainerrors.ErrInvalidSeverity
	}
	if cmd.RiskScore > entities.MaxRiskScore {
		return RecordEventResult{}, domainerrors.ErrInvalidRiskScore
	}
	if len(cmd.StateFingerprint) != 0 && len(cmd.StateFingerprint) != entities.FingerprintSize {
		return RecordEventResult{}, domainerrors.ErrInvalidFingerprint
	}
	if len(cmd.TxFingerprint) != 0 && len(cmd.TxFingerprint) != entities.FingerprintSize {
		return RecordEventResult{}, domainerrors.ErrInvalidFingerprint
	}

	now := u.now()
	stored, err := u.Repository.Append(ctx, entities.ForensicRecord{
		Source:           cmd.Source,
		Actor:            cmd.Actor,
		Origin:           cmd.Origin,
		Counterparty:     cmd.Counterparty,
		Severity:         cmd.Severity,
		Category:         cmd.Category,
		Detail:           cmd.Detail,
		RiskScore:        cmd.RiskScore,
		NetworkID:        u.NetworkID,
		BlockHeight:      cmd.BlockHeight,
		OccurredAt:       now,
		ResourceUsage:    cmd.ResourceUsage,
		ValueMoved:       cmd.ValueMoved,
		StateFingerprint: cmd.StateFingerprint,
		TxFingerprint:    cmd.TxFingerprint,
		SelectorTag:      cmd.SelectorTag,
		SchemaVersion:    entities.RecordSchemaVersion,
		ActionRequired:   cmd.ActionRequired,
		UpgradedLogic:    cmd.UpgradedLogic,
		Environment:      u.Environment,
		CorrelationID:    cmd.CorrelationID,
		PolicyHash:       cmd.PolicyHash,
		Metadata:         cmd.Metadata,
		Proof:            cmd.Proof,
	})
	if err != nil {
		logger.Error("forensic append failed",
			"event", "ledger_append_failed",
			"module", "audit-core/forensic-ledger",
			"layer", "application",
			"source", cmd.Source,
			"category", cmd.Category,
			"error", err.Error(),
		)
		return RecordEventResult{}, err
	}

	u.notify(ctx, logger, stored)

	logger.Info("forensic record appended",
		"event", "ledger_record_appended",
		"module", "audit-core/forensic-ledger",
		"layer", "application",
		"sequence_id", stored.SequenceID,
		"source", stored.Source,
		"severity", stored.Severity.String(),
		"category", stored.Category,
	)

	return RecordEventResult{
		SequenceID:    stored.SequenceID,
		ReporterNonce: stored.ReporterNonce,
		OccurredAt:    stored.OccurredAt,
	}, nil
}

// notify publishes the audit.recorded envelope on a best-effort basis.
func (u RecordEventUseCase) notify(ctx context.Context, logger *slog.Logger, record entities.ForensicRecord) {
	if u.Publisher == nil {
		return
	}

	eventID := ""
	if u.IDGenerator != nil {
		if id, err := u.IDGenerator.NewID(ctx); err == nil {
			eventID = id
		}
	}

	envelope := events.Envelope{
		EventID:       eventID,
		EventType:     events.TopicAuditRecorded,
		SourceService: "warden",
		OccurredAtUTC: record.OccurredAt,
		CorrelationID: record.CorrelationID,
		SequenceID:    record.SequenceID,
		Reporter:      record.Source,
		Severity:      record.Severity.String(),
		Category:      record.Category,
		Payload: map[string]any{
			"risk_score":      record.RiskScore,
			"action_required": record.ActionRequired,
		},
	}
	if err := u.Publisher.Publish(ctx, events.TopicAuditRecorded, envelope); err != nil {
		logger.Warn("audit notification dropped",
			"event", "ledger_notify_failed",
			"module", "audit-core/forensic-ledger",
			"layer", "application",
			"sequence_id", record.SequenceID,
			"error", err.Error(),
		)
	}
}

func (u RecordEventUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
