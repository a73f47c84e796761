package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "warden/contexts/threat-response/threat-surface/application"
	"warden/contexts/threat-response/threat-surface/domain/entities"
	domainerrors "warden/contexts/threat-response/threat-surface/domain/errors"
	"warden/contexts/threat-response/threat-surface/ports"
	"warden/internal/shared/guard"
)

// RoleCoordinator is the capability tag required for surface mutations.
const RoleCoordinator = "coordinator"

// LogThreatCommand reports one hostile sighting.
type LogThreatCommand struct {
	Actor         string
	Description   string
	Risk          string
	PatternID     string
	Suspect       string
	CorrelationID string
}

// LogThreatResult describes the committed sighting.
type LogThreatResult struct {
	Event             entities.ThreatEvent
	PatternRegistered bool
	SuspectPinned     bool
}

// LogThreatUseCase appends a sighting to the history. Elevated risk
// auto-registers the named pattern (idempotently) and pins the suspect's
// score to the ceiling. The forensic record is mandatory here: if it cannot
// be written every side effect of the sighting is unwound.
type LogThreatUseCase struct {
	Catalog     ports.Catalog
	History     ports.History
	Suspects    ports.Suspects
	Authority   ports.Authority
	Recorder    ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Guard       *guard.Guard
	Logger      *slog.Logger
}

func (u LogThreatUseCase) Execute(ctx context.Context, cmd LogThreatCommand) (LogThreatResult, error) {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return LogThreatResult{}, err
	}
	defer release()

	if strings.TrimSpace(cmd.Actor) == "" {
		return LogThreatResult{}, domainerrors.ErrMissingActor
	}
	if strings.TrimSpace(cmd.Description) == "" || strings.TrimSpace(cmd.PatternID) == "" {
		return LogThreatResult{}, domainerrors.ErrInvalidConfiguration
	}
	risk, ok := entities.ParseRiskLevel(cmd.Risk)
	if !ok {
		return LogThreatResult{}, domainerrors.ErrInvalidConfiguration
	}

	allowed, err := u.Authority.IsOperationAllowed(ctx, cmd.Actor, RoleCoordinator)
	if err != nil {
		return LogThreatResult{}, err
	}
	if !allowed {
		return LogThreatResult{}, domainerrors.ErrUnauthorized
	}

	now := u.Clock.Now().UTC()
	event := entities.ThreatEvent{
		EventID:     u.IDGenerator.NewID(),
		Description: cmd.Description,
		Risk:        risk,
		PatternID:   cmd.PatternID,
		Suspect:     cmd.Suspect,
		ReportedBy:  cmd.Actor,
		LoggedAt:    now,
	}
	if err := u.History.AppendThreat(ctx, event); err != nil {
		return LogThreatResult{}, err
	}

	result := LogThreatResult{Event: event}
	var priorScore entities.SuspectScore
	var hadPriorScore bool

	if risk.Elevated() {
		registered, err := u.Catalog.HasPattern(ctx, cmd.PatternID)
		if err != nil {
			u.unwind(ctx, logger, event, result, priorScore, hadPriorScore)
			return LogThreatResult{}, err
		}
		if !registered {
			if err := u.Catalog.RegisterPattern(ctx, entities.ThreatPattern{
				PatternID:    cmd.PatternID,
				Description:  cmd.Description,
				Source:       entities.PatternSourceAuto,
				RegisteredBy: cmd.Actor,
				RegisteredAt: now,
			}); err != nil {
				u.unwind(ctx, logger, event, result, priorScore, hadPriorScore)
				return LogThreatResult{}, err
			}
			result.PatternRegistered = true
		}

		if strings.TrimSpace(cmd.Suspect) != "" {
			priorScore, hadPriorScore, err = u.Suspects.SuspectScore(ctx, cmd.Suspect)
			if err != nil {
				u.unwind(ctx, logger, event, result, priorScore, false)
				return LogThreatResult{}, err
			}
			if err := u.Suspects.SetSuspectScore(ctx, entities.SuspectScore{
				Actor:     cmd.Suspect,
				Score:     entities.MaxSuspectScore,
				UpdatedAt: now,
			}); err != nil {
				u.unwind(ctx, logger, event, result, priorScore, false)
				return LogThreatResult{}, err
			}
			result.SuspectPinned = true
		}
	}

	severity := "warning"
	if risk.Elevated() {
		severity = "critical"
	}
	sequenceID, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:          cmd.Actor,
		Severity:       severity,
		Category:       "threat_logged",
		Detail:         fmt.Sprintf("pattern %s risk %s: %s", cmd.PatternID, risk, cmd.Description),
		RiskScore:      riskScoreFor(risk),
		CorrelationID:  cmd.CorrelationID,
		ActionRequired: risk.Elevated(),
	})
	if err != nil {
		u.unwind(ctx, logger, event, result, priorScore, hadPriorScore)
		return LogThreatResult{}, err
	}
	result.Event.SequenceID = sequenceID

	logger.Log(ctx, levelFor(risk), "threat logged",
		"event", "surface_threat_logged",
		"module", "threat-response/threat-surface",
		"layer", "application",
		"pattern_id", cmd.PatternID,
		"risk", risk.String(),
		"suspect", cmd.Suspect,
		"pattern_registered", result.PatternRegistered,
	)
	return result, nil
}

// unwind rolls back the side effects of a sighting whose mandatory forensic
// record could not be written. Rollback failures are logged, not returned;
// the original error is the one the caller needs.
func (u LogThreatUseCase) unwind(
	ctx context.Context,
	logger *slog.Logger,
	event entities.ThreatEvent,
	result LogThreatResult,
	priorScore entities.SuspectScore,
	hadPriorScore bool,
) {
	if result.SuspectPinned {
		var err error
		if hadPriorScore {
			err = u.Suspects.SetSuspectScore(ctx, priorScore)
		} else {
			err = u.Suspects.ClearSuspectScore(ctx, event.Suspect)
		}
		if err != nil {
			logger.Error("suspect score rollback failed",
				"event", "surface_suspect_rollback_failed",
				"module", "threat-response/threat-surface",
				"layer", "application",
				"suspect", event.Suspect,
				"error", err.Error(),
			)
		}
	}
	if result.PatternRegistered {
		if _, err := u.Catalog.RemovePattern(ctx, event.PatternID); err != nil {
			logger.Error("pattern rollback failed",
				"event", "surface_pattern_rollback_failed",
				"module", "threat-response/threat-surface",
				"layer", "application",
				"pattern_id", event.PatternID,
				"error", err.Error(),
			)
		}
	}
	if err := u.History.RemoveThreat(ctx, event.EventID); err != nil {
		logger.Error("history rollback failed",
			"event", "surface_history_rollback_failed",
			"module", "threat-response/threat-surface",
			"layer", "application",
			"event_id", event.EventID,
			"error", err.Error(),
		)
	}
}

func riskScoreFor(risk entities.RiskLevel) uint8 {
	switch risk {
	case entities.RiskCritical:
		return 100
	case entities.RiskHigh:
		return 85
	case entities.RiskMedium:
		return 50
	default:
		return 20
	}
}

func levelFor(risk entities.RiskLevel) slog.Level {
	if risk.Elevated() {
		return slog.LevelError
	}
	return slog.LevelWarn
}
