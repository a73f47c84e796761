package commands

import (
	"context"
	"log/slog"
	"strings"

	application "warden/contexts/access-control/access-coordinator/application"
	"warden/contexts/access-control/access-coordinator/domain/entities"
	domainerrors "warden/contexts/access-control/access-coordinator/domain/errors"
	"warden/contexts/access-control/access-coordinator/ports"
)

// TriggerEmergencyPauseCommand is the machine-escalation input.
type TriggerEmergencyPauseCommand struct {
	Actor         string
	Reason        string
	CorrelationID string
}

// TriggerEmergencyPauseUseCase is the lighter-weight escalation path for
// registered automated responders: sentinel tier suffices, no sovereign
// privilege required. The pause engages before the Emergency record is
// written; a failed record rolls the pause back.
type TriggerEmergencyPauseUseCase struct {
	Repository ports.Repository
	Recorder   ports.AuditRecorder
	PauseGuard ports.PauseGuard
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u TriggerEmergencyPauseUseCase) Execute(ctx context.Context, cmd TriggerEmergencyPauseCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.Actor) == "" {
		return domainerrors.ErrMissingActor
	}
	if strings.TrimSpace(cmd.Reason) == "" {
		return domainerrors.ErrMissingReason
	}

	allowed, err := evaluateAuthority(ctx, u.Repository, cmd.Actor, entities.RoleSentinel)
	if err != nil {
		return err
	}
	if !allowed {
		logger.Warn("emergency pause denied",
			"event", "authority_emergency_pause_denied",
			"module", "access-control/access-coordinator",
			"layer", "application",
			"actor", cmd.Actor,
		)
		return domainerrors.ErrUnauthorized
	}

	if err := u.PauseGuard.Pause(ctx); err != nil {
		return err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:          cmd.Actor,
		Severity:       "emergency",
		Category:       "emergency_pause",
		Detail:         cmd.Reason,
		CorrelationID:  cmd.CorrelationID,
		ActionRequired: true,
	}); err != nil {
		if resumeErr := u.PauseGuard.Resume(ctx); resumeErr != nil {
			logger.Error("pause rollback failed after audit failure",
				"event", "authority_pause_rollback_failed",
				"module", "access-control/access-coordinator",
				"layer", "application",
				"actor", cmd.Actor,
				"error", resumeErr.Error(),
			)
		}
		return err
	}

	logger.Warn("emergency pause engaged",
		"event", "authority_emergency_pause_engaged",
		"module", "access-control/access-coordinator",
		"layer", "application",
		"actor", cmd.Actor,
		"reason", cmd.Reason,
	)
	return nil
}

// evaluateAuthority applies the shared authority rule: lockdown denies
// everything, the sovereign override passes everything else, and otherwise
// the explicit grant decides.
func evaluateAuthority(
	ctx context.Context,
	repository ports.Repository,
	actor string,
	role entities.Role,
) (bool, error) {
	locked, err := repository.LockdownState(ctx)
	if err != nil {
		return false, err
	}
	if locked {
		return false, nil
	}

	sovereign, err := repository.HasRole(ctx, actor, entities.RoleSovereign)
	if err != nil {
		return false, err
	}
	if sovereign {
		return true, nil
	}

	return repository.HasRole(ctx, actor, role)
}
