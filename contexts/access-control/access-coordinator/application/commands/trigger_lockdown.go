package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "warden/contexts/access-control/access-coordinator/application"
	"warden/contexts/access-control/access-coordinator/domain/entities"
	domainerrors "warden/contexts/access-control/access-coordinator/domain/errors"
	"warden/contexts/access-control/access-coordinator/ports"
)

// TriggerLockdownUseCase flips the global deny-all override on. Sovereign
// tier only; the transition and its Critical audit record commit together or
// not at all.
type TriggerLockdownUseCase struct {
	Repository ports.Repository
	Recorder   ports.AuditRecorder
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u TriggerLockdownUseCase) Execute(ctx context.Context, actor string) error {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(actor) == "" {
		return domainerrors.ErrMissingActor
	}
	sovereign, err := u.Repository.HasRole(ctx, actor, entities.RoleSovereign)
	if err != nil {
		return err
	}
	if !sovereign {
		logger.Warn("lockdown trigger denied",
			"event", "authority_lockdown_denied",
			"module", "access-control/access-coordinator",
			"layer", "application",
			"actor", actor,
		)
		return domainerrors.ErrUnauthorized
	}

	locked, err := u.Repository.LockdownState(ctx)
	if err != nil {
		return err
	}
	if locked {
		return domainerrors.ErrLockdownActive
	}

	if err := u.Repository.SetLockdown(ctx, true); err != nil {
		return err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:          actor,
		Severity:       "critical",
		Category:       "lockdown_triggered",
		Detail:         "global lockdown engaged",
		ActionRequired: true,
	}); err != nil {
		// The transition must not outlive a failed mandatory audit write.
		if revertErr := u.Repository.SetLockdown(ctx, false); revertErr != nil {
			logger.Error("lockdown revert failed after audit failure",
				"event", "authority_lockdown_revert_failed",
				"module", "access-control/access-coordinator",
				"layer", "application",
				"actor", actor,
				"error", revertErr.Error(),
			)
		}
		return err
	}

	logger.Warn("global lockdown engaged",
		"event", "authority_lockdown_engaged",
		"module", "access-control/access-coordinator",
		"layer", "application",
		"actor", actor,
	)
	return nil
}

// ReleaseLockdownUseCase clears the global override. Sovereign-power
// resolution stays truthful during lockdown so this path remains reachable.
type ReleaseLockdownUseCase struct {
	Repository ports.Repository
	Recorder   ports.AuditRecorder
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u ReleaseLockdownUseCase) Execute(ctx context.Context, actor string) error {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(actor) == "" {
		return domainerrors.ErrMissingActor
	}
	sovereign, err := u.Repository.HasRole(ctx, actor, entities.RoleSovereign)
	if err != nil {
		return err
	}
	if !sovereign {
		return domainerrors.ErrUnauthorized
	}

	locked, err := u.Repository.LockdownState(ctx)
	if err != nil {
		return err
	}
	if !locked {
		return domainerrors.ErrLockdownNotActive
	}

	if err := u.Repository.SetLockdown(ctx, false); err != nil {
		return err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    actor,
		Severity: "critical",
		Category: "lockdown_released",
		Detail:   "global lockdown released",
	}); err != nil {
		if revertErr := u.Repository.SetLockdown(ctx, true); revertErr != nil {
			logger.Error("lockdown restore failed after audit failure",
				"event", "authority_lockdown_restore_failed",
				"module", "access-control/access-coordinator",
				"layer", "application",
				"actor", actor,
				"error", revertErr.Error(),
			)
		}
		return err
	}

	logger.Info("global lockdown released",
		"event", "authority_lockdown_released",
		"module", "access-control/access-coordinator",
		"layer", "application",
		"actor", actor,
	)
	return nil
}

func resolveNow(clock ports.Clock) time.Time {
	if clock != nil {
		return clock.Now().UTC()
	}
	return time.Now().UTC()
}
