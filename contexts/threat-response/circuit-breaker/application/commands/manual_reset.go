package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "warden/contexts/threat-response/circuit-breaker/application"
	domainerrors "warden/contexts/threat-response/circuit-breaker/domain/errors"
	"warden/contexts/threat-response/circuit-breaker/ports"
	"warden/internal/shared/guard"
)

// ManualResetCommand zeroes the rolling window ahead of its expiry.
type ManualResetCommand struct {
	Actor string
}

// ManualResetUseCase clears accumulated volume and restarts the window at
// now. Coordinator tier, Warning record with the discarded volume.
type ManualResetUseCase struct {
	State     ports.StateStore
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Clock     ports.Clock
	Guard     *guard.Guard
	Logger    *slog.Logger
}

func (u ManualResetUseCase) Execute(ctx context.Context, cmd ManualResetCommand) error {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return err
	}
	defer release()

	if strings.TrimSpace(cmd.Actor) == "" {
		return domainerrors.ErrMissingActor
	}

	allowed, err := u.Authority.IsOperationAllowed(ctx, cmd.Actor, RoleCoordinator)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrUnauthorized
	}

	window, err := u.State.Window(ctx)
	if err != nil {
		return err
	}
	before := window

	window.CurrentVolume = 0
	window.WindowStart = u.Clock.Now().UTC()
	if err := u.State.SaveWindow(ctx, window); err != nil {
		return err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.Actor,
		Severity: "warning",
		Category: "breaker_manual_reset",
		Detail:   fmt.Sprintf("window reset, discarded volume %d", before.CurrentVolume),
	}); err != nil {
		if revertErr := u.State.SaveWindow(ctx, before); revertErr != nil {
			logger.Error("manual reset revert failed after audit failure",
				"event", "breaker_reset_revert_failed",
				"module", "threat-response/circuit-breaker",
				"layer", "application",
				"error", revertErr.Error(),
			)
		}
		return err
	}

	logger.Warn("breaker window manually reset",
		"event", "breaker_manual_reset",
		"module", "threat-response/circuit-breaker",
		"layer", "application",
		"actor", cmd.Actor,
		"discarded_volume", before.CurrentVolume,
	)
	return nil
}
