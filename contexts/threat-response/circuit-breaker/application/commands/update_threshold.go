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

// RoleCoordinator is the capability tag required for breaker tuning.
const RoleCoordinator = "coordinator"

// UpdateThresholdCommand retunes the breach ceiling.
type UpdateThresholdCommand struct {
	Actor     string
	Threshold uint64
}

// UpdateThresholdUseCase changes the window threshold. Coordinator tier; the
// change and its Warning record commit together or not at all.
type UpdateThresholdUseCase struct {
	State     ports.StateStore
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Guard     *guard.Guard
	Logger    *slog.Logger
}

func (u UpdateThresholdUseCase) Execute(ctx context.Context, cmd UpdateThresholdCommand) error {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return err
	}
	defer release()

	if strings.TrimSpace(cmd.Actor) == "" {
		return domainerrors.ErrMissingActor
	}
	if cmd.Threshold == 0 {
		return domainerrors.ErrInvalidConfiguration
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
	before := window.Threshold
	window.Threshold = cmd.Threshold
	if err := u.State.SaveWindow(ctx, window); err != nil {
		return err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.Actor,
		Severity: "warning",
		Category: "breaker_threshold_changed",
		Detail:   fmt.Sprintf("threshold %d -> %d", before, cmd.Threshold),
	}); err != nil {
		window.Threshold = before
		if revertErr := u.State.SaveWindow(ctx, window); revertErr != nil {
			logger.Error("threshold revert failed after audit failure",
				"event", "breaker_threshold_revert_failed",
				"module", "threat-response/circuit-breaker",
				"layer", "application",
				"error", revertErr.Error(),
			)
		}
		return err
	}

	logger.Warn("breaker threshold changed",
		"event", "breaker_threshold_changed",
		"module", "threat-response/circuit-breaker",
		"layer", "application",
		"actor", cmd.Actor,
		"previous", before,
		"threshold", cmd.Threshold,
	)
	return nil
}
