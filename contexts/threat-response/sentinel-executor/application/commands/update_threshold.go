package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "warden/contexts/threat-response/sentinel-executor/application"
	domainerrors "warden/contexts/threat-response/sentinel-executor/domain/errors"
	"warden/contexts/threat-response/sentinel-executor/ports"
)

// RoleCoordinator is the capability tag required for threshold tuning.
const RoleCoordinator = "coordinator"

// MaxAutoPauseThreshold bounds the tunable; risk scores live on [0, 100].
const MaxAutoPauseThreshold = 100

// UpdateThresholdCommand retunes the auto-pause trip point.
type UpdateThresholdCommand struct {
	Actor     string
	Threshold uint8
}

// UpdateThresholdUseCase changes the trip point. Coordinator tier; the
// change and its Warning record commit together or not at all.
type UpdateThresholdUseCase struct {
	Settings  ports.Settings
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Logger    *slog.Logger
}

func (u UpdateThresholdUseCase) Execute(ctx context.Context, cmd UpdateThresholdCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.Actor) == "" {
		return domainerrors.ErrMissingActor
	}
	if cmd.Threshold > MaxAutoPauseThreshold {
		return domainerrors.ErrInvalidConfiguration
	}

	allowed, err := u.Authority.IsOperationAllowed(ctx, cmd.Actor, RoleCoordinator)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrUnauthorized
	}

	before, err := u.Settings.AutoPauseThreshold(ctx)
	if err != nil {
		return err
	}
	if err := u.Settings.SetAutoPauseThreshold(ctx, cmd.Threshold); err != nil {
		return err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.Actor,
		Severity: "warning",
		Category: "sentinel_threshold_changed",
		Detail:   fmt.Sprintf("auto-pause threshold %d -> %d", before, cmd.Threshold),
	}); err != nil {
		if revertErr := u.Settings.SetAutoPauseThreshold(ctx, before); revertErr != nil {
			logger.Error("threshold revert failed after audit failure",
				"event", "sentinel_threshold_revert_failed",
				"module", "threat-response/sentinel-executor",
				"layer", "application",
				"error", revertErr.Error(),
			)
		}
		return err
	}

	logger.Warn("sentinel threshold changed",
		"event", "sentinel_threshold_changed",
		"module", "threat-response/sentinel-executor",
		"layer", "application",
		"actor", cmd.Actor,
		"previous", before,
		"threshold", cmd.Threshold,
	)
	return nil
}
