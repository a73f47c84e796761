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

// RegisterPatternCommand adds one pattern to the catalog by hand.
type RegisterPatternCommand struct {
	Actor       string
	PatternID   string
	Description string
}

// RegisterPatternUseCase performs a manual catalog insert. Unlike the
// auto-registration path, a duplicate id here is an operator mistake and is
// rejected.
type RegisterPatternUseCase struct {
	Catalog   ports.Catalog
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Clock     ports.Clock
	Guard     *guard.Guard
	Logger    *slog.Logger
}

func (u RegisterPatternUseCase) Execute(ctx context.Context, cmd RegisterPatternCommand) error {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return err
	}
	defer release()

	if strings.TrimSpace(cmd.Actor) == "" {
		return domainerrors.ErrMissingActor
	}
	if strings.TrimSpace(cmd.PatternID) == "" || strings.TrimSpace(cmd.Description) == "" {
		return domainerrors.ErrInvalidConfiguration
	}

	allowed, err := u.Authority.IsOperationAllowed(ctx, cmd.Actor, RoleCoordinator)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrUnauthorized
	}

	pattern := entities.ThreatPattern{
		PatternID:    cmd.PatternID,
		Description:  cmd.Description,
		Source:       entities.PatternSourceManual,
		RegisteredBy: cmd.Actor,
		RegisteredAt: u.Clock.Now().UTC(),
	}
	if err := u.Catalog.RegisterPattern(ctx, pattern); err != nil {
		return err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.Actor,
		Severity: "warning",
		Category: "pattern_registered",
		Detail:   fmt.Sprintf("pattern %s registered: %s", cmd.PatternID, cmd.Description),
	}); err != nil {
		if _, revertErr := u.Catalog.RemovePattern(ctx, cmd.PatternID); revertErr != nil {
			logger.Error("pattern register revert failed after audit failure",
				"event", "surface_register_revert_failed",
				"module", "threat-response/threat-surface",
				"layer", "application",
				"pattern_id", cmd.PatternID,
				"error", revertErr.Error(),
			)
		}
		return err
	}

	logger.Warn("pattern registered",
		"event", "surface_pattern_registered",
		"module", "threat-response/threat-surface",
		"layer", "application",
		"actor", cmd.Actor,
		"pattern_id", cmd.PatternID,
	)
	return nil
}

// RemovePatternCommand deletes one catalog entry.
type RemovePatternCommand struct {
	Actor     string
	PatternID string
}

// RemovePatternUseCase removes a pattern. Unknown ids are rejected.
type RemovePatternUseCase struct {
	Catalog   ports.Catalog
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Guard     *guard.Guard
	Logger    *slog.Logger
}

func (u RemovePatternUseCase) Execute(ctx context.Context, cmd RemovePatternCommand) error {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return err
	}
	defer release()

	if strings.TrimSpace(cmd.Actor) == "" {
		return domainerrors.ErrMissingActor
	}
	if strings.TrimSpace(cmd.PatternID) == "" {
		return domainerrors.ErrInvalidConfiguration
	}

	allowed, err := u.Authority.IsOperationAllowed(ctx, cmd.Actor, RoleCoordinator)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrUnauthorized
	}

	removed, err := u.Catalog.RemovePattern(ctx, cmd.PatternID)
	if err != nil {
		return err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.Actor,
		Severity: "warning",
		Category: "pattern_removed",
		Detail:   fmt.Sprintf("pattern %s removed", cmd.PatternID),
	}); err != nil {
		if revertErr := u.Catalog.RegisterPattern(ctx, removed); revertErr != nil {
			logger.Error("pattern remove revert failed after audit failure",
				"event", "surface_remove_revert_failed",
				"module", "threat-response/threat-surface",
				"layer", "application",
				"pattern_id", cmd.PatternID,
				"error", revertErr.Error(),
			)
		}
		return err
	}

	logger.Warn("pattern removed",
		"event", "surface_pattern_removed",
		"module", "threat-response/threat-surface",
		"layer", "application",
		"actor", cmd.Actor,
		"pattern_id", cmd.PatternID,
	)
	return nil
}
