package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	application "warden/contexts/access-control/access-coordinator/application"
	"warden/contexts/access-control/access-coordinator/domain/entities"
	domainerrors "warden/contexts/access-control/access-coordinator/domain/errors"
	"warden/contexts/access-control/access-coordinator/ports"
)

// SetSectorStatusCommand toggles one functional domain.
type SetSectorStatusCommand struct {
	Actor    string
	SectorID string
	Enabled  bool
}

// SetSectorStatusUseCase flips one sector flag without touching the global
// lockdown. Coordinator tier, logged at Warning with before/after values.
type SetSectorStatusUseCase struct {
	Repository ports.Repository
	Recorder   ports.AuditRecorder
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u SetSectorStatusUseCase) Execute(ctx context.Context, cmd SetSectorStatusCommand) (entities.SectorStatus, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.Actor) == "" {
		return entities.SectorStatus{}, domainerrors.ErrMissingActor
	}
	if strings.TrimSpace(cmd.SectorID) == "" {
		return entities.SectorStatus{}, domainerrors.ErrMissingSector
	}

	allowed, err := evaluateAuthority(ctx, u.Repository, cmd.Actor, entities.RoleCoordinator)
	if err != nil {
		return entities.SectorStatus{}, err
	}
	if !allowed {
		return entities.SectorStatus{}, domainerrors.ErrUnauthorized
	}

	before, err := u.Repository.SectorStatus(ctx, cmd.SectorID)
	if err != nil && !errors.Is(err, domainerrors.ErrSectorNotFound) {
		return entities.SectorStatus{}, err
	}
	known := err == nil

	status := entities.SectorStatus{
		SectorID:  cmd.SectorID,
		Enabled:   cmd.Enabled,
		UpdatedAt: resolveNow(u.Clock),
		UpdatedBy: cmd.Actor,
	}
	if err := u.Repository.SetSectorStatus(ctx, status); err != nil {
		return entities.SectorStatus{}, err
	}

	beforeText := "unregistered"
	if known {
		beforeText = fmt.Sprintf("enabled=%t", before.Enabled)
	}
	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.Actor,
		Severity: "warning",
		Category: "sector_status_changed",
		Detail:   fmt.Sprintf("sector %s: %s -> enabled=%t", cmd.SectorID, beforeText, cmd.Enabled),
	}); err != nil {
		if known {
			if revertErr := u.Repository.SetSectorStatus(ctx, before); revertErr != nil {
				logger.Error("sector revert failed after audit failure",
					"event", "authority_sector_revert_failed",
					"module", "access-control/access-coordinator",
					"layer", "application",
					"sector_id", cmd.SectorID,
					"error", revertErr.Error(),
				)
			}
		}
		return entities.SectorStatus{}, err
	}

	logger.Warn("sector status changed",
		"event", "authority_sector_changed",
		"module", "access-control/access-coordinator",
		"layer", "application",
		"actor", cmd.Actor,
		"sector_id", cmd.SectorID,
		"enabled", cmd.Enabled,
	)
	return status, nil
}
