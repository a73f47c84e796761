package httpadapter

import (
	"context"
	"log/slog"

	application "warden/contexts/access-control/access-coordinator/application"
	"warden/contexts/access-control/access-coordinator/application/commands"
	"warden/contexts/access-control/access-coordinator/application/queries"
	httptransport "warden/contexts/access-control/access-coordinator/transport/http"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	CheckAuthority  queries.CheckAuthorityUseCase
	SovereignPower  queries.HasSovereignPowerUseCase
	LockdownState   queries.LockdownStateUseCase
	ListSectors     queries.ListSectorsUseCase
	ListActorRoles  queries.ListActorRolesUseCase
	TriggerLockdown commands.TriggerLockdownUseCase
	ReleaseLockdown commands.ReleaseLockdownUseCase
	EmergencyPause  commands.TriggerEmergencyPauseUseCase
	SetSectorStatus commands.SetSectorStatusUseCase
	GrantRole       commands.GrantRoleUseCase
	RevokeRole      commands.RevokeRoleUseCase
	Logger          *slog.Logger
}

// CheckAuthorityHandler evaluates one role for one actor.
func (h Handler) CheckAuthorityHandler(
	ctx context.Context,
	actor string,
	request httptransport.CheckAuthorityRequest,
) (httptransport.CheckAuthorityResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	decision, err := h.CheckAuthority.Execute(ctx, queries.CheckAuthorityQuery{
		Actor: actor,
		Role:  request.Role,
	})
	if err != nil {
		logger.Error("http authority check failed",
			"event", "authority_http_check_failed",
			"module", "access-control/access-coordinator",
			"layer", "transport",
			"actor", actor,
			"role", request.Role,
			"error", err.Error(),
		)
		return httptransport.CheckAuthorityResponse{}, err
	}
	return httptransport.CheckAuthorityResponse{
		Actor:     decision.Actor,
		Role:      string(decision.Role),
		Allowed:   decision.Allowed,
		Reason:    decision.Reason,
		CheckedAt: decision.CheckedAt,
	}, nil
}

// LockdownStateHandler reports the global override.
func (h Handler) LockdownStateHandler(ctx context.Context) (httptransport.LockdownStateResponse, error) {
	active, err := h.LockdownState.Execute(ctx)
	if err != nil {
		return httptransport.LockdownStateResponse{}, err
	}
	return httptransport.LockdownStateResponse{Active: active}, nil
}

// TriggerLockdownHandler engages the global deny-all override.
func (h Handler) TriggerLockdownHandler(ctx context.Context, actor string) (httptransport.StatusResponse, error) {
	if err := h.TriggerLockdown.Execute(ctx, actor); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "lockdown_engaged"}, nil
}

// ReleaseLockdownHandler clears the global override.
func (h Handler) ReleaseLockdownHandler(ctx context.Context, actor string) (httptransport.StatusResponse, error) {
	if err := h.ReleaseLockdown.Execute(ctx, actor); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "lockdown_released"}, nil
}

// EmergencyPauseHandler raises the machine escalation signal.
func (h Handler) EmergencyPauseHandler(
	ctx context.Context,
	actor string,
	request httptransport.EmergencyPauseRequest,
) (httptransport.StatusResponse, error) {
	if err := h.EmergencyPause.Execute(ctx, commands.TriggerEmergencyPauseCommand{
		Actor:         actor,
		Reason:        request.Reason,
		CorrelationID: request.CorrelationID,
	}); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "emergency_pause_engaged"}, nil
}

// SetSectorStatusHandler toggles one functional domain.
func (h Handler) SetSectorStatusHandler(
	ctx context.Context,
	actor string,
	sectorID string,
	request httptransport.SetSectorStatusRequest,
) (httptransport.SectorStatusDTO, error) {
	status, err := h.SetSectorStatus.Execute(ctx, commands.SetSectorStatusCommand{
		Actor:    actor,
		SectorID: sectorID,
		Enabled:  request.Enabled,
	})
	if err != nil {
		return httptransport.SectorStatusDTO{}, err
	}
	return httptransport.SectorStatusDTO{
		SectorID:  status.SectorID,
		Enabled:   status.Enabled,
		UpdatedAt: status.UpdatedAt,
		UpdatedBy: status.UpdatedBy,
	}, nil
}

// ListSectorsHandler returns every sector flag.
func (h Handler) ListSectorsHandler(ctx context.Context) (httptransport.ListSectorsResponse, error) {
	sectors, err := h.ListSectors.Execute(ctx)
	if err != nil {
		return httptransport.ListSectorsResponse{}, err
	}
	items := make([]httptransport.SectorStatusDTO, 0, len(sectors))
	for _, sector := range sectors {
		items = append(items, httptransport.SectorStatusDTO{
			SectorID:  sector.SectorID,
			Enabled:   sector.Enabled,
			UpdatedAt: sector.UpdatedAt,
			UpdatedBy: sector.UpdatedBy,
		})
	}
	return httptransport.ListSectorsResponse{Sectors: items}, nil
}

// GrantRoleHandler assigns one capability tag to an actor.
func (h Handler) GrantRoleHandler(
	ctx context.Context,
	adminActor string,
	actor string,
	request httptransport.GrantRoleRequest,
) (httptransport.StatusResponse, error) {
	if err := h.GrantRole.Execute(ctx, commands.GrantRoleCommand{
		AdminActor: adminActor,
		Actor:      actor,
		Role:       request.Role,
	}); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "role_granted"}, nil
}

// RevokeRoleHandler removes one capability tag from an actor.
func (h Handler) RevokeRoleHandler(
	ctx context.Context,
	adminActor string,
	actor string,
	request httptransport.RevokeRoleRequest,
) (httptransport.StatusResponse, error) {
	if err := h.RevokeRole.Execute(ctx, commands.RevokeRoleCommand{
		AdminActor: adminActor,
		Actor:      actor,
		Role:       request.Role,
	}); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "role_revoked"}, nil
}

// ListActorRolesHandler enumerates one actor's capability tags.
func (h Handler) ListActorRolesHandler(ctx context.Context, actor string) (httptransport.ListActorRolesResponse, error) {
	roles, err := h.ListActorRoles.Execute(ctx, actor)
	if err != nil {
		return httptransport.ListActorRolesResponse{}, err
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return httptransport.ListActorRolesResponse{Actor: actor, Roles: names}, nil
}
