package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "warden/contexts/access-control/access-coordinator/application"
	"warden/contexts/access-control/access-coordinator/domain/entities"
	domainerrors "warden/contexts/access-control/access-coordinator/domain/errors"
	"warden/contexts/access-control/access-coordinator/ports"
)

// GrantRoleCommand assigns one capability tag to an actor.
type GrantRoleCommand struct {
	AdminActor string
	Actor      string
	Role       string
}

// GrantRoleUseCase records a capability grant. Sovereign tier only;
// duplicate grants are rejected rather than silently absorbed.
type GrantRoleUseCase struct {
	Repository ports.Repository
	Recorder   ports.AuditRecorder
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u GrantRoleUseCase) Execute(ctx context.Context, cmd GrantRoleCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.AdminActor) == "" || strings.TrimSpace(cmd.Actor) == "" {
		return domainerrors.ErrMissingActor
	}
	role, ok := entities.ParseRole(cmd.Role)
	if !ok {
		return domainerrors.ErrUnknownRole
	}

	allowed, err := evaluateAuthority(ctx, u.Repository, cmd.AdminActor, entities.RoleSovereign)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrUnauthorized
	}

	if err := u.Repository.GrantRole(ctx, cmd.Actor, role, resolveNow(u.Clock)); err != nil {
		return err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.AdminActor,
		Severity: "warning",
		Category: "role_granted",
		Detail:   fmt.Sprintf("role %s granted to %s", role, cmd.Actor),
	}); err != nil {
		if revertErr := u.Repository.RevokeRole(ctx, cmd.Actor, role); revertErr != nil {
			logger.Error("role grant revert failed after audit failure",
				"event", "authority_grant_revert_failed",
				"module", "access-control/access-coordinator",
				"layer", "application",
				"actor", cmd.Actor,
				"role", string(role),
				"error", revertErr.Error(),
			)
		}
		return err
	}

	logger.Info("role granted",
		"event", "authority_role_granted",
		"module", "access-control/access-coordinator",
		"layer", "application",
		"admin", cmd.AdminActor,
		"actor", cmd.Actor,
		"role", string(role),
	)
	return nil
}

// RevokeRoleCommand removes one capability tag from an actor.
type RevokeRoleCommand struct {
	AdminActor string
	Actor      string
	Role       string
}

// RevokeRoleUseCase removes a capability grant. Sovereign tier only.
type RevokeRoleUseCase struct {
	Repository ports.Repository
	Recorder   ports.AuditRecorder
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u RevokeRoleUseCase) Execute(ctx context.Context, cmd RevokeRoleCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.AdminActor) == "" || strings.TrimSpace(cmd.Actor) == "" {
		return domainerrors.ErrMissingActor
	}
	role, ok := entities.ParseRole(cmd.Role)
	if !ok {
		return domainerrors.ErrUnknownRole
	}

	allowed, err := evaluateAuthority(ctx, u.Repository, cmd.AdminActor, entities.RoleSovereign)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrUnauthorized
	}

	if err := u.Repository.RevokeRole(ctx, cmd.Actor, role); err != nil {
		return err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.AdminActor,
		Severity: "warning",
		Category: "role_revoked",
		Detail:   fmt.Sprintf("role %s revoked from %s", role, cmd.Actor),
	}); err != nil {
		if revertErr := u.Repository.GrantRole(ctx, cmd.Actor, role, resolveNow(u.Clock)); revertErr != nil {
			logger.Error("role revoke revert failed after audit failure",
				"event", "authority_revoke_revert_failed",
				"module", "access-control/access-coordinator",
				"layer", "application",
				"actor", cmd.Actor,
				"role", string(role),
				"error", revertErr.Error(),
			)
		}
		return err
	}

	logger.Info("role revoked",
		"event", "authority_role_revoked",
		"module", "access-control/access-coordinator",
		"layer", "application",
		"admin", cmd.AdminActor,
		"actor", cmd.Actor,
		"role", string(role),
	)
	return nil
}
