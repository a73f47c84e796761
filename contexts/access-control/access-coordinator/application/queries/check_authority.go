package queries

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

// CheckAuthorityQuery is the request model for one RBAC evaluation.
type CheckAuthorityQuery struct {
	Actor string
	Role  string
}

// CheckAuthorityUseCase is the generic authority check every other module
// routes through. Lockdown closes the loophole where a narrowly-scoped role
// could bypass a global emergency: while active, every pair denies.
type CheckAuthorityUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u CheckAuthorityUseCase) Execute(ctx context.Context, query CheckAuthorityQuery) (entities.AuthorityDecision, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(query.Actor) == "" {
		return entities.AuthorityDecision{}, domainerrors.ErrMissingActor
	}
	role, ok := entities.ParseRole(query.Role)
	if !ok {
		return entities.AuthorityDecision{}, domainerrors.ErrUnknownRole
	}

	now := u.now()
	decision := entities.AuthorityDecision{
		Actor:     query.Actor,
		Role:      role,
		CheckedAt: now,
	}

	locked, err := u.Repository.LockdownState(ctx)
	if err != nil {
		return entities.AuthorityDecision{}, err
	}
	if locked {
		decision.Allowed = false
		decision.Reason = entities.ReasonLockdownActive
		logger.Warn("authority denied by lockdown",
			"event", "authority_check_lockdown_denied",
			"module", "access-control/access-coordinator",
			"layer", "application",
			"actor", query.Actor,
			"role", string(role),
		)
		return decision, nil
	}

	sovereign, err := u.Repository.HasRole(ctx, query.Actor, entities.RoleSovereign)
	if err != nil {
		return entities.AuthorityDecision{}, err
	}
	if sovereign {
		decision.Allowed = true
		decision.Reason = entities.ReasonSovereignOverride
		return decision, nil
	}

	granted, err := u.Repository.HasRole(ctx, query.Actor, role)
	if err != nil {
		return entities.AuthorityDecision{}, err
	}
	decision.Allowed = granted
	if granted {
		decision.Reason = entities.ReasonRoleGranted
	} else {
		decision.Reason = entities.ReasonRoleMissing
	}
	return decision, nil
}

// HasSovereignPowerUseCase resolves root-tier membership. Deliberately not
// lockdown-gated: release authority must remain resolvable while locked.
type HasSovereignPowerUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u HasSovereignPowerUseCase) Execute(ctx context.Context, actor string) (bool, error) {
	if strings.TrimSpace(actor) == "" {
		return false, domainerrors.ErrMissingActor
	}
	return u.Repository.HasRole(ctx, actor, entities.RoleSovereign)
}

func (u CheckAuthorityUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
