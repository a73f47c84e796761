package queries

import (
	"context"
	"log/slog"
	"strings"

	"warden/contexts/access-control/access-coordinator/domain/entities"
	domainerrors "warden/contexts/access-control/access-coordinator/domain/errors"
	"warden/contexts/access-control/access-coordinator/ports"
)

// LockdownStateUseCase exposes the single global lockdown bit.
type LockdownStateUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u LockdownStateUseCase) Execute(ctx context.Context) (bool, error) {
	return u.Repository.LockdownState(ctx)
}

// ListSectorsUseCase returns every sector flag in stable order.
type ListSectorsUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListSectorsUseCase) Execute(ctx context.Context) ([]entities.SectorStatus, error) {
	return u.Repository.ListSectors(ctx)
}

// ListActorRolesUseCase returns the capability tags one actor holds.
type ListActorRolesUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListActorRolesUseCase) Execute(ctx context.Context, actor string) ([]entities.Role, error) {
	if strings.TrimSpace(actor) == "" {
		return nil, domainerrors.ErrMissingActor
	}
	return u.Repository.ActorRoles(ctx, actor)
}
