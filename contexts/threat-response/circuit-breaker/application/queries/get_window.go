package queries

import (
	"context"
	"log/slog"

	"warden/contexts/threat-response/circuit-breaker/domain/entities"
	"warden/contexts/threat-response/circuit-breaker/ports"
)

// GetWindowUseCase reports the rolling window as stored; it does not apply
// the lazy reset, so a stale CurrentVolume is visible until the next
// observation rolls the window over.
type GetWindowUseCase struct {
	State  ports.StateStore
	Logger *slog.Logger
}

func (u GetWindowUseCase) Execute(ctx context.Context) (entities.VolumeWindow, error) {
	return u.State.Window(ctx)
}
