package queries

import (
	"context"
	"log/slog"

	"warden/contexts/threat-response/sentinel-executor/ports"
)

// Status is the executor's externally visible state.
type Status struct {
	AutoPauseThreshold uint8
	Paused             bool
}

// StatusUseCase reports the threshold and the current pause state.
type StatusUseCase struct {
	Settings   ports.Settings
	PauseGuard ports.PauseGuard
	Logger     *slog.Logger
}

func (u StatusUseCase) Execute(ctx context.Context) (Status, error) {
	threshold, err := u.Settings.AutoPauseThreshold(ctx)
	if err != nil {
		return Status{}, err
	}
	paused, err := u.PauseGuard.IsPaused(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{AutoPauseThreshold: threshold, Paused: paused}, nil
}
