package httpadapter

import (
	"context"
	"log/slog"

	application "warden/contexts/threat-response/circuit-breaker/application"
	"warden/contexts/threat-response/circuit-breaker/application/commands"
	"warden/contexts/threat-response/circuit-breaker/application/queries"
	httptransport "warden/contexts/threat-response/circuit-breaker/transport/http"
)

// Handler maps HTTP DTOs to breaker commands/queries.
type Handler struct {
	Observe         commands.ObserveUseCase
	UpdateThreshold commands.UpdateThresholdUseCase
	ManualReset     commands.ManualResetUseCase
	GetWindow       queries.GetWindowUseCase
	Logger          *slog.Logger
}

// ObserveHandler records one unit of value flow against the window.
func (h Handler) ObserveHandler(ctx context.Context, request httptransport.ObserveRequest) (httptransport.WindowResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	result, err := h.Observe.Execute(ctx, commands.ObserveCommand{
		Amount:        request.Amount,
		Origin:        request.Origin,
		CorrelationID: request.CorrelationID,
	})
	if err != nil {
		logger.Warn("http observe rejected",
			"event", "breaker_http_observe_rejected",
			"module", "threat-response/circuit-breaker",
			"layer", "transport",
			"amount", request.Amount,
			"error", err.Error(),
		)
		return httptransport.WindowResponse{}, err
	}
	return httptransport.WindowResponse{
		CurrentVolume: result.CurrentVolume,
		Threshold:     result.Threshold,
		WindowStart:   result.WindowStart,
		WindowReset:   result.WindowReset,
	}, nil
}

// UpdateThresholdHandler retunes the breach ceiling.
func (h Handler) UpdateThresholdHandler(
	ctx context.Context,
	actor string,
	request httptransport.UpdateThresholdRequest,
) (httptransport.StatusResponse, error) {
	if err := h.UpdateThreshold.Execute(ctx, commands.UpdateThresholdCommand{
		Actor:     actor,
		Threshold: request.Threshold,
	}); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "threshold_updated"}, nil
}

// ManualResetHandler zeroes the rolling window.
func (h Handler) ManualResetHandler(ctx context.Context, actor string) (httptransport.StatusResponse, error) {
	if err := h.ManualReset.Execute(ctx, commands.ManualResetCommand{Actor: actor}); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "window_reset"}, nil
}

// GetWindowHandler reports the stored window without applying lazy reset.
func (h Handler) GetWindowHandler(ctx context.Context) (httptransport.WindowResponse, error) {
	window, err := h.GetWindow.Execute(ctx)
	if err != nil {
		return httptransport.WindowResponse{}, err
	}
	return httptransport.WindowResponse{
		CurrentVolume:  window.CurrentVolume,
		Threshold:      window.Threshold,
		WindowStart:    window.WindowStart,
		WindowDuration: window.WindowDuration.String(),
	}, nil
}
