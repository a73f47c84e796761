package httpadapter

import (
	"context"
	"log/slog"

	"warden/contexts/threat-response/sentinel-executor/application/commands"
	"warden/contexts/threat-response/sentinel-executor/application/queries"
	httptransport "warden/contexts/threat-response/sentinel-executor/transport/http"
)

// Handler maps HTTP DTOs to executor commands/queries.
type Handler struct {
	Evaluate        commands.EvaluateUseCase
	UpdateThreshold commands.UpdateThresholdUseCase
	Status          queries.StatusUseCase
	Logger          *slog.Logger
}

// EvaluateHandler runs the gate against one record.
func (h Handler) EvaluateHandler(ctx context.Context, request httptransport.EvaluateRequest) (httptransport.EvaluateResponse, error) {
	result, err := h.Evaluate.Execute(ctx, commands.EvaluateCommand{
		SequenceID:    request.SequenceID,
		Source:        request.Source,
		Severity:      request.Severity,
		RiskScore:     request.RiskScore,
		CorrelationID: request.CorrelationID,
	})
	if err != nil {
		return httptransport.EvaluateResponse{}, err
	}
	return httptransport.EvaluateResponse{Paused: result.Paused, Threshold: result.Threshold}, nil
}

// UpdateThresholdHandler retunes the trip point.
func (h Handler) UpdateThresholdHandler(
	ctx context.Context,
	actor string,
	request httptransport.UpdateThresholdRequest,
) (httptransport.AckResponse, error) {
	if err := h.UpdateThreshold.Execute(ctx, commands.UpdateThresholdCommand{
		Actor:     actor,
		Threshold: request.Threshold,
	}); err != nil {
		return httptransport.AckResponse{}, err
	}
	return httptransport.AckResponse{Status: "threshold_updated"}, nil
}

// StatusHandler reports the threshold and pause state.
func (h Handler) StatusHandler(ctx context.Context) (httptransport.StatusResponse, error) {
	status, err := h.Status.Execute(ctx)
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{
		AutoPauseThreshold: status.AutoPauseThreshold,
		Paused:             status.Paused,
	}, nil
}
