package httpadapter

import (
	"context"
	"log/slog"

	application "warden/contexts/threat-response/threat-surface/application"
	"warden/contexts/threat-response/threat-surface/application/commands"
	"warden/contexts/threat-response/threat-surface/application/queries"
	httptransport "warden/contexts/threat-response/threat-surface/transport/http"
)

// Handler maps HTTP DTOs to surface commands/queries.
type Handler struct {
	LogThreat          commands.LogThreatUseCase
	RegisterPattern    commands.RegisterPatternUseCase
	RemovePattern      commands.RemovePatternUseCase
	IsThreatDetected   queries.IsThreatDetectedUseCase
	PatternCount       queries.PatternCountUseCase
	RegisteredPatterns queries.RegisteredPatternsUseCase
	SuspectScore       queries.SuspectScoreUseCase
	ThreatHistory      queries.ThreatHistoryUseCase
	Logger             *slog.Logger
}

// LogThreatHandler records one sighting.
func (h Handler) LogThreatHandler(
	ctx context.Context,
	actor string,
	request httptransport.LogThreatRequest,
) (httptransport.LogThreatResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	result, err := h.LogThreat.Execute(ctx, commands.LogThreatCommand{
		Actor:         actor,
		Description:   request.Description,
		Risk:          request.Risk,
		PatternID:     request.PatternID,
		Suspect:       request.Suspect,
		CorrelationID: request.CorrelationID,
	})
	if err != nil {
		logger.Warn("http threat log rejected",
			"event", "surface_http_log_rejected",
			"module", "threat-response/threat-surface",
			"layer", "transport",
			"pattern_id", request.PatternID,
			"error", err.Error(),
		)
		return httptransport.LogThreatResponse{}, err
	}
	return httptransport.LogThreatResponse{
		EventID:           result.Event.EventID,
		SequenceID:        result.Event.SequenceID,
		PatternRegistered: result.PatternRegistered,
		SuspectPinned:     result.SuspectPinned,
	}, nil
}

// RegisterPatternHandler adds one pattern by hand.
func (h Handler) RegisterPatternHandler(
	ctx context.Context,
	actor string,
	request httptransport.RegisterPatternRequest,
) (httptransport.StatusResponse, error) {
	if err := h.RegisterPattern.Execute(ctx, commands.RegisterPatternCommand{
		Actor:       actor,
		PatternID:   request.PatternID,
		Description: request.Description,
	}); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "pattern_registered"}, nil
}

// RemovePatternHandler deletes one catalog entry.
func (h Handler) RemovePatternHandler(ctx context.Context, actor string, patternID string) (httptransport.StatusResponse, error) {
	if err := h.RemovePattern.Execute(ctx, commands.RemovePatternCommand{
		Actor:     actor,
		PatternID: patternID,
	}); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "pattern_removed"}, nil
}

// ListPatternsHandler returns the catalog with its count.
func (h Handler) ListPatternsHandler(ctx context.Context) (httptransport.ListPatternsResponse, error) {
	patterns, err := h.RegisteredPatterns.Execute(ctx)
	if err != nil {
		return httptransport.ListPatternsResponse{}, err
	}
	count, err := h.PatternCount.Execute(ctx)
	if err != nil {
		return httptransport.ListPatternsResponse{}, err
	}
	items := make([]httptransport.PatternDTO, 0, len(patterns))
	for _, pattern := range patterns {
		items = append(items, httptransport.PatternDTO{
			PatternID:    pattern.PatternID,
			Description:  pattern.Description,
			Source:       pattern.Source,
			RegisteredBy: pattern.RegisteredBy,
			RegisteredAt: pattern.RegisteredAt,
		})
	}
	return httptransport.ListPatternsResponse{Count: count, Patterns: items}, nil
}

// SuspectScoreHandler reports one actor's suspicion score.
func (h Handler) SuspectScoreHandler(ctx context.Context, actor string) (httptransport.SuspectScoreResponse, error) {
	score, err := h.SuspectScore.Execute(ctx, actor)
	if err != nil {
		return httptransport.SuspectScoreResponse{}, err
	}
	response := httptransport.SuspectScoreResponse{Actor: score.Actor, Score: score.Score}
	if !score.UpdatedAt.IsZero() {
		updatedAt := score.UpdatedAt
		response.UpdatedAt = &updatedAt
	}
	return response, nil
}

// ThreatHistoryHandler lists recent sightings.
func (h Handler) ThreatHistoryHandler(ctx context.Context, limit int) (httptransport.ThreatHistoryResponse, error) {
	threats, err := h.ThreatHistory.Execute(ctx, limit)
	if err != nil {
		return httptransport.ThreatHistoryResponse{}, err
	}
	items := make([]httptransport.ThreatEventDTO, 0, len(threats))
	for _, threat := range threats {
		items = append(items, httptransport.ThreatEventDTO{
			EventID:     threat.EventID,
			Description: threat.Description,
			Risk:        threat.Risk.String(),
			PatternID:   threat.PatternID,
			Suspect:     threat.Suspect,
			ReportedBy:  threat.ReportedBy,
			LoggedAt:    threat.LoggedAt,
			SequenceID:  threat.SequenceID,
		})
	}
	return httptransport.ThreatHistoryResponse{Threats: items}, nil
}
