package queries

import (
	"context"
	"log/slog"
	"strings"

	"warden/contexts/threat-response/threat-surface/domain/entities"
	domainerrors "warden/contexts/threat-response/threat-surface/domain/errors"
	"warden/contexts/threat-response/threat-surface/ports"
)

// IsThreatDetectedUseCase reports whether a pattern id is in the catalog.
type IsThreatDetectedUseCase struct {
	Catalog ports.Catalog
	Logger  *slog.Logger
}

func (u IsThreatDetectedUseCase) Execute(ctx context.Context, patternID string) (bool, error) {
	if strings.TrimSpace(patternID) == "" {
		return false, domainerrors.ErrInvalidConfiguration
	}
	return u.Catalog.HasPattern(ctx, patternID)
}

// PatternCountUseCase reports the catalog size.
type PatternCountUseCase struct {
	Catalog ports.Catalog
	Logger  *slog.Logger
}

func (u PatternCountUseCase) Execute(ctx context.Context) (int, error) {
	return u.Catalog.PatternCount(ctx)
}

// RegisteredPatternsUseCase lists the catalog.
type RegisteredPatternsUseCase struct {
	Catalog ports.Catalog
	Logger  *slog.Logger
}

func (u RegisteredPatternsUseCase) Execute(ctx context.Context) ([]entities.ThreatPattern, error) {
	return u.Catalog.ListPatterns(ctx)
}

// SuspectScoreUseCase reports one actor's suspicion score; actors never
// sighted score zero.
type SuspectScoreUseCase struct {
	Suspects ports.Suspects
	Logger   *slog.Logger
}

func (u SuspectScoreUseCase) Execute(ctx context.Context, actor string) (entities.SuspectScore, error) {
	if strings.TrimSpace(actor) == "" {
		return entities.SuspectScore{}, domainerrors.ErrMissingActor
	}
	score, found, err := u.Suspects.SuspectScore(ctx, actor)
	if err != nil {
		return entities.SuspectScore{}, err
	}
	if !found {
		return entities.SuspectScore{Actor: actor}, nil
	}
	return score, nil
}

// ThreatHistoryUseCase lists the most recent sightings, newest first.
type ThreatHistoryUseCase struct {
	History ports.History
	Logger  *slog.Logger
}

func (u ThreatHistoryUseCase) Execute(ctx context.Context, limit int) ([]entities.ThreatEvent, error) {
	return u.History.ListThreats(ctx, limit)
}
