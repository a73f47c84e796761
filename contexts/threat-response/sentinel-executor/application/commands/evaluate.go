package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "warden/contexts/threat-response/sentinel-executor/application"
	"warden/contexts/threat-response/sentinel-executor/ports"
)

// SeverityCritical is the only severity the gate reacts to.
const SeverityCritical = "critical"

// EvaluateCommand is one record presented to the gate.
type EvaluateCommand struct {
	SequenceID    uint64
	Source        string
	Severity      string
	RiskScore     uint8
	CorrelationID string
}

// EvaluateResult reports whether the gate fired.
type EvaluateResult struct {
	Paused    bool
	Threshold uint8
}

// EvaluateUseCase is the stateless response gate: a critical record whose
// risk score reaches the threshold trips the pause. Anything else passes
// through untouched.
type EvaluateUseCase struct {
	Settings   ports.Settings
	PauseGuard ports.PauseGuard
	Recorder   ports.AuditRecorder
	Logger     *slog.Logger
}

func (u EvaluateUseCase) Execute(ctx context.Context, cmd EvaluateCommand) (EvaluateResult, error) {
	logger := application.ResolveLogger(u.Logger)

	threshold, err := u.Settings.AutoPauseThreshold(ctx)
	if err != nil {
		return EvaluateResult{}, err
	}
	result := EvaluateResult{Threshold: threshold}

	if !strings.EqualFold(cmd.Severity, SeverityCritical) || cmd.RiskScore < threshold {
		return result, nil
	}

	if err := u.PauseGuard.Pause(ctx); err != nil {
		return EvaluateResult{}, err
	}
	result.Paused = true

	// Best effort: the pause already holds, a deaf ledger must not lift it.
	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:          cmd.Source,
		Severity:       "emergency",
		Category:       "auto_pause_triggered",
		Detail:         fmt.Sprintf("record %d risk %d reached threshold %d", cmd.SequenceID, cmd.RiskScore, threshold),
		RiskScore:      cmd.RiskScore,
		CorrelationID:  cmd.CorrelationID,
		ActionRequired: true,
	}); err != nil {
		logger.Error("auto pause record failed",
			"event", "sentinel_pause_record_failed",
			"module", "threat-response/sentinel-executor",
			"layer", "application",
			"sequence_id", cmd.SequenceID,
			"error", err.Error(),
		)
	}

	logger.Error("automatic pause triggered",
		"event", "sentinel_auto_pause",
		"module", "threat-response/sentinel-executor",
		"layer", "application",
		"sequence_id", cmd.SequenceID,
		"source", cmd.Source,
		"risk_score", cmd.RiskScore,
		"threshold", threshold,
	)
	return result, nil
}
