package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	application "warden/contexts/threat-response/circuit-breaker/application"
	"warden/contexts/threat-response/circuit-breaker/domain/entities"
	domainerrors "warden/contexts/threat-response/circuit-breaker/domain/errors"
	"warden/contexts/threat-response/circuit-breaker/ports"
	"warden/internal/shared/guard"
)

// ObserveCommand reports one unit of value flow to the breaker.
type ObserveCommand struct {
	Amount        uint64
	Origin        string
	CorrelationID string
}

// ObserveResult is the committed window state after a successful observation.
type ObserveResult struct {
	CurrentVolume uint64
	Threshold     uint64
	WindowStart   time.Time
	WindowReset   bool
}

// ObserveUseCase applies the breach check before the amount commits: a
// rejected observation leaves the window exactly as it found it. The roll
// over of an expired window commits independently of the verdict on the
// incoming amount, since the expiry is a fact about time, not about traffic.
type ObserveUseCase struct {
	State     ports.StateStore
	Recorder  ports.AuditRecorder
	Escalator ports.Escalator
	Clock     ports.Clock
	Guard     *guard.Guard
	Logger    *slog.Logger
}

func (u ObserveUseCase) Execute(ctx context.Context, cmd ObserveCommand) (ObserveResult, error) {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return ObserveResult{}, err
	}
	defer release()

	if cmd.Amount == 0 {
		return ObserveResult{}, domainerrors.ErrInvalidConfiguration
	}

	window, err := u.State.Window(ctx)
	if err != nil {
		return ObserveResult{}, err
	}

	now := u.Clock.Now().UTC()
	reset := false
	if window.Expired(now) {
		previous := window.CurrentVolume
		window.CurrentVolume = 0
		window.WindowStart = now
		reset = true
		if err := u.State.SaveWindow(ctx, window); err != nil {
			return ObserveResult{}, err
		}
		// Informational only; a deaf ledger must not stall traffic here.
		if _, recordErr := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
			Actor:         cmd.Origin,
			Severity:      "info",
			Category:      "volume_window_reset",
			Detail:        fmt.Sprintf("window rolled over, previous volume %d", previous),
			CorrelationID: cmd.CorrelationID,
		}); recordErr != nil {
			logger.Warn("window reset record failed",
				"event", "breaker_reset_record_failed",
				"module", "threat-response/circuit-breaker",
				"layer", "application",
				"error", recordErr.Error(),
			)
		}
	}

	if window.WouldBreach(cmd.Amount) {
		u.reportBreach(ctx, logger, window, cmd)
		return ObserveResult{}, domainerrors.ErrThresholdExceeded
	}

	window.CurrentVolume += cmd.Amount
	if err := u.State.SaveWindow(ctx, window); err != nil {
		return ObserveResult{}, err
	}

	return ObserveResult{
		CurrentVolume: window.CurrentVolume,
		Threshold:     window.Threshold,
		WindowStart:   window.WindowStart,
		WindowReset:   reset,
	}, nil
}

// reportBreach files the critical record and requests the machine pause.
// Neither outcome changes the verdict: the observation aborts regardless.
func (u ObserveUseCase) reportBreach(
	ctx context.Context,
	logger *slog.Logger,
	window entities.VolumeWindow,
	cmd ObserveCommand,
) {
	detail := fmt.Sprintf(
		"amount %d would push window volume %d past threshold %d",
		cmd.Amount, window.CurrentVolume, window.Threshold,
	)

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:          cmd.Origin,
		Severity:       "critical",
		Category:       "volume_threshold_breached",
		Detail:         detail,
		RiskScore:      95,
		CorrelationID:  cmd.CorrelationID,
		ActionRequired: true,
	}); err != nil {
		logger.Error("breach record failed",
			"event", "breaker_breach_record_failed",
			"module", "threat-response/circuit-breaker",
			"layer", "application",
			"error", err.Error(),
		)
	}

	if err := u.Escalator.TriggerEmergencyPause(ctx, detail); err != nil {
		logger.Error("breach escalation failed",
			"event", "breaker_escalation_failed",
			"module", "threat-response/circuit-breaker",
			"layer", "application",
			"error", err.Error(),
		)
	}

	logger.Error("volume threshold breached",
		"event", "breaker_threshold_breached",
		"module", "threat-response/circuit-breaker",
		"layer", "application",
		"amount", cmd.Amount,
		"current_volume", window.CurrentVolume,
		"threshold", window.Threshold,
	)
}
