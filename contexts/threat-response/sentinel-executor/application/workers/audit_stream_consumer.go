package workers

import (
	"context"
	"log/slog"

	application "warden/contexts/threat-response/sentinel-executor/application"
	"warden/contexts/threat-response/sentinel-executor/application/commands"
	"warden/contexts/threat-response/sentinel-executor/ports"
	"warden/internal/shared/events"
)

type auditPayload struct {
	RiskScore      uint8 `json:"risk_score"`
	ActionRequired bool  `json:"action_required"`
}

// AuditStreamConsumer feeds the evaluate gate from the audit.recorded
// stream. The bus may redeliver; sequence-id dedup makes evaluation
// effectively once per record.
type AuditStreamConsumer struct {
	Dedup    ports.Dedup
	Evaluate commands.EvaluateUseCase
	Logger   *slog.Logger
}

func (c AuditStreamConsumer) Handle(ctx context.Context, event events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	alreadySeen, err := c.Dedup.ReserveSequence(ctx, event.SequenceID)
	if err != nil || alreadySeen {
		return err
	}

	payload := decodePayload(event.Payload)

	result, err := c.Evaluate.Execute(ctx, commands.EvaluateCommand{
		SequenceID:    event.SequenceID,
		Source:        event.Reporter,
		Severity:      event.Severity,
		RiskScore:     payload.RiskScore,
		CorrelationID: event.CorrelationID,
	})
	if err != nil {
		return err
	}

	if result.Paused {
		logger.Warn("stream evaluation tripped the pause",
			"event", "sentinel_stream_pause",
			"module", "threat-response/sentinel-executor",
			"layer", "application",
			"sequence_id", event.SequenceID,
			"reporter", event.Reporter,
		)
	}
	return nil
}

// decodePayload tolerates both the in-process map shape and absent payloads.
func decodePayload(raw any) auditPayload {
	payload := auditPayload{}
	fields, ok := raw.(map[string]any)
	if !ok {
		return payload
	}
	switch score := fields["risk_score"].(type) {
	case uint8:
		payload.RiskScore = score
	case int:
		if score >= 0 && score <= 255 {
			payload.RiskScore = uint8(score)
		}
	case float64:
		if score >= 0 && score <= 255 {
			payload.RiskScore = uint8(score)
		}
	}
	if required, ok := fields["action_required"].(bool); ok {
		payload.ActionRequired = required
	}
	return payload
}
