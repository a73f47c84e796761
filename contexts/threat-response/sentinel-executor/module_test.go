package sentinelexecutor_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	sentinelexecutor "warden/contexts/threat-response/sentinel-executor"
	"warden/contexts/threat-response/sentinel-executor/application/commands"
	domainerrors "warden/contexts/threat-response/sentinel-executor/domain/errors"
	"warden/contexts/threat-response/sentinel-executor/ports"
	"warden/internal/platform/pauseguard"
	"warden/internal/shared/events"
)

type stubAuthority struct {
	allow bool
}

func (a stubAuthority) IsOperationAllowed(context.Context, string, string) (bool, error) {
	return a.allow, nil
}

type captureRecorder struct {
	entries []ports.AuditEntry
}

func (r *captureRecorder) RecordSecurityEvent(_ context.Context, entry ports.AuditEntry) (uint64, error) {
	r.entries = append(r.entries, entry)
	return uint64(len(r.entries) - 1), nil
}

func newTestExecutor(t *testing.T) (sentinelexecutor.Module, *pauseguard.Guard, *captureRecorder) {
	t.Helper()
	pause := pauseguard.New()
	recorder := &captureRecorder{}
	module := sentinelexecutor.NewInMemoryModule(slog.Default(), pause, stubAuthority{allow: true}, recorder)
	return module, pause, recorder
}

func TestEvaluateFiresOnlyOnCriticalAtThreshold(t *testing.T) {
	ctx := context.Background()
	module, pause, recorder := newTestExecutor(t)

	cases := []struct {
		name      string
		severity  string
		riskScore uint8
		fire      bool
	}{
		{"critical at threshold", "critical", 90, true},
		{"critical above threshold", "critical", 97, true},
		{"critical below threshold", "critical", 89, false},
		{"high severity at max risk", "error", 100, false},
		{"warning at max risk", "warning", 100, false},
	}

	for _, tc := range cases {
		if err := pause.Resume(ctx); err != nil {
			t.Fatalf("%s: resume: %v", tc.name, err)
		}
		result, err := module.Evaluate.Execute(ctx, commands.EvaluateCommand{
			SequenceID: 1,
			Source:     "threat-response/circuit-breaker",
			Severity:   tc.severity,
			RiskScore:  tc.riskScore,
		})
		if err != nil {
			t.Fatalf("%s: evaluate: %v", tc.name, err)
		}
		if result.Paused != tc.fire {
			t.Fatalf("%s: expected fired=%t, got %t", tc.name, tc.fire, result.Paused)
		}
		paused, err := pause.IsPaused(ctx)
		if err != nil {
			t.Fatalf("%s: pause state: %v", tc.name, err)
		}
		if paused != tc.fire {
			t.Fatalf("%s: expected pause=%t, got %t", tc.name, tc.fire, paused)
		}
	}

	fired := 0
	for _, entry := range recorder.entries {
		if entry.Category == "auto_pause_triggered" {
			fired++
		}
	}
	if fired != 2 {
		t.Fatalf("expected 2 auto_pause_triggered records, got %d", fired)
	}
}

func TestUpdateThresholdBoundsAndAuthority(t *testing.T) {
	ctx := context.Background()
	module, _, _ := newTestExecutor(t)

	if err := module.Handler.UpdateThreshold.Execute(ctx, commands.UpdateThresholdCommand{Actor: "ops-1", Threshold: 101}); !errors.Is(err, domainerrors.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration above 100, got %v", err)
	}
	if err := module.Handler.UpdateThreshold.Execute(ctx, commands.UpdateThresholdCommand{Actor: "ops-1", Threshold: 50}); err != nil {
		t.Fatalf("update threshold: %v", err)
	}

	status, err := module.Handler.Status.Execute(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.AutoPauseThreshold != 50 {
		t.Fatalf("expected threshold 50, got %d", status.AutoPauseThreshold)
	}

	denied := sentinelexecutor.NewInMemoryModule(slog.Default(), pauseguard.New(), stubAuthority{allow: false}, &captureRecorder{})
	if err := denied.Handler.UpdateThreshold.Execute(ctx, commands.UpdateThresholdCommand{Actor: "rogue", Threshold: 10}); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestStreamConsumerDedupesBySequenceID(t *testing.T) {
	ctx := context.Background()
	module, pause, recorder := newTestExecutor(t)

	envelope := events.Envelope{
		EventID:    "evt-1",
		EventType:  events.TopicAuditRecorded,
		SequenceID: 7,
		Reporter:   "threat-response/circuit-breaker",
		Severity:   "critical",
		Payload:    map[string]any{"risk_score": 95, "action_required": true},
	}

	if err := module.Consumer.Handle(ctx, envelope); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if paused, _ := pause.IsPaused(ctx); !paused {
		t.Fatal("first delivery must trip the pause")
	}

	if err := pause.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := module.Consumer.Handle(ctx, envelope); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if paused, _ := pause.IsPaused(ctx); paused {
		t.Fatal("redelivery of the same sequence id must not re-fire the gate")
	}

	fired := 0
	for _, entry := range recorder.entries {
		if entry.Category == "auto_pause_triggered" {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("expected exactly 1 auto-pause record, got %d", fired)
	}
}

func TestStreamConsumerHandlesJSONDecodedPayload(t *testing.T) {
	ctx := context.Background()
	module, pause, _ := newTestExecutor(t)

	// A payload that crossed a JSON boundary arrives with float64 numbers.
	envelope := events.Envelope{
		EventID:    "evt-2",
		SequenceID: 8,
		Severity:   "critical",
		Payload:    map[string]any{"risk_score": float64(92)},
	}
	if err := module.Consumer.Handle(ctx, envelope); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if paused, _ := pause.IsPaused(ctx); !paused {
		t.Fatal("float64 risk score must still trip the gate")
	}
}
