package forensicledger_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	forensicledger "warden/contexts/audit-core/forensic-ledger"
	"warden/contexts/audit-core/forensic-ledger/adapters/memory"
	"warden/contexts/audit-core/forensic-ledger/application/commands"
	"warden/contexts/audit-core/forensic-ledger/domain/entities"
	domainerrors "warden/contexts/audit-core/forensic-ledger/domain/errors"
	"warden/internal/shared/events"
)

func TestRecordSequenceIDsAreGapFree(t *testing.T) {
	module := forensicledger.NewInMemoryModule(nil, nil)

	reporters := []string{"access-coordinator", "circuit-breaker", "threat-surface"}
	for i := 0; i < 9; i++ {
		result, err := module.Record.Execute(context.Background(), commands.RecordEventCommand{
			Source:   reporters[i%len(reporters)],
			Severity: entities.SeverityInfo,
			Category: "test_event",
		})
		if err != nil {
			t.Fatalf("record %d failed: %v", i, err)
		}
		if result.SequenceID != uint64(i) {
			t.Fatalf("expected sequence id %d, got %d", i, result.SequenceID)
		}
	}

	// Per-reporter nonces advance independently of the global sequence.
	record, err := module.Handler.GetRecordHandler(context.Background(), 3)
	if err != nil {
		t.Fatalf("get record failed: %v", err)
	}
	if record.ReporterNonce != 1 {
		t.Fatalf("expected reporter nonce 1 for second write by %s, got %d", record.Source, record.ReporterNonce)
	}
}

func TestRejectedWriteDoesNotBurnSequenceID(t *testing.T) {
	module := forensicledger.NewInMemoryModule(nil, nil)

	if _, err := module.Record.Execute(context.Background(), commands.RecordEventCommand{
		Source:   "",
		Severity: entities.SeverityInfo,
		Category: "test_event",
	}); !errors.Is(err, domainerrors.ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", err)
	}

	if _, err := module.Record.Execute(context.Background(), commands.RecordEventCommand{
		Source:    "circuit-breaker",
		Severity:  entities.SeverityInfo,
		Category:  "test_event",
		RiskScore: 101,
	}); !errors.Is(err, domainerrors.ErrInvalidRiskScore) {
		t.Fatalf("expected ErrInvalidRiskScore, got %v", err)
	}

	result, err := module.Record.Execute(context.Background(), commands.RecordEventCommand{
		Source:   "circuit-breaker",
		Severity: entities.SeverityInfo,
		Category: "test_event",
	})
	if err != nil {
		t.Fatalf("valid record failed: %v", err)
	}
	if result.SequenceID != 0 {
		t.Fatalf("expected first accepted write to take sequence id 0, got %d", result.SequenceID)
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(_ context.Context, _ string, _ events.Envelope) error {
	return errors.New("subscriber down")
}

func TestSubscriberFailureDoesNotRollBackAppend(t *testing.T) {
	module := forensicledger.NewInMemoryModule(nil, failingPublisher{})

	result, err := module.Record.Execute(context.Background(), commands.RecordEventCommand{
		Source:   "access-coordinator",
		Severity: entities.SeverityCritical,
		Category: "lockdown_triggered",
	})
	if err != nil {
		t.Fatalf("append failed on subscriber error: %v", err)
	}

	stored, err := module.Handler.GetRecordHandler(context.Background(), result.SequenceID)
	if err != nil {
		t.Fatalf("record not queryable after subscriber failure: %v", err)
	}
	if stored.Category != "lockdown_triggered" {
		t.Fatalf("unexpected category %q", stored.Category)
	}
}

func TestSealSegmentAdvancesCursor(t *testing.T) {
	module := forensicledger.NewInMemoryModule(nil, nil)

	for i := 0; i < 5; i++ {
		if _, err := module.Record.Execute(context.Background(), commands.RecordEventCommand{
			Source:   "threat-surface",
			Severity: entities.SeverityWarning,
			Category: "threat_logged",
		}); err != nil {
			t.Fatalf("record %d failed: %v", i, err)
		}
	}

	first, err := module.Seal.Execute(context.Background(), commands.SealSegmentCommand{})
	if err != nil {
		t.Fatalf("first seal failed: %v", err)
	}
	if !first.Sealed {
		t.Fatalf("expected first pass to seal")
	}
	if first.Certificate.FromSequence != 0 || first.Certificate.ToSequence != 4 {
		t.Fatalf("unexpected seal range %d-%d", first.Certificate.FromSequence, first.Certificate.ToSequence)
	}
	if len(first.Certificate.Fingerprint) != 64 {
		t.Fatalf("expected 64 hex chars of SHA-256, got %q", first.Certificate.Fingerprint)
	}

	// Cursor at head: the next pass is an idle no-op, not an error.
	second, err := module.Seal.Execute(context.Background(), commands.SealSegmentCommand{})
	if err != nil {
		t.Fatalf("idle seal pass failed: %v", err)
	}
	if second.Sealed {
		t.Fatalf("expected idle pass to seal nothing")
	}

	if _, err := module.Record.Execute(context.Background(), commands.RecordEventCommand{
		Source:   "threat-surface",
		Severity: entities.SeverityWarning,
		Category: "threat_logged",
	}); err != nil {
		t.Fatalf("record after seal failed: %v", err)
	}

	third, err := module.Seal.Execute(context.Background(), commands.SealSegmentCommand{})
	if err != nil {
		t.Fatalf("resumed seal failed: %v", err)
	}
	if !third.Sealed || third.Certificate.FromSequence != 5 || third.Certificate.ToSequence != 5 {
		t.Fatalf("expected resumed seal over sequence 5, got %+v", third.Certificate)
	}

	seals, err := module.Handler.ListSealsHandler(context.Background())
	if err != nil {
		t.Fatalf("list seals failed: %v", err)
	}
	if len(seals.Seals) != 2 {
		t.Fatalf("expected 2 certificates, got %d", len(seals.Seals))
	}
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type fixedIDs struct{ next int }

func (g *fixedIDs) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

func TestSealFingerprintIsDeterministic(t *testing.T) {
	build := func() string {
		store := memory.NewStore()
		module := forensicledger.NewModule(forensicledger.Dependencies{
			Repository:  store,
			Seals:       store,
			Clock:       fixedClock{at: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
			IDGenerator: &fixedIDs{},
			NetworkID:   "warden-test",
			Environment: "test",
			NotarySeal:  "WARDEN-FORENSIC-SEAL",
			Authority:   "warden-core",
		})
		for i := 0; i < 3; i++ {
			if _, err := module.Record.Execute(context.Background(), commands.RecordEventCommand{
				Source:   "upgrade-authorizer",
				Severity: entities.SeverityCritical,
				Category: "upgrade_executed",
				Detail:   "candidate-a",
			}); err != nil {
				t.Fatalf("record failed: %v", err)
			}
		}
		result, err := module.Seal.Execute(context.Background(), commands.SealSegmentCommand{})
		if err != nil || !result.Sealed {
			t.Fatalf("seal failed: %v", err)
		}
		return result.Certificate.Fingerprint
	}

	a, b := build(), build()
	if len(a) != 64 {
		t.Fatalf("unexpected fingerprint %q", a)
	}
	if a != b {
		t.Fatalf("fingerprints diverged for identical segments: %s vs %s", a, b)
	}
	if a != strings.ToUpper(a) {
		t.Fatalf("expected upper-case fingerprint, got %s", a)
	}
}
