package upgradeauthorizer_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	upgradeauthorizer "warden/contexts/governance/upgrade-authorizer"
	"warden/contexts/governance/upgrade-authorizer/adapters/memory"
	"warden/contexts/governance/upgrade-authorizer/application/commands"
	"warden/contexts/governance/upgrade-authorizer/domain/entities"
	domainerrors "warden/contexts/governance/upgrade-authorizer/domain/errors"
	"warden/contexts/governance/upgrade-authorizer/ports"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type stubAuthority struct {
	allow bool
}

func (a stubAuthority) IsOperationAllowed(context.Context, string, string) (bool, error) {
	return a.allow, nil
}

type captureRecorder struct {
	entries []ports.AuditEntry
	fail    bool
}

func (r *captureRecorder) RecordSecurityEvent(_ context.Context, entry ports.AuditEntry) (uint64, error) {
	if r.fail {
		return 0, errors.New("audit sink unavailable")
	}
	r.entries = append(r.entries, entry)
	return uint64(len(r.entries) - 1), nil
}

func newTestAuthorizer(t *testing.T) (upgradeauthorizer.Module, *memory.Store, *stepClock, *captureRecorder) {
	t.Helper()

	store := memory.NewStore()
	clock := &stepClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	recorder := &captureRecorder{}
	module := upgradeauthorizer.NewModule(upgradeauthorizer.Dependencies{
		Store:     store,
		Authority: stubAuthority{allow: true},
		Recorder:  recorder,
		Clock:     clock,
		Logger:    slog.Default(),
	})
	return module, store, clock, recorder
}

func TestValidationAdvancesEpochAndRateLimitsImmediateRetry(t *testing.T) {
	ctx := context.Background()
	module, _, clock, recorder := newTestAuthorizer(t)

	for _, approver := range []string{"admin-1", "admin-2"} {
		if _, err := module.Approve.Execute(ctx, commands.ApproveUpgradeCommand{
			Approver:  approver,
			Candidate: "logic-v2",
		}); err != nil {
			t.Fatalf("approve by %s: %v", approver, err)
		}
	}

	result, err := module.Validate.Execute(ctx, commands.ValidateUpgradeCommand{
		Caller:    "admin-1",
		Candidate: "logic-v2",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.NewNonce != 1 {
		t.Fatalf("expected epoch nonce 1, got %d", result.NewNonce)
	}

	// Immediate revalidation sits inside the minimum interval.
	if _, err := module.Validate.Execute(ctx, commands.ValidateUpgradeCommand{
		Caller:    "admin-1",
		Candidate: "logic-v2",
	}); !errors.Is(err, domainerrors.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	// After the interval the old approvals are stranded in epoch 0.
	clock.Advance(memory.DefaultMinInterval + time.Minute)
	if _, err := module.Validate.Execute(ctx, commands.ValidateUpgradeCommand{
		Caller:    "admin-1",
		Candidate: "logic-v2",
	}); !errors.Is(err, domainerrors.ErrInsufficientApprovals) {
		t.Fatalf("expected ErrInsufficientApprovals in the new epoch, got %v", err)
	}

	validated := 0
	for _, entry := range recorder.entries {
		if entry.Category == "upgrade_validated" {
			validated++
			if entry.Severity != "critical" {
				t.Fatalf("validation must record critical, got %q", entry.Severity)
			}
		}
	}
	if validated != 1 {
		t.Fatalf("expected 1 validation record, got %d", validated)
	}
}

func TestDuplicateApprovalRejectedWithinEpoch(t *testing.T) {
	ctx := context.Background()
	module, _, _, _ := newTestAuthorizer(t)

	approve := commands.ApproveUpgradeCommand{Approver: "admin-1", Candidate: "logic-v2"}
	if _, err := module.Approve.Execute(ctx, approve); err != nil {
		t.Fatalf("first approval: %v", err)
	}
	if _, err := module.Approve.Execute(ctx, approve); !errors.Is(err, domainerrors.ErrAlreadyApproved) {
		t.Fatalf("expected ErrAlreadyApproved, got %v", err)
	}

	approved, err := module.HasApproved.Execute(ctx, "admin-1", "logic-v2")
	if err != nil {
		t.Fatalf("has approved: %v", err)
	}
	if !approved {
		t.Fatal("approval must be visible in the current epoch")
	}
}

func TestEpochAdvanceInvalidatesPriorApprovals(t *testing.T) {
	ctx := context.Background()
	module, store, clock, _ := newTestAuthorizer(t)

	for _, approver := range []string{"admin-1", "admin-2"} {
		if _, err := module.Approve.Execute(ctx, commands.ApproveUpgradeCommand{
			Approver:  approver,
			Candidate: "logic-v2",
		}); err != nil {
			t.Fatalf("approve by %s: %v", approver, err)
		}
	}
	if _, err := module.Validate.Execute(ctx, commands.ValidateUpgradeCommand{
		Caller:    "admin-1",
		Candidate: "logic-v2",
	}); err != nil {
		t.Fatalf("validate: %v", err)
	}

	approved, err := module.HasApproved.Execute(ctx, "admin-1", "logic-v2")
	if err != nil {
		t.Fatalf("has approved: %v", err)
	}
	if approved {
		t.Fatal("epoch advance must strand approvals from the previous nonce")
	}

	// The same approver can sign again in the fresh epoch.
	clock.Advance(time.Minute)
	if _, err := module.Approve.Execute(ctx, commands.ApproveUpgradeCommand{
		Approver:  "admin-1",
		Candidate: "logic-v2",
	}); err != nil {
		t.Fatalf("approval in new epoch: %v", err)
	}

	policy, err := store.Policy(ctx)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if policy.Nonce != 1 {
		t.Fatalf("expected nonce 1, got %d", policy.Nonce)
	}
}

func TestValidationBelowQuorumRejected(t *testing.T) {
	ctx := context.Background()
	module, _, _, _ := newTestAuthorizer(t)

	if _, err := module.Approve.Execute(ctx, commands.ApproveUpgradeCommand{
		Approver:  "admin-1",
		Candidate: "logic-v2",
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := module.Validate.Execute(ctx, commands.ValidateUpgradeCommand{
		Caller:    "admin-1",
		Candidate: "logic-v2",
	}); !errors.Is(err, domainerrors.ErrInsufficientApprovals) {
		t.Fatalf("expected ErrInsufficientApprovals, got %v", err)
	}
}

func TestValidationRollsBackEpochWhenAuditWriteFails(t *testing.T) {
	ctx := context.Background()
	module, store, _, recorder := newTestAuthorizer(t)

	for _, approver := range []string{"admin-1", "admin-2"} {
		if _, err := module.Approve.Execute(ctx, commands.ApproveUpgradeCommand{
			Approver:  approver,
			Candidate: "logic-v2",
		}); err != nil {
			t.Fatalf("approve by %s: %v", approver, err)
		}
	}

	recorder.fail = true
	if _, err := module.Validate.Execute(ctx, commands.ValidateUpgradeCommand{
		Caller:    "admin-1",
		Candidate: "logic-v2",
	}); err == nil {
		t.Fatal("expected validation to fail when the audit sink is down")
	}

	policy, err := store.Policy(ctx)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if policy.Nonce != 0 {
		t.Fatalf("epoch must roll back, got nonce %d", policy.Nonce)
	}
	if !policy.LastUpgrade.IsZero() {
		t.Fatal("last upgrade stamp must roll back")
	}

	// Approvals survive; the validation can be retried once the sink is up.
	recorder.fail = false
	if _, err := module.Validate.Execute(ctx, commands.ValidateUpgradeCommand{
		Caller:    "admin-1",
		Candidate: "logic-v2",
	}); err != nil {
		t.Fatalf("retry after sink recovery: %v", err)
	}
}

func TestAdminSettersValidateAndRecord(t *testing.T) {
	ctx := context.Background()
	module, store, _, recorder := newTestAuthorizer(t)

	if err := module.Handler.SetRequiredApprovals.Execute(ctx, commands.SetRequiredApprovalsCommand{Actor: "root", Required: 0}); !errors.Is(err, domainerrors.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration for zero quorum, got %v", err)
	}
	if err := module.Handler.SetMinInterval.Execute(ctx, commands.SetMinIntervalCommand{Actor: "root", MinInterval: 0}); !errors.Is(err, domainerrors.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration for zero interval, got %v", err)
	}

	if err := module.Handler.SetRequiredApprovals.Execute(ctx, commands.SetRequiredApprovalsCommand{Actor: "root", Required: 3}); err != nil {
		t.Fatalf("set quorum: %v", err)
	}
	if err := module.Handler.SetMinInterval.Execute(ctx, commands.SetMinIntervalCommand{Actor: "root", MinInterval: time.Hour}); err != nil {
		t.Fatalf("set interval: %v", err)
	}

	policy, err := store.Policy(ctx)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if policy.RequiredApprovals != 3 || policy.MinInterval != time.Hour {
		t.Fatalf("unexpected policy %+v", policy)
	}

	changed := 0
	for _, entry := range recorder.entries {
		if entry.Category == "upgrade_quorum_changed" || entry.Category == "upgrade_interval_changed" {
			changed++
		}
	}
	if changed != 2 {
		t.Fatalf("expected 2 policy change records, got %d", changed)
	}
}

func TestAuthorizerDeniesWithoutTier(t *testing.T) {
	ctx := context.Background()
	module := upgradeauthorizer.NewInMemoryModule(slog.Default(), stubAuthority{allow: false}, &captureRecorder{})

	if _, err := module.Approve.Execute(ctx, commands.ApproveUpgradeCommand{Approver: "rogue", Candidate: "x"}); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for approve, got %v", err)
	}
	if _, err := module.Validate.Execute(ctx, commands.ValidateUpgradeCommand{Caller: "rogue", Candidate: "x"}); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for validate, got %v", err)
	}
}

func TestApprovalKeyIsCompositePerCandidate(t *testing.T) {
	ctx := context.Background()
	module, store, _, _ := newTestAuthorizer(t)

	// One approver may sign distinct candidates in the same epoch.
	for _, candidate := range []string{"logic-v2", "logic-v3"} {
		if _, err := module.Approve.Execute(ctx, commands.ApproveUpgradeCommand{
			Approver:  "admin-1",
			Candidate: candidate,
		}); err != nil {
			t.Fatalf("approve %s: %v", candidate, err)
		}
	}

	for _, candidate := range []string{"logic-v2", "logic-v3"} {
		count, err := store.ApprovalCount(ctx, 0, candidate)
		if err != nil {
			t.Fatalf("count %s: %v", candidate, err)
		}
		if count != 1 {
			t.Fatalf("expected 1 approval for %s, got %d", candidate, count)
		}
	}
	approved, err := store.HasApproved(ctx, entities.ApprovalKey{Nonce: 0, Candidate: "logic-v2", Approver: "admin-1"})
	if err != nil {
		t.Fatalf("has approved: %v", err)
	}
	if !approved {
		t.Fatal("composite key lookup must find the recorded approval")
	}
}
