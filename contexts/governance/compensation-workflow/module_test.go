package compensationworkflow_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	compensationworkflow "warden/contexts/governance/compensation-workflow"
	"warden/contexts/governance/compensation-workflow/adapters/memory"
	"warden/contexts/governance/compensation-workflow/application/commands"
	"warden/contexts/governance/compensation-workflow/domain/entities"
	domainerrors "warden/contexts/governance/compensation-workflow/domain/errors"
	"warden/contexts/governance/compensation-workflow/ports"
)

type roleAuthority struct {
	roles map[string]string
}

func (a roleAuthority) IsOperationAllowed(_ context.Context, actor string, role string) (bool, error) {
	return a.roles[actor] == role, nil
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

func (r *captureRecorder) byCategory(category string) []ports.AuditEntry {
	var out []ports.AuditEntry
	for _, entry := range r.entries {
		if entry.Category == category {
			out = append(out, entry)
		}
	}
	return out
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestWorkflow(t *testing.T, reserve uint64) (compensationworkflow.Module, *memory.Store, *memory.Vault, *captureRecorder) {
	t.Helper()

	store := memory.NewStore()
	vault := memory.NewVault(reserve)
	recorder := &captureRecorder{}
	authority := roleAuthority{roles: map[string]string{
		"root-1":      "sovereign",
		"treasurer-1": "treasurer",
		"auditor-1":   "auditor",
	}}
	module := compensationworkflow.NewModule(compensationworkflow.Dependencies{
		Repository:  store,
		Vault:       vault,
		Authority:   authority,
		Recorder:    recorder,
		Clock:       fixedClock{now: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)},
		IDGenerator: store,
		Logger:      slog.Default(),
	})
	module.Store = store
	module.Vault = vault
	return module, store, vault, recorder
}

func propose(t *testing.T, module compensationworkflow.Module, victim string, amount uint64) entities.Proposal {
	t.Helper()
	proposal, err := module.Propose.Execute(context.Background(), commands.ProposeCommand{
		Proposer: "root-1",
		Victim:   victim,
		Amount:   amount,
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	return proposal
}

func approve(t *testing.T, module compensationworkflow.Module, proposalID string) {
	t.Helper()
	if _, err := module.Approve.Execute(context.Background(), commands.ApproveCommand{
		Approver:   "auditor-1",
		ProposalID: proposalID,
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}
}

func TestFullWorkflowPaysOutOnce(t *testing.T) {
	ctx := context.Background()
	module, _, vault, recorder := newTestWorkflow(t, 10_000)

	proposal := propose(t, module, "victim-7", 2_500)
	approve(t, module, proposal.ProposalID)

	executed, err := module.Execute.Execute(ctx, commands.ExecuteCommand{
		Caller:     "anyone",
		ProposalID: proposal.ProposalID,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !executed.Executed || executed.ExecutedBy != "anyone" {
		t.Fatalf("latch not set: %+v", executed)
	}
	if got := vault.PaidTo("victim-7"); got != 2_500 {
		t.Fatalf("expected 2500 paid, got %d", got)
	}
	balance, err := module.ReserveBalance.Execute(ctx)
	if err != nil {
		t.Fatalf("reserve balance: %v", err)
	}
	if balance != 7_500 {
		t.Fatalf("expected balance 7500, got %d", balance)
	}

	if got := len(recorder.byCategory("compensation_executed")); got != 1 {
		t.Fatalf("expected 1 execution record, got %d", got)
	}

	// The latch is one-way: a second execution cannot double-pay.
	if _, err := module.Execute.Execute(ctx, commands.ExecuteCommand{
		Caller:     "anyone-else",
		ProposalID: proposal.ProposalID,
	}); !errors.Is(err, domainerrors.ErrAlreadyExecuted) {
		t.Fatalf("expected ErrAlreadyExecuted, got %v", err)
	}
	if got := vault.PaidTo("victim-7"); got != 2_500 {
		t.Fatalf("second execute moved funds: paid %d", got)
	}
}

func TestExecuteRequiresPriorApproval(t *testing.T) {
	ctx := context.Background()
	module, _, vault, _ := newTestWorkflow(t, 10_000)

	proposal := propose(t, module, "victim-1", 100)
	if _, err := module.Execute.Execute(ctx, commands.ExecuteCommand{
		Caller:     "anyone",
		ProposalID: proposal.ProposalID,
	}); !errors.Is(err, domainerrors.ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved, got %v", err)
	}
	if got := vault.PaidTo("victim-1"); got != 0 {
		t.Fatalf("unapproved proposal moved funds: %d", got)
	}
}

func TestDuplicateApprovalRejected(t *testing.T) {
	ctx := context.Background()
	module, _, _, _ := newTestWorkflow(t, 10_000)

	proposal := propose(t, module, "victim-2", 100)
	approve(t, module, proposal.ProposalID)

	if _, err := module.Approve.Execute(ctx, commands.ApproveCommand{
		Approver:   "auditor-1",
		ProposalID: proposal.ProposalID,
	}); !errors.Is(err, domainerrors.ErrAlreadyApproved) {
		t.Fatalf("expected ErrAlreadyApproved, got %v", err)
	}
}

func TestInsufficientReserveLeavesNoPartialEffects(t *testing.T) {
	ctx := context.Background()
	module, store, vault, recorder := newTestWorkflow(t, 500)

	proposal := propose(t, module, "victim-3", 9_000)
	approve(t, module, proposal.ProposalID)

	if _, err := module.Execute.Execute(ctx, commands.ExecuteCommand{
		Caller:     "anyone",
		ProposalID: proposal.ProposalID,
	}); !errors.Is(err, domainerrors.ErrInsufficientReserve) {
		t.Fatalf("expected ErrInsufficientReserve, got %v", err)
	}

	stored, err := store.GetProposal(ctx, proposal.ProposalID)
	if err != nil {
		t.Fatalf("get proposal: %v", err)
	}
	if stored.Executed {
		t.Fatal("latch must unwind when the vault rejects the release")
	}
	balance, _ := vault.Balance(ctx)
	if balance != 500 {
		t.Fatalf("reserve changed on failed payout: %d", balance)
	}
	if got := len(recorder.byCategory("compensation_executed")); got != 0 {
		t.Fatalf("failed payout recorded execution, got %d entries", got)
	}
}

func TestAuditFailureRefundsAndClearsLatch(t *testing.T) {
	ctx := context.Background()
	module, store, vault, recorder := newTestWorkflow(t, 10_000)

	proposal := propose(t, module, "victim-4", 4_000)
	approve(t, module, proposal.ProposalID)

	recorder.fail = true
	if _, err := module.Execute.Execute(ctx, commands.ExecuteCommand{
		Caller:     "anyone",
		ProposalID: proposal.ProposalID,
	}); err == nil {
		t.Fatal("expected execution to fail when the audit sink is down")
	}

	balance, _ := vault.Balance(ctx)
	if balance != 10_000 {
		t.Fatalf("expected full refund, balance %d", balance)
	}
	if got := vault.PaidTo("victim-4"); got != 0 {
		t.Fatalf("recipient payout survived the unwind: %d", got)
	}
	stored, err := store.GetProposal(ctx, proposal.ProposalID)
	if err != nil {
		t.Fatalf("get proposal: %v", err)
	}
	if stored.Executed {
		t.Fatal("latch must unwind when the execution record cannot be written")
	}

	// The workflow stays executable once the sink recovers.
	recorder.fail = false
	if _, err := module.Execute.Execute(ctx, commands.ExecuteCommand{
		Caller:     "anyone",
		ProposalID: proposal.ProposalID,
	}); err != nil {
		t.Fatalf("retry after sink recovery: %v", err)
	}
	if got := vault.PaidTo("victim-4"); got != 4_000 {
		t.Fatalf("expected single payout of 4000 after retry, got %d", got)
	}
}

func TestProposalRevertedWhenAuditWriteFails(t *testing.T) {
	ctx := context.Background()
	module, _, _, recorder := newTestWorkflow(t, 10_000)

	recorder.fail = true
	if _, err := module.Propose.Execute(ctx, commands.ProposeCommand{
		Proposer: "root-1",
		Victim:   "victim-5",
		Amount:   100,
	}); err == nil {
		t.Fatal("expected propose to fail when the audit sink is down")
	}

	proposals, err := module.ListProposals.Execute(ctx)
	if err != nil {
		t.Fatalf("list proposals: %v", err)
	}
	if len(proposals) != 0 {
		t.Fatalf("proposal survived audit failure: %d stored", len(proposals))
	}
}

func TestTierGating(t *testing.T) {
	ctx := context.Background()
	module, _, _, _ := newTestWorkflow(t, 10_000)

	if _, err := module.Propose.Execute(ctx, commands.ProposeCommand{
		Proposer: "auditor-1",
		Victim:   "victim-6",
		Amount:   100,
	}); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("non-sovereign propose: expected ErrUnauthorized, got %v", err)
	}

	// Treasurer tier proposes without sovereign power.
	if _, err := module.Propose.Execute(ctx, commands.ProposeCommand{
		Proposer: "treasurer-1",
		Victim:   "victim-7",
		Amount:   100,
	}); err != nil {
		t.Fatalf("treasurer propose: %v", err)
	}

	proposal := propose(t, module, "victim-6", 100)
	if _, err := module.Approve.Execute(ctx, commands.ApproveCommand{
		Approver:   "root-1",
		ProposalID: proposal.ProposalID,
	}); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("non-auditor approve: expected ErrUnauthorized, got %v", err)
	}
}

func TestProposalValidation(t *testing.T) {
	ctx := context.Background()
	module, _, _, _ := newTestWorkflow(t, 10_000)

	if _, err := module.Propose.Execute(ctx, commands.ProposeCommand{
		Proposer: "root-1",
		Victim:   "victim-8",
		Amount:   0,
	}); !errors.Is(err, domainerrors.ErrInvalidConfiguration) {
		t.Fatalf("zero amount: expected ErrInvalidConfiguration, got %v", err)
	}
	if _, err := module.Propose.Execute(ctx, commands.ProposeCommand{
		Proposer: "root-1",
		Victim:   "   ",
		Amount:   10,
	}); !errors.Is(err, domainerrors.ErrInvalidConfiguration) {
		t.Fatalf("blank victim: expected ErrInvalidConfiguration, got %v", err)
	}
	if _, err := module.Propose.Execute(ctx, commands.ProposeCommand{
		Proposer: "",
		Victim:   "victim-8",
		Amount:   10,
	}); !errors.Is(err, domainerrors.ErrMissingActor) {
		t.Fatalf("blank proposer: expected ErrMissingActor, got %v", err)
	}
}

func TestUnknownProposalsAreReported(t *testing.T) {
	ctx := context.Background()
	module, _, _, _ := newTestWorkflow(t, 10_000)

	if _, err := module.Approve.Execute(ctx, commands.ApproveCommand{
		Approver:   "auditor-1",
		ProposalID: "missing",
	}); !errors.Is(err, domainerrors.ErrProposalNotFound) {
		t.Fatalf("approve missing: expected ErrProposalNotFound, got %v", err)
	}
	if _, err := module.GetProposal.Execute(ctx, "missing"); !errors.Is(err, domainerrors.ErrProposalNotFound) {
		t.Fatalf("get missing: expected ErrProposalNotFound, got %v", err)
	}
}
