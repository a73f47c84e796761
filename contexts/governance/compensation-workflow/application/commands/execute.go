package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "warden/contexts/governance/compensation-workflow/application"
	"warden/contexts/governance/compensation-workflow/domain/entities"
	domainerrors "warden/contexts/governance/compensation-workflow/domain/errors"
	"warden/contexts/governance/compensation-workflow/ports"
	"warden/internal/shared/guard"
)

// ExecuteCommand triggers the payout of an approved proposal.
type ExecuteCommand struct {
	Caller     string
	ProposalID string
}

// ExecuteUseCase pays out one approved, not-yet-executed proposal. Any
// caller may execute; the protections are the approval requirement, the
// one-way latch, and the vault's own balance check. The latch commits before
// the funds move, and every failure after it unwinds in reverse order so a
// failed payout leaves no partial effects.
type ExecuteUseCase struct {
	Repository ports.Repository
	Vault      ports.ReserveVault
	Recorder   ports.AuditRecorder
	Clock      ports.Clock
	Guard      *guard.Guard
	Logger     *slog.Logger
}

func (u ExecuteUseCase) Execute(ctx context.Context, cmd ExecuteCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return entities.Proposal{}, err
	}
	defer release()

	if strings.TrimSpace(cmd.Caller) == "" {
		return entities.Proposal{}, domainerrors.ErrMissingActor
	}

	proposal, err := u.Repository.GetProposal(ctx, cmd.ProposalID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if !proposal.Approved {
		return entities.Proposal{}, domainerrors.ErrNotApproved
	}
	if proposal.Executed {
		return entities.Proposal{}, domainerrors.ErrAlreadyExecuted
	}

	before := proposal
	proposal.Executed = true
	proposal.ExecutedBy = cmd.Caller
	proposal.ExecutedAt = u.Clock.Now().UTC()
	if err := u.Repository.SaveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	if err := u.Vault.ReleaseFunds(ctx, proposal.Victim, proposal.Amount); err != nil {
		u.revertLatch(ctx, logger, before)
		return entities.Proposal{}, err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:          cmd.Caller,
		Severity:       "critical",
		Category:       "compensation_executed",
		Detail:         fmt.Sprintf("proposal %s paid %d to %s", cmd.ProposalID, proposal.Amount, proposal.Victim),
		ActionRequired: false,
	}); err != nil {
		if refundErr := u.Vault.Refund(ctx, proposal.Victim, proposal.Amount); refundErr != nil {
			logger.Error("refund failed after audit failure",
				"event", "compensation_refund_failed",
				"module", "governance/compensation-workflow",
				"layer", "application",
				"proposal_id", cmd.ProposalID,
				"amount", proposal.Amount,
				"error", refundErr.Error(),
			)
		}
		u.revertLatch(ctx, logger, before)
		return entities.Proposal{}, err
	}

	logger.Warn("compensation executed",
		"event", "compensation_executed",
		"module", "governance/compensation-workflow",
		"layer", "application",
		"proposal_id", cmd.ProposalID,
		"caller", cmd.Caller,
		"victim", proposal.Victim,
		"amount", proposal.Amount,
	)
	return proposal, nil
}

func (u ExecuteUseCase) revertLatch(ctx context.Context, logger *slog.Logger, before entities.Proposal) {
	if err := u.Repository.SaveProposal(ctx, before); err != nil {
		logger.Error("latch revert failed",
			"event", "compensation_latch_revert_failed",
			"module", "governance/compensation-workflow",
			"layer", "application",
			"proposal_id", before.ProposalID,
			"error", err.Error(),
		)
	}
}
