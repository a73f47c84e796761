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

// ApproveCommand signs off one proposal.
type ApproveCommand struct {
	Approver   string
	ProposalID string
}

// ApproveUseCase marks a proposal approved. Auditor tier; approving twice
// or approving an already executed proposal is rejected.
type ApproveUseCase struct {
	Repository ports.Repository
	Authority  ports.Authority
	Recorder   ports.AuditRecorder
	Clock      ports.Clock
	Guard      *guard.Guard
	Logger     *slog.Logger
}

func (u ApproveUseCase) Execute(ctx context.Context, cmd ApproveCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return entities.Proposal{}, err
	}
	defer release()

	if strings.TrimSpace(cmd.Approver) == "" {
		return entities.Proposal{}, domainerrors.ErrMissingActor
	}

	allowed, err := u.Authority.IsOperationAllowed(ctx, cmd.Approver, RoleAuditor)
	if err != nil {
		return entities.Proposal{}, err
	}
	if !allowed {
		return entities.Proposal{}, domainerrors.ErrUnauthorized
	}

	proposal, err := u.Repository.GetProposal(ctx, cmd.ProposalID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if proposal.Executed {
		return entities.Proposal{}, domainerrors.ErrAlreadyExecuted
	}
	if proposal.Approved {
		return entities.Proposal{}, domainerrors.ErrAlreadyApproved
	}

	before := proposal
	proposal.Approved = true
	proposal.ApprovedBy = cmd.Approver
	proposal.ApprovedAt = u.Clock.Now().UTC()
	if err := u.Repository.SaveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.Approver,
		Severity: "warning",
		Category: "compensation_approved",
		Detail:   fmt.Sprintf("proposal %s approved", cmd.ProposalID),
	}); err != nil {
		if revertErr := u.Repository.SaveProposal(ctx, before); revertErr != nil {
			logger.Error("approval revert failed after audit failure",
				"event", "compensation_approve_revert_failed",
				"module", "governance/compensation-workflow",
				"layer", "application",
				"proposal_id", cmd.ProposalID,
				"error", revertErr.Error(),
			)
		}
		return entities.Proposal{}, err
	}

	logger.Info("compensation approved",
		"event", "compensation_approved",
		"module", "governance/compensation-workflow",
		"layer", "application",
		"proposal_id", cmd.ProposalID,
		"approver", cmd.Approver,
	)
	return proposal, nil
}
