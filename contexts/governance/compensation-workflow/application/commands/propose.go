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

// Capability tags consulted by the workflow.
const (
	RoleSovereign = "sovereign"
	RoleTreasurer = "treasurer"
	RoleAuditor   = "auditor"
)

// ProposeCommand opens one restitution case.
type ProposeCommand struct {
	Proposer string
	Victim   string
	Amount   uint64
}

// ProposeUseCase records a new proposal. Treasurer or sovereign tier.
type ProposeUseCase struct {
	Repository  ports.Repository
	Authority   ports.Authority
	Recorder    ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Guard       *guard.Guard
	Logger      *slog.Logger
}

func (u ProposeUseCase) Execute(ctx context.Context, cmd ProposeCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return entities.Proposal{}, err
	}
	defer release()

	if strings.TrimSpace(cmd.Proposer) == "" {
		return entities.Proposal{}, domainerrors.ErrMissingActor
	}
	if strings.TrimSpace(cmd.Victim) == "" || cmd.Amount == 0 {
		return entities.Proposal{}, domainerrors.ErrInvalidConfiguration
	}

	allowed, err := u.Authority.IsOperationAllowed(ctx, cmd.Proposer, RoleTreasurer)
	if err != nil {
		return entities.Proposal{}, err
	}
	if !allowed {
		allowed, err = u.Authority.IsOperationAllowed(ctx, cmd.Proposer, RoleSovereign)
		if err != nil {
			return entities.Proposal{}, err
		}
	}
	if !allowed {
		return entities.Proposal{}, domainerrors.ErrUnauthorized
	}

	proposal := entities.Proposal{
		ProposalID: u.IDGenerator.NewID(),
		Proposer:   cmd.Proposer,
		Victim:     cmd.Victim,
		Amount:     cmd.Amount,
		CreatedAt:  u.Clock.Now().UTC(),
	}
	if err := u.Repository.SaveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.Proposer,
		Severity: "warning",
		Category: "compensation_proposed",
		Detail:   fmt.Sprintf("proposal %s: %d to %s", proposal.ProposalID, cmd.Amount, cmd.Victim),
	}); err != nil {
		if revertErr := u.Repository.DeleteProposal(ctx, proposal.ProposalID); revertErr != nil {
			logger.Error("proposal revert failed after audit failure",
				"event", "compensation_propose_revert_failed",
				"module", "governance/compensation-workflow",
				"layer", "application",
				"proposal_id", proposal.ProposalID,
				"error", revertErr.Error(),
			)
		}
		return entities.Proposal{}, err
	}

	logger.Info("compensation proposed",
		"event", "compensation_proposed",
		"module", "governance/compensation-workflow",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"proposer", cmd.Proposer,
		"victim", cmd.Victim,
		"amount", cmd.Amount,
	)
	return proposal, nil
}
