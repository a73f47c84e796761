package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "warden/contexts/governance/upgrade-authorizer/application"
	"warden/contexts/governance/upgrade-authorizer/domain/entities"
	domainerrors "warden/contexts/governance/upgrade-authorizer/domain/errors"
	"warden/contexts/governance/upgrade-authorizer/ports"
	"warden/internal/shared/guard"
)

// Capability tags consulted by the authorizer.
const (
	RoleUpgradeAdmin = "upgrade_admin"
	RoleSovereign    = "sovereign"
)

// ApproveUpgradeCommand registers one sign-off for a candidate.
type ApproveUpgradeCommand struct {
	Approver  string
	Candidate string
}

// ApproveUpgradeResult reports progress toward quorum.
type ApproveUpgradeResult struct {
	Nonce     uint64
	Approvals int
	Required  int
}

// ApproveUpgradeUseCase records one approval under the current epoch nonce.
// Approving the same candidate twice within an epoch is rejected; a fresh
// epoch wipes the slate.
type ApproveUpgradeUseCase struct {
	Store     ports.Store
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Clock     ports.Clock
	Guard     *guard.Guard
	Logger    *slog.Logger
}

func (u ApproveUpgradeUseCase) Execute(ctx context.Context, cmd ApproveUpgradeCommand) (ApproveUpgradeResult, error) {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return ApproveUpgradeResult{}, err
	}
	defer release()

	if strings.TrimSpace(cmd.Approver) == "" {
		return ApproveUpgradeResult{}, domainerrors.ErrMissingActor
	}
	if strings.TrimSpace(cmd.Candidate) == "" {
		return ApproveUpgradeResult{}, domainerrors.ErrInvalidConfiguration
	}

	allowed, err := u.Authority.IsOperationAllowed(ctx, cmd.Approver, RoleUpgradeAdmin)
	if err != nil {
		return ApproveUpgradeResult{}, err
	}
	if !allowed {
		return ApproveUpgradeResult{}, domainerrors.ErrUnauthorized
	}

	policy, err := u.Store.Policy(ctx)
	if err != nil {
		return ApproveUpgradeResult{}, err
	}

	key := entities.ApprovalKey{
		Nonce:     policy.Nonce,
		Candidate: cmd.Candidate,
		Approver:  cmd.Approver,
	}
	if err := u.Store.RecordApproval(ctx, entities.Approval{
		Key:        key,
		ApprovedAt: u.Clock.Now().UTC(),
	}); err != nil {
		return ApproveUpgradeResult{}, err
	}

	count, err := u.Store.ApprovalCount(ctx, policy.Nonce, cmd.Candidate)
	if err != nil {
		return ApproveUpgradeResult{}, err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    cmd.Approver,
		Severity: "warning",
		Category: "upgrade_approved",
		Detail:   fmt.Sprintf("candidate %s approval %d/%d in epoch %d", cmd.Candidate, count, policy.RequiredApprovals, policy.Nonce),
	}); err != nil {
		if revertErr := u.Store.RemoveApproval(ctx, key); revertErr != nil {
			logger.Error("approval revert failed after audit failure",
				"event", "upgrade_approve_revert_failed",
				"module", "governance/upgrade-authorizer",
				"layer", "application",
				"candidate", cmd.Candidate,
				"error", revertErr.Error(),
			)
		}
		return ApproveUpgradeResult{}, err
	}

	logger.Info("upgrade approved",
		"event", "upgrade_approved",
		"module", "governance/upgrade-authorizer",
		"layer", "application",
		"approver", cmd.Approver,
		"candidate", cmd.Candidate,
		"approvals", count,
		"required", policy.RequiredApprovals,
		"nonce", policy.Nonce,
	)
	return ApproveUpgradeResult{
		Nonce:     policy.Nonce,
		Approvals: count,
		Required:  policy.RequiredApprovals,
	}, nil
}
