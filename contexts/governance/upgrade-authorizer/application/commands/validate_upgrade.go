package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "warden/contexts/governance/upgrade-authorizer/application"
	domainerrors "warden/contexts/governance/upgrade-authorizer/domain/errors"
	"warden/contexts/governance/upgrade-authorizer/ports"
	"warden/internal/shared/guard"
)

// ValidateUpgradeCommand asks for final clearance of a candidate.
type ValidateUpgradeCommand struct {
	Caller    string
	Candidate string
}

// ValidateUpgradeResult reports the epoch the system moved to.
type ValidateUpgradeResult struct {
	Candidate  string
	NewNonce   uint64
	ExecutedAt time.Time
}

// ValidateUpgradeUseCase performs the final gate: quorum under the current
// epoch, outside the rate-limit interval. Success advances the epoch nonce,
// which strands every approval minted before it, and stamps the execution
// time. The Critical record is mandatory; a failed write rolls the epoch
// back as if the validation never happened.
type ValidateUpgradeUseCase struct {
	Store     ports.Store
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Clock     ports.Clock
	Guard     *guard.Guard
	Logger    *slog.Logger
}

func (u ValidateUpgradeUseCase) Execute(ctx context.Context, cmd ValidateUpgradeCommand) (ValidateUpgradeResult, error) {
	logger := application.ResolveLogger(u.Logger)

	release, err := u.Guard.Acquire()
	if err != nil {
		return ValidateUpgradeResult{}, err
	}
	defer release()

	if strings.TrimSpace(cmd.Caller) == "" {
		return ValidateUpgradeResult{}, domainerrors.ErrMissingActor
	}
	if strings.TrimSpace(cmd.Candidate) == "" {
		return ValidateUpgradeResult{}, domainerrors.ErrInvalidConfiguration
	}

	allowed, err := u.Authority.IsOperationAllowed(ctx, cmd.Caller, RoleUpgradeAdmin)
	if err != nil {
		return ValidateUpgradeResult{}, err
	}
	if !allowed {
		return ValidateUpgradeResult{}, domainerrors.ErrUnauthorized
	}

	policy, err := u.Store.Policy(ctx)
	if err != nil {
		return ValidateUpgradeResult{}, err
	}

	now := u.Clock.Now().UTC()
	if policy.RateLimited(now) {
		logger.Warn("upgrade validation rate limited",
			"event", "upgrade_rate_limited",
			"module", "governance/upgrade-authorizer",
			"layer", "application",
			"candidate", cmd.Candidate,
			"last_upgrade", policy.LastUpgrade,
		)
		return ValidateUpgradeResult{}, domainerrors.ErrRateLimited
	}

	count, err := u.Store.ApprovalCount(ctx, policy.Nonce, cmd.Candidate)
	if err != nil {
		return ValidateUpgradeResult{}, err
	}
	if count < policy.RequiredApprovals {
		return ValidateUpgradeResult{}, domainerrors.ErrInsufficientApprovals
	}

	before := policy
	policy.Nonce++
	policy.LastUpgrade = now
	if err := u.Store.SavePolicy(ctx, policy); err != nil {
		return ValidateUpgradeResult{}, err
	}

	if _, err := u.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:          cmd.Caller,
		Severity:       "critical",
		Category:       "upgrade_validated",
		Detail:         fmt.Sprintf("candidate %s cleared with %d approvals, epoch %d -> %d", cmd.Candidate, count, before.Nonce, policy.Nonce),
		ActionRequired: true,
	}); err != nil {
		if revertErr := u.Store.SavePolicy(ctx, before); revertErr != nil {
			logger.Error("epoch revert failed after audit failure",
				"event", "upgrade_validate_revert_failed",
				"module", "governance/upgrade-authorizer",
				"layer", "application",
				"candidate", cmd.Candidate,
				"error", revertErr.Error(),
			)
		}
		return ValidateUpgradeResult{}, err
	}

	logger.Warn("upgrade validated",
		"event", "upgrade_validated",
		"module", "governance/upgrade-authorizer",
		"layer", "application",
		"caller", cmd.Caller,
		"candidate", cmd.Candidate,
		"approvals", count,
		"nonce", policy.Nonce,
	)
	return ValidateUpgradeResult{
		Candidate:  cmd.Candidate,
		NewNonce:   policy.Nonce,
		ExecutedAt: now,
	}, nil
}
