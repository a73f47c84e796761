package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "warden/contexts/governance/upgrade-authorizer/application"
	"warden/contexts/governance/upgrade-authorizer/domain/entities"
	domainerrors "warden/contexts/governance/upgrade-authorizer/domain/errors"
	"warden/contexts/governance/upgrade-authorizer/ports"
	"warden/internal/shared/guard"
)

// SetRequiredApprovalsCommand retunes the quorum.
type SetRequiredApprovalsCommand struct {
	Actor    string
	Required int
}

// SetRequiredApprovalsUseCase changes the quorum. Sovereign tier; quorum
// below one is rejected.
type SetRequiredApprovalsUseCase struct {
	Store     ports.Store
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Guard     *guard.Guard
	Logger    *slog.Logger
}

func (u SetRequiredApprovalsUseCase) Execute(ctx context.Context, cmd SetRequiredApprovalsCommand) error {
	return updatePolicy(ctx, policyUpdate{
		Store:     u.Store,
		Authority: u.Authority,
		Recorder:  u.Recorder,
		Guard:     u.Guard,
		Logger:    u.Logger,
		Actor:     cmd.Actor,
		Validate: func(policy entities.Policy) error {
			if cmd.Required < 1 {
				return domainerrors.ErrInvalidConfiguration
			}
			return nil
		},
		Apply: func(policy *entities.Policy) string {
			before := policy.RequiredApprovals
			policy.RequiredApprovals = cmd.Required
			return fmt.Sprintf("required approvals %d -> %d", before, cmd.Required)
		},
		Category: "upgrade_quorum_changed",
	})
}

// SetMinIntervalCommand retunes the execution rate limit.
type SetMinIntervalCommand struct {
	Actor       string
	MinInterval time.Duration
}

// SetMinIntervalUseCase changes the minimum interval between validated
// upgrades. Sovereign tier; non-positive intervals are rejected.
type SetMinIntervalUseCase struct {
	Store     ports.Store
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Guard     *guard.Guard
	Logger    *slog.Logger
}

func (u SetMinIntervalUseCase) Execute(ctx context.Context, cmd SetMinIntervalCommand) error {
	return updatePolicy(ctx, policyUpdate{
		Store:     u.Store,
		Authority: u.Authority,
		Recorder:  u.Recorder,
		Guard:     u.Guard,
		Logger:    u.Logger,
		Actor:     cmd.Actor,
		Validate: func(policy entities.Policy) error {
			if cmd.MinInterval <= 0 {
				return domainerrors.ErrInvalidConfiguration
			}
			return nil
		},
		Apply: func(policy *entities.Policy) string {
			before := policy.MinInterval
			policy.MinInterval = cmd.MinInterval
			return fmt.Sprintf("min interval %s -> %s", before, cmd.MinInterval)
		},
		Category: "upgrade_interval_changed",
	})
}

// policyUpdate is the shared shape of the two sovereign policy setters.
type policyUpdate struct {
	Store     ports.Store
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Guard     *guard.Guard
	Logger    *slog.Logger
	Actor     string
	Validate  func(entities.Policy) error
	Apply     func(*entities.Policy) string
	Category  string
}

func updatePolicy(ctx context.Context, update policyUpdate) error {
	logger := application.ResolveLogger(update.Logger)

	release, err := update.Guard.Acquire()
	if err != nil {
		return err
	}
	defer release()

	if strings.TrimSpace(update.Actor) == "" {
		return domainerrors.ErrMissingActor
	}

	allowed, err := update.Authority.IsOperationAllowed(ctx, update.Actor, RoleSovereign)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrUnauthorized
	}

	policy, err := update.Store.Policy(ctx)
	if err != nil {
		return err
	}
	if err := update.Validate(policy); err != nil {
		return err
	}

	before := policy
	detail := update.Apply(&policy)
	if err := update.Store.SavePolicy(ctx, policy); err != nil {
		return err
	}

	if _, err := update.Recorder.RecordSecurityEvent(ctx, ports.AuditEntry{
		Actor:    update.Actor,
		Severity: "warning",
		Category: update.Category,
		Detail:   detail,
	}); err != nil {
		if revertErr := update.Store.SavePolicy(ctx, before); revertErr != nil {
			logger.Error("policy revert failed after audit failure",
				"event", "upgrade_policy_revert_failed",
				"module", "governance/upgrade-authorizer",
				"layer", "application",
				"category", update.Category,
				"error", revertErr.Error(),
			)
		}
		return err
	}

	logger.Warn("upgrade policy changed",
		"event", "upgrade_policy_changed",
		"module", "governance/upgrade-authorizer",
		"layer", "application",
		"actor", update.Actor,
		"category", update.Category,
		"detail", detail,
	)
	return nil
}
