package queries

import (
	"context"
	"log/slog"
	"strings"

	"warden/contexts/governance/upgrade-authorizer/domain/entities"
	domainerrors "warden/contexts/governance/upgrade-authorizer/domain/errors"
	"warden/contexts/governance/upgrade-authorizer/ports"
)

// CandidateStatus is the read model for one candidate under the current epoch.
type CandidateStatus struct {
	Candidate   string
	Nonce       uint64
	Approvals   int
	Required    int
	RateLimited bool
}

// CandidateStatusUseCase reports quorum progress for one candidate.
type CandidateStatusUseCase struct {
	Store  ports.Store
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u CandidateStatusUseCase) Execute(ctx context.Context, candidate string) (CandidateStatus, error) {
	if strings.TrimSpace(candidate) == "" {
		return CandidateStatus{}, domainerrors.ErrInvalidConfiguration
	}
	policy, err := u.Store.Policy(ctx)
	if err != nil {
		return CandidateStatus{}, err
	}
	count, err := u.Store.ApprovalCount(ctx, policy.Nonce, candidate)
	if err != nil {
		return CandidateStatus{}, err
	}
	return CandidateStatus{
		Candidate:   candidate,
		Nonce:       policy.Nonce,
		Approvals:   count,
		Required:    policy.RequiredApprovals,
		RateLimited: policy.RateLimited(u.Clock.Now().UTC()),
	}, nil
}

// CurrentNonceUseCase reports the live epoch nonce.
type CurrentNonceUseCase struct {
	Store  ports.Store
	Logger *slog.Logger
}

func (u CurrentNonceUseCase) Execute(ctx context.Context) (uint64, error) {
	policy, err := u.Store.Policy(ctx)
	if err != nil {
		return 0, err
	}
	return policy.Nonce, nil
}

// HasApprovedUseCase reports whether an approver has signed a candidate in
// the current epoch.
type HasApprovedUseCase struct {
	Store  ports.Store
	Logger *slog.Logger
}

func (u HasApprovedUseCase) Execute(ctx context.Context, approver string, candidate string) (bool, error) {
	if strings.TrimSpace(approver) == "" {
		return false, domainerrors.ErrMissingActor
	}
	if strings.TrimSpace(candidate) == "" {
		return false, domainerrors.ErrInvalidConfiguration
	}
	policy, err := u.Store.Policy(ctx)
	if err != nil {
		return false, err
	}
	return u.Store.HasApproved(ctx, entities.ApprovalKey{
		Nonce:     policy.Nonce,
		Candidate: candidate,
		Approver:  approver,
	})
}
