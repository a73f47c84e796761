package queries

import (
	"context"
	"log/slog"

	"warden/contexts/governance/compensation-workflow/domain/entities"
	"warden/contexts/governance/compensation-workflow/ports"
)

// GetProposalUseCase fetches one proposal by id.
type GetProposalUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u GetProposalUseCase) Execute(ctx context.Context, proposalID string) (entities.Proposal, error) {
	return u.Repository.GetProposal(ctx, proposalID)
}

// ListProposalsUseCase lists every proposal.
type ListProposalsUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListProposalsUseCase) Execute(ctx context.Context) ([]entities.Proposal, error) {
	return u.Repository.ListProposals(ctx)
}

// ReserveBalanceUseCase reports the vault balance available for payouts.
type ReserveBalanceUseCase struct {
	Vault  ports.ReserveVault
	Logger *slog.Logger
}

func (u ReserveBalanceUseCase) Execute(ctx context.Context) (uint64, error) {
	return u.Vault.Balance(ctx)
}
