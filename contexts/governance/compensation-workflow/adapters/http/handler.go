package httpadapter

import (
	"context"
	"log/slog"

	"warden/contexts/governance/compensation-workflow/application/commands"
	"warden/contexts/governance/compensation-workflow/application/queries"
	"warden/contexts/governance/compensation-workflow/domain/entities"
	httptransport "warden/contexts/governance/compensation-workflow/transport/http"
)

// Handler maps HTTP DTOs to workflow commands/queries.
type Handler struct {
	Propose        commands.ProposeUseCase
	Approve        commands.ApproveUseCase
	Execute        commands.ExecuteUseCase
	GetProposal    queries.GetProposalUseCase
	ListProposals  queries.ListProposalsUseCase
	ReserveBalance queries.ReserveBalanceUseCase
	Logger         *slog.Logger
}

// ProposeHandler opens one restitution case.
func (h Handler) ProposeHandler(
	ctx context.Context,
	actor string,
	request httptransport.ProposeRequest,
) (httptransport.ProposalDTO, error) {
	proposal, err := h.Propose.Execute(ctx, commands.ProposeCommand{
		Proposer: actor,
		Victim:   request.Victim,
		Amount:   request.Amount,
	})
	if err != nil {
		return httptransport.ProposalDTO{}, err
	}
	return toProposalDTO(proposal), nil
}

// ApproveHandler signs off one proposal.
func (h Handler) ApproveHandler(ctx context.Context, actor string, proposalID string) (httptransport.ProposalDTO, error) {
	proposal, err := h.Approve.Execute(ctx, commands.ApproveCommand{
		Approver:   actor,
		ProposalID: proposalID,
	})
	if err != nil {
		return httptransport.ProposalDTO{}, err
	}
	return toProposalDTO(proposal), nil
}

// ExecuteHandler pays out one approved proposal.
func (h Handler) ExecuteHandler(ctx context.Context, actor string, proposalID string) (httptransport.ProposalDTO, error) {
	proposal, err := h.Execute.Execute(ctx, commands.ExecuteCommand{
		Caller:     actor,
		ProposalID: proposalID,
	})
	if err != nil {
		return httptransport.ProposalDTO{}, err
	}
	return toProposalDTO(proposal), nil
}

// GetProposalHandler fetches one proposal.
func (h Handler) GetProposalHandler(ctx context.Context, proposalID string) (httptransport.ProposalDTO, error) {
	proposal, err := h.GetProposal.Execute(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalDTO{}, err
	}
	return toProposalDTO(proposal), nil
}

// ListProposalsHandler lists every proposal.
func (h Handler) ListProposalsHandler(ctx context.Context) (httptransport.ListProposalsResponse, error) {
	proposals, err := h.ListProposals.Execute(ctx)
	if err != nil {
		return httptransport.ListProposalsResponse{}, err
	}
	items := make([]httptransport.ProposalDTO, 0, len(proposals))
	for _, proposal := range proposals {
		items = append(items, toProposalDTO(proposal))
	}
	return httptransport.ListProposalsResponse{Proposals: items}, nil
}

// ReserveBalanceHandler reports the payable reserve.
func (h Handler) ReserveBalanceHandler(ctx context.Context) (httptransport.ReserveBalanceResponse, error) {
	balance, err := h.ReserveBalance.Execute(ctx)
	if err != nil {
		return httptransport.ReserveBalanceResponse{}, err
	}
	return httptransport.ReserveBalanceResponse{Balance: balance}, nil
}

func toProposalDTO(proposal entities.Proposal) httptransport.ProposalDTO {
	dto := httptransport.ProposalDTO{
		ProposalID: proposal.ProposalID,
		Proposer:   proposal.Proposer,
		Victim:     proposal.Victim,
		Amount:     proposal.Amount,
		CreatedAt:  proposal.CreatedAt,
		Approved:   proposal.Approved,
		ApprovedBy: proposal.ApprovedBy,
		Executed:   proposal.Executed,
		ExecutedBy: proposal.ExecutedBy,
	}
	if !proposal.ApprovedAt.IsZero() {
		approvedAt := proposal.ApprovedAt
		dto.ApprovedAt = &approvedAt
	}
	if !proposal.ExecutedAt.IsZero() {
		executedAt := proposal.ExecutedAt
		dto.ExecutedAt = &executedAt
	}
	return dto
}
