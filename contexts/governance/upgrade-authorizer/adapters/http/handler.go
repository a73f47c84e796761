package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "warden/contexts/governance/upgrade-authorizer/application"
	"warden/contexts/governance/upgrade-authorizer/application/commands"
	"warden/contexts/governance/upgrade-authorizer/application/queries"
	domainerrors "warden/contexts/governance/upgrade-authorizer/domain/errors"
	httptransport "warden/contexts/governance/upgrade-authorizer/transport/http"
)

// Handler maps HTTP DTOs to authorizer commands/queries.
type Handler struct {
	Approve              commands.ApproveUpgradeUseCase
	Validate             commands.ValidateUpgradeUseCase
	SetRequiredApprovals commands.SetRequiredApprovalsUseCase
	SetMinInterval       commands.SetMinIntervalUseCase
	CandidateStatus      queries.CandidateStatusUseCase
	Logger               *slog.Logger
}

// ApproveHandler registers one sign-off for a candidate.
func (h Handler) ApproveHandler(
	ctx context.Context,
	actor string,
	request httptransport.ApproveUpgradeRequest,
) (httptransport.ApproveUpgradeResponse, error) {
	result, err := h.Approve.Execute(ctx, commands.ApproveUpgradeCommand{
		Approver:  actor,
		Candidate: request.Candidate,
	})
	if err != nil {
		return httptransport.ApproveUpgradeResponse{}, err
	}
	return httptransport.ApproveUpgradeResponse{
		Nonce:     result.Nonce,
		Approvals: result.Approvals,
		Required:  result.Required,
	}, nil
}

// ValidateHandler asks for final clearance of a candidate.
func (h Handler) ValidateHandler(
	ctx context.Context,
	actor string,
	request httptransport.ValidateUpgradeRequest,
) (httptransport.ValidateUpgradeResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	result, err := h.Validate.Execute(ctx, commands.ValidateUpgradeCommand{
		Caller:    actor,
		Candidate: request.Candidate,
	})
	if err != nil {
		logger.Warn("http upgrade validation rejected",
			"event", "upgrade_http_validate_rejected",
			"module", "governance/upgrade-authorizer",
			"layer", "transport",
			"candidate", request.Candidate,
			"error", err.Error(),
		)
		return httptransport.ValidateUpgradeResponse{}, err
	}
	return httptransport.ValidateUpgradeResponse{
		Candidate:  result.Candidate,
		NewNonce:   result.NewNonce,
		ExecutedAt: result.ExecutedAt,
	}, nil
}

// SetRequiredApprovalsHandler retunes the quorum.
func (h Handler) SetRequiredApprovalsHandler(
	ctx context.Context,
	actor string,
	request httptransport.SetRequiredApprovalsRequest,
) (httptransport.StatusResponse, error) {
	if err := h.SetRequiredApprovals.Execute(ctx, commands.SetRequiredApprovalsCommand{
		Actor:    actor,
		Required: request.Required,
	}); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "quorum_updated"}, nil
}

// SetMinIntervalHandler retunes the rate limit.
func (h Handler) SetMinIntervalHandler(
	ctx context.Context,
	actor string,
	request httptransport.SetMinIntervalRequest,
) (httptransport.StatusResponse, error) {
	interval, err := time.ParseDuration(request.MinInterval)
	if err != nil {
		return httptransport.StatusResponse{}, domainerrors.ErrInvalidConfiguration
	}
	if err := h.SetMinInterval.Execute(ctx, commands.SetMinIntervalCommand{
		Actor:       actor,
		MinInterval: interval,
	}); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: "interval_updated"}, nil
}

// CandidateStatusHandler reports quorum progress for one candidate.
func (h Handler) CandidateStatusHandler(ctx context.Context, candidate string) (httptransport.CandidateStatusResponse, error) {
	status, err := h.CandidateStatus.Execute(ctx, candidate)
	if err != nil {
		return httptransport.CandidateStatusResponse{}, err
	}
	return httptransport.CandidateStatusResponse{
		Candidate:   status.Candidate,
		Nonce:       status.Nonce,
		Approvals:   status.Approvals,
		Required:    status.Required,
		RateLimited: status.RateLimited,
	}, nil
}
