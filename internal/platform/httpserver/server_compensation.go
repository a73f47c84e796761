package httpserver

import (
	"errors"
	"net/http"

	compensationerrors "warden/contexts/governance/compensation-workflow/domain/errors"
	compensationhttp "warden/contexts/governance/compensation-workflow/transport/http"
	"warden/internal/shared/guard"
)

func writeCompensationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, compensationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeCompensationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, compensationerrors.ErrMissingActor):
		writeCompensationError(w, http.StatusUnauthorized, "missing_actor", err.Error())
	case errors.Is(err, compensationerrors.ErrUnauthorized):
		writeCompensationError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, compensationerrors.ErrProposalNotFound):
		writeCompensationError(w, http.StatusNotFound, "proposal_not_found", err.Error())
	case errors.Is(err, compensationerrors.ErrInvalidConfiguration):
		writeCompensationError(w, http.StatusBadRequest, "invalid_proposal", err.Error())
	case errors.Is(err, compensationerrors.ErrAlreadyApproved),
		errors.Is(err, compensationerrors.ErrAlreadyExecuted):
		writeCompensationError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, compensationerrors.ErrNotApproved):
		writeCompensationError(w, http.StatusUnprocessableEntity, "not_approved", err.Error())
	case errors.Is(err, compensationerrors.ErrInsufficientReserve):
		writeCompensationError(w, http.StatusUnprocessableEntity, "insufficient_reserve", err.Error())
	case errors.Is(err, guard.ErrReentrantCall):
		writeCompensationError(w, http.StatusConflict, "reentrant_call", err.Error())
	default:
		writeCompensationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCompensationPropose(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeCompensationError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req compensationhttp.ProposeRequest
	if !decodeJSON(w, r, &req, writeCompensationError) {
		return
	}

	resp, err := s.modules.Compensation.Handler.ProposeHandler(r.Context(), actor, req)
	if err != nil {
		writeCompensationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCompensationApprove(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeCompensationError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	resp, err := s.modules.Compensation.Handler.ApproveHandler(r.Context(), actor, r.PathValue("proposal_id"))
	if err != nil {
		writeCompensationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompensationExecute(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeCompensationError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	resp, err := s.modules.Compensation.Handler.ExecuteHandler(r.Context(), actor, r.PathValue("proposal_id"))
	if err != nil {
		writeCompensationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompensationGetProposal(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Compensation.Handler.GetProposalHandler(r.Context(), r.PathValue("proposal_id"))
	if err != nil {
		writeCompensationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompensationListProposals(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Compensation.Handler.ListProposalsHandler(r.Context())
	if err != nil {
		writeCompensationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompensationReserveBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Compensation.Handler.ReserveBalanceHandler(r.Context())
	if err != nil {
		writeCompensationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
