package httpserver

import (
	"errors"
	"net/http"

	upgradeerrors "warden/contexts/governance/upgrade-authorizer/domain/errors"
	upgradehttp "warden/contexts/governance/upgrade-authorizer/transport/http"
	"warden/internal/shared/guard"
)

func writeUpgradeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, upgradehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeUpgradeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, upgradeerrors.ErrMissingActor):
		writeUpgradeError(w, http.StatusUnauthorized, "missing_actor", err.Error())
	case errors.Is(err, upgradeerrors.ErrUnauthorized):
		writeUpgradeError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, upgradeerrors.ErrAlreadyApproved):
		writeUpgradeError(w, http.StatusConflict, "already_approved", err.Error())
	case errors.Is(err, upgradeerrors.ErrInsufficientApprovals):
		writeUpgradeError(w, http.StatusUnprocessableEntity, "insufficient_approvals", err.Error())
	case errors.Is(err, upgradeerrors.ErrRateLimited):
		writeUpgradeError(w, http.StatusTooManyRequests, "rate_limited", err.Error())
	case errors.Is(err, upgradeerrors.ErrInvalidConfiguration):
		writeUpgradeError(w, http.StatusBadRequest, "invalid_configuration", err.Error())
	case errors.Is(err, guard.ErrReentrantCall):
		writeUpgradeError(w, http.StatusConflict, "reentrant_call", err.Error())
	default:
		writeUpgradeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleUpgradesApprove(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeUpgradeError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req upgradehttp.ApproveUpgradeRequest
	if !decodeJSON(w, r, &req, writeUpgradeError) {
		return
	}

	resp, err := s.modules.Authorizer.Handler.ApproveHandler(r.Context(), actor, req)
	if err != nil {
		writeUpgradeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpgradesValidate(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeUpgradeError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req upgradehttp.ValidateUpgradeRequest
	if !decodeJSON(w, r, &req, writeUpgradeError) {
		return
	}

	resp, err := s.modules.Authorizer.Handler.ValidateHandler(r.Context(), actor, req)
	if err != nil {
		writeUpgradeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpgradesSetRequiredApprovals(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeUpgradeError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req upgradehttp.SetRequiredApprovalsRequest
	if !decodeJSON(w, r, &req, writeUpgradeError) {
		return
	}

	resp, err := s.modules.Authorizer.Handler.SetRequiredApprovalsHandler(r.Context(), actor, req)
	if err != nil {
		writeUpgradeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpgradesSetMinInterval(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeUpgradeError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req upgradehttp.SetMinIntervalRequest
	if !decodeJSON(w, r, &req, writeUpgradeError) {
		return
	}

	resp, err := s.modules.Authorizer.Handler.SetMinIntervalHandler(r.Context(), actor, req)
	if err != nil {
		writeUpgradeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpgradesCandidateStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Authorizer.Handler.CandidateStatusHandler(r.Context(), r.PathValue("candidate_id"))
	if err != nil {
		writeUpgradeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
