package httpserver

import (
	"errors"
	"net/http"

	breakererrors "warden/contexts/threat-response/circuit-breaker/domain/errors"
	breakerhttp "warden/contexts/threat-response/circuit-breaker/transport/http"
	"warden/internal/shared/guard"
)

func writeBreakerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, breakerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeBreakerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, breakererrors.ErrThresholdExceeded):
		writeBreakerError(w, http.StatusUnprocessableEntity, "threshold_exceeded", err.Error())
	case errors.Is(err, breakererrors.ErrInvalidConfiguration):
		writeBreakerError(w, http.StatusBadRequest, "invalid_configuration", err.Error())
	case errors.Is(err, breakererrors.ErrMissingActor):
		writeBreakerError(w, http.StatusUnauthorized, "missing_actor", err.Error())
	case errors.Is(err, breakererrors.ErrUnauthorized):
		writeBreakerError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, guard.ErrReentrantCall):
		writeBreakerError(w, http.StatusConflict, "reentrant_call", err.Error())
	default:
		writeBreakerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleBreakerObserve(w http.ResponseWriter, r *http.Request) {
	var req breakerhttp.ObserveRequest
	if !decodeJSON(w, r, &req, writeBreakerError) {
		return
	}

	resp, err := s.modules.Breaker.Handler.ObserveHandler(r.Context(), req)
	if err != nil {
		writeBreakerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBreakerUpdateThreshold(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeBreakerError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req breakerhttp.UpdateThresholdRequest
	if !decodeJSON(w, r, &req, writeBreakerError) {
		return
	}

	resp, err := s.modules.Breaker.Handler.UpdateThresholdHandler(r.Context(), actor, req)
	if err != nil {
		writeBreakerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBreakerManualReset(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeBreakerError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	resp, err := s.modules.Breaker.Handler.ManualResetHandler(r.Context(), actor)
	if err != nil {
		writeBreakerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBreakerGetWindow(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Breaker.Handler.GetWindowHandler(r.Context())
	if err != nil {
		writeBreakerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
