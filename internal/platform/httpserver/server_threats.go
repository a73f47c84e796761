package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	threaterrors "warden/contexts/threat-response/threat-surface/domain/errors"
	threathttp "warden/contexts/threat-response/threat-surface/transport/http"
	"warden/internal/shared/guard"
)

func writeThreatError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, threathttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeThreatDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, threaterrors.ErrPatternRegistered):
		writeThreatError(w, http.StatusConflict, "pattern_registered", err.Error())
	case errors.Is(err, threaterrors.ErrPatternNotFound):
		writeThreatError(w, http.StatusNotFound, "pattern_not_found", err.Error())
	case errors.Is(err, threaterrors.ErrInvalidConfiguration):
		writeThreatError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, threaterrors.ErrMissingActor):
		writeThreatError(w, http.StatusUnauthorized, "missing_actor", err.Error())
	case errors.Is(err, threaterrors.ErrUnauthorized):
		writeThreatError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, guard.ErrReentrantCall):
		writeThreatError(w, http.StatusConflict, "reentrant_call", err.Error())
	default:
		writeThreatError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleThreatsLog(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeThreatError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req threathttp.LogThreatRequest
	if !decodeJSON(w, r, &req, writeThreatError) {
		return
	}

	resp, err := s.modules.Threats.Handler.LogThreatHandler(r.Context(), actor, req)
	if err != nil {
		writeThreatDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleThreatsRegisterPattern(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeThreatError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req threathttp.RegisterPatternRequest
	if !decodeJSON(w, r, &req, writeThreatError) {
		return
	}

	resp, err := s.modules.Threats.Handler.RegisterPatternHandler(r.Context(), actor, req)
	if err != nil {
		writeThreatDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleThreatsRemovePattern(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeThreatError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	resp, err := s.modules.Threats.Handler.RemovePatternHandler(r.Context(), actor, r.PathValue("pattern_id"))
	if err != nil {
		writeThreatDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleThreatsListPatterns(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Threats.Handler.ListPatternsHandler(r.Context())
	if err != nil {
		writeThreatDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleThreatsSuspectScore(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Threats.Handler.SuspectScoreHandler(r.Context(), r.PathValue("actor_id"))
	if err != nil {
		writeThreatDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleThreatsHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeThreatError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.modules.Threats.Handler.ThreatHistoryHandler(r.Context(), limit)
	if err != nil {
		writeThreatDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
