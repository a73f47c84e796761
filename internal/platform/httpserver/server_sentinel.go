package httpserver

import (
	"errors"
	"net/http"

	sentinelerrors "warden/contexts/threat-response/sentinel-executor/domain/errors"
	sentinelhttp "warden/contexts/threat-response/sentinel-executor/transport/http"
)

func writeSentinelError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, sentinelhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeSentinelDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sentinelerrors.ErrInvalidConfiguration):
		writeSentinelError(w, http.StatusBadRequest, "invalid_configuration", err.Error())
	case errors.Is(err, sentinelerrors.ErrMissingActor):
		writeSentinelError(w, http.StatusUnauthorized, "missing_actor", err.Error())
	case errors.Is(err, sentinelerrors.ErrUnauthorized):
		writeSentinelError(w, http.StatusForbidden, "unauthorized", err.Error())
	default:
		writeSentinelError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSentinelEvaluate(w http.ResponseWriter, r *http.Request) {
	var req sentinelhttp.EvaluateRequest
	if !decodeJSON(w, r, &req, writeSentinelError) {
		return
	}

	resp, err := s.modules.Sentinel.Handler.EvaluateHandler(r.Context(), req)
	if err != nil {
		writeSentinelDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSentinelUpdateThreshold(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeSentinelError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req sentinelhttp.UpdateThresholdRequest
	if !decodeJSON(w, r, &req, writeSentinelError) {
		return
	}

	resp, err := s.modules.Sentinel.Handler.UpdateThresholdHandler(r.Context(), actor, req)
	if err != nil {
		writeSentinelDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSentinelStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Sentinel.Handler.StatusHandler(r.Context())
	if err != nil {
		writeSentinelDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
