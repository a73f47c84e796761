package httpserver

import (
	"errors"
	"net/http"

	coordinatorerrors "warden/contexts/access-control/access-coordinator/domain/errors"
	coordinatorhttp "warden/contexts/access-control/access-coordinator/transport/http"
)

func writeAuthorityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, coordinatorhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeAuthorityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coordinatorerrors.ErrMissingActor):
		writeAuthorityError(w, http.StatusUnauthorized, "missing_actor", err.Error())
	case errors.Is(err, coordinatorerrors.ErrUnauthorized):
		writeAuthorityError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, coordinatorerrors.ErrMissingReason),
		errors.Is(err, coordinatorerrors.ErrMissingSector),
		errors.Is(err, coordinatorerrors.ErrUnknownRole):
		writeAuthorityError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, coordinatorerrors.ErrSectorNotFound):
		writeAuthorityError(w, http.StatusNotFound, "sector_not_found", err.Error())
	case errors.Is(err, coordinatorerrors.ErrLockdownActive),
		errors.Is(err, coordinatorerrors.ErrLockdownNotActive),
		errors.Is(err, coordinatorerrors.ErrRoleAlreadyGranted),
		errors.Is(err, coordinatorerrors.ErrRoleNotGranted):
		writeAuthorityError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeAuthorityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleAuthorityCheck(w http.ResponseWriter, r *http.Request) {
	var req coordinatorhttp.CheckAuthorityRequest
	if !decodeJSON(w, r, &req, writeAuthorityError) {
		return
	}

	resp, err := s.modules.Coordinator.Handler.CheckAuthorityHandler(r.Context(), actorID(r), req)
	if err != nil {
		writeAuthorityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorityLockdownState(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Coordinator.Handler.LockdownStateHandler(r.Context())
	if err != nil {
		writeAuthorityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorityTriggerLockdown(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeAuthorityError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	resp, err := s.modules.Coordinator.Handler.TriggerLockdownHandler(r.Context(), actor)
	if err != nil {
		writeAuthorityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorityReleaseLockdown(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeAuthorityError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	resp, err := s.modules.Coordinator.Handler.ReleaseLockdownHandler(r.Context(), actor)
	if err != nil {
		writeAuthorityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorityEmergencyPause(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeAuthorityError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req coordinatorhttp.EmergencyPauseRequest
	if !decodeJSON(w, r, &req, writeAuthorityError) {
		return
	}

	resp, err := s.modules.Coordinator.Handler.EmergencyPauseHandler(r.Context(), actor, req)
	if err != nil {
		writeAuthorityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthoritySetSectorStatus(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeAuthorityError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req coordinatorhttp.SetSectorStatusRequest
	if !decodeJSON(w, r, &req, writeAuthorityError) {
		return
	}

	resp, err := s.modules.Coordinator.Handler.SetSectorStatusHandler(
		r.Context(),
		actor,
		r.PathValue("sector_id"),
		req,
	)
	if err != nil {
		writeAuthorityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorityListSectors(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Coordinator.Handler.ListSectorsHandler(r.Context())
	if err != nil {
		writeAuthorityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorityGrantRole(w http.ResponseWriter, r *http.Request) {
	admin := actorID(r)
	if admin == "" {
		writeAuthorityError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req coordinatorhttp.GrantRoleRequest
	if !decodeJSON(w, r, &req, writeAuthorityError) {
		return
	}

	resp, err := s.modules.Coordinator.Handler.GrantRoleHandler(r.Context(), admin, r.PathValue("actor_id"), req)
	if err != nil {
		writeAuthorityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorityRevokeRole(w http.ResponseWriter, r *http.Request) {
	admin := actorID(r)
	if admin == "" {
		writeAuthorityError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req coordinatorhttp.RevokeRoleRequest
	if !decodeJSON(w, r, &req, writeAuthorityError) {
		return
	}

	resp, err := s.modules.Coordinator.Handler.RevokeRoleHandler(r.Context(), admin, r.PathValue("actor_id"), req)
	if err != nil {
		writeAuthorityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorityListActorRoles(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Coordinator.Handler.ListActorRolesHandler(r.Context(), r.PathValue("actor_id"))
	if err != nil {
		writeAuthorityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
