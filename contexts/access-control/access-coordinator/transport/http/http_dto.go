package http

import "time"

// CheckAuthorityRequest is the request body for one RBAC evaluation.
type CheckAuthorityRequest struct {
	Actor string `json:"actor,omitempty"`
	Role  string `json:"role"`
}

// CheckAuthorityResponse describes one authority decision.
type CheckAuthorityResponse struct {
	Actor     string    `json:"actor"`
	Role      string    `json:"role"`
	Allowed   bool      `json:"allowed"`
	Reason    string    `json:"reason"`
	CheckedAt time.Time `json:"checked_at"`
}

// LockdownStateResponse reports the global deny-all override.
type LockdownStateResponse struct {
	Active bool `json:"active"`
}

// EmergencyPauseRequest carries the machine-escalation reason.
type EmergencyPauseRequest struct {
	Reason        string `json:"reason"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// SetSectorStatusRequest toggles one functional domain.
type SetSectorStatusRequest struct {
	Enabled bool `json:"enabled"`
}

// SectorStatusDTO is one sector flag.
type SectorStatusDTO struct {
	SectorID  string    `json:"sector_id"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// ListSectorsResponse carries every sector flag in stable order.
type ListSectorsResponse struct {
	Sectors []SectorStatusDTO `json:"sectors"`
}

// GrantRoleRequest assigns one capability tag.
type GrantRoleRequest struct {
	Role string `json:"role"`
}

// RevokeRoleRequest removes one capability tag.
type RevokeRoleRequest struct {
	Role string `json:"role"`
}

// ListActorRolesResponse enumerates one actor's capability tags.
type ListActorRolesResponse struct {
	Actor string   `json:"actor"`
	Roles []string `json:"roles"`
}

// StatusResponse acknowledges a state transition.
type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
