package entities

import "time"

// SectorStatus is the enabled flag of one independently toggle-able
// functional domain.
type SectorStatus struct {
	SectorID  string    `json:"sector_id"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// AuthorityDecision is returned by authority check queries.
type AuthorityDecision struct {
	Actor     string    `json:"actor"`
	Role      Role      `json:"role"`
	Allowed   bool      `json:"allowed"`
	Reason    string    `json:"reason"`
	CheckedAt time.Time `json:"checked_at"`
}

// Authority decision reasons.
const (
	ReasonLockdownActive    = "lockdown_active"
	ReasonSovereignOverride = "sovereign_override"
	ReasonRoleGranted       = "role_granted"
	ReasonRoleMissing       = "role_missing"
)
