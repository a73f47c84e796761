package entities

import "strings"

// Role is one capability tag from a closed set. Roles are additive and never
// hierarchical; the single exception is the sovereign override, which passes
// every role check while the system is not in lockdown.
type Role string

const (
	RoleSovereign    Role = "sovereign"
	RoleCoordinator  Role = "coordinator"
	RoleSentinel     Role = "sentinel"
	RoleUpgradeAdmin Role = "upgrade_admin"
	RoleAuditor      Role = "auditor"
	RoleTreasurer    Role = "treasurer"
)

var allRoles = map[Role]struct{}{
	RoleSovereign:    {},
	RoleCoordinator:  {},
	RoleSentinel:     {},
	RoleUpgradeAdmin: {},
	RoleAuditor:      {},
	RoleTreasurer:    {},
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := allRoles[r]
	return ok
}

// ParseRole maps a canonical name back to its Role.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if role.Valid() {
		return role, true
	}
	return "", false
}

// Roles returns the closed set in stable order.
func Roles() []Role {
	return []Role{
		RoleSovereign,
		RoleCoordinator,
		RoleSentinel,
		RoleUpgradeAdmin,
		RoleAuditor,
		RoleTreasurer,
	}
}
