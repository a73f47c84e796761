// Package accesscoordinator implements the Access Coordinator inside Warden.
//
// Layering:
// - domain: capability-tag roles, sector status, lockdown invariants, errors
// - application: lockdown/pause/sector/role commands and authority queries
// - ports: stable boundaries for persistence, audit reporting, pause guard
// - adapters: concrete memory, audit-bridge, and HTTP implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - This module is the trust root: every other Warden module consults it
//   through a narrow authority port rather than reading global state.
// - Once the global lockdown is set, every authority check denies except
//   sovereign-power resolution, which must stay truthful so release works.
package accesscoordinator
