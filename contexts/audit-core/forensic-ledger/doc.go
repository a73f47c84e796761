// Package forensicledger implements the Forensic Ledger inside Warden.
//
// Layering:
// - domain: record/seal entities, severity ordering, errors
// - application: record/seal commands and read queries using explicit ports
// - ports: stable boundaries for persistence, sealing, and event publication
// - adapters: concrete memory, postgres, and HTTP implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under audit-core context.
// - Do not import other context adapters into domain/application.
// - Every other Warden module reports here; the ledger depends on nothing
//   but its own ports.
package forensicledger
