// Package upgradeauthorizer gates logic upgrades behind multi-party
// approval, an epoch nonce and a minimum interval between executions.
// Approvals are keyed by {epoch nonce, candidate, approver}; a successful
// validation advances the nonce, which invalidates every approval collected
// under the previous epoch in one move.
//
// Layering:
//   - domain: approval key, policy entity, sentinel errors.
//   - ports: clock, approval/policy store, authority, audit recorder.
//   - application: approve/validate/admin commands, read-side views.
//   - adapters: in-memory store, ledger audit bridge, coordinator authority
//     bridge, HTTP handler.
//
// Boundary notes: lockdown denial needs no special casing here; the
// coordinator's decision point already answers false for every role while
// lockdown holds.
package upgradeauthorizer
