// Package circuitbreaker guards value flow with a rolling volume window.
// Traffic is observed before it settles; once the windowed total would pass
// the configured threshold the observation aborts, a critical record lands
// in the forensic ledger and an emergency pause is requested.
//
// Layering:
//   - domain: volume window entity and sentinel errors.
//   - ports: clock, state store, authority, audit recorder, escalator.
//   - application: observe/update-threshold/manual-reset commands, window query.
//   - adapters: in-memory state, ledger audit bridge, coordinator authority
//     bridge, HTTP handler.
//
// Boundary notes: the breaker never decides authority on its own; privileged
// commands route through the coordinator's decision point. The breach path is
// fail-closed: the offending amount is never committed, and a failed pause
// escalation does not soften the abort.
package circuitbreaker
