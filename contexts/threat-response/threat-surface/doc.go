// Package threatsurface maintains the live picture of hostile activity: a
// catalog of attack patterns, a rolling threat history and per-actor suspect
// scores. High and critical sightings self-register their pattern so the
// catalog converges on what is actually being seen.
//
// Layering:
//   - domain: risk levels, pattern and threat entities, sentinel errors.
//   - ports: clock, id generator, catalog/history/suspect stores, authority,
//     audit recorder.
//   - application: log-threat and pattern admin commands, read-side views.
//   - adapters: in-memory slot-map catalog, ledger audit bridge, coordinator
//     authority bridge, HTTP handler.
//
// Boundary notes: the catalog is a slot map, so count and listing can never
// disagree and removal does not shift other entries' keys. Pattern admin is
// coordinator-gated through the access coordinator.
package threatsurface
