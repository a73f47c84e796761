// Package compensationworkflow runs the three-step restitution flow for
// actors harmed by an incident: a sovereign proposes, an auditor approves,
// and anyone may then execute the payout through the reserve vault. The
// executed flag is a one-way latch; a proposal pays out at most once.
//
// Layering:
//   - domain: proposal entity and sentinel errors.
//   - ports: clock, id generator, proposal store, reserve vault, authority,
//     audit recorder.
//   - application: propose/approve/execute commands, read-side views.
//   - adapters: in-memory store and vault, ledger audit bridge, coordinator
//     authority bridge, HTTP handler.
//
// Boundary notes: execution is deliberately open to any caller; the security
// of the flow lives in the proposer/approver separation and the latch, not
// in who pushes the final button. A failed payout leaves no partial effects.
package compensationworkflow
