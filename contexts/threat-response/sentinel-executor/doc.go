// Package sentinelexecutor is the automated response gate. It holds a single
// tunable: the risk score at which a critical forensic record trips the
// process-wide pause. Evaluation is stateless; the executor keeps no
// proposal queue and no history of its own.
//
// Layering:
//   - domain: sentinel errors.
//   - ports: pause guard, settings store, authority, audit recorder.
//   - application: evaluate command, threshold admin, status query, plus the
//     worker consumer that feeds evaluation from the audit stream.
//   - adapters: in-memory settings, ledger audit bridge, coordinator
//     authority bridge, HTTP handler.
//
// Boundary notes: the evaluate gate fires only on the conjunction of
// critical severity and a risk score at or above the threshold. Duplicate
// stream deliveries are deduped by ledger sequence id before evaluation.
package sentinelexecutor
