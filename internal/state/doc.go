// Package state provides thread-safe state management for ingot.
//
// # Overview
//
// The Store shares the latest wallet data between the background poller and
// the UI. It is also where the poller reports the facts the sync status
// projector needs: whether a fetch is in flight, when the last success was,
// and the most recent error.
//
//	Producer (poller):              Consumer (UI):
//	┌──────────────────┐           ┌──────────────────┐
//	│ store.BeginFetch │           │                  │
//	│ FetchSummary()   │           │                  │
//	│ FetchTxns()      │           │                  │
//	│ store.Update()   │──────────→│ store.Snapshot() │
//	│  wait interval   │  (mutex)  │  classify/render │
//	└──────────────────┘           └──────────────────┘
//
// # Update Semantics
//
//	// Success: replace data, stamp LastSuccess
//	store.Update(summary, txns, nil)
//	→ Summary, Transactions replaced
//	→ LastError = nil, ConsecutiveFailures = 0
//	→ LastUpdated = LastSuccess = now
//
//	// Error: keep old data, record error
//	store.Update(nil, nil, err)
//	→ Summary, Transactions, LastSuccess unchanged
//	→ LastError = err, ConsecutiveFailures++
//	→ LastUpdated = now
//
// Both paths clear Fetching. The UI therefore always has the most recent
// successful data while still seeing polling failures.
//
// # Defensive Copying
//
// Snapshot clones the transaction list, the holdings and plan slices inside
// the summary, and wraps the error value, so a snapshot handed to the UI can
// never alias the stored one.
//
// # Testing Considerations
//
// The zero Store is ready to use and stamps updates with the wall clock.
// NewStore accepts a clock for deterministic staleness tests.
package state
