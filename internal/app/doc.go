// Package app provides the orchestration layer for ingot.
//
// # Overview
//
// This package wires together configuration, preferences, the refresh
// scheduler, polling, state management and the UI. It is the composition
// root where all dependencies are initialized and connected.
//
// # Architecture
//
//  1. Load ~/.config/ingot/config.toml and overlay prefs.toml
//  2. Route the standard logger to the log file (TUI mode only)
//  3. Initialize the vault API client
//  4. Build the environment adapter and the scheduler handle
//  5. Launch the poller and the config watcher
//  6. Start the TUI, or log status transitions in headless mode
//
// # Components
//
//   - app.go: Run, config overrides and headless mode
//   - session.go: runtime settings; rebuilds the scheduler on change
//   - poller.go: fetch loop paced by the scheduler
//   - status.go: one-shot status report for the status command
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load() + prefs   Settings
//	       ├─────> vault.NewClient()       HTTP client
//	       ├─────> env.NewSystem()         Timers + activity/focus hub
//	       ├─────> cadence.NewHandle()     Scheduler
//	       ├─────> Poller.Run()            Background fetches
//	       ├─────> config.Watch()          Hot reload
//	       └─────> ui.Run()                TUI (blocks)
//
//	Poller loop:
//	┌─────────────────────────────────────────────┐
//	│ wait until lastAttempt + EffectiveInterval  │
//	│   (or a change/swap/RefreshNow wakes it)    │
//	│  ├─> store.BeginFetch()                     │
//	│  ├─> FetchSummary(), FetchTransactions()    │
//	│  └─> store.Update()                         │
//	└─────────────────────────────────────────────┘
//
// # Polling Behavior
//
// The interval comes from the current scheduler: 15s while the user is
// active, 60s once idle, and nothing at all while the terminal is unfocused
// and pause_in_background is set. Whenever the scheduler reports a change
// the wait is recomputed from the last attempt, so returning from idle with
// an overdue deadline fetches immediately.
//
// Consecutive failures double the wait up to five minutes. A success resets
// the backoff.
//
// # Error Handling
//
// Config and client setup errors are fatal. Fetch errors are logged and
// recorded in the store; the previous data stays on screen.
package app
