// Package ui implements ingot's terminal dashboard with Bubble Tea.
//
// # Overview
//
// The dashboard is read-only. It shows wallet balances, the gold quote,
// allocated vault bars, buy-now-sell-later plans and recent transactions,
// with a header that reports how fresh the data is and how often it is
// being refreshed.
//
// # Scheduler Feedback
//
// The model is also the input side of the refresh scheduler:
//
//   - every tea.KeyMsg and tea.MouseMsg is reported to the Host as activity
//     (see activityKind) before normal key handling
//   - tea.FocusMsg and tea.BlurMsg are reported as visibility changes; the
//     program is started with tea.WithReportFocus so terminals that support
//     focus events send them
//
// Terminals without focus reporting never send BlurMsg, so the dashboard
// stays visible and falls back to the idle cadence.
//
// # Refresh
//
// A one second tick re-reads the state.Store snapshot and the current
// scheduler state, then classifies the sync status with the syncstatus
// package. Fetching happens elsewhere; the UI never blocks on the network.
//
// # Layout
//
//	┌ header: ingot  [SYNCED]  every 15s  updated 12:00:03 (4s ago) ┐
//	│ Wallet          │ Gold price        │ Vault                   │
//	│ Buy now, sell later plans (when present)                      │
//	│ Recent transactions (j/k to scroll)                           │
//	│ Events (e toggles; tail of the log file)                      │
//	└ footer: key help and notices                                  ┘
//
// # Themes
//
// Two themes are built in, Bullion (default) and Slate. T cycles between
// them and the choice is saved through the Controller.
package ui
