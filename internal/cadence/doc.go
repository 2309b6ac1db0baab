// Package cadence decides how often the dashboard should re-fetch data.
//
// # Overview
//
// A Scheduler combines two trackers:
//
//   - activity: has the user touched a key or the mouse within the idle threshold?
//   - visibility: is the terminal focused?
//
// and derives the effective polling interval from them:
//
//	hidden && PauseInBackground  → Paused
//	idle                         → IdleInterval
//	otherwise                    → ActiveInterval
//
// The interval is recomputed on every EffectiveInterval call. Nothing is
// cached, so the answer always reflects the latest tracker state.
//
// # Lifecycle
//
// Each Scheduler owns its listeners and its idle timer. New attaches them,
// Close detaches them and clears the timer. Multiple schedulers may share one
// environment (for example while a config reload swaps instances) without
// affecting each other.
//
// Handle holds the scheduler currently in use by the application. Replace
// closes the previous instance and wakes goroutines waiting on Swapped, so
// a config change recreates the timers rather than mutating them.
//
// # Notifications
//
// Changes delivers a coalesced signal whenever the idle or visible flag flips.
// Consumers re-read EffectiveInterval after receiving it; the channel carries
// no payload and never blocks the sender.
//
// # Configuration
//
// Config values are honored literally. An ActiveInterval longer than the
// IdleInterval is not rejected.
package cadence
