// Package config loads ingot's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/ingot/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # TOML Format
//
//	api_bind  = "127.0.0.1:8420"
//	api_token = ""
//	log_file  = "~/.local/state/ingot/ingot.log"
//
//	[polling]
//	active_interval_ms  = 15000
//	idle_interval_ms    = 60000
//	idle_threshold_ms   = 60000
//	pause_in_background = true
//	stale_threshold_ms  = 30000
//
// Every key is optional. Polling values are used as written; an active
// interval longer than the idle interval is accepted.
//
// # Reloading
//
// Watch follows the config file with fsnotify and hands each successfully
// parsed version to a callback. The app uses it to rebuild the refresh
// scheduler when the [polling] table changes.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and
// TOML parse errors. A missing file is not an error.
package config
