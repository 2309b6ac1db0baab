// Package logtail reads the end of ingot's own log file for the events pane.
//
// The TUI routes the standard logger to a file (bubbletea owns the
// terminal), so the poller's "refresh failed" and "cadence changed" lines
// are only visible by reading that file back. Read extracts the last N
// lines with a ring buffer in one pass and O(N) memory; ReadEntries also
// splits each line into prefix, timestamp and message.
//
//	entries, err := logtail.ReadEntries(cfg.LogFile, 50)
//	if err != nil {
//		log.Printf("read log: %v", err)
//	}
//
// A missing log file is not an error; it yields an empty result.
package logtail
