// Package syncstatus classifies the freshness of dashboard data into a
// user-facing label.
package syncstatus

import (
	"fmt"
	"time"
)

// DefaultStaleAfter is how old the last successful refresh may get before
// the data is reported stale.
const DefaultStaleAfter = 30 * time.Second

// Status is the derived sync state shown in the header.
type Status int

const (
	Synced Status = iota
	Syncing
	Stale
	Error
	Paused
)

func (s Status) String() string {
	switch s {
	case Synced:
		return "synced"
	case Syncing:
		return "syncing"
	case Stale:
		return "stale"
	case Error:
		return "error"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Input is what the data layer reports about its most recent fetches.
type Input struct {
	Fetching          bool
	Err               error
	LastSuccess       time.Time
	Visible           bool
	PauseInBackground bool
}

// Classify applies the rules in priority order: paused, error, syncing,
// stale, synced. A zero LastSuccess counts as stale.
func Classify(in Input, now time.Time, staleAfter time.Duration) Status {
	switch {
	case !in.Visible && in.PauseInBackground:
		return Paused
	case in.Err != nil:
		return Error
	case in.Fetching:
		return Syncing
	case in.LastSuccess.IsZero() || now.Sub(in.LastSuccess) > staleAfter:
		return Stale
	default:
		return Synced
	}
}

// Projector binds Classify to a clock and threshold.
type Projector struct {
	Now        func() time.Time
	StaleAfter time.Duration
}

// NewProjector returns a Projector on the wall clock. A non-positive
// staleAfter uses DefaultStaleAfter.
func NewProjector(staleAfter time.Duration) Projector {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return Projector{Now: time.Now, StaleAfter: staleAfter}
}

// Status classifies in at the projector's current time.
func (p Projector) Status(in Input) Status {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return Classify(in, now(), p.StaleAfter)
}
