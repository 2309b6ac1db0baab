// Package env abstracts the host a refresh scheduler runs in: the clock,
// cancellable timers, user input events and foreground/background signals.
//
// Scheduler packages depend only on the Environment interface so that the
// same logic runs under the terminal UI (System) and under tests
// (envtest.Manual) without a real input device or wall clock.
package env

import (
	"fmt"
	"time"
)

// Kind identifies the input event that counted as user activity.
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	KeyDown
	Scroll
	TouchStart
	Click
)

// Kinds lists every tracked activity kind.
var Kinds = []Kind{PointerDown, PointerMove, KeyDown, Scroll, TouchStart, Click}

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case KeyDown:
		return "keydown"
	case Scroll:
		return "scroll"
	case TouchStart:
		return "touchstart"
	case Click:
		return "click"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TimerID identifies a pending timer. The zero value never refers to a timer.
type TimerID uint64

// Environment is the host adapter consumed by the activity and visibility
// trackers.
//
// Listener registration returns a cancel func; calling it more than once is
// a no-op. ClearTimer on an unknown or already fired timer is a no-op.
type Environment interface {
	Now() time.Time
	SetTimer(d time.Duration, fn func()) TimerID
	ClearTimer(id TimerID)
	OnActivity(fn func(Kind)) (cancel func())
	OnVisibilityChange(fn func(visible bool)) (cancel func())
	Visible() bool
}
