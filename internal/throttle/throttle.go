// Package throttle provides a leading-edge rate limiter for event streams.
package throttle

import "time"

// DefaultWindow is the minimum spacing between effective activity events.
const DefaultWindow = time.Second

// Limiter admits at most one call per Window. The first call always fires.
// The zero value fires on every call.
type Limiter struct {
	Window time.Duration

	last  time.Time
	fired bool
}

// New returns a Limiter with the given window.
func New(window time.Duration) *Limiter {
	return &Limiter{Window: window}
}

// TryFire reports whether a call at now is effective. Effective calls become
// the start of the next window; suppressed calls leave the limiter unchanged.
func (l *Limiter) TryFire(now time.Time) bool {
	if l.fired && now.Sub(l.last) < l.Window {
		return false
	}
	l.Mark(now)
	return true
}

// Mark records an effective call at now regardless of the window.
func (l *Limiter) Mark(now time.Time) {
	l.last = now
	l.fired = true
}

// Last returns the time of the most recent effective call.
func (l *Limiter) Last() (time.Time, bool) {
	return l.last, l.fired
}

// Reset forgets the previous call so the next TryFire fires.
func (l *Limiter) Reset() {
	l.last = time.Time{}
	l.fired = false
}
