// Package activity tracks how recently the user interacted with the
// dashboard and flags the session idle after a quiet period.
package activity

import (
	"sync"
	"time"

	"github.com/five82/ingot/internal/env"
	"github.com/five82/ingot/internal/throttle"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithThrottle overrides the minimum spacing between effective events.
func WithThrottle(window time.Duration) Option {
	return func(t *Tracker) { t.limiter = throttle.New(window) }
}

// WithOnChange registers fn to run after the idle flag flips. fn runs
// without the tracker lock held.
func WithOnChange(fn func(idle bool)) Option {
	return func(t *Tracker) { t.onChange = fn }
}

// Tracker holds the activity state for one scheduler instance.
type Tracker struct {
	env       env.Environment
	threshold time.Duration
	onChange  func(idle bool)

	mu           sync.Mutex
	limiter      *throttle.Limiter
	lastActivity time.Time
	idle         bool
	timer        env.TimerID
	gen          uint64
	closed       bool
	detach       func()
}

// New starts a non-idle tracker with the idle timer armed and subscribes it
// to the environment's activity events. Close releases both.
func New(e env.Environment, idleThreshold time.Duration, opts ...Option) *Tracker {
	t := &Tracker{
		env:       e,
		threshold: idleThreshold,
		limiter:   throttle.New(throttle.DefaultWindow),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.mu.Lock()
	t.lastActivity = e.Now()
	t.armLocked()
	t.mu.Unlock()

	t.detach = e.OnActivity(func(env.Kind) { t.RecordActivity() })
	return t
}

// RecordActivity registers an input event. Calls within the throttle window
// of the previous effective call are ignored. It reports whether the call
// was effective.
func (t *Tracker) RecordActivity() bool {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return false
	}
	now := t.env.Now()
	if !t.limiter.TryFire(now) {
		t.mu.Unlock()
		return false
	}
	wasIdle := t.touchLocked(now)
	t.mu.Unlock()

	if wasIdle {
		t.notify(false)
	}
	return true
}

// Touch resets the tracker to active and restarts the idle timer,
// bypassing the throttle.
func (t *Tracker) Touch() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	now := t.env.Now()
	t.limiter.Mark(now)
	wasIdle := t.touchLocked(now)
	t.mu.Unlock()

	if wasIdle {
		t.notify(false)
	}
}

// IsIdle reports whether the idle threshold elapsed without activity.
func (t *Tracker) IsIdle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.idle
}

// LastActivityAt returns the time of the last effective activity.
func (t *Tracker) LastActivityAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastActivity
}

// Close detaches from the environment and clears the idle timer. Pending
// callbacks become no-ops.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.env.ClearTimer(t.timer)
	t.timer = 0
	detach := t.detach
	t.mu.Unlock()

	if detach != nil {
		detach()
	}
}

func (t *Tracker) touchLocked(now time.Time) (wasIdle bool) {
	wasIdle = t.idle
	t.lastActivity = now
	t.idle = false
	t.armLocked()
	return wasIdle
}

func (t *Tracker) armLocked() {
	if t.timer != 0 {
		t.env.ClearTimer(t.timer)
	}
	t.gen++
	gen := t.gen
	t.timer = t.env.SetTimer(t.threshold, func() { t.expire(gen) })
}

func (t *Tracker) expire(gen uint64) {
	t.mu.Lock()
	if t.closed || gen != t.gen || t.idle {
		t.mu.Unlock()
		return
	}
	t.idle = true
	t.timer = 0
	t.mu.Unlock()

	t.notify(true)
}

func (t *Tracker) notify(idle bool) {
	if t.onChange != nil {
		t.onChange(idle)
	}
}
