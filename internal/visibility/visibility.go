// Package visibility follows whether the dashboard is in the foreground.
package visibility

import (
	"sync"

	"github.com/five82/ingot/internal/activity"
	"github.com/five82/ingot/internal/env"
)

// Tracker mirrors the environment's visibility signal. Regaining the
// foreground counts as user activity.
type Tracker struct {
	activity *activity.Tracker
	onChange func(visible bool)

	mu      sync.Mutex
	visible bool
	closed  bool
	detach  func()
}

// New subscribes to visibility changes. onChange may be nil; it runs after
// the activity tracker has been reset.
func New(e env.Environment, act *activity.Tracker, onChange func(visible bool)) *Tracker {
	t := &Tracker{
		activity: act,
		onChange: onChange,
		visible:  e.Visible(),
	}
	t.detach = e.OnVisibilityChange(t.handle)
	return t
}

// IsVisible reports whether the host is in the foreground.
func (t *Tracker) IsVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Close stops listening for visibility changes.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	detach := t.detach
	t.mu.Unlock()

	if detach != nil {
		detach()
	}
}

func (t *Tracker) handle(visible bool) {
	t.mu.Lock()
	if t.closed || t.visible == visible {
		t.mu.Unlock()
		return
	}
	t.visible = visible
	t.mu.Unlock()

	if visible && t.activity != nil {
		t.activity.Touch()
	}
	if t.onChange != nil {
		t.onChange(visible)
	}
}
