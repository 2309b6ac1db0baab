package cadence

import (
	"sync"
	"time"

	"github.com/five82/ingot/internal/activity"
	"github.com/five82/ingot/internal/env"
	"github.com/five82/ingot/internal/visibility"
)

// State is a point-in-time view of a scheduler for display.
type State struct {
	Interval     Interval
	Idle         bool
	Visible      bool
	LastActivity time.Time
	Config       Config
}

// Scheduler is an activity-aware refresh scheduler bound to one environment.
type Scheduler struct {
	cfg        Config
	activity   *activity.Tracker
	visibility *visibility.Tracker
	changes    chan struct{}
	closeOnce  sync.Once
}

// New creates a scheduler and attaches it to e.
func New(e env.Environment, cfg Config) *Scheduler {
	s := &Scheduler{
		cfg:     cfg,
		changes: make(chan struct{}, 1),
	}
	s.activity = activity.New(e, cfg.IdleThreshold,
		activity.WithOnChange(func(bool) { s.notify() }))
	s.visibility = visibility.New(e, s.activity, func(bool) { s.notify() })
	return s
}

// EffectiveInterval returns the polling period to use right now.
func (s *Scheduler) EffectiveInterval() Interval {
	return Select(s.activity.IsIdle(), s.visibility.IsVisible(), s.cfg)
}

// IsIdle reports whether the user has been inactive past the threshold.
func (s *Scheduler) IsIdle() bool { return s.activity.IsIdle() }

// IsVisible reports whether the host is in the foreground.
func (s *Scheduler) IsVisible() bool { return s.visibility.IsVisible() }

// LastActivity returns the time of the last effective activity.
func (s *Scheduler) LastActivity() time.Time { return s.activity.LastActivityAt() }

// RecordActivity feeds one input event through the activity throttle.
func (s *Scheduler) RecordActivity() bool { return s.activity.RecordActivity() }

// TriggerActivity forces the scheduler back to active and restarts the
// idle timer.
func (s *Scheduler) TriggerActivity() { s.activity.Touch() }

// Config returns the configuration the scheduler was built with.
func (s *Scheduler) Config() Config { return s.cfg }

// Changes signals idle or visibility flips.
func (s *Scheduler) Changes() <-chan struct{} { return s.changes }

// State returns the current scheduler state.
func (s *Scheduler) State() State {
	idle := s.activity.IsIdle()
	visible := s.visibility.IsVisible()
	return State{
		Interval:     Select(idle, visible, s.cfg),
		Idle:         idle,
		Visible:      visible,
		LastActivity: s.activity.LastActivityAt(),
		Config:       s.cfg,
	}
}

// Close detaches all listeners and clears the idle timer.
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		s.visibility.Close()
		s.activity.Close()
	})
}

func (s *Scheduler) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
