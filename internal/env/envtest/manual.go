// Package envtest provides a deterministic env.Environment for tests.
package envtest

import (
	"sort"
	"sync"
	"time"

	"github.com/five82/ingot/internal/env"
)

type timer struct {
	id       env.TimerID
	deadline time.Time
	fn       func()
}

// Manual is an Environment whose clock only moves when Advance is called.
// Due timers fire synchronously from Advance, in deadline order.
type Manual struct {
	env.Hub

	mu     sync.Mutex
	now    time.Time
	nextID env.TimerID
	timers map[env.TimerID]timer
}

var _ env.Environment = (*Manual)(nil)

// New returns a visible Manual environment starting at start.
func New(start time.Time) *Manual {
	return &Manual{now: start, timers: make(map[env.TimerID]timer)}
}

// Now returns the manual clock.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// SetTimer schedules fn at Now()+d.
func (m *Manual) SetTimer(d time.Duration, fn func()) env.TimerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.timers[m.nextID] = timer{id: m.nextID, deadline: m.now.Add(d), fn: fn}
	return m.nextID
}

// ClearTimer removes a pending timer.
func (m *Manual) ClearTimer(id env.TimerID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.timers, id)
}

// Advance moves the clock forward by d, firing every timer whose deadline
// is reached. Timers scheduled by callbacks fire too if they fall inside
// the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next, ok := m.earliestLocked(target)
		if !ok {
			m.now = target
			m.mu.Unlock()
			return
		}
		delete(m.timers, next.id)
		m.now = next.deadline
		m.mu.Unlock()

		next.fn()
	}
}

func (m *Manual) earliestLocked(limit time.Time) (timer, bool) {
	due := make([]timer, 0, len(m.timers))
	for _, t := range m.timers {
		if !t.deadline.After(limit) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return timer{}, false
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].id < due[j].id
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	return due[0], true
}

// Activity emits an activity event of the given kind.
func (m *Manual) Activity(kind env.Kind) {
	m.EmitActivity(kind)
}

// Pending returns the number of scheduled timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}
