package env

import (
	"sync"
	"time"
)

// System is the production Environment: wall clock, time.AfterFunc timers,
// and a Hub fed by the host UI.
type System struct {
	Hub

	mu     sync.Mutex
	nextID TimerID
	timers map[TimerID]*time.Timer
}

var _ Environment = (*System)(nil)

// NewSystem returns a visible System with no pending timers.
func NewSystem() *System {
	return &System{timers: make(map[TimerID]*time.Timer)}
}

// Now returns the wall clock time.
func (s *System) Now() time.Time {
	return time.Now()
}

// SetTimer runs fn once after d unless the timer is cleared first.
func (s *System) SetTimer(d time.Duration, fn func()) TimerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()
		if live {
			fn()
		}
	})
	return id
}

// ClearTimer cancels a pending timer. A callback that already started
// waiting for the lock is suppressed as well.
func (s *System) ClearTimer(id TimerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Pending returns the number of timers that have not fired or been cleared.
func (s *System) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
