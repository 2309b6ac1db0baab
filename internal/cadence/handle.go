package cadence

import "sync"

// Handle holds the scheduler currently in use and lets it be swapped when
// the polling configuration changes.
type Handle struct {
	mu      sync.RWMutex
	current *Scheduler
	swapped chan struct{}
}

// NewHandle wraps s.
func NewHandle(s *Scheduler) *Handle {
	return &Handle{current: s, swapped: make(chan struct{}, 1)}
}

// Current returns the active scheduler.
func (h *Handle) Current() *Scheduler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Replace installs next and closes the previous scheduler.
func (h *Handle) Replace(next *Scheduler) {
	h.mu.Lock()
	prev := h.current
	h.current = next
	h.mu.Unlock()

	if prev != nil && prev != next {
		prev.Close()
	}
	select {
	case h.swapped <- struct{}{}:
	default:
	}
}

// Swapped signals after each Replace.
func (h *Handle) Swapped() <-chan struct{} {
	return h.swapped
}

// Close closes the active scheduler.
func (h *Handle) Close() {
	if s := h.Current(); s != nil {
		s.Close()
	}
}
