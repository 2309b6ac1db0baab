package env

import "sync"

// Hub fans host input and visibility signals out to registered listeners.
// The zero value is ready to use and starts visible.
type Hub struct {
	mu         sync.Mutex
	seq        uint64
	activity   map[uint64]func(Kind)
	visibility map[uint64]func(bool)
	hidden     bool
}

// OnActivity registers fn for every activity event.
func (h *Hub) OnActivity(fn func(Kind)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.activity == nil {
		h.activity = make(map[uint64]func(Kind))
	}
	h.seq++
	id := h.seq
	h.activity[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.activity, id)
		h.mu.Unlock()
	}
}

// OnVisibilityChange registers fn for visibility transitions.
func (h *Hub) OnVisibilityChange(fn func(bool)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.visibility == nil {
		h.visibility = make(map[uint64]func(bool))
	}
	h.seq++
	id := h.seq
	h.visibility[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.visibility, id)
		h.mu.Unlock()
	}
}

// Visible reports the last visibility signal.
func (h *Hub) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.hidden
}

// EmitActivity delivers an activity event to all listeners.
func (h *Hub) EmitActivity(kind Kind) {
	h.mu.Lock()
	fns := make([]func(Kind), 0, len(h.activity))
	for _, fn := range h.activity {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(kind)
	}
}

// SetVisible records the host visibility and notifies listeners when it
// changed.
func (h *Hub) SetVisible(visible bool) {
	h.mu.Lock()
	if h.hidden == !visible {
		h.mu.Unlock()
		return
	}
	h.hidden = !visible
	fns := make([]func(bool), 0, len(h.visibility))
	for _, fn := range h.visibility {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(visible)
	}
}

// Listeners returns the number of registered activity and visibility
// listeners.
func (h *Hub) Listeners() (activity, visibility int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.activity), len(h.visibility)
}
