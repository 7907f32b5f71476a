package engine

import "starweave/internal/domain/world"

const defaultHistorySize = 100

// History retains the last N processed events for replay and debugging,
// independent of the world's per-tick event queue.
type History struct {
	capacity int
	events   []world.GameEvent
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultHistorySize
	}
	return &History{capacity: capacity}
}

// Record appends events, evicting the oldest entries beyond capacity.
func (h *History) Record(events ...world.GameEvent) {
	h.events = append(h.events, events...)
	if overflow := len(h.events) - h.capacity; overflow > 0 {
		h.events = append([]world.GameEvent(nil), h.events[overflow:]...)
	}
}

// Events returns the retained events, oldest first.
func (h *History) Events() []world.GameEvent {
	return append([]world.GameEvent(nil), h.events...)
}

func (h *History) Len() int {
	return len(h.events)
}
