package nav

import "slices"

// History is the log of screen-producing events. The top entry is always the
// event that produced the current screen.
type History struct {
	events []Event
}

// Push records e as the current screen.
func (h *History) Push(e Event) {
	h.events = append(h.events, e)
}

// Amend replaces the top entry, or pushes when the history is empty. It is
// used when a filter change alters the event that reproduces the current list.
func (h *History) Amend(e Event) {
	if len(h.events) == 0 {
		h.Push(e)
		return
	}
	h.events[len(h.events)-1] = e
}

// Back pops the current screen and the one before it, and returns the latter
// for replay. Replaying it records it again, so after one back the history
// ends at the previous screen. With fewer than two entries Back does nothing
// and reports false.
func (h *History) Back() (Event, bool) {
	n := len(h.events)
	if n < 2 {
		return nil, false
	}
	prev := h.events[n-2]
	clear(h.events[n-2:])
	h.events = h.events[:n-2]
	return prev, true
}

// Clear drops every entry.
func (h *History) Clear() {
	h.events = nil
}

// Len returns the number of recorded entries.
func (h *History) Len() int { return len(h.events) }

// Top returns the current screen's event.
func (h *History) Top() (Event, bool) {
	if len(h.events) == 0 {
		return nil, false
	}
	return h.events[len(h.events)-1], true
}

// Events returns a copy of the entries, oldest first.
func (h *History) Events() []Event {
	return slices.Clone(h.events)
}
