package domain

import "sync"

// EventLog is a bounded most-recent-first list of feed events. New events
// are prepended and the tail beyond the cap is dropped. No replay or
// ordering recovery is attempted.
type EventLog struct {
	mu     sync.RWMutex
	events []Event
	cap    int
}

// NewEventLog creates a log holding at most capacity events.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = 50
	}
	return &EventLog{cap: capacity}
}

// Add prepends an event, truncating past the cap.
func (l *EventLog) Add(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append([]Event{ev}, l.events...)
	if len(l.events) > l.cap {
		l.events = l.events[:l.cap]
	}
}

// Snapshot returns a copy of the current events, newest first.
func (l *EventLog) Snapshot() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of retained events.
func (l *EventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Cap returns the retention limit.
func (l *EventLog) Cap() int {
	return l.cap
}
