package key

import (
	"fmt"
	"time"
)

// Event represents a single key transition within a recording.
// Events are immutable once recorded.
type Event struct {
	// Key is the normalized key identifier.
	Key string

	// Action is the transition direction.
	Action Action

	// Offset is the time since the start of the recording.
	// Always a non-negative whole number of milliseconds.
	Offset time.Duration
}

// NewEvent creates an event with the offset truncated to millisecond
// precision, matching the wire format's resolution.
func NewEvent(name string, action Action, offset time.Duration) Event {
	if offset < 0 {
		offset = 0
	}
	return Event{
		Key:    name,
		Action: action,
		Offset: offset.Truncate(time.Millisecond),
	}
}

// OffsetMS returns the offset in whole milliseconds.
func (e Event) OffsetMS() int64 {
	return e.Offset.Milliseconds()
}

// String returns a human-readable form such as "CTRL down +120ms".
func (e Event) String() string {
	return fmt.Sprintf("%s %s +%dms", e.Key, e.Action, e.OffsetMS())
}
