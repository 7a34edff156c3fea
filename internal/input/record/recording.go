package record

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keyecho/internal/input/key"
)

// Recording is an ordered sequence of key events, ascending by offset.
// A Recording is immutable once returned by Store.Stop or Load.
type Recording struct {
	// ID uniquely identifies this recording in memory. Not persisted.
	ID string

	// CreatedAt is when the recording was started or loaded. Not persisted.
	CreatedAt time.Time

	// Events are the recorded transitions in capture order.
	Events []key.Event
}

// NewRecording creates a recording from a slice of events. The slice is
// copied so later mutation of the argument cannot alter the recording.
func NewRecording(events []key.Event) *Recording {
	copied := make([]key.Event, len(events))
	copy(copied, events)
	return &Recording{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Events:    copied,
	}
}

// Len returns the number of events.
func (r *Recording) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Events)
}

// Empty returns true if the recording has no events.
func (r *Recording) Empty() bool {
	return r.Len() == 0
}

// Duration returns the offset of the final event, which is the natural
// length of one playback pass.
func (r *Recording) Duration() time.Duration {
	if r.Len() == 0 {
		return 0
	}
	return r.Events[len(r.Events)-1].Offset
}

// Keys returns the distinct key identifiers appearing in the recording.
func (r *Recording) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, e := range r.Events {
		if _, ok := seen[e.Key]; ok {
			continue
		}
		seen[e.Key] = struct{}{}
		keys = append(keys, e.Key)
	}
	return keys
}

// Validate checks the structural invariants: non-empty key names, known
// actions, non-negative offsets ascending in capture order, and per-key
// alternation of down and up (no double-down without an intervening up).
func (r *Recording) Validate() error {
	down := make(map[string]bool)
	var prev time.Duration
	for i, e := range r.Events {
		if e.Key == "" {
			return fmt.Errorf("event %d: empty key identifier", i)
		}
		if !e.Action.IsValid() {
			return fmt.Errorf("event %d: invalid action %d", i, e.Action)
		}
		if e.Offset < 0 {
			return fmt.Errorf("event %d: negative offset %v", i, e.Offset)
		}
		if e.Offset < prev {
			return fmt.Errorf("event %d: offset %v before previous %v", i, e.Offset, prev)
		}
		prev = e.Offset

		switch e.Action {
		case key.ActionDown:
			if down[e.Key] {
				return fmt.Errorf("event %d: key %s pressed twice without release", i, e.Key)
			}
			down[e.Key] = true
		case key.ActionUp:
			// An up without a preceding down is legal: the recording may
			// have started while the key was already held.
			delete(down, e.Key)
		}
	}
	return nil
}
