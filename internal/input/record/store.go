package record

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dshills/keyecho/internal/input/key"
)

// Store accumulates captured key transitions into a recording.
// At most one recording is active at a time; Start guards the invariant.
//
// Capture is called from the hook callback and must stay fast: it takes a
// mutex, stamps an offset and appends to a slice, nothing more.
type Store struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	active bool
	start  time.Time
	events []key.Event
}

// NewStore creates a store using the wall clock.
func NewStore() *Store {
	return NewStoreWithClock(clockwork.NewRealClock())
}

// NewStoreWithClock creates a store with an injected clock for testing.
func NewStoreWithClock(clock clockwork.Clock) *Store {
	return &Store{clock: clock}
}

// Start begins a new empty recording and stamps the start time.
// Returns ErrAlreadyRecording if one is active.
func (s *Store) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return ErrAlreadyRecording
	}
	s.active = true
	s.start = s.clock.Now()
	s.events = nil
	return nil
}

// Capture appends a key transition with its offset since Start.
// No-op when no recording is active.
func (s *Store) Capture(name string, action key.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || name == "" {
		return
	}
	offset := s.clock.Now().Sub(s.start)
	s.events = append(s.events, key.NewEvent(name, action, offset))
}

// Stop finalizes the active recording and clears the active state.
// Returns ErrNotRecording if no recording is active.
func (s *Store) Stop() (*Recording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotRecording
	}
	s.active = false
	rec := NewRecording(s.events)
	s.events = nil
	return rec, nil
}

// Recording returns true while a recording is active.
func (s *Store) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Len returns the number of events captured so far, or 0 when inactive.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return 0
	}
	return len(s.events)
}

// Elapsed returns the time since the recording started, or 0 when inactive.
func (s *Store) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return 0
	}
	return s.clock.Now().Sub(s.start)
}
