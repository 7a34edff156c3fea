package monitor

import (
	"sync"

	"github.com/dshills/keyecho/internal/event"
	"github.com/dshills/keyecho/internal/input/key"
	"github.com/dshills/keyecho/internal/input/record"
)

// escapeKey is the normalized name that cancels a pending countdown.
const escapeKey = "ESC"

// Monitor routes key transitions from the hook to the display and the
// recording store.
type Monitor struct {
	bus   *event.Bus
	store *record.Store

	mu       sync.Mutex
	enabled  bool
	chord    *key.Chord
	onEscape func()
}

// New creates a disabled monitor. The store may be nil when capture
// without recording is wanted.
func New(bus *event.Bus, store *record.Store) *Monitor {
	return &Monitor{
		bus:   bus,
		store: store,
		chord: key.NewChord(),
	}
}

// OnEscape registers a callback invoked when ESC is pressed while the
// monitor is enabled. The app uses it to cancel a pending countdown.
func (m *Monitor) OnEscape(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEscape = fn
}

// SetEnabled turns forwarding on or off. Turning it off clears the chord
// and publishes empty display text. Redundant calls are no-ops.
func (m *Monitor) SetEnabled(enabled bool) {
	m.mu.Lock()
	if m.enabled == enabled {
		m.mu.Unlock()
		return
	}
	m.enabled = enabled
	if !enabled {
		m.chord.Clear()
	}
	m.mu.Unlock()

	if !enabled && m.bus != nil {
		m.bus.Publish(event.TopicDisplay, "")
	}
}

// Enabled reports whether the monitor is forwarding.
func (m *Monitor) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Display returns the current chord display text.
func (m *Monitor) Display() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chord.String()
}

// HandleTransition processes one raw key transition from the hook.
func (m *Monitor) HandleTransition(name string, action key.Action) {
	norm := key.Normalize(name)
	if norm == "" {
		return
	}

	m.mu.Lock()
	if !m.enabled {
		m.mu.Unlock()
		return
	}
	switch action {
	case key.ActionDown:
		m.chord.Press(norm)
	case key.ActionUp:
		m.chord.Release(norm)
	}
	display := m.chord.String()
	escape := m.onEscape
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(event.TopicDisplay, display)
	}
	if m.store != nil {
		m.store.Capture(norm, action)
	}
	if norm == escapeKey && action == key.ActionDown && escape != nil {
		escape()
	}
}
