package key

import (
	"sort"
	"strings"
)

// Chord tracks the set of currently held keys and renders it as a display
// token such as "CTRL+SHIFT+A". Modifier keys sort before regular keys;
// within each group names sort alphabetically, so the token is stable no
// matter the order keys were pressed in.
//
// Chord is not safe for concurrent use; callers guard it with their own
// lock.
type Chord struct {
	held map[string]struct{}
}

// NewChord creates an empty chord.
func NewChord() *Chord {
	return &Chord{held: make(map[string]struct{})}
}

// Press adds a key to the chord. Returns true if the chord changed.
func (c *Chord) Press(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := c.held[name]; ok {
		return false
	}
	c.held[name] = struct{}{}
	return true
}

// Release removes a key from the chord. Returns true if the chord changed.
func (c *Chord) Release(name string) bool {
	if _, ok := c.held[name]; !ok {
		return false
	}
	delete(c.held, name)
	return true
}

// Clear removes all keys from the chord.
func (c *Chord) Clear() {
	c.held = make(map[string]struct{})
}

// Len returns the number of held keys.
func (c *Chord) Len() int {
	return len(c.held)
}

// Held returns true if the key is currently in the chord.
func (c *Chord) Held(name string) bool {
	_, ok := c.held[name]
	return ok
}

// Keys returns the held keys in display order.
func (c *Chord) Keys() []string {
	keys := make([]string, 0, len(c.held))
	for k := range c.held {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		mi, mj := IsModifier(keys[i]), IsModifier(keys[j])
		if mi != mj {
			return mi
		}
		return keys[i] < keys[j]
	})
	return keys
}

// String renders the chord as a "+"-joined display token. An empty chord
// renders as the empty string.
func (c *Chord) String() string {
	return strings.Join(c.Keys(), "+")
}
