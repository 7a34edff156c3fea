// Package key provides key event types for the capture and playback system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Action: A key transition direction (down or up)
//   - Event: A single key transition with its offset into a recording
//   - Chord: The set of currently held keys, rendered as "CTRL+SHIFT+A"
//
// # Key Identifiers
//
// Keys are identified by normalized names produced by Normalize:
//
//   - Single characters are upper-cased: "a" becomes "A"
//   - Multi-word names use underscores: "left ctrl" becomes "LEFT_CTRL"
//   - Special keys keep their hook-reported names: "ESC", "SPACE", "F5"
//
// Normalized names are what appears in recordings, in chord display text,
// and on the wire when a recording is persisted.
package key
