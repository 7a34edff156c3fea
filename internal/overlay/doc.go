// Package overlay renders the terminal HUD.
//
// The HUD shows the chord currently held on one line and a status line
// below it with recording and playback state. It anchors to a
// configurable screen corner and clears the chord text a short delay
// after the last key is released, so quick taps stay readable.
//
// All state arrives over the event bus; the HUD never talks to the
// hook, recorder, or player directly. Keystrokes in the HUD's own
// terminal drive a small Controller interface: m toggles monitoring,
// r toggles recording, p plays the last recording, s stops playback,
// and q quits.
package overlay
