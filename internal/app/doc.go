// Package app wires the keyboard hook, monitor, recorder, player, and
// HUD into one running application.
//
// The App is the HUD's Controller: HUD keystrokes arrive as method
// calls, component state flows back to the HUD over the event bus. The
// App also owns the save-and-load policy for recordings, including the
// fallback to the default location when a configured path cannot be
// written.
package app
