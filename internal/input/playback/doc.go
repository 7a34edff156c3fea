// Package playback implements the playback engine.
//
// A Player replays a finished recording by synthesizing each key
// transition through an Injector, sleeping between events so the
// relative timing of the original capture is preserved. Playback moves
// through a small state machine:
//
//	Idle -> Countdown -> Playing -> Idle
//
// The countdown gives the user time to focus the window that should
// receive the synthesized input; cancelling during the countdown returns
// to Idle without injecting anything. Stopping mid-playback releases any
// key the engine is currently holding down before the state returns to
// Idle, so the OS is never left with a stuck key.
//
// Exactly one playback may be active at a time. Playback runs on its own
// goroutine; Start never blocks and Stop blocks only until cleanup has
// finished.
package playback
