// Package script builds recordings from Lua scripts.
//
// Captured recordings are not the only source of playback input; a
// script can describe a sequence programmatically:
//
//	tap("ctrl", 80)
//	wait(200)
//	down("shift")
//	tap("a", 50)
//	up("shift")
//
// The script API is four functions. wait(ms) advances the cursor,
// down(key) and up(key) emit a transition at the cursor, and
// tap(key, hold_ms) emits a press and release, advancing the cursor by
// the hold. The result is validated like any loaded recording, so a
// script that presses a key twice without releasing it is rejected.
package script
