// Package monitor implements event capture routing.
//
// A Monitor receives raw key transitions from the OS hook, normalizes
// the key names and forwards each transition to two consumers: the
// display (via the bus, as the rendered chord of currently held keys)
// and, while a recording is active, the recording store. Disabling the
// monitor clears the chord and stops all forwarding.
//
// HandleTransition runs on the hook's callback context and does only
// bounded work: map updates, a string join and non-blocking publishes.
package monitor
