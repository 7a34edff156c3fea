// Package hook is the boundary to the operating system's keyboard.
//
// Two capabilities cross the boundary: observing physical key transitions
// (Hook) and synthesizing key transitions back into the OS input stream
// (Injector). The rest of the system treats both as opaque; platform
// support lives behind build-tagged adapters.
//
// On Windows the adapters use a low-level keyboard hook and SendInput.
// Other platforms report ErrUnsupportedPlatform. A VirtualDevice provides
// both capabilities in memory for tests and for script-built playback.
package hook
