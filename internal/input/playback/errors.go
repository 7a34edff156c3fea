package playback

import "errors"

// ErrEmptyRecording is returned by Start for a recording with no events.
var ErrEmptyRecording = errors.New("recording has no events")

// ErrAlreadyPlaying is returned by Start when a playback is active.
var ErrAlreadyPlaying = errors.New("a playback is already in progress")

// ErrInvalidRepeatCount is returned by Start for a repeat policy with a
// count below one.
var ErrInvalidRepeatCount = errors.New("repeat count must be at least 1")
