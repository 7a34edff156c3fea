package record

import (
	"errors"
	"fmt"
)

// ErrAlreadyRecording is returned by Start when a recording is active.
var ErrAlreadyRecording = errors.New("a recording is already in progress")

// ErrNotRecording is returned by Stop when no recording is active.
var ErrNotRecording = errors.New("no recording in progress")

// ParseError indicates a persisted recording file is not well-formed.
// I/O failures are reported as wrapped os errors instead, so callers can
// distinguish an unreadable file from a corrupt one.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string

	// Reason describes what was malformed.
	Reason string

	// Err is the underlying decode error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing recording %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("parsing recording %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
