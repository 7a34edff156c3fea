package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/keyecho/internal/input/key"
)

// DefaultFileName is the recording file written when no path is chosen.
const DefaultFileName = "last_record.json"

// persistedEvent is the wire form of a key event.
type persistedEvent struct {
	Key      string `json:"key"`
	Action   string `json:"action"`
	OffsetMS int64  `json:"offset_ms"`
}

// DefaultPath returns the default recording path under the per-user
// configuration directory, e.g. ~/.config/keyecho/last_record.json.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return filepath.Join(configDir, "keyecho", DefaultFileName), nil
}

// Save writes the recording to path as a flat JSON array, creating parent
// directories as needed. The file is written atomically via a temp file
// and rename.
func Save(rec *Recording, path string) error {
	events := make([]persistedEvent, rec.Len())
	for i, e := range rec.Events {
		events[i] = persistedEvent{
			Key:      e.Key,
			Action:   e.Action.String(),
			OffsetMS: e.OffsetMS(),
		}
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling recording: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating recording directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("writing recording file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replacing recording file: %w", err)
	}
	return nil
}

// SaveDefault writes the recording to the default path and returns that
// path. It is the fallback target when a custom save location was not
// provided or was cancelled, so a stopped recording is never discarded.
func SaveDefault(rec *Recording) (string, error) {
	path, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if err := Save(rec, path); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a recording from path. Read failures are returned as wrapped
// os errors; a file that is not a well-formed recording yields a
// *ParseError.
func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recording file: %w", err)
	}

	var events []persistedEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, &ParseError{Path: path, Reason: "not a JSON array of key events", Err: err}
	}

	decoded := make([]key.Event, len(events))
	for i, pe := range events {
		action, err := key.ParseAction(pe.Action)
		if err != nil {
			return nil, &ParseError{Path: path, Reason: fmt.Sprintf("event %d: %v", i, err)}
		}
		if pe.OffsetMS < 0 {
			return nil, &ParseError{Path: path, Reason: fmt.Sprintf("event %d: negative offset_ms %d", i, pe.OffsetMS)}
		}
		decoded[i] = key.Event{
			Key:    pe.Key,
			Action: action,
			Offset: time.Duration(pe.OffsetMS) * time.Millisecond,
		}
	}

	rec := NewRecording(decoded)
	if err := rec.Validate(); err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}
	return rec, nil
}
