package record

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/dshills/keyecho/internal/input/key"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	rec := NewRecording([]key.Event{
		ev("CTRL", key.ActionDown, 0),
		ev("S", key.ActionDown, 120),
		ev("S", key.ActionUp, 180),
		ev("CTRL", key.ActionUp, 450),
	})

	path := filepath.Join(t.TempDir(), "roundtrip.json")
	if err := Save(rec, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != rec.Len() {
		t.Fatalf("loaded %d events, want %d", loaded.Len(), rec.Len())
	}
	for i := range rec.Events {
		if loaded.Events[i] != rec.Events[i] {
			t.Errorf("event %d = %+v, want %+v", i, loaded.Events[i], rec.Events[i])
		}
	}
}

// Round-trip equality holds for arbitrary well-formed recordings, not just
// hand-picked ones. Offsets are generated ascending and each key strictly
// alternates down/up, mirroring what capture produces.
func TestSaveLoadRoundTripProperty(t *testing.T) {
	dir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		names := []string{"A", "B", "CTRL", "SHIFT", "SPACE", "F5"}
		count := rapid.IntRange(0, 40).Draw(rt, "count")

		down := make(map[string]bool)
		var offset int64
		var events []key.Event
		for i := 0; i < count; i++ {
			name := rapid.SampledFrom(names).Draw(rt, "name")
			offset += int64(rapid.IntRange(0, 500).Draw(rt, "delta"))
			action := key.ActionDown
			if down[name] {
				action = key.ActionUp
			}
			down[name] = !down[name]
			events = append(events, ev(name, action, offset))
		}

		rec := NewRecording(events)
		path := filepath.Join(dir, "prop.json")
		if err := Save(rec, path); err != nil {
			rt.Fatalf("Save() error = %v", err)
		}
		loaded, err := Load(path)
		if err != nil {
			rt.Fatalf("Load() error = %v", err)
		}
		if loaded.Len() != rec.Len() {
			rt.Fatalf("loaded %d events, want %d", loaded.Len(), rec.Len())
		}
		for i := range rec.Events {
			if loaded.Events[i] != rec.Events[i] {
				rt.Fatalf("event %d = %+v, want %+v", i, loaded.Events[i], rec.Events[i])
			}
		}
	})
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "rec.json")
	rec := NewRecording([]key.Event{ev("A", key.ActionDown, 0)})
	if err := Save(rec, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rec.json")
	rec := NewRecording([]key.Event{ev("A", key.ActionDown, 0)})
	if err := Save(rec, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error = %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestSaveWireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.json")
	rec := NewRecording([]key.Event{
		ev("A", key.ActionDown, 0),
		ev("A", key.ActionUp, 200),
	})
	if err := Save(rec, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error = %v", err)
	}
	text := string(data)

	// Flat array of {key, action, offset_ms}; no envelope, no metadata.
	if !strings.HasPrefix(strings.TrimSpace(text), "[") {
		t.Errorf("wire format is not a flat array:\n%s", text)
	}
	for _, want := range []string{`"key": "A"`, `"action": "down"`, `"action": "up"`, `"offset_ms": 200`} {
		if !strings.Contains(text, want) {
			t.Errorf("wire format missing %s:\n%s", want, text)
		}
	}
	for _, reject := range []string{"version", "created_at", "id"} {
		if strings.Contains(text, reject) {
			t.Errorf("wire format leaked metadata field %q:\n%s", reject, text)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("Load() of missing file succeeded")
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		t.Errorf("missing file reported as ParseError: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not json at all"},
		{"wrong shape", `{"events": []}`},
		{"unknown action", `[{"key": "A", "action": "press", "offset_ms": 0}]`},
		{"negative offset", `[{"key": "A", "action": "down", "offset_ms": -5}]`},
		{"descending offsets", `[{"key":"A","action":"down","offset_ms":100},{"key":"A","action":"up","offset_ms":50}]`},
		{"double down", `[{"key":"A","action":"down","offset_ms":0},{"key":"A","action":"down","offset_ms":10}]`},
		{"empty key", `[{"key":"","action":"down","offset_ms":0}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile error = %v", err)
			}
			_, err := Load(path)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Load() error = %v, want *ParseError", err)
			}
		})
	}
}

func TestLoadEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !rec.Empty() {
		t.Errorf("loaded %d events from empty array", rec.Len())
	}
}

func TestSaveDefaultUsesConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	// os.UserConfigDir on darwin/windows ignores XDG; skip there.
	if _, err := os.UserConfigDir(); err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	cfgDir, _ := os.UserConfigDir()
	if !strings.HasPrefix(cfgDir, dir) {
		t.Skip("platform does not honor XDG_CONFIG_HOME")
	}

	rec := NewRecording([]key.Event{ev("A", key.ActionDown, 0)})
	path, err := SaveDefault(rec)
	if err != nil {
		t.Fatalf("SaveDefault() error = %v", err)
	}
	if filepath.Base(path) != DefaultFileName {
		t.Errorf("default file name = %s, want %s", filepath.Base(path), DefaultFileName)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default recording missing: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(default) error = %v", err)
	}
	if loaded.Len() != 1 {
		t.Errorf("loaded %d events, want 1", loaded.Len())
	}
}

func TestDurationOfLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.json")
	content := `[{"key":"A","action":"down","offset_ms":0},{"key":"A","action":"up","offset_ms":450}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rec.Duration() != 450*time.Millisecond {
		t.Errorf("Duration() = %v, want 450ms", rec.Duration())
	}
}
