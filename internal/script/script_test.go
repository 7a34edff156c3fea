package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/keyecho/internal/input/key"
)

// ==================== Run Tests ====================

func TestRunEmptyScript(t *testing.T) {
	rec, err := Run(``)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !rec.Empty() {
		t.Errorf("Run() events = %d, want 0", rec.Len())
	}
}

func TestRunTapSequence(t *testing.T) {
	rec, err := Run(`
		tap("a", 80)
		wait(200)
		tap("b")
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []key.Event{
		ev("A", key.ActionDown, 0),
		ev("A", key.ActionUp, 80),
		ev("B", key.ActionDown, 280),
		ev("B", key.ActionUp, 330),
	}
	assertEvents(t, rec.Events, want)
}

func TestRunDownUpChord(t *testing.T) {
	rec, err := Run(`
		down("ctrl")
		wait(30)
		tap("c", 50)
		wait(20)
		up("ctrl")
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []key.Event{
		ev("CTRL", key.ActionDown, 0),
		ev("C", key.ActionDown, 30),
		ev("C", key.ActionUp, 80),
		ev("CTRL", key.ActionUp, 100),
	}
	assertEvents(t, rec.Events, want)
}

func TestRunNormalizesKeyNames(t *testing.T) {
	rec, err := Run(`tap("page down", 10)`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := rec.Events[0].Key; got != "PAGE_DOWN" {
		t.Errorf("Events[0].Key = %q, want %q", got, "PAGE_DOWN")
	}
}

func TestRunUsesLuaControlFlow(t *testing.T) {
	rec, err := Run(`
		for i = 1, 3 do
			tap("x", 10)
			wait(90)
		end
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := rec.Len(); got != 6 {
		t.Fatalf("Len() = %d, want 6", got)
	}
	if got := rec.Events[5].OffsetMS(); got != 210 {
		t.Errorf("last offset = %dms, want 210ms", got)
	}
}

func TestRunRejectsDoublePress(t *testing.T) {
	_, err := Run(`
		down("a")
		wait(10)
		down("a")
	`)
	if err == nil {
		t.Fatal("Run() with repeated press should return error")
	}
	if !strings.Contains(err.Error(), "invalid sequence") {
		t.Errorf("Run() error = %v, want invalid sequence", err)
	}
}

func TestRunScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"syntax error", `tap("a"`},
		{"runtime error", `error("boom")`},
		{"negative wait", `wait(-1)`},
		{"negative hold", `tap("a", -5)`},
		{"empty key", `down("")`},
		{"missing key argument", `down()`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(tt.source); err == nil {
				t.Error("Run() should return error")
			}
		})
	}
}

// ==================== RunFile Tests ====================

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.lua")
	if err := os.WriteFile(path, []byte(`tap("q", 40)`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	rec, err := RunFile(path)
	if err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}
	if got := rec.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestRunFileMissing(t *testing.T) {
	_, err := RunFile(filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil {
		t.Error("RunFile() on missing file should return error")
	}
}

// ==================== Helpers ====================

func ev(name string, action key.Action, ms int64) key.Event {
	return key.NewEvent(name, action, time.Duration(ms)*time.Millisecond)
}

func assertEvents(t *testing.T, got, want []key.Event) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("event count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
