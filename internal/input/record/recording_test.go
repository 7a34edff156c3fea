package record

import (
	"testing"
	"time"

	"github.com/dshills/keyecho/internal/input/key"
)

func ev(name string, action key.Action, ms int64) key.Event {
	return key.Event{Key: name, Action: action, Offset: time.Duration(ms) * time.Millisecond}
}

func TestRecordingImmutableFromSource(t *testing.T) {
	events := []key.Event{ev("A", key.ActionDown, 0)}
	rec := NewRecording(events)

	events[0].Key = "B"
	if rec.Events[0].Key != "A" {
		t.Error("mutating the source slice altered the recording")
	}
}

func TestRecordingMetadata(t *testing.T) {
	rec := NewRecording(nil)
	if rec.ID == "" {
		t.Error("recording has no ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("recording has no creation time")
	}
}

func TestRecordingKeys(t *testing.T) {
	rec := NewRecording([]key.Event{
		ev("CTRL", key.ActionDown, 0),
		ev("A", key.ActionDown, 10),
		ev("A", key.ActionUp, 20),
		ev("CTRL", key.ActionUp, 30),
	})
	keys := rec.Keys()
	want := []string{"CTRL", "A"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestRecordingValidate(t *testing.T) {
	tests := []struct {
		name    string
		events  []key.Event
		wantErr bool
	}{
		{"empty", nil, false},
		{
			"well formed",
			[]key.Event{
				ev("A", key.ActionDown, 0),
				ev("A", key.ActionUp, 100),
			},
			false,
		},
		{
			"leading up is legal",
			[]key.Event{
				ev("SHIFT", key.ActionUp, 0),
				ev("A", key.ActionDown, 50),
				ev("A", key.ActionUp, 90),
			},
			false,
		},
		{
			"double down",
			[]key.Event{
				ev("A", key.ActionDown, 0),
				ev("A", key.ActionDown, 100),
			},
			true,
		},
		{
			"descending offsets",
			[]key.Event{
				ev("A", key.ActionDown, 100),
				ev("A", key.ActionUp, 50),
			},
			true,
		},
		{
			"negative offset",
			[]key.Event{{Key: "A", Action: key.ActionDown, Offset: -time.Millisecond}},
			true,
		},
		{
			"empty key name",
			[]key.Event{ev("", key.ActionDown, 0)},
			true,
		},
		{
			"invalid action",
			[]key.Event{{Key: "A", Action: key.Action(7), Offset: 0}},
			true,
		},
		{
			"equal offsets are legal",
			[]key.Event{
				ev("CTRL", key.ActionDown, 0),
				ev("A", key.ActionDown, 0),
				ev("A", key.ActionUp, 40),
				ev("CTRL", key.ActionUp, 40),
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecording(tt.events)
			err := rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordingNilSafety(t *testing.T) {
	var rec *Recording
	if rec.Len() != 0 {
		t.Error("nil recording Len() != 0")
	}
	if !rec.Empty() {
		t.Error("nil recording Empty() = false")
	}
}
