package key

import "testing"

func TestChordPressRelease(t *testing.T) {
	c := NewChord()

	if !c.Press("A") {
		t.Error("Press(A) = false, want true for new key")
	}
	if c.Press("A") {
		t.Error("Press(A) = true, want false for held key")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if !c.Held("A") {
		t.Error("Held(A) = false, want true")
	}

	if !c.Release("A") {
		t.Error("Release(A) = false, want true for held key")
	}
	if c.Release("A") {
		t.Error("Release(A) = true, want false for released key")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestChordDisplayOrder(t *testing.T) {
	tests := []struct {
		name    string
		pressed []string
		want    string
	}{
		{"empty", nil, ""},
		{"single", []string{"A"}, "A"},
		{"modifier first regardless of press order", []string{"A", "CTRL"}, "CTRL+A"},
		{"modifiers sorted then keys sorted", []string{"B", "SHIFT", "A", "CTRL"}, "CTRL+SHIFT+A+B"},
		{"left right modifiers", []string{"SPACE", "RIGHT_SHIFT", "LEFT_CTRL"}, "LEFT_CTRL+RIGHT_SHIFT+SPACE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChord()
			for _, k := range tt.pressed {
				c.Press(k)
			}
			if got := c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChordStableUnderPressOrder(t *testing.T) {
	a := NewChord()
	a.Press("CTRL")
	a.Press("S")

	b := NewChord()
	b.Press("S")
	b.Press("CTRL")

	if a.String() != b.String() {
		t.Errorf("press order changed rendering: %q vs %q", a.String(), b.String())
	}
}

func TestChordClear(t *testing.T) {
	c := NewChord()
	c.Press("CTRL")
	c.Press("A")
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if c.String() != "" {
		t.Errorf("String() after Clear = %q, want empty", c.String())
	}
}

func TestChordIgnoresEmptyKey(t *testing.T) {
	c := NewChord()
	if c.Press("") {
		t.Error("Press(\"\") = true, want false")
	}
}
