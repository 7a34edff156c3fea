package playback

import "fmt"

type policyKind int

const (
	kindOnce policyKind = iota
	kindRepeat
	kindLoop
)

// Policy determines how many passes a playback makes over the recording.
// The zero value plays once.
type Policy struct {
	kind  policyKind
	times int
}

// Once plays the recording a single time.
func Once() Policy {
	return Policy{kind: kindOnce}
}

// Repeat plays the recording n times in sequence.
func Repeat(n int) Policy {
	return Policy{kind: kindRepeat, times: n}
}

// Loop plays the recording until an explicit stop.
func Loop() Policy {
	return Policy{kind: kindLoop}
}

// IsLoop returns true for the loop policy.
func (p Policy) IsLoop() bool {
	return p.kind == kindLoop
}

// Times returns the number of passes for finite policies. Once counts as
// a single pass; the result for Loop is meaningless.
func (p Policy) Times() int {
	if p.kind == kindRepeat {
		return p.times
	}
	return 1
}

// validate rejects non-positive repeat counts.
func (p Policy) validate() error {
	if p.kind == kindRepeat && p.times < 1 {
		return ErrInvalidRepeatCount
	}
	return nil
}

// String returns a human-readable policy description.
func (p Policy) String() string {
	switch p.kind {
	case kindRepeat:
		return fmt.Sprintf("repeat %d", p.times)
	case kindLoop:
		return "loop"
	default:
		return "once"
	}
}
