package key

import "fmt"

// Action represents the direction of a key transition.
type Action int

const (
	// ActionDown indicates a key was pressed.
	ActionDown Action = iota

	// ActionUp indicates a key was released.
	ActionUp
)

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	default:
		return "unknown"
	}
}

// IsValid returns true if a is a known action.
func (a Action) IsValid() bool {
	return a == ActionDown || a == ActionUp
}

// ParseAction converts a wire name into an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "down":
		return ActionDown, nil
	case "up":
		return ActionUp, nil
	default:
		return 0, fmt.Errorf("unknown key action %q", s)
	}
}
