package playback

// State identifies where the player is in its lifecycle.
type State int

const (
	// StateIdle means no playback is active.
	StateIdle State = iota

	// StateCountdown means the pre-playback countdown is running.
	StateCountdown

	// StatePlaying means events are being replayed.
	StatePlaying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountdown:
		return "countdown"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}
