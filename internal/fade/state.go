// internal/fade/state.go
package fade

// State represents the fade controller state machine.
//
//	┌──────┐  processing-started   ┌──────────┐  volume reaches 1.0  ┌─────────┐
//	│ Idle │ ────────────────────▶ │ FadingIn │ ───────────────────▶ │ Playing │
//	└──────┘                       └──────────┘                      └─────────┘
//	    ▲                               │ done/error/cancelled            │
//	    │                               ▼                                 │
//	    │  volume reaches 0.0     ┌───────────┐  done/error/cancelled     │
//	    └──────────────────────── │ FadingOut │ ◀─────────────────────────┘
//	                              └───────────┘
//
// Terminal events received in Idle or FadingOut are ignored, as is
// processing-started while a session is active.
type State int

const (
	Idle State = iota
	FadingIn
	Playing
	FadingOut
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case FadingIn:
		return "FadingIn"
	case Playing:
		return "Playing"
	case FadingOut:
		return "FadingOut"
	default:
		return "Unknown"
	}
}

// HasSession returns true if a playback session exists in this state.
func (s State) HasSession() bool {
	return s != Idle
}

// StateChange is passed to observers on every transition.
type StateChange struct {
	Previous State
	Current  State
}
