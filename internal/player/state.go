// internal/player/state.go
package player

// State represents the device output state.
//
//	┌──────────┐      play       ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘ ◀───────────────└──────────┘
//	                  stop
//
// Play on a playing device restarts the source from the beginning.
// Stop on a stopped device is a no-op.
type State int

const (
	Stopped State = iota
	Playing
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}
