package fade

import (
	"fmt"
	"strings"
)

// Event is a slicer backend lifecycle notification.
type Event int

const (
	ProcessingStarted Event = iota
	Done
	Error
	Cancelled
)

// String returns the wire token for the event.
func (e Event) String() string {
	switch e {
	case ProcessingStarted:
		return "processing-started"
	case Done:
		return "done"
	case Error:
		return "error"
	case Cancelled:
		return "slicing-cancelled"
	default:
		return "unknown"
	}
}

// IsTerminal returns true for events that end a slicing run.
func (e Event) IsTerminal() bool {
	return e == Done || e == Error || e == Cancelled
}

// ParseEvent converts a token such as "done" or "processing-started" into an
// Event. Matching is case-insensitive and ignores surrounding whitespace.
func ParseEvent(token string) (Event, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "processing", "processing-started", "started":
		return ProcessingStarted, nil
	case "done":
		return Done, nil
	case "error":
		return Error, nil
	case "cancelled", "canceled", "slicing-cancelled":
		return Cancelled, nil
	default:
		return 0, fmt.Errorf("unknown backend event %q", token)
	}
}
