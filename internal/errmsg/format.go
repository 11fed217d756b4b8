// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart Op = "start background music"
	OpPlayback      Op = "play background music"

	// Source preference operations
	OpSourceLoad   Op = "load audio source"
	OpSourceSelect Op = "select audio source"
	OpSourceReset  Op = "reset audio source"

	// Backend event transport
	OpEventParse  Op = "read slicer event"
	OpEventListen Op = "listen for slicer events"
	OpEventSend   Op = "send slicer event"

	// Initialization
	OpInitialize Op = "initialize application"
	OpConfigLoad Op = "load configuration"
	OpStateOpen  Op = "open preference store"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
