// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Menu actions
	ActionSelectSource Action = "select_source" // s - pick an MP3
	ActionResetSource  Action = "reset_source"  // d - back to the bundled track

	// Simulated backend events, for trying things out without a slicer
	ActionEmitProcessing Action = "emit_processing"
	ActionEmitDone       Action = "emit_done"
	ActionEmitCancelled  Action = "emit_cancelled"
	ActionEmitError      Action = "emit_error"

	// File picker
	ActionCancel Action = "cancel"
)
