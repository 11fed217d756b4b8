// Package keymap defines key bindings for the application.
package keymap

// Binding describes a single key binding for documentation.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "simulate", "picker"
}

// All contains all key bindings for help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionSelectSource, []string{"s"}, "Select MP3", "global"},
	{ActionResetSource, []string{"d"}, "Default", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Simulate
	{ActionEmitProcessing, []string{"p"}, "Slicing started", "simulate"},
	{ActionEmitDone, []string{"f"}, "Slicing finished", "simulate"},
	{ActionEmitCancelled, []string{"c"}, "Slicing cancelled", "simulate"},
	{ActionEmitError, []string{"e"}, "Slicing failed", "simulate"},

	// File picker
	{ActionCancel, []string{"esc"}, "Close picker", "picker"},
	{ActionQuit, []string{"ctrl+c"}, "Quit application", "picker"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
