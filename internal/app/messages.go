package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// CallMsg carries a callback to run on the program's event loop.
type CallMsg struct {
	Fn func()
}

// RefreshMsg is sent periodically so elapsed times stay current.
type RefreshMsg time.Time

// Post returns a function that schedules callbacks on the event loop
// through send, typically (*tea.Program).Send. It must not be called from
// the loop itself.
func Post(send func(tea.Msg)) func(func()) {
	return func(fn func()) {
		send(CallMsg{Fn: fn})
	}
}
