// internal/fade/interface.go
package fade

import "time"

// Device is a looping audio output owned by one playback session.
type Device interface {
	SetSource(path string) error
	SetLoop(infinite bool)
	SetVolume(level float64)
	Play() error
	Stop()
	// OnError registers a callback for failures discovered after Play.
	OnError(fn func(err error))
}

// DeviceFactory constructs a playback device. A returned error means the
// audio backend could not be initialized.
type DeviceFactory func() (Device, error)

// Ticker is a periodic tick source. Start replaces any running schedule.
// A tick is never delivered after Stop returns.
type Ticker interface {
	Start(interval time.Duration, onTick func())
	Stop()
}

// Preferences stores the audio source used for new sessions.
type Preferences interface {
	Source() (string, error)
	SetSource(path string) error
	ResetSource() error
	DefaultSource() string
}

// Reporter surfaces errors to the user.
type Reporter interface {
	ShowError(title, message string)
}
