// internal/player/interface.go
package player

// Interface defines the device contract for dependency injection and testing.
type Interface interface {
	SetSource(path string) error
	SetLoop(infinite bool)
	SetVolume(level float64)
	Play() error
	Stop()
	OnError(fn func(err error))
	State() State
	Source() string
	Volume() float64
}

// Verify Device and Mock implement Interface at compile time.
var (
	_ Interface = (*Device)(nil)
	_ Interface = (*Mock)(nil)
)
