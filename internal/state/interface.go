// internal/state/interface.go
package state

// Interface defines the preference store contract for dependency injection and testing.
type Interface interface {
	GetValue(key string) (string, bool, error)
	SetValue(key, value string) error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
