//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does not
// write to the console.
package stderr

// Start does nothing.
func Start(_ func(string)) error {
	return nil
}

// Stop does nothing.
func Stop() {}
