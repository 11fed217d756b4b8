// Package resources carries the built-in waiting loop used when no
// packaged waiting music is installed.
package resources

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// LoopName is the file name the built-in loop is installed under.
const LoopName = "waiting-loop.wav"

//go:embed waiting-loop.wav
var loop []byte

// Loop returns the built-in loop's WAV bytes.
func Loop() []byte {
	return loop
}

// EnsureLoop writes the built-in loop to path unless a file is already
// there. Paths not named LoopName are left alone and reported as ready, so
// callers can pass any default source through it.
func EnsureLoop(path string) error {
	if filepath.Base(path) != LoopName {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".loop-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(loop); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
