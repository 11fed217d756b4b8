package player

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind classifies playback failures for user-facing messages.
type ErrorKind int

const (
	ResourceError ErrorKind = iota
	FormatError
	AccessDeniedError
	DeviceError
)

// String returns a human-readable classification.
func (k ErrorKind) String() string {
	switch k {
	case ResourceError:
		return "audio file could not be read"
	case FormatError:
		return "audio format not supported or file is corrupt"
	case AccessDeniedError:
		return "permission denied for audio file"
	case DeviceError:
		return "audio output device failed"
	default:
		return "unknown playback error"
	}
}

// PlaybackError is returned or reported by a Device.
type PlaybackError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *PlaybackError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Kind, e.Path, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }

// ErrUnsupportedFormat is wrapped for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported format")

// classify wraps err in a PlaybackError with the kind inferred from it.
// Errors that are already classified are returned as is.
func classify(path string, kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	var pe *PlaybackError
	if errors.As(err, &pe) {
		return err
	}
	switch {
	case errors.Is(err, fs.ErrPermission):
		kind = AccessDeniedError
	case errors.Is(err, fs.ErrNotExist):
		kind = ResourceError
	case errors.Is(err, ErrUnsupportedFormat):
		kind = FormatError
	}
	return &PlaybackError{Kind: kind, Path: path, Err: err}
}
