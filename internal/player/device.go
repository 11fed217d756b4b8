package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// SampleRate is the fixed speaker rate; sources at other rates are resampled.
const SampleRate = beep.SampleRate(44100)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
)

// Device plays one audio source, optionally looping forever.
type Device struct {
	post func(fn func())

	state    State
	path     string
	loop     bool
	level    float64
	streamer beep.StreamSeekCloser
	format   beep.Format
	volume   *effects.Volume
	onError  func(error)
}

// New creates a device, initializing the speaker on first use.
// post schedules error callbacks on the caller's event loop; when nil the
// callback runs on its own goroutine.
func New(post func(fn func())) (*Device, error) {
	if err := initSpeaker(); err != nil {
		return nil, &PlaybackError{Kind: DeviceError, Err: err}
	}
	if post == nil {
		post = func(fn func()) { go fn() }
	}
	return &Device{post: post, state: Stopped}, nil
}

func initSpeaker() error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speakerInitialized = true
	return nil
}

// SetSource selects the file played by the next Play.
func (d *Device) SetSource(path string) error {
	if !IsSupported(path) {
		return classify(path, FormatError, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path)))
	}
	info, err := os.Stat(path)
	if err != nil {
		return classify(path, ResourceError, err)
	}
	if info.IsDir() {
		return classify(path, ResourceError, fmt.Errorf("%s is a directory", path))
	}
	d.path = path
	return nil
}

// Source returns the configured source path.
func (d *Device) Source() string { return d.path }

// SetLoop enables infinite looping for the next Play.
func (d *Device) SetLoop(infinite bool) {
	d.loop = infinite
}

// OnError registers the callback for failures after Play.
func (d *Device) OnError(fn func(err error)) {
	d.onError = fn
}

// State returns the playback state.
func (d *Device) State() State { return d.state }

// IsSupported reports whether path has a playable extension.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV:
		return true
	}
	return false
}

func (d *Device) reportError(path string, err error) {
	err = classify(path, FormatError, err)
	d.post(func() {
		if d.onError != nil {
			d.onError(err)
		}
	})
}
