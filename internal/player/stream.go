package player

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// Play opens and decodes the source and starts output at the current level.
func (d *Device) Play() error {
	if d.path == "" {
		return &PlaybackError{Kind: ResourceError, Err: errors.New("no source set")}
	}
	d.Stop()

	streamer, format, err := decodeFile(d.path)
	if err != nil {
		return classify(d.path, FormatError, err)
	}

	var out beep.Streamer = streamer
	if d.loop {
		out, err = beep.Loop2(streamer)
		if err != nil {
			streamer.Close()
			return classify(d.path, FormatError, err)
		}
	}

	// Resample if the source's sample rate differs from the speaker's
	if format.SampleRate != SampleRate {
		out = beep.Resample(4, format.SampleRate, SampleRate, out)
	}

	d.streamer = streamer
	d.format = format
	d.volume = &effects.Volume{
		Streamer: out,
		Base:     2,
		Volume:   levelToVolume(d.level),
		Silent:   d.level <= 0,
	}
	d.state = Playing

	path := d.path
	speaker.Play(&watchStreamer{
		Streamer: d.volume,
		onErr:    func(err error) { d.reportError(path, err) },
	})
	return nil
}

// Stop stops playback and releases the decoder. Safe to call repeatedly.
func (d *Device) Stop() {
	if d.state == Stopped {
		return
	}

	speaker.Clear()

	if d.streamer != nil {
		_ = d.streamer.Close()
		d.streamer = nil
	}
	d.volume = nil
	d.state = Stopped
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3:
		streamer, format, err = decodeGoMP3(f)
	case extFLAC:
		// Skip ID3v2 tag if present (some taggers add it to FLAC files)
		if err := skipID3v2(f); err != nil {
			f.Close()
			return nil, beep.Format{}, err
		}
		streamer, format, err = flac.Decode(f)
	case extWAV:
		streamer, format, err = wav.Decode(f)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, err
	}
	return streamer, format, nil
}

// watchStreamer reports the wrapped streamer's error once when it stops.
// Stream runs on the speaker goroutine with the speaker lock held, so the
// report is handed off instead of handled inline.
type watchStreamer struct {
	beep.Streamer
	onErr func(error)
	fired bool
}

func (w *watchStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := w.Streamer.Stream(samples)
	if !ok && !w.fired {
		if err := w.Streamer.Err(); err != nil {
			w.fired = true
			go w.onErr(err)
		}
	}
	return n, ok
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
// Some FLAC files have ID3v2 tags prepended, which the FLAC decoder doesn't handle.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is a syncsafe integer in bytes 6-9 (7 bits per byte)
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])

	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
