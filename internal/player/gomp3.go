package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// go-mp3 always emits interleaved 16-bit stereo.
const mp3FrameBytes = 4

// mp3Stream adapts llehouerou/go-mp3 to beep.StreamSeekCloser so the
// decoded track can be rewound by beep.Loop2.
type mp3Stream struct {
	dec *mp3.Decoder
	rc  io.Closer
	buf []byte
	err error
}

func decodeGoMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if dec.SampleRate() <= 0 {
		return nil, beep.Format{}, fmt.Errorf("%w: mp3 without a sample rate", ErrUnsupportedFormat)
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{dec: dec, rc: rc}, format, nil
}

func (s *mp3Stream) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}

	want := len(samples) * mp3FrameBytes
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	s.buf = s.buf[:want]

	got, err := io.ReadFull(s.dec, s.buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	n := got / mp3FrameBytes
	for i := range n {
		samples[i] = pcm16Stereo(s.buf[i*mp3FrameBytes:])
	}
	return n, n > 0
}

func (s *mp3Stream) Err() error { return s.err }

// Len is zero when the decoder cannot tell the track length up front.
func (s *mp3Stream) Len() int {
	return max(int(s.dec.SampleCount()), 0)
}

func (s *mp3Stream) Position() int {
	return int(s.dec.SamplePosition())
}

// Seek clamps p to the track and clears a previous read error, which lets
// a loop restart after a truncated final frame.
func (s *mp3Stream) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.dec.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

func (s *mp3Stream) Close() error {
	return s.rc.Close()
}

// pcm16Stereo converts one little-endian 16-bit stereo frame to floats.
func pcm16Stereo(frame []byte) [2]float64 {
	left := int16(binary.LittleEndian.Uint16(frame))      //nolint:gosec // audio samples
	right := int16(binary.LittleEndian.Uint16(frame[2:])) //nolint:gosec // audio samples
	return [2]float64{float64(left) / 32768.0, float64(right) / 32768.0}
}
