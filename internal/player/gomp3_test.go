package player

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/beatsnslices/internal/resources"
)

// silentMP3 builds MPEG-1 Layer III frames (128 kbps, 44.1 kHz, stereo)
// whose side info is all zero, which decodes to silence.
func silentMP3(frames int) []byte {
	const frameLen = 144 * 128000 / 44100 // 417 bytes, no padding
	var buf bytes.Buffer
	for range frames {
		frame := make([]byte, frameLen)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
		buf.Write(frame)
	}
	return buf.Bytes()
}

type readSeekNopCloser struct {
	io.ReadSeeker
}

func (readSeekNopCloser) Close() error { return nil }

// drain pulls total samples from s in small chunks.
func drain(t *testing.T, s beep.Streamer, total int) {
	t.Helper()
	buf := make([][2]float64, 512)
	read := 0
	for read < total {
		n, ok := s.Stream(buf[:min(len(buf), total-read)])
		require.True(t, ok, "stream ended after %d of %d samples", read, total)
		require.Positive(t, n)
		read += n
	}
	require.NoError(t, s.Err())
}

func TestDecodeGoMP3_LoopsAcrossRewind(t *testing.T) {
	stream, format, err := decodeGoMP3(readSeekNopCloser{bytes.NewReader(silentMP3(12))})
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, beep.SampleRate(44100), format.SampleRate)
	assert.Equal(t, 2, format.NumChannels)
	length := stream.Len()
	require.Positive(t, length, "seekable mp3 should report its length")

	looped, err := beep.Loop2(stream)
	require.NoError(t, err)

	// One and a half passes forces a rewind through Seek
	drain(t, looped, length+length/2)
	assert.Less(t, stream.Position(), length)
}

func TestMP3Stream_SeekClamps(t *testing.T) {
	stream, _, err := decodeGoMP3(readSeekNopCloser{bytes.NewReader(silentMP3(4))})
	require.NoError(t, err)
	defer stream.Close()

	require.NoError(t, stream.Seek(-10))
	assert.Equal(t, 0, stream.Position())

	// Past the end never leaves the decoder beyond the track
	if err := stream.Seek(stream.Len() + 1000); err == nil {
		assert.LessOrEqual(t, stream.Position(), stream.Len())
	}
}

func TestDecodeGoMP3_RejectsGarbage(t *testing.T) {
	_, _, err := decodeGoMP3(readSeekNopCloser{bytes.NewReader([]byte("not an mp3 at all"))})
	require.Error(t, err)
}

func TestDecodeFile_BuiltinLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), resources.LoopName)
	require.NoError(t, os.WriteFile(path, resources.Loop(), 0o644))

	stream, format, err := decodeFile(path)
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, 1, format.NumChannels)
	looped, err := beep.Loop2(stream)
	require.NoError(t, err)
	drain(t, looped, stream.Len()+1000)
}
