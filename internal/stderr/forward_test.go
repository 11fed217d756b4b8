package stderr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForward_SkipsBlankLines(t *testing.T) {
	in := strings.NewReader("ALSA lib pcm.c: underrun\n\n   \n  second  \n")
	var got []string

	forward(in, func(line string) { got = append(got, line) })

	assert.Equal(t, []string{"ALSA lib pcm.c: underrun", "second"}, got)
}

func TestForward_NilCallback(t *testing.T) {
	assert.NotPanics(t, func() {
		forward(strings.NewReader("x\n"), nil)
	})
}
