package fade

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/beatsnslices/internal/clock"
	"github.com/llehouerou/beatsnslices/internal/player"
)

const defaultSource = "/opt/beatsnslices/resources/waiting-music-116216.mp3"

// memPrefs is an in-memory Preferences.
type memPrefs struct {
	value   string
	loadErr error
	saveErr error
}

func (p *memPrefs) Source() (string, error) {
	if p.loadErr != nil {
		return "", p.loadErr
	}
	if p.value == "" {
		return defaultSource, nil
	}
	return p.value, nil
}

func (p *memPrefs) SetSource(path string) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.value = path
	return nil
}

func (p *memPrefs) ResetSource() error { return p.SetSource(defaultSource) }

func (p *memPrefs) DefaultSource() string { return defaultSource }

type shownError struct {
	title   string
	message string
}

type recordingReporter struct {
	errors []shownError
}

func (r *recordingReporter) ShowError(title, message string) {
	r.errors = append(r.errors, shownError{title, message})
}

type harness struct {
	c          *Controller
	devices    []*player.Mock
	fadeIn     *clock.Manual
	fadeOut    *clock.Manual
	prefs      *memPrefs
	reporter   *recordingReporter
	factoryErr error
	sourceErr  error
	playErr    error
}

func newHarness(t *testing.T, params Params) *harness {
	t.Helper()
	h := &harness{
		fadeIn:   clock.NewManual(),
		fadeOut:  clock.NewManual(),
		prefs:    &memPrefs{},
		reporter: &recordingReporter{},
	}
	h.c = New(Options{
		NewDevice: func() (Device, error) {
			if h.factoryErr != nil {
				return nil, h.factoryErr
			}
			d := player.NewMock()
			d.SetSourceError(h.sourceErr)
			d.SetPlayError(h.playErr)
			h.devices = append(h.devices, d)
			return d, nil
		},
		FadeIn:      h.fadeIn,
		FadeOut:     h.fadeOut,
		Preferences: h.prefs,
		Reporter:    h.reporter,
		Params:      params,
	})
	return h
}

func (h *harness) device(t *testing.T) *player.Mock {
	t.Helper()
	require.NotEmpty(t, h.devices, "no device constructed")
	return h.devices[len(h.devices)-1]
}

// tickAll drives a ticker until it stops, recording the volume after each tick.
func (h *harness) tickAll(tk *clock.Manual) []float64 {
	var volumes []float64
	for range 10000 {
		if !tk.Tick() {
			break
		}
		volumes = append(volumes, h.c.Volume())
	}
	return volumes
}

func TestController_StartsIdle(t *testing.T) {
	h := newHarness(t, DefaultParams())

	assert.Equal(t, Idle, h.c.State())
	assert.Nil(t, h.c.Session())
	assert.Empty(t, h.devices)
	assert.False(t, h.fadeIn.Running())
	assert.False(t, h.fadeOut.Running())
	assert.InDelta(t, 0.0, h.c.Volume(), 1e-12)
}

func TestController_ProcessingStartedBeginsFadeIn(t *testing.T) {
	h := newHarness(t, DefaultParams())

	h.c.Handle(ProcessingStarted)

	assert.Equal(t, FadingIn, h.c.State())
	d := h.device(t)
	assert.Equal(t, player.Playing, d.State())
	assert.Equal(t, defaultSource, d.Source())
	assert.True(t, d.Looping())
	assert.InDelta(t, 0.0, d.Volume(), 1e-12)
	assert.True(t, h.fadeIn.Running())
	assert.Equal(t, DefaultInterval, h.fadeIn.Interval())
	assert.False(t, h.fadeOut.Running())

	s := h.c.Session()
	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID)
	assert.True(t, s.Looping)
	assert.Equal(t, defaultSource, s.SourcePath)
}

func TestController_FadeInIsMonotonicAndStopsAtFull(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Handle(ProcessingStarted)

	volumes := h.tickAll(h.fadeIn)

	require.Len(t, volumes, 100)
	for i := 1; i < len(volumes); i++ {
		assert.GreaterOrEqual(t, volumes[i], volumes[i-1], "tick %d", i)
	}
	for _, v := range h.device(t).Volumes() {
		assert.LessOrEqual(t, v, 1.0)
		assert.GreaterOrEqual(t, v, 0.0)
	}
	assert.Equal(t, 1.0, h.c.Volume())
	assert.Equal(t, Playing, h.c.State())
	assert.False(t, h.fadeIn.Running())
	assert.Equal(t, player.Playing, h.device(t).State())
}

func TestController_FadeOutIsMonotonicAndTearsDown(t *testing.T) {
	for _, ev := range []Event{Done, Error, Cancelled} {
		t.Run(ev.String(), func(t *testing.T) {
			h := newHarness(t, DefaultParams())
			h.c.Handle(ProcessingStarted)
			h.tickAll(h.fadeIn)
			require.Equal(t, Playing, h.c.State())

			h.c.Handle(ev)
			assert.Equal(t, FadingOut, h.c.State())
			assert.True(t, h.fadeOut.Running())

			volumes := h.tickAll(h.fadeOut)

			require.Len(t, volumes, 100)
			for i := 1; i < len(volumes); i++ {
				assert.LessOrEqual(t, volumes[i], volumes[i-1], "tick %d", i)
				assert.GreaterOrEqual(t, volumes[i], 0.0)
			}
			assert.Equal(t, Idle, h.c.State())
			assert.Nil(t, h.c.Session())
			assert.Equal(t, player.Stopped, h.device(t).State())
			assert.False(t, h.fadeIn.Running())
			assert.False(t, h.fadeOut.Running())
			assert.Empty(t, h.reporter.errors)
		})
	}
}

func TestController_TerminalEventsInIdleAreNoops(t *testing.T) {
	h := newHarness(t, DefaultParams())

	h.c.Handle(Done)
	h.c.Handle(Done)
	h.c.Handle(Cancelled)
	h.c.Handle(Error)

	assert.Equal(t, Idle, h.c.State())
	assert.Empty(t, h.devices)
	assert.Empty(t, h.reporter.errors)
	assert.Zero(t, h.fadeOut.Starts())
}

func TestController_DoneTwiceAfterSession(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Handle(ProcessingStarted)
	h.tickAll(h.fadeIn)
	h.c.Handle(Done)
	h.tickAll(h.fadeOut)
	require.Equal(t, Idle, h.c.State())

	h.c.Handle(Done)

	assert.Equal(t, Idle, h.c.State())
	assert.Empty(t, h.reporter.errors)
	assert.Equal(t, 1, h.fadeOut.Starts())
}

func TestController_TerminalEventDuringFadeOutKeepsRamp(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Handle(ProcessingStarted)
	h.tickAll(h.fadeIn)
	h.c.Handle(Done)
	h.fadeOut.Run(10)
	before := h.c.Volume()

	h.c.Handle(Cancelled)

	assert.Equal(t, FadingOut, h.c.State())
	assert.Equal(t, 1, h.fadeOut.Starts())
	assert.InDelta(t, before, h.c.Volume(), 1e-12)
}

func TestController_CancelDuringFadeInStartsFromReachedVolume(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Handle(ProcessingStarted)
	require.Equal(t, 40, h.fadeIn.Run(40))
	require.InDelta(t, 0.4, h.c.Volume(), 1e-9)

	h.c.Handle(Cancelled)

	assert.Equal(t, FadingOut, h.c.State())
	assert.False(t, h.fadeIn.Running())
	assert.True(t, h.fadeOut.Running())
	assert.InDelta(t, 0.4, h.c.Volume(), 1e-9)

	volumes := h.tickAll(h.fadeOut)
	assert.Len(t, volumes, 40)
	assert.Less(t, len(volumes), DefaultParams().TicksToBound(1, Decreasing))
	assert.Equal(t, Idle, h.c.State())
}

func TestController_DoneRightAfterStartFadesOutInOneTick(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Handle(ProcessingStarted)
	h.c.Handle(Done)

	assert.Equal(t, 1, h.fadeOut.Run(100))
	assert.Equal(t, Idle, h.c.State())
}

func TestController_ProcessingStartedWhileActiveIsIgnored(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Handle(ProcessingStarted)
	h.fadeIn.Run(10)

	h.c.Handle(ProcessingStarted)

	assert.Len(t, h.devices, 1)
	assert.Equal(t, FadingIn, h.c.State())
	assert.Equal(t, 1, h.fadeIn.Starts())

	h.c.Handle(Done)
	h.c.Handle(ProcessingStarted)
	assert.Len(t, h.devices, 1)
	assert.Equal(t, FadingOut, h.c.State())
}

func TestController_RestartsAfterFullCycle(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Handle(ProcessingStarted)
	h.c.Handle(Done)
	h.tickAll(h.fadeOut)
	require.Equal(t, Idle, h.c.State())

	h.c.Handle(ProcessingStarted)

	assert.Len(t, h.devices, 2)
	assert.Equal(t, FadingIn, h.c.State())
	assert.InDelta(t, 0.0, h.c.Volume(), 1e-12)
}

func TestController_InitializationFailureLeavesIdle(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
	}{
		{"device construction", func(h *harness) { h.factoryErr = errors.New("no audio output") }},
		{"source rejected", func(h *harness) { h.sourceErr = errors.New("file missing") }},
		{"play failed", func(h *harness) { h.playErr = errors.New("decoder failed") }},
		{"preference unreadable", func(h *harness) { h.prefs.loadErr = errors.New("database is locked") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, DefaultParams())
			tt.setup(h)

			h.c.Handle(ProcessingStarted)

			assert.Equal(t, Idle, h.c.State())
			assert.Nil(t, h.c.Session())
			assert.Zero(t, h.fadeIn.Starts())
			assert.Zero(t, h.fadeOut.Starts())
			require.Len(t, h.reporter.errors, 1)
			assert.Equal(t, ErrorTitle, h.reporter.errors[0].title)
			assert.NotEmpty(t, h.c.LastError())
			for _, d := range h.devices {
				assert.Equal(t, player.Stopped, d.State())
			}
		})
	}
}

func TestController_NilFactoryReportsError(t *testing.T) {
	rep := &recordingReporter{}
	c := New(Options{
		FadeIn:      clock.NewManual(),
		FadeOut:     clock.NewManual(),
		Preferences: &memPrefs{},
		Reporter:    rep,
	})

	c.Handle(ProcessingStarted)

	assert.Equal(t, Idle, c.State())
	assert.Len(t, rep.errors, 1)
}

func TestController_RuntimeErrorTearsDownSession(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Handle(ProcessingStarted)
	h.fadeIn.Run(20)
	d := h.device(t)

	d.SimulateError(&player.PlaybackError{Kind: player.FormatError, Err: errors.New("bad frame")})

	assert.Equal(t, Idle, h.c.State())
	assert.Nil(t, h.c.Session())
	assert.Equal(t, player.Stopped, d.State())
	assert.False(t, h.fadeIn.Running())
	assert.False(t, h.fadeOut.Running())
	require.Len(t, h.reporter.errors, 1)
	assert.Contains(t, h.reporter.errors[0].message, player.FormatError.String())

	// The next slicing run starts fresh
	h.c.Handle(ProcessingStarted)
	assert.Equal(t, FadingIn, h.c.State())
	assert.Len(t, h.devices, 2)
}

func TestController_ErrorFromStaleDeviceIsIgnored(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Handle(ProcessingStarted)
	first := h.device(t)
	h.c.Handle(Done)
	h.tickAll(h.fadeOut)
	h.c.Handle(ProcessingStarted)

	first.SimulateError(errors.New("late failure"))

	assert.Equal(t, FadingIn, h.c.State())
	assert.Empty(t, h.reporter.errors)
}

func TestController_TickWithoutSessionIsNoop(t *testing.T) {
	h := newHarness(t, DefaultParams())

	assert.NotPanics(t, func() {
		h.c.fadeInTick()
		h.c.fadeOutTick()
	})
	assert.Equal(t, Idle, h.c.State())
}

func TestController_SelectSourceAppliesToNextSession(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Handle(ProcessingStarted)

	require.NoError(t, h.c.SelectSource("/tmp/song.mp3"))

	// Current session is untouched
	assert.Equal(t, defaultSource, h.c.Session().SourcePath)
	got, err := h.prefs.Source()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/song.mp3", got)

	h.c.Handle(Done)
	h.tickAll(h.fadeOut)
	h.c.Handle(ProcessingStarted)
	assert.Equal(t, "/tmp/song.mp3", h.device(t).Source())

	require.NoError(t, h.c.ResetToDefault())
	got, err = h.prefs.Source()
	require.NoError(t, err)
	assert.Equal(t, defaultSource, got)

	h.c.Handle(Error)
	h.tickAll(h.fadeIn)
	h.tickAll(h.fadeOut)
	h.c.Handle(ProcessingStarted)
	assert.Equal(t, defaultSource, h.device(t).Source())
}

func TestController_SelectEmptySourceIsNoop(t *testing.T) {
	h := newHarness(t, DefaultParams())
	require.NoError(t, h.c.SelectSource("/tmp/a.mp3"))

	require.NoError(t, h.c.SelectSource(""))

	assert.Equal(t, "/tmp/a.mp3", h.prefs.value)
}

func TestController_SelectSourceFailureIsReported(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.prefs.saveErr = errors.New("read-only database")

	err := h.c.SelectSource("/tmp/a.mp3")

	require.Error(t, err)
	require.Len(t, h.reporter.errors, 1)
	assert.Contains(t, h.reporter.errors[0].message, "/tmp/a.mp3")

	require.Error(t, h.c.ResetToDefault())
	assert.Len(t, h.reporter.errors, 2)
}

func TestController_ObserversSeeEveryTransition(t *testing.T) {
	h := newHarness(t, Params{Step: 0.5, Interval: time.Millisecond})
	var changes []StateChange
	h.c.OnStateChange(func(c StateChange) { changes = append(changes, c) })

	h.c.Handle(ProcessingStarted)
	h.tickAll(h.fadeIn)
	h.c.Handle(Done)
	h.tickAll(h.fadeOut)

	assert.Equal(t, []StateChange{
		{Previous: Idle, Current: FadingIn},
		{Previous: FadingIn, Current: Playing},
		{Previous: Playing, Current: FadingOut},
		{Previous: FadingOut, Current: Idle},
	}, changes)
}

func TestController_CustomParams(t *testing.T) {
	h := newHarness(t, Params{Step: 0.25, Interval: 10 * time.Millisecond})
	h.c.Handle(ProcessingStarted)

	assert.Equal(t, 10*time.Millisecond, h.fadeIn.Interval())
	assert.Len(t, h.tickAll(h.fadeIn), 4)
	assert.Equal(t, Playing, h.c.State())
}

func TestController_CloseEndsSessionImmediately(t *testing.T) {
	h := newHarness(t, DefaultParams())
	h.c.Close()
	assert.Equal(t, Idle, h.c.State())

	h.c.Handle(ProcessingStarted)
	h.fadeIn.Run(10)

	h.c.Close()

	assert.Equal(t, Idle, h.c.State())
	assert.Nil(t, h.c.Session())
	assert.Equal(t, player.Stopped, h.device(t).State())
	assert.False(t, h.fadeIn.Running())
	assert.False(t, h.fadeOut.Running())

	h.c.Handle(ProcessingStarted)
	assert.Equal(t, FadingIn, h.c.State())
	assert.Len(t, h.devices, 2)
}
