// Package fade couples slicer backend lifecycle events to looping background
// music with linear fade-in and fade-out ramps.
//
// The Controller is not safe for concurrent use. Every call, including ticker
// and device callbacks, must be delivered by a single serial event loop.
package fade

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/beatsnslices/internal/errmsg"
)

// ErrorTitle is the notification title used for every surfaced error.
const ErrorTitle = "Elevated Beats n' Slices"

// Options holds the controller's collaborators.
type Options struct {
	NewDevice   DeviceFactory
	FadeIn      Ticker
	FadeOut     Ticker
	Preferences Preferences
	Reporter    Reporter
	Logger      *zap.Logger
	Params      Params
	// Now defaults to time.Now.
	Now func() time.Time
}

// Controller owns the playback session and both fade ramps.
type Controller struct {
	newDevice DeviceFactory
	fadeIn    Ticker
	fadeOut   Ticker
	prefs     Preferences
	reporter  Reporter
	log       *zap.Logger
	params    Params
	now       func() time.Time

	state   State
	session *Session
	device  Device

	observers []func(StateChange)
	lastErr   string
}

// New creates a controller in the Idle state.
func New(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		newDevice: opts.NewDevice,
		fadeIn:    opts.FadeIn,
		fadeOut:   opts.FadeOut,
		prefs:     opts.Preferences,
		reporter:  opts.Reporter,
		log:       log,
		params:    opts.Params.withDefaults(),
		now:       now,
		state:     Idle,
	}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Volume returns the session volume, or 0 when idle.
func (c *Controller) Volume() float64 {
	if c.session == nil {
		return 0
	}
	return c.session.Volume
}

// Session returns a copy of the active session, or nil when idle.
func (c *Controller) Session() *Session {
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Params returns the ramp parameters in use.
func (c *Controller) Params() Params { return c.params }

// LastError returns the most recent message surfaced to the user.
func (c *Controller) LastError() string { return c.lastErr }

// OnStateChange registers an observer called after every transition.
func (c *Controller) OnStateChange(fn func(StateChange)) {
	c.observers = append(c.observers, fn)
}

// Handle dispatches a backend lifecycle event.
func (c *Controller) Handle(ev Event) {
	c.log.Debug("backend event",
		zap.Stringer("event", ev),
		zap.Stringer("state", c.state),
	)

	switch {
	case ev == ProcessingStarted:
		c.start()
	case ev.IsTerminal():
		c.stop()
	}
}

// SelectSource persists path as the audio source for the next session.
// An empty path leaves the preference unchanged.
func (c *Controller) SelectSource(path string) error {
	if path == "" {
		return nil
	}
	if err := c.prefs.SetSource(path); err != nil {
		c.report(errmsg.FormatWith(errmsg.OpSourceSelect, path, err), err)
		return err
	}
	c.log.Info("audio source selected", zap.String("path", path))
	return nil
}

// ResetToDefault persists the bundled default source.
func (c *Controller) ResetToDefault() error {
	if err := c.prefs.ResetSource(); err != nil {
		c.report(errmsg.Format(errmsg.OpSourceReset, err), err)
		return err
	}
	c.log.Info("audio source reset to default")
	return nil
}

// Close ends any session immediately, without a fade-out. The controller
// stays usable.
func (c *Controller) Close() {
	if c.state == Idle {
		return
	}
	c.log.Debug("closing active session", zap.Stringer("state", c.state))
	c.teardown()
}

func (c *Controller) start() {
	if c.state != Idle {
		c.log.Debug("session already active, ignoring start", zap.Stringer("state", c.state))
		return
	}

	path, err := c.prefs.Source()
	if err != nil {
		c.report(errmsg.Format(errmsg.OpSourceLoad, err), err)
		return
	}

	if c.newDevice == nil {
		err := errors.New("no playback device available")
		c.report(errmsg.Format(errmsg.OpPlaybackStart, err), err)
		return
	}
	device, err := c.newDevice()
	if err != nil {
		c.report(errmsg.Format(errmsg.OpPlaybackStart, err), err)
		return
	}

	if err := c.initDevice(device, path); err != nil {
		device.Stop()
		c.report(errmsg.FormatWith(errmsg.OpPlaybackStart, path, err), err)
		return
	}

	c.device = device
	c.session = newSession(path, c.now())
	c.log.Info("playback session started",
		zap.String("session", c.session.ID),
		zap.String("source", path),
	)

	c.startRamp(Increasing)
	c.transition(FadingIn)
}

func (c *Controller) initDevice(device Device, path string) error {
	if err := device.SetSource(path); err != nil {
		return err
	}
	device.SetLoop(true)
	device.SetVolume(0)
	device.OnError(func(err error) { c.handleDeviceError(device, err) })
	return device.Play()
}

func (c *Controller) stop() {
	switch c.state {
	case Idle:
		return
	case FadingOut:
		return
	case FadingIn:
		c.fadeIn.Stop()
	case Playing:
	}
	c.startRamp(Decreasing)
	c.transition(FadingOut)
}

func (c *Controller) startRamp(dir Direction) {
	if dir == Increasing {
		c.fadeIn.Stop()
		c.fadeIn.Start(c.params.Interval, c.fadeInTick)
		return
	}
	c.fadeOut.Stop()
	c.fadeOut.Start(c.params.Interval, c.fadeOutTick)
}

func (c *Controller) fadeInTick() {
	if c.session == nil || c.device == nil || c.state != FadingIn {
		return
	}
	v, done := c.params.next(c.session.Volume, Increasing)
	c.setVolume(v)
	if done {
		c.fadeIn.Stop()
		c.transition(Playing)
	}
}

func (c *Controller) fadeOutTick() {
	if c.session == nil || c.device == nil || c.state != FadingOut {
		return
	}
	v, done := c.params.next(c.session.Volume, Decreasing)
	c.setVolume(v)
	if done {
		c.teardown()
	}
}

func (c *Controller) setVolume(v float64) {
	c.session.Volume = v
	c.device.SetVolume(v)
}

// teardown stops playback, drops the session and halts both ramps.
func (c *Controller) teardown() {
	c.fadeIn.Stop()
	c.fadeOut.Stop()
	if c.device != nil {
		c.device.Stop()
		c.device = nil
	}
	if c.session != nil {
		c.log.Info("playback session ended",
			zap.String("session", c.session.ID),
			zap.Duration("played", c.now().Sub(c.session.StartedAt)),
		)
	}
	c.session = nil
	c.transition(Idle)
}

// handleDeviceError reacts to a failure reported after playback started.
// The session is torn down so no stale ramp keeps running on a dead device.
func (c *Controller) handleDeviceError(device Device, err error) {
	if device != c.device {
		c.log.Debug("ignoring error from stale device", zap.Error(err))
		return
	}
	c.report(errmsg.Format(errmsg.OpPlayback, err), err)
	c.teardown()
}

func (c *Controller) transition(next State) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	c.log.Debug("state change",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
	)
	change := StateChange{Previous: prev, Current: next}
	for _, fn := range c.observers {
		fn(change)
	}
}

func (c *Controller) report(msg string, err error) {
	c.lastErr = msg
	c.log.Error(msg, zap.Error(err))
	if c.reporter != nil {
		c.reporter.ShowError(ErrorTitle, msg)
	}
}
