package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/llehouerou/beatsnslices/internal/backend"
	"github.com/llehouerou/beatsnslices/internal/clock"
	"github.com/llehouerou/beatsnslices/internal/config"
	"github.com/llehouerou/beatsnslices/internal/errmsg"
	"github.com/llehouerou/beatsnslices/internal/fade"
	"github.com/llehouerou/beatsnslices/internal/logger"
	"github.com/llehouerou/beatsnslices/internal/notify"
	"github.com/llehouerou/beatsnslices/internal/player"
	"github.com/llehouerou/beatsnslices/internal/resources"
	"github.com/llehouerou/beatsnslices/internal/state"
)

// env holds what every command needs: configuration, logging and the
// preference store.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *state.Manager
	prefs *state.SourcePreference

	reporter *notify.Reporter
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	return cfg, nil
}

// openEnv loads the configuration, creates the logger (mirrored to console
// when non-nil) and opens the preference store.
func openEnv(console zapcore.WriteSyncer) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.GetLogConfig(), console)
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}

	store, err := state.Open()
	if err != nil {
		_ = log.Sync()
		return nil, errors.New(errmsg.Format(errmsg.OpStateOpen, err))
	}

	defaultSource := cfg.DefaultSourcePath()
	if err := resources.EnsureLoop(defaultSource); err != nil {
		// Sessions on the default source fail and are reported then
		log.Warn("install built-in loop", zap.String("path", defaultSource), zap.Error(err))
	}

	e := &env{
		cfg:   cfg,
		log:   log,
		store: store,
		prefs: state.NewSourcePreference(store, defaultSource),
	}
	dbPath, _ := state.Path()
	log.Debug("environment ready",
		zap.String("store", dbPath),
		zap.String("default_source", e.prefs.DefaultSource()),
	)
	return e, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("closing preference store", zap.Error(err))
	}
	_ = e.log.Sync()
}

func (e *env) notifier() *notify.Reporter {
	if e.reporter != nil {
		return e.reporter
	}
	n, err := notify.New()
	if err != nil {
		e.log.Debug("notifications unavailable", zap.Error(err))
	}
	e.reporter = notify.NewReporter(n, e.cfg.NotificationsEnabled(), e.log.Named("notify"))
	return e.reporter
}

// newController builds the fade controller. Device errors and ticks reach
// it through post, which must run callbacks on the caller's serial loop.
func (e *env) newController(post func(func())) *fade.Controller {
	params := e.cfg.GetFadeParams()
	ctrl := fade.New(fade.Options{
		NewDevice: func() (fade.Device, error) {
			d, err := player.New(post)
			if err != nil {
				return nil, err
			}
			return d, nil
		},
		FadeIn:      clock.NewTicker(post),
		FadeOut:     clock.NewTicker(post),
		Preferences: e.prefs,
		Reporter:    e.notifier(),
		Logger:      e.log.Named("fade"),
		Params:      params,
	})

	log := e.log.Named("state")
	ctrl.OnStateChange(func(c fade.StateChange) {
		log.Info("state changed",
			zap.Stringer("from", c.Previous),
			zap.Stringer("to", c.Current),
		)
	})

	e.log.Debug("controller ready",
		zap.Float64("step", params.Step),
		zap.Duration("interval", params.Interval),
	)
	return ctrl
}

// newSource returns the configured backend event transport.
func (e *env) newSource(post func(func()), ctrl *fade.Controller) backend.Source {
	ev := e.cfg.GetEventsConfig()
	log := e.log.Named("backend")
	handle := func(event fade.Event) {
		log.Debug("event received", zap.Stringer("event", event))
		ctrl.Handle(event)
	}

	log.Info("listening for slicer events",
		zap.String("transport", ev.Transport),
		zap.String("path", ev.Path),
	)
	if ev.Transport == config.TransportFile {
		return backend.NewFileSource(ev.Path, post, handle, log)
	}
	return backend.NewSocketSource(ev.Path, post, handle, log)
}

// startSource runs the event transport until ctx ends. The returned channel
// is closed once the transport has stopped.
func (e *env) startSource(ctx context.Context, post func(func()), ctrl *fade.Controller) <-chan struct{} {
	src := e.newSource(post, ctrl)
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := src.Run(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}
		msg := errmsg.Format(errmsg.OpEventListen, err)
		e.log.Error(msg, zap.Error(err))
		e.notifier().ShowError(fade.ErrorTitle, msg)
	}()
	return done
}

// printf writes to the command's output stream.
func printf(out io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(out, format, args...)
}
