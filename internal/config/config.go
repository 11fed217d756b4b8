package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/beatsnslices/internal/fade"
	"github.com/llehouerou/beatsnslices/internal/resources"
)

const (
	appName = "beatsnslices"

	// DefaultTrack is the file name of the bundled waiting music.
	DefaultTrack = "waiting-music-116216.mp3"

	TransportSocket = "socket"
	TransportFile   = "file"
)

type Config struct {
	DefaultSource string `koanf:"default_source"` // fallback track when no preference is stored

	Fade   FadeConfig   `koanf:"fade"`
	Events EventsConfig `koanf:"events"`
	Log    LogConfig    `koanf:"log"`
	Notify NotifyConfig `koanf:"notify"`
}

// FadeConfig tunes the volume ramps.
type FadeConfig struct {
	Step       float64 `koanf:"step"`        // volume change per tick (default: 0.01)
	IntervalMS int     `koanf:"interval_ms"` // tick period in milliseconds (default: 50)
}

// EventsConfig selects how slicer backend events reach the player.
type EventsConfig struct {
	Transport string `koanf:"transport"` // "socket" or "file" (default: "socket")
	Path      string `koanf:"path"`      // socket path or watched status file
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `koanf:"level"` // debug, info, warn, error (default: info)
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// NotifyConfig controls desktop notifications for playback errors.
type NotifyConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

// LoadFile loads the usual locations, then path on top of them. An empty
// path behaves like Load; a missing explicit path is an error.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Load()
	}
	path = expandPath(path)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return loadFrom(append(getConfigPaths(), path))
}

func loadFrom(configPaths []string) (*Config, error) {
	k := koanf.New(".")

	// Last file wins
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.DefaultSource = expandPath(cfg.DefaultSource)
	cfg.Events.Path = expandPath(cfg.Events.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Events.Transport = strings.ToLower(strings.TrimSpace(cfg.Events.Transport))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/beatsnslices/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetFadeParams returns the ramp parameters with defaults applied.
func (c *Config) GetFadeParams() fade.Params {
	p := fade.DefaultParams()
	if c.Fade.Step > 0 && c.Fade.Step <= 1 {
		p.Step = c.Fade.Step
	}
	if c.Fade.IntervalMS > 0 {
		p.Interval = time.Duration(c.Fade.IntervalMS) * time.Millisecond
	}
	return p
}

// GetEventsConfig returns the event transport with defaults applied.
func (c *Config) GetEventsConfig() EventsConfig {
	cfg := c.Events
	if cfg.Transport != TransportFile {
		cfg.Transport = TransportSocket
	}
	if cfg.Path == "" {
		if cfg.Transport == TransportFile {
			cfg.Path = filepath.Join(xdg.StateHome, appName, "backend-status")
		} else {
			cfg.Path = SocketPath()
		}
	}
	return cfg
}

// SocketPath is the default control socket location.
func SocketPath() string {
	return filepath.Join(xdg.RuntimeDir, appName, "events.sock")
}

// GetLogConfig returns the log settings with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = "info"
	}
	if cfg.File == "" {
		cfg.File = filepath.Join(xdg.StateHome, appName, appName+".log")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 28
	}
	return cfg
}

// NotificationsEnabled reports whether error notifications are shown.
func (c *Config) NotificationsEnabled() bool {
	return c.Notify.Enabled == nil || *c.Notify.Enabled
}

// DefaultSourcePath returns the track used when no preference is stored:
// the configured default_source, else the packaged waiting music next to
// the executable or under the XDG data dirs, else the location the
// built-in loop is installed to (see resources.EnsureLoop).
func (c *Config) DefaultSourcePath() string {
	if c.DefaultSource != "" {
		return c.DefaultSource
	}
	for _, p := range bundledCandidates() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return BuiltinLoopPath()
}

// BuiltinLoopPath is where the built-in loop is installed.
func BuiltinLoopPath() string {
	return filepath.Join(xdg.DataHome, appName, resources.LoopName)
}

func bundledCandidates() []string {
	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "resources", DefaultTrack))
	}
	paths = append(paths, filepath.Join(xdg.DataHome, appName, DefaultTrack))
	for _, dir := range xdg.DataDirs {
		paths = append(paths, filepath.Join(dir, appName, DefaultTrack))
	}
	return paths
}
