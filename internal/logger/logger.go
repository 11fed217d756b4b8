// Package logger builds the application's zap logger: JSON lines written to
// a rotating file, optionally teed to a console writer.
package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/llehouerou/beatsnslices/internal/config"
)

// ErrNoOutput is returned when neither a file nor a console was given.
var ErrNoOutput = errors.New("logger: no output configured")

// ParseLevel maps a config level name to a zap level. Unknown names map to
// info.
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(name) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New creates a logger writing to cfg.File through lumberjack rotation and,
// when console is non-nil, to console as well. An empty cfg.File disables
// the file output.
func New(cfg config.LogConfig, console zapcore.WriteSyncer) (*zap.Logger, error) {
	level := ParseLevel(cfg.Level)
	var cores []zapcore.Core

	if console != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig()),
			console,
			level,
		))
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			w,
			level,
		))
	}

	if len(cores) == 0 {
		return nil, ErrNoOutput
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// Stderr wraps os.Stderr for use as a console output.
func Stderr() zapcore.WriteSyncer {
	return zapcore.Lock(os.Stderr)
}
