// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package logging is a thin key/value logger built on zap.
//
// Callers pass a message followed by alternating keys and values:
//
//	logging.Info("Document updated", "path", path, "added", 2)
//
// A process-wide default logger backs the package-level functions; commands
// replace it once at startup with SetDefault.
package logging

import (
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging priority.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Config controls logger construction.
type Config struct {
	Level  Level
	Output io.Writer
	// JSON selects the JSON encoder instead of the console encoder.
	JSON bool
	// Development enables timestamps, stack traces on warnings and DPanic panics.
	Development bool
}

// DefaultConfig returns console logging at info level to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(s string) (Level, error) {
	return zapcore.ParseLevel(s)
}

// Logger is a component-scoped key/value logger.
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// New builds a Logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	encCfg := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encCfg.TimeKey = ""
	}
	encCfg.ConsoleSeparator = " "
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	var enc zapcore.Encoder
	if cfg.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), zap.NewAtomicLevelAt(cfg.Level))
	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	return wrap(zap.New(core, opts...))
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return wrap(zap.NewNop())
}

func wrap(z *zap.Logger) *Logger {
	return &Logger{
		base:  z,
		sugar: z.WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

// WithComponent returns a child logger tagged with component=name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.With("component", name)
}

// With returns a child logger that adds kv to every entry.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{
		base:  l.base.Sugar().With(kv...).Desugar(),
		sugar: l.sugar.With(kv...),
	}
}

func (l *Logger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(New(DefaultConfig()))
}

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	if l == nil {
		l = Nop()
	}
	defaultLogger.Store(l)
}

// WithComponent returns the default logger tagged with component=name.
func WithComponent(name string) *Logger {
	return Default().WithComponent(name)
}

// Package-level helpers log through the default logger.
func Debug(msg string, kv ...any) { Default().sugar.Debugw(msg, kv...) }
func Info(msg string, kv ...any)  { Default().sugar.Infow(msg, kv...) }
func Warn(msg string, kv ...any)  { Default().sugar.Warnw(msg, kv...) }
func Error(msg string, kv ...any) { Default().sugar.Errorw(msg, kv...) }
