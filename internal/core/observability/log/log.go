// Package log is a thin structured logging facade over zap.
//
// Packages take a Log value instead of a *zap.Logger so the backing
// implementation can be swapped in tests. Fields are plain zap fields;
// re-deriving a field union here buys nothing.
package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the logging contract handed to every component.
type Log interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)

	With(fields ...zap.Field) Log
}

var _ Log = (*Logger)(nil)

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// Logger is the zap-backed implementation of Log.
type Logger struct {
	zl *zap.Logger
}

// New builds a production JSON logger at the given level. The first logger
// built becomes the package default returned by Provide.
func New(level string) *Logger {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	zl, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	logger := &Logger{zl: zl}
	defaultOnce.Do(func() { defaultLogger = logger })

	return logger
}

// Provide returns the default logger, building a no-op one if New was
// never called.
func Provide() *Logger {
	defaultOnce.Do(func() { defaultLogger = &Logger{zl: zap.NewNop()} })
	return defaultLogger
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zl.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zl.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zl.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zl.Error(msg, fields...) }

func (l *Logger) With(fields ...zap.Field) Log {
	return &Logger{zl: l.zl.With(fields...)}
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

// ParseLevel maps a config string to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
