package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled logger used across the course service, backed by zap.
// Provides Debugf/Infof/Warnf/Errorf/Fatalf, structured Infow/Warnw and Init(level).

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var zapLevels = map[Level]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
	LevelFatal: zapcore.FatalLevel,
}

var (
	mu    sync.RWMutex
	level Level = LevelInfo
	sugar *zap.SugaredLogger = zap.New(newCore()).Sugar()
)

func newCore() zapcore.Core {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.RFC3339TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	// level filtering happens in shouldLog so Init can change it at runtime
	return zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stdout), zapcore.DebugLevel)
}

// setCore swaps the output core; used by tests.
func setCore(c zapcore.Core) {
	mu.Lock()
	defer mu.Unlock()
	sugar = zap.New(c).Sugar()
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	case "fatal":
		level = LevelFatal
	default:
		level = LevelInfo
	}
}

func current(l Level) (*zap.SugaredLogger, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return sugar, l >= level
}

func Debugf(format string, v ...interface{}) {
	if s, ok := current(LevelDebug); ok {
		s.Debugf(format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if s, ok := current(LevelInfo); ok {
		s.Infof(format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if s, ok := current(LevelWarn); ok {
		s.Warnf(format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if s, ok := current(LevelError); ok {
		s.Errorf(format, v...)
	}
}

func Fatalf(format string, v ...interface{}) {
	s, _ := current(LevelFatal)
	s.Fatalf(format, v...)
}

// Infow logs a message with structured key/value pairs.
func Infow(msg string, keysAndValues ...interface{}) {
	if s, ok := current(LevelInfo); ok {
		s.Infow(msg, keysAndValues...)
	}
}

// Warnw logs a warning with structured key/value pairs.
func Warnw(msg string, keysAndValues ...interface{}) {
	if s, ok := current(LevelWarn); ok {
		s.Warnw(msg, keysAndValues...)
	}
}

// Sync flushes buffered output.
func Sync() {
	s, _ := current(LevelFatal)
	_ = s.Sync()
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	if zl, ok := zapLevels[level]; ok {
		return zl.String()
	}
	return "info"
}
