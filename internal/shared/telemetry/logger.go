package telemetry

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stdout, zerolog.InfoLevel)
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetLevel changes the minimum level. Unknown levels fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(lvl)
}

// SetOutput redirects log lines to w and returns a func restoring the previous writer.
func SetOutput(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = newLogger(w, prev.GetLevel())
	return func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	}
}

// Logger returns the underlying zerolog logger for callers that need the fluent API.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug writes a debug-level log line with the given fields.
func Debug(msg string, fields map[string]any) {
	write(zerolog.DebugLevel, msg, fields)
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write(zerolog.InfoLevel, msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write(zerolog.WarnLevel, msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write(zerolog.ErrorLevel, msg, fields)
}

func write(level zerolog.Level, msg string, fields map[string]any) {
	l := Logger()
	ev := l.WithLevel(level)
	if ev == nil {
		return
	}
	for k, v := range fields {
		if err, ok := v.(error); ok {
			ev = ev.Str(k, err.Error())
			continue
		}
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}
