// Package logger is the process-wide structured logger.
//
// Calls take a message followed by key/value pairs:
//
//	logger.Info("Server starting", "address", addr)
//	logger.Error("Failed to load datasets", err)
//
// An error passed without a key is attached under "error".
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Init configures the global logger for an environment. Development gets
// human-readable console output at debug level, anything else JSON at info.
// LOG_LEVEL overrides the level.
func Init(environment string) {
	InitWithWriter(environment, os.Stderr)
}

func InitWithWriter(environment string, w io.Writer) {
	level := zerolog.InfoLevel
	out := w

	if strings.EqualFold(environment, "development") {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	if lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}

	mu.Lock()
	log = zerolog.New(out).Level(level).With().Timestamp().Logger()
	mu.Unlock()
}

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Debug(msg string, args ...any) {
	emit(get().Debug(), msg, args)
}

func Info(msg string, args ...any) {
	emit(get().Info(), msg, args)
}

func Warn(msg string, args ...any) {
	emit(get().Warn(), msg, args)
}

func Error(msg string, args ...any) {
	emit(get().Error(), msg, args)
}

// Fatal logs and exits the process.
func Fatal(msg string, args ...any) {
	emit(get().Fatal(), msg, args)
}

func emit(ev *zerolog.Event, msg string, args []any) {
	if ev == nil {
		return
	}
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			ev = ev.Err(v)
		case string:
			if i+1 < len(args) {
				ev = field(ev, v, args[i+1])
				i++
			} else {
				ev = ev.Str("detail", v)
			}
		default:
			ev = ev.Interface(fmt.Sprintf("arg%d", i), v)
		}
	}
	ev.Msg(msg)
}

func field(ev *zerolog.Event, key string, val any) *zerolog.Event {
	switch v := val.(type) {
	case string:
		return ev.Str(key, v)
	case int:
		return ev.Int(key, v)
	case int64:
		return ev.Int64(key, v)
	case float64:
		return ev.Float64(key, v)
	case bool:
		return ev.Bool(key, v)
	case time.Duration:
		return ev.Dur(key, v)
	case error:
		return ev.AnErr(key, v)
	default:
		return ev.Interface(key, v)
	}
}
