// Package logx is the process wide logger, a thin facade over zerolog.
package logx

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level of a log line
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, false)
)

func newLogger(w io.Writer, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// SetOutput replaces the destination. console selects the human readable writer.
func SetOutput(w io.Writer, console bool) {
	mu.Lock()
	defer mu.Unlock()
	lvl := logger.GetLevel()
	logger = newLogger(w, console).Level(lvl)
}

// SetLevel sets the minimum level written
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(toZerolog(l))
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func toZerolog(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// L returns the underlying zerolog logger for structured fields
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// With returns a child logger carrying the given fields
func With(fields map[string]any) zerolog.Logger {
	return L().With().Fields(fields).Logger()
}

func Debug(msg string) { L().Debug().Msg(msg) }
func Debugf(format string, args ...any) { L().Debug().Msgf(format, args...) }
func Info(msg string) { L().Info().Msg(msg) }
func Infof(format string, args ...any) { L().Info().Msgf(format, args...) }
func Warn(msg string) { L().Warn().Msg(msg) }
func Warnf(format string, args ...any) { L().Warn().Msgf(format, args...) }
func Error(msg string) { L().Error().Msg(msg) }
func Errorf(format string, args ...any) { L().Error().Msgf(format, args...) }
func Fatalf(format string, args ...any) { L().Fatal().Msgf(format, args...) }
