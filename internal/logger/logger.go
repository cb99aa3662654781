package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	base zerolog.Logger
	once sync.Once
)

// Init configures the global JSON logger.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false)
func Init() {
	once.Do(func() {
		level := parseLevel(getenv("LOG_LEVEL", "info"))
		pretty := strings.EqualFold(getenv("LOG_PRETTY", "false"), "true")

		zerolog.TimeFieldFormat = time.RFC3339Nano
		var w io.Writer = os.Stderr
		if pretty {
			w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		}
		base = zerolog.New(w).With().Timestamp().Logger().Level(level)
	})
}

// L returns the global logger, initializing it on first use.
func L() *zerolog.Logger {
	Init()
	return &base
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
