// Package logger owns the process-wide zerolog instance.
//
// Call Init exactly once in main, then pass the returned logger down or fetch
// it with Get. Reset exists for tests.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the level and output of the shared logger.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else,
	// including empty, falls back to info.
	Level string
	// Pretty switches to colored console output for local development.
	// Production keeps the default JSON lines.
	Pretty bool
	// Output defaults to os.Stdout when nil.
	Output io.Writer
}

var (
	shared zerolog.Logger
	once   sync.Once
	ready  bool
)

// Init builds the shared logger. Repeat calls return the logger built by the
// first call.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		shared = zerolog.New(out).
			Level(level).
			With().
			Timestamp().
			Caller().
			Logger()

		ready = true
	})
	return shared
}

// Get returns the shared logger. Panics when Init has not run.
func Get() zerolog.Logger {
	if !ready {
		panic("logger: Get called before Init")
	}
	return shared
}

// Reset discards the shared logger so the next Init rebuilds it. Test use
// only.
func Reset() {
	once = sync.Once{}
	shared = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
