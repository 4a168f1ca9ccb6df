// Package logger provides the process-wide zerolog logger.
//
// The terminal UI owns stdout, so the logger normally writes to a file:
// call Init once at startup and Get anywhere after that.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Pretty switches to zerolog's console format instead of JSON lines.
	Pretty bool
	// Output is the writer logs are sent to. Takes precedence over File.
	Output io.Writer
	// File is appended to when Output is nil. Parent dirs are created.
	File string
}

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
	closer      io.Closer
)

// Init initialises the singleton logger. Only the first call has any effect.
// When no output can be opened logs are discarded rather than written over
// the UI.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			f, err := openLogFile(opts.File)
			if err != nil {
				out = io.Discard
			} else {
				out = f
				closer = f
			}
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
		}

		lvl := parseLevel(opts.Level)
		instance = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Logger()

		initialized = true
	})
	return instance
}

// Get returns the singleton logger, or a disabled logger if Init has not run
// (tests construct packages without initialising logging).
func Get() zerolog.Logger {
	if !initialized {
		return zerolog.Nop()
	}
	return instance
}

// Close releases the log file opened by Init, if any.
func Close() error {
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// Reset tears down the singleton so that the next Init call rebuilds it.
// Intended for use in tests only.
func Reset() {
	_ = Close() //nolint:errcheck // test helper
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("no log file configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

// parseLevel converts a string to a zerolog.Level.
//
//	"trace" → TraceLevel (-1)
//	"debug" → DebugLevel ( 0)
//	"info"  → InfoLevel  ( 1)  ← default
//	"warn"  → WarnLevel  ( 2)
//	"error" → ErrorLevel ( 3)
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
