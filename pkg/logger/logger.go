// Package logger builds the zerolog loggers of the web service and the
// terminal client. Both write to the same kind of sink and are told apart by
// the "component" field.
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

// Format is the encoding of log entries.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Options describes one component's logger.
type Options struct {
	// Level is trace, debug, info, warn or error. Unknown values log at info;
	// use ParseLevel to reject them up front.
	Level string
	// Format defaults to FormatJSON.
	Format Format
	// Output defaults to os.Stdout.
	Output io.Writer
	// Component is added to every entry, e.g. "web" or "cli".
	Component string
}

// ParseLevel maps a LOG_LEVEL value to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// ParseFormat maps a LOG_FORMAT value to a Format. Empty selects fallback.
func ParseFormat(s string, fallback Format) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return fallback, nil
	case FormatJSON, FormatConsole:
		return f, nil
	default:
		return fallback, fmt.Errorf("unknown log format %q", s)
	}
}

// New builds a logger from opts.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	lvl, _ := ParseLevel(opts.Level)

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	if lvl <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

var (
	once    sync.Once
	process zerolog.Logger
)

// Init builds the process logger on the first call and makes it zerolog's
// default context logger. Later calls return the same logger.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		process = New(opts)
		zerolog.DefaultContextLogger = &process
	})
	return process
}

func reset() {
	once = sync.Once{}
	process = zerolog.Logger{}
	zerolog.DefaultContextLogger = nil
}
