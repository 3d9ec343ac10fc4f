// Package logging builds the zerolog loggers used across garmentlca and
// carries them, together with a per-invocation trace id, on the context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultLevel is used when Config.Level is empty or unparsable.
const DefaultLevel = zerolog.WarnLevel

// Config describes how a logger is built.
type Config struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...).
	Level string

	// Format is FormatConsole or FormatJSON.
	Format string

	// Output is the destination when File is empty. Defaults to stderr.
	Output io.Writer

	// File, when set, sends logs to this path instead of Output.
	File string

	// Caller adds the source location to every event.
	Caller bool
}

// LogPathResult reports where a logger ended up writing.
type LogPathResult struct {
	Logger zerolog.Logger

	// UsingFile is true when logs go to FilePath.
	UsingFile bool
	FilePath  string

	// FallbackUsed is true when File was requested but could not be
	// opened, so logs went to Output instead.
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if one was opened.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger from cfg. File errors fall back to Output
// silently; use NewLoggerWithPath to learn about them.
func NewLogger(cfg Config) zerolog.Logger {
	return NewLoggerWithPath(cfg).Logger
}

// NewLoggerWithPath builds a logger from cfg and reports the destination.
func NewLoggerWithPath(cfg Config) LogPathResult {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var result LogPathResult
	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			result.FallbackUsed = true
			result.FallbackReason = err.Error()
		} else {
			out = f
			result.file = f
			result.UsingFile = true
			result.FilePath = cfg.File
		}
	}

	if strings.EqualFold(cfg.Format, FormatConsole) && !result.UsingFile {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	result.Logger = ctx.Logger().Hook(traceHook{})
	return result
}

// ParseLevel parses a level name, returning DefaultLevel when it is empty
// or unknown.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return DefaultLevel
	}
	return lvl
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// ComponentLogger returns a child logger tagged with component.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored on ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where logs are being written.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user the log file could not be used.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: log file unavailable (%s), logging to stderr\n", reason)
}
