// Package logging builds the structured logger shared by the REPL, the web
// server and the command entry point.
//
// The lexer and parser never log. Everything around them receives a
// *slog.Logger explicitly instead of reaching for a global.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// LogLevel represents logging verbosity
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Output formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds logger configuration
type Config struct {
	Level LogLevel
	// OutputPath is "" or "stderr" for standard error, "stdout" for standard
	// output, or a file path. Files are opened for appending.
	OutputPath string
	Format     string // "json" or "text"
}

// ParseLevel converts a level name (case-insensitive) to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch level := LogLevel(strings.ToUpper(strings.TrimSpace(s))); level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return level, nil
	default:
		return "", errors.Newf("unknown log level %q", s)
	}
}

// slogLevel maps a LogLevel onto slog, defaulting to INFO.
func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger from config. The returned close function releases the
// log file, if one was opened, and is always safe to call.
//
// Example:
//
//	logger, closeLog, err := logging.New(logging.Config{
//	    Level:      logging.LevelDebug,
//	    OutputPath: "logs/sqlparse.log",
//	    Format:     "json",
//	})
func New(config Config) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	var (
		writer  io.Writer
		closeFn = noop
	)

	switch config.OutputPath {
	case "", "stderr":
		writer = os.Stderr
	case "stdout":
		writer = os.Stdout
	default:
		if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0o750); err != nil {
			return nil, noop, errors.Wrapf(err, "create log directory for %s", config.OutputPath)
		}
		file, err := os.OpenFile(config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, noop, errors.Wrap(err, "open log file")
		}
		writer = file
		closeFn = file.Close
	}

	logger, err := NewWithWriter(writer, config)
	if err != nil {
		_ = closeFn()
		return nil, noop, err
	}
	return logger, closeFn, nil
}

// NewWithWriter builds a logger that writes to w, ignoring OutputPath.
func NewWithWriter(w io.Writer, config Config) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: config.Level.slogLevel()}

	var handler slog.Handler
	switch config.Format {
	case "", FormatText:
		handler = slog.NewTextHandler(w, opts)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, errors.Newf("unknown log format %q", config.Format)
	}
	return slog.New(handler), nil
}

// Discard returns a logger that drops every record. Tests and library
// callers that pass no logger get this one.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns logger, or Discard() when logger is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}
