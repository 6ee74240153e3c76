package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyCommand  = "command"
	KeyKind     = "error_kind"
	KeyDuration = "duration"
	KeyFile     = "file"
	KeyLines    = "lines"
	KeyCommands = "commands"
	KeyFailures = "failures"
	KeyTasks    = "tasks"
	KeyError    = "error"
)

// Format values accepted by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup builds a logger writing to stderr with the given level and format
// and installs it as the slog default. Unrecognized values fall back to
// info/text.
func Setup(level, format string) *slog.Logger {
	logger := New(os.Stderr, level, format)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w. Split from Setup so tests can capture
// output without touching the process default.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, FormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Command returns a slog attribute for the command word.
func Command(command string) slog.Attr {
	return slog.String(KeyCommand, command)
}

// Kind returns a slog attribute for the rendered error kind.
func Kind(kind string) slog.Attr {
	return slog.String(KeyKind, kind)
}

// Duration returns a slog attribute for an elapsed duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// File returns a slog attribute for an input file path.
func File(path string) slog.Attr {
	return slog.String(KeyFile, path)
}

// Err returns a slog attribute for an error. If err is nil it returns an
// empty Group attribute that slog omits from output, so Err(maybeNilErr)
// is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
