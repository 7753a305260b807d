package runconfig

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogging configures the global slog default logger, mirroring the
// teacher's config.SetupLogging. All log output goes to os.Stderr so stdout
// stays free for report output piped to other tools.
func SetupLogging(level slog.Level, format string) {
	SetupLoggingWithWriter(level, format, os.Stderr)
}

// SetupLoggingWithWriter is the writer-injectable variant used by tests.
func SetupLoggingWithWriter(level slog.Level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ResolveLogLevel derives the slog level from the --verbose/--quiet flags,
// per spec.md section 6: verbose prints every skip with its reason code,
// quiet prints only fatal errors and the final summary.
func ResolveLogLevel(verbose, quiet bool) slog.Level {
	if os.Getenv("DUPEFINDER_DEBUG") == "1" {
		return slog.LevelDebug
	}
	if verbose {
		return slog.LevelDebug
	}
	if quiet {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ResolveLogFormat reads DUPEFINDER_LOG_FORMAT and defaults to text.
func ResolveLogFormat() string {
	if strings.EqualFold(os.Getenv("DUPEFINDER_LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}

// NewLogger returns a child logger tagged with a "component" attribute, the
// same convention the teacher's config.NewLogger established.
func NewLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
