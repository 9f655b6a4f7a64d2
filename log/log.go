package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Level is a logging verbosity threshold, parsed from a CLI-friendly
// string via [ParseLevel].
type Level string

const (
	// LevelDebug enables debug-and-above logging.
	LevelDebug Level = "debug"
	// LevelInfo enables info-and-above logging.
	LevelInfo Level = "info"
	// LevelWarn enables warn-and-above logging.
	LevelWarn Level = "warn"
	// LevelError enables error-only logging.
	LevelError Level = "error"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format (key=value pairs).
	FormatLogfmt Format = "logfmt"
	// FormatText outputs logs in slog's human-readable text format.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// ParseLevel parses a log level string, case-insensitively, accepting
// "warning" as a synonym for "warn".
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}

	return "", ErrUnknownLogLevel
}

// ParseFormat parses a log format string, case-insensitively.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))

	switch f {
	case FormatJSON, FormatLogfmt, FormatText:
		return f, nil
	}

	return "", ErrUnknownLogFormat
}

// GetAllLevelStrings returns every recognized level string, in severity
// order, for use in CLI help text and completions.
func GetAllLevelStrings() []string {
	return []string{string(LevelDebug), string(LevelInfo), string(LevelWarn), string(LevelError)}
}

// GetAllFormatStrings returns every recognized format string for use in
// CLI help text and completions.
func GetAllFormatStrings() []string {
	return []string{string(FormatJSON), string(FormatLogfmt), string(FormatText)}
}

// slogLevel converts a Level to its [slog.Level] equivalent.
func slogLevel(l Level) slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewHandler creates a [slog.Handler] that writes to w at the given level
// and format. FormatLogfmt and FormatText both use [slog.NewTextHandler];
// they are kept distinct in the public API because TOON's CLI documents
// them as separate user-facing choices even though they render
// identically under the current slog text handler.
func NewHandler(w io.Writer, level Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{AddSource: true, Level: slogLevel(level)}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatLogfmt, FormatText:
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// NewHandlerFromStrings parses logLevel and logFormat and creates a
// [slog.Handler] writing to w.
func NewHandlerFromStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	lvl, err := ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fmtVal, err := ParseFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, fmtVal), nil
}
