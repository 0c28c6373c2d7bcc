package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

// Format selects the console encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// LevelTrace sits below Debug. The validator logs each rule check at it.
const LevelTrace = slog.LevelDebug - 4

// ParseFormat accepts "text" or "json" in any case. An empty string is text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Newf("unknown log format %q (want text or json)", s)
	}
}

// Config describes a logger.
type Config struct {
	Level  slog.Level
	Format Format
	// Output defaults to os.Stderr.
	Output io.Writer
	// File, when set, gets every record at Debug or above as JSON lines
	// whatever Level says.
	File io.Writer
}

// New builds a logger from cfg. Unrecognized formats fall back to text.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var h slog.Handler = NewHandler(out, opts)
	if cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(out, opts)
	}

	if cfg.File == nil {
		return slog.New(h)
	}
	fileOpts := &slog.HandlerOptions{Level: min(cfg.Level, slog.LevelDebug)}
	return slog.New(fanout{h, slog.NewJSONHandler(cfg.File, fileOpts)})
}

// LevelFromVerbosity maps the -v count: 0 is Warn, 1 Info, 2 Debug, 3+ Trace.
func LevelFromVerbosity(verbosity int) slog.Level {
	levels := []slog.Level{slog.LevelWarn, slog.LevelInfo, slog.LevelDebug, LevelTrace}
	return levels[min(max(verbosity, 0), len(levels)-1)]
}

// NewDiscard returns a logger that drops everything.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by NewContext, or a discard logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return NewDiscard()
}

// tbWriter sends each line to t.Log.
type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest returns a Trace-level logger whose output shows up with the test's
// own log, that is on failure or under -v.
func ForTest(tb testing.TB) *slog.Logger {
	tb.Helper()
	return New(Config{Level: LevelTrace, Output: tbWriter{tb: tb}})
}
