package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// plainOutput keeps an inherited FORCE_COLOR from coloring buffers.
func plainOutput(t *testing.T) {
	t.Helper()
	t.Setenv("FORCE_COLOR", "0")
}

func TestHandler_Lines(t *testing.T) {
	plainOutput(t)
	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want string
	}{
		{
			name: "message and attrs",
			log:  func(l *slog.Logger) { l.Info("document loaded", "format", "yaml", "submitters", 2) },
			want: "INFO  document loaded format=yaml submitters=2\n",
		},
		{
			name: "ambiguous values are quoted",
			log: func(l *slog.Logger) {
				l.Warn("repaired", "finding", "Document trailer was not specified - repaired", "empty", "")
			},
			want: `WARN  repaired finding="Document trailer was not specified - repaired" empty=""` + "\n",
		},
		{
			name: "logger attrs come before record attrs",
			log:  func(l *slog.Logger) { l.With("path", "family.yaml").Info("saved", "repairs", 3) },
			want: "INFO  saved path=family.yaml repairs=3\n",
		},
		{
			name: "groups become dotted keys",
			log: func(l *slog.Logger) {
				l.WithGroup("rule").Info("rule complete", "name", "header", slog.Group("findings", "errors", 2))
			},
			want: "INFO  rule complete rule.name=header rule.findings.errors=2\n",
		},
		{
			name: "attrs added before a group keep their key",
			log: func(l *slog.Logger) {
				l.With("run", 1).WithGroup("rule").With("name", "trailer").Info("done", "n", 0)
			},
			want: "INFO  done run=1 rule.name=trailer rule.n=0\n",
		},
		{
			name: "empty group is inlined",
			log:  func(l *slog.Logger) { l.Info("x", slog.Group("", "a", 1)) },
			want: "INFO  x a=1\n",
		},
		{
			name: "trace level name",
			log:  func(l *slog.Logger) { l.Log(t.Context(), LevelTrace, "checking character set") },
			want: "TRACE checking character set\n",
		},
		{
			name: "error level",
			log:  func(l *slog.Logger) { l.Error("cannot save") },
			want: "ERROR cannot save\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})))
			if got := buf.String(); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}

	if !NewHandler(&bytes.Buffer{}, nil).Enabled(ctx, slog.LevelInfo) {
		t.Error("nil options should default to Info")
	}
}

func TestHandler_DynamicLevel(t *testing.T) {
	var level slog.LevelVar
	level.Set(slog.LevelError)
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: &level})

	if h.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("Warn should be disabled at Error")
	}
	level.Set(slog.LevelDebug)
	if !h.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("Warn should follow the LevelVar")
	}
}

func TestHandler_NoTimestamp(t *testing.T) {
	var buf bytes.Buffer
	r := slog.NewRecord(time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC), slog.LevelInfo, "stamped", 0)
	if err := NewHandler(&buf, nil).Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if strings.Contains(buf.String(), "15:04") || strings.Contains(buf.String(), "3:04") {
		t.Errorf("console lines carry no timestamp, got %q", buf.String())
	}
}

// countingWriter records each Write call so tests can check lines are
// written whole.
type countingWriter struct {
	mu     sync.Mutex
	writes []string
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func TestHandler_OneWritePerRecord(t *testing.T) {
	plainOutput(t)
	w := &countingWriter{}
	logger := slog.New(NewHandler(w, nil)).With("path", "family.yaml")

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			logger.Info("rule complete", "n", i)
		})
	}
	wg.Wait()

	if len(w.writes) != 20 {
		t.Fatalf("got %d writes, want 20", len(w.writes))
	}
	for _, line := range w.writes {
		if !strings.HasPrefix(line, "INFO  rule complete path=family.yaml n=") || !strings.HasSuffix(line, "\n") {
			t.Errorf("torn line %q", line)
		}
	}
}
