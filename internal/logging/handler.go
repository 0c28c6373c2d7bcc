package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Handler writes one line per record for a person watching stderr:
//
//	WARN  repaired finding="Header character set was not specified - repaired"
//
// Time is omitted; the JSON log file carries it. Attributes added with
// WithAttrs are formatted once, and each record is written with a single
// Write so concurrent loggers never interleave within a line.
type Handler struct {
	level     slog.Leveler
	out       io.Writer
	mu        *sync.Mutex
	prefix    string // dotted group path for keys
	preformed []byte
	palette   *palette
}

// palette holds the colors used when the writer supports them.
type palette struct {
	levels map[string]*color.Color
	key    *color.Color
}

func newPalette() *palette {
	return &palette{
		levels: map[string]*color.Color{
			"TRACE": color.New(color.FgHiBlack),
			"DEBUG": color.New(color.FgMagenta),
			"INFO":  color.New(color.FgGreen),
			"WARN":  color.New(color.FgYellow),
			"ERROR": color.New(color.FgRed, color.Bold),
		},
		key: color.New(color.FgCyan),
	}
}

// NewHandler creates a console handler. Colors are used only when out
// supports them.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{
		level: slog.LevelInfo,
		out:   out,
		mu:    &sync.Mutex{},
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	if SupportsColor(out) {
		h.palette = newPalette()
	}
	return h
}

// Enabled reports whether records at level are written.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats r and writes it as one line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	name := levelName(r.Level)
	padded := name + strings.Repeat(" ", max(0, 5-len(name)))
	if h.palette != nil {
		padded = h.colorFor(name).Sprint(padded)
	}
	buf.WriteString(padded)
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.Write(h.preformed)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) colorFor(level string) *color.Color {
	if c, ok := h.palette.levels[level]; ok {
		return c
	}
	return h.palette.levels["ERROR"]
}

// writeAttr appends " key=value", flattening groups into dotted keys.
func (h *Handler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := prefix + a.Key
	if a.Value.Kind() == slog.KindGroup {
		sub := prefix
		if a.Key != "" {
			sub = key + "."
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, sub, ga)
		}
		return
	}

	if h.palette != nil {
		key = h.palette.key.Sprint(key)
	}
	buf.WriteByte(' ')
	buf.WriteString(key)
	buf.WriteByte('=')
	buf.WriteString(formatValue(a.Value))
}

// formatValue quotes values that would otherwise be ambiguous, such as
// finding messages containing spaces.
func formatValue(v slog.Value) string {
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// levelName names LevelTrace, which slog would print as DEBUG-4.
func levelName(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

// WithAttrs returns a Handler that writes attrs, already formatted, on every
// record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf bytes.Buffer
	buf.Write(h.preformed)
	for _, a := range attrs {
		h.writeAttr(&buf, h.prefix, a)
	}
	next := *h
	next.preformed = buf.Bytes()
	return &next
}

// WithGroup returns a Handler whose later keys are prefixed with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}
