package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/rove/internal/ui/output"
	"go.trai.ch/rove/internal/ui/style"
)

// PrettyHandler is a custom slog.Handler that produces human-readable,
// colored output using the shared UI components.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	levelVar := &slog.LevelVar{}
	if opts != nil && opts.Level != nil {
		levelVar.Set(opts.Level.Level())
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	if icon := levelIcon(r.Level); icon != "" {
		line.WriteString(icon)
		line.WriteString(" ")
	}
	line.WriteString(r.Message)

	for _, attr := range h.attrs {
		line.WriteString(" ")
		h.writeAttr(&line, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		line.WriteString(" ")
		h.writeAttr(&line, attr)
		return true
	})

	styled := h.out.String(line.String()).Foreground(levelColor(r.Level))
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.group = name
	return clone
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: append([]slog.Attr(nil), h.attrs...),
		group: h.group,
	}
}

// writeAttr renders one attribute as key=value. A group name prefixes the key.
func (h *PrettyHandler) writeAttr(b *strings.Builder, attr slog.Attr) {
	if h.group != "" {
		b.WriteString(h.group)
		b.WriteString(".")
	}
	b.WriteString(attr.Key)
	b.WriteString("=")
	b.WriteString(attr.Value.String())
}

func levelIcon(level slog.Level) string {
	switch level {
	case slog.LevelWarn:
		return style.Warning
	case slog.LevelError:
		return style.Cross
	default:
		return ""
	}
}

func levelColor(level slog.Level) termenv.Color {
	switch level {
	case slog.LevelWarn:
		return termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		return termenv.RGBColor(string(style.Red))
	default:
		return termenv.RGBColor(string(style.Slate))
	}
}
