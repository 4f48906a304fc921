package logger

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// PrettyHandler writes one colored line per record for interactive CLI runs.
type PrettyHandler struct {
	opts   *slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{
		opts: opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	if !r.Time.IsZero() {
		buf.WriteString(color.HiBlackString(r.Time.Format(time.TimeOnly)))
		buf.WriteString(" ")
	}
	buf.WriteString(levelBadge(r.Level))
	buf.WriteString(" ")
	buf.WriteString(r.Message)

	fields := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields = append(fields, h.formatAttr(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.formatAttr(h.prefixed(a)))
		return true
	})
	if len(fields) > 0 {
		buf.WriteString(" ")
		buf.WriteString(strings.Join(fields, " "))
	}

	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			buf.WriteString(" ")
			buf.WriteString(color.HiBlackString("(%s:%d)", filepath.Base(frame.File), frame.Line))
		}
	}

	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := h.clone()
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, h.prefixed(a))
	}
	return clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		opts:   h.opts,
		mu:     h.mu,
		w:      h.w,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

// prefixed bakes the current group path into the key so attrs added before a
// later WithGroup keep their original qualification.
func (h *PrettyHandler) prefixed(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	return slog.Attr{Key: strings.Join(h.groups, ".") + "." + a.Key, Value: a.Value}
}

func levelBadge(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.RedString("[ERROR]")
	case level >= slog.LevelWarn:
		return color.YellowString("[WARN] ")
	case level >= slog.LevelInfo:
		return color.CyanString("[INFO] ")
	default:
		return color.HiBlackString("[DEBUG]")
	}
}

func (h *PrettyHandler) formatAttr(a slog.Attr) string {
	key := a.Key
	val := a.Value.Resolve().String()

	switch key {
	case "error", "err":
		return color.RedString("%s=%s", key, val)
	case "suggested_title", "title":
		return color.GreenString("%s=%q", key, val)
	case "duration", "status_code":
		return color.MagentaString("%s=%s", key, val)
	case "delivery_id", "event", "repo", "number":
		return color.BlueString("%s=%s", key, val)
	default:
		return color.HiBlackString("%s=%s", key, val)
	}
}
