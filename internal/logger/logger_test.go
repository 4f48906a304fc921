package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("should write JSON records by default", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(Options{Level: "info", Writer: &buf})

		l.Info("event processed", "delivery_id", "abc-123", "number", 7)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "event processed", record["msg"])
		assert.Equal(t, "abc-123", record["delivery_id"])
		assert.Equal(t, float64(7), record["number"])
	})

	t.Run("should drop records below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(Options{Level: "warn", Writer: &buf})

		l.Info("ignored")

		assert.Empty(t, buf.String())
	})

	t.Run("should force debug level when debug is set", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(Options{Level: "error", Debug: true, Writer: &buf})

		l.Debug("visible")

		assert.Contains(t, buf.String(), "visible")
	})
}

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true

	t.Run("should render level message and fields on one line", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		l.With("repo", "octo/hello").Warn("title does not conform", "title", "Fix bug")

		out := buf.String()
		assert.Contains(t, out, "[WARN]")
		assert.Contains(t, out, "title does not conform")
		assert.Contains(t, out, "repo=octo/hello")
		assert.Contains(t, out, `title="Fix bug"`)
		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
	})

	t.Run("should qualify grouped attributes", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(NewPrettyHandler(&buf, nil))

		l.WithGroup("github").With("status", 403).Error("request failed")

		assert.Contains(t, buf.String(), "github.status=403")
	})

	t.Run("should qualify attributes passed on the record", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(NewPrettyHandler(&buf, nil))

		l.With("repo", "octo/hello").WithGroup("github").Error("request failed", "status", 403)

		out := buf.String()
		assert.Contains(t, out, "github.status=403")
		assert.Contains(t, out, "repo=octo/hello")
		assert.NotContains(t, out, "github.repo")
	})

	t.Run("should respect the minimum level", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))

		l.Info("hidden")

		assert.Empty(t, buf.String())
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("should carry fields added with With", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := WithLogger(context.Background(), New(Options{Writer: &buf}))
		ctx = With(ctx, "delivery_id", "d-1")

		Error(ctx, "handler failed", assert.AnError)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "d-1", record["delivery_id"])
		assert.Equal(t, assert.AnError.Error(), record["error"])
	})

	t.Run("should fall back to the default logger", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})
}
