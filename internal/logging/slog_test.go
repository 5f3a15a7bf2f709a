package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		attr  string
	}{
		{"DEBUG", "dbg", "a=1"},
		{"INFO", "inf", "b=2"},
		{"WARN", "wrn", "c=3"},
		{"ERROR", "err", "d=4"},
	}

	for _, tc := range tests {
		assert.Contains(t, out, "level="+tc.level)
		assert.Contains(t, out, "msg="+tc.msg)
		assert.Contains(t, out, tc.attr)
	}
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("component", "filestore", "collection", "course_notes").Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=hello", "component=filestore", "collection=course_notes", "k=v"} {
		assert.Contains(t, out, s)
	}
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{FormatText, func(t *testing.T, out string) {
			assert.Contains(t, out, "msg=started")
		}},
		{"", func(t *testing.T, out string) {
			assert.Contains(t, out, "msg=started")
		}},
		{FormatJSON, func(t *testing.T, out string) {
			var m map[string]any
			require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &m))
			assert.Equal(t, "started", m["msg"])
			assert.Equal(t, "sqlite", m["backend"])
		}},
		{FormatZap, func(t *testing.T, out string) {
			var m map[string]any
			require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &m))
			assert.Equal(t, "started", m["msg"])
			assert.Equal(t, "sqlite", m["backend"])
		}},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(tt.format, &buf)
			require.NoError(t, err)
			l.Info(context.Background(), "started", "backend", "sqlite")
			tt.check(t, buf.String())
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New("xml", &bytes.Buffer{})
	require.Error(t, err)
}

func TestZapLogger_WithAndLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(newZapCore(&buf)).With("component", "accounts")
	ctx := context.Background()

	l.Debug(ctx, "hidden")
	l.Warn(ctx, "dropping entry", "position", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"component":"accounts"`)
	assert.Contains(t, out, `"position":2`)
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	ctx := context.TODO()
	l.Debug(ctx, "x")
	l.Info(ctx, "x")
	l.Warn(ctx, "x")
	l.Error(ctx, "x")
	l.With("a", 1).Info(ctx, "y")
}

func TestNewSlogWriter_InfoLevelByDefault(t *testing.T) {
	var buf bytes.Buffer
	l := newSlogWriter(&buf, false)
	ctx := context.Background()

	l.Debug(ctx, "hidden")
	l.Info(ctx, "shown", "n", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "n=1")
}
