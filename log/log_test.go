package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestModuleAddsAttribute(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelDebug).Module("spline")

	l.Info("spline built", "segments", 12)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["module"] != "spline" {
		t.Fatalf("module = %v, want %q", entry["module"], "spline")
	}
	if entry["msg"] != "spline built" {
		t.Fatalf("msg = %v, want %q", entry["msg"], "spline built")
	}
	// slog renders numbers as float64 in JSON.
	if v, ok := entry["segments"].(float64); !ok || v != 12 {
		t.Fatalf("segments = %v, want 12", entry["segments"])
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level  slog.Level
		logFn  func(l *Logger)
		expect bool // whether the message should appear
	}{
		{slog.LevelInfo, func(l *Logger) { l.Debug("nope") }, false},
		{slog.LevelInfo, func(l *Logger) { l.Info("yes") }, true},
		{slog.LevelInfo, func(l *Logger) { l.Warn("yes") }, true},
		{slog.LevelInfo, func(l *Logger) { l.Error("yes") }, true},
		{slog.LevelWarn, func(l *Logger) { l.Info("nope") }, false},
		{slog.LevelWarn, func(l *Logger) { l.Warn("yes") }, true},
		{slog.LevelDebug, func(l *Logger) { l.Debug("yes") }, true},
	}

	for i, tt := range tests {
		var buf bytes.Buffer
		l := New(&buf, tt.level)
		tt.logFn(l)

		got := buf.Len() > 0
		if got != tt.expect {
			t.Errorf("test %d: output=%v, want %v (level=%v, buf=%s)",
				i, got, tt.expect, tt.level, buf.String())
		}
	}
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
	// The default logger writes to stderr at Info, so this Debug probe is
	// filtered out; the only contract here is that it does not panic.
	Default().Module("subdivide").Debug("probe")
}
