package logger

import (
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf strings.Builder

	log := NewLoggerTo(&buf, "warn")

	log.Debug("hidden debug")
	log.Info("hidden info")
	log.Warn("visible warn")
	log.Error("visible error")

	out := buf.String()

	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug/info suppressed at warn level, got: %s", out)
	}

	if !strings.Contains(out, "visible warn") || !strings.Contains(out, "visible error") {
		t.Errorf("Expected warn/error present, got: %s", out)
	}
}

func TestLogger_With(t *testing.T) {
	var buf strings.Builder

	log := NewLoggerTo(&buf, "info").With("user", "alice")

	log.Info("exported")

	if !strings.Contains(buf.String(), "user=alice") {
		t.Errorf("Expected child logger attribute in output, got: %s", buf.String())
	}
}
