package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		level  string
		format string
		want   zapcore.Level
	}{
		{"info", "json", zapcore.InfoLevel},
		{"debug", "console", zapcore.DebugLevel},
		{"", "", zapcore.InfoLevel},
		{"WARN", "JSON", zapcore.WarnLevel},
	}

	for _, tc := range cases {
		logger, level, err := New(tc.level, tc.format)
		if err != nil {
			t.Fatalf("New(%q, %q): %v", tc.level, tc.format, err)
		}
		if level.Level() != tc.want {
			t.Fatalf("New(%q, %q) level = %s, want %s", tc.level, tc.format, level.Level(), tc.want)
		}
		if !logger.Core().Enabled(tc.want) {
			t.Fatalf("logger should accept %s entries", tc.want)
		}
	}
}

func TestAtomicLevelAdjustsLogger(t *testing.T) {
	logger, level, err := New("info", "json")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug must be disabled at info")
	}
	level.SetLevel(zapcore.DebugLevel)
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug must be enabled after SetLevel")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, _, err := New("loud", "json"); err == nil {
		t.Fatalf("expected unknown level error")
	}
	if _, _, err := New("info", "xml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
