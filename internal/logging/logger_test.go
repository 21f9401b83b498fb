package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Errorf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewBuildsALogger(t *testing.T) {
	logger, err := New("debug", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger == nil {
		t.Fatal("expected a non-nil logger")
	}
	defer logger.Sync()

	jsonLogger, err := New("info", true)
	if err != nil {
		t.Fatalf("New with json: %v", err)
	}
	defer jsonLogger.Sync()
}
