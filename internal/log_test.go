package internal

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

// capture collects standard log output produced by fn.
func capture(fn func()) string {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)
	fn()
	return buf.String()
}

func TestLoggerLevelGating(t *testing.T) {
	tests := []struct {
		name  string
		level LogLevel
		emit  func(*Logger)
		want  string
		shown bool
	}{
		{"error shown at error level", LogLevelError, func(l *Logger) { l.Error("boom") }, "[ERROR] boom", true},
		{"warn hidden at error level", LogLevelError, func(l *Logger) { l.Warn("careful") }, "[WARN]", false},
		{"warn shown at warn level", LogLevelWarn, func(l *Logger) { l.Warn("careful") }, "[WARN] careful", true},
		{"info hidden at warn level", LogLevelWarn, func(l *Logger) { l.Info("hello") }, "[INFO]", false},
		{"debug shown at debug level", LogLevelDebug, func(l *Logger) { l.Debug("detail %d", 7) }, "[DEBUG] detail 7", true},
		{"debug hidden at info level", LogLevelInfo, func(l *Logger) { l.Debug("detail") }, "[DEBUG]", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.level)
			out := capture(func() { tt.emit(logger) })
			if got := strings.Contains(out, tt.want); got != tt.shown {
				t.Errorf("output %q: contains(%q) = %t, want %t", out, tt.want, got, tt.shown)
			}
		})
	}
}

func TestNewDefaultLoggerReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	logger := NewDefaultLogger()
	out := capture(func() { logger.Debug("visible") })
	if !strings.Contains(out, "[DEBUG] visible") {
		t.Errorf("output %q, want debug line", out)
	}

	t.Setenv("LOG_LEVEL", "ERROR")
	logger = NewDefaultLogger()
	out = capture(func() { logger.Info("hidden") })
	if strings.Contains(out, "hidden") {
		t.Errorf("output %q, want no info line", out)
	}
}
