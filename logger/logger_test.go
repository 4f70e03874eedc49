package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewDisabledByDefault(t *testing.T) {
	log, closer, err := New(Config{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer closer()

	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Expected no-op logger when debug is off")
	}
}

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "inkbeat.log")
	log, closer, err := New(Config{Debug: true, Level: "info", OutputPath: path})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	log.Debug("filtered out")
	log.Info("track started")
	closer()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file to be created: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"track started"`) {
		t.Errorf("Expected JSON entry in log file, got %s", data)
	}
	if strings.Contains(string(data), "filtered out") {
		t.Error("Expected debug entry to be filtered at info level")
	}
}

func TestNewConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := New(Config{Console: &buf, Level: "warn"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	log.Info("quiet")
	log.Warn("schedule exhausted")
	closer()

	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "schedule exhausted") {
		t.Errorf("Expected warning on console, got %q", out)
	}
	if strings.Contains(out, "quiet") {
		t.Error("Expected info entry to be filtered at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.DebugLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): Expected %v, got %v", in, want, got)
		}
	}
}
