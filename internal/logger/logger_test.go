package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitWithOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Output: &buf}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	Info("hidden below warn level")
	Warn("plan cache miss", "user", "alice")

	out := buf.String()
	if strings.Contains(out, "hidden below warn level") {
		t.Errorf("info message written in non-debug mode: %q", out)
	}
	if !strings.Contains(out, "plan cache miss") || !strings.Contains(out, "alice") {
		t.Errorf("warning not written: %q", out)
	}
	if !strings.Contains(out, "chronoforge") {
		t.Errorf("expected the app prefix in %q", out)
	}
}

func TestWith(t *testing.T) {
	Logger = nil
	if With("user", "bob") != nil {
		t.Error("With should return nil before Init")
	}

	var buf bytes.Buffer
	if err := Init(Config{Output: &buf}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	With("user", "bob").Warn("scoped")
	if !strings.Contains(buf.String(), "bob") {
		t.Errorf("child logger lost its fields: %q", buf.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
