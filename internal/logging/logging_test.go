package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"besfit/internal/config"

	"github.com/sirupsen/logrus"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, closer, err := New(config.LogConfig{File: path, Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.WithField("component", "test").Debug("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"component":"test"`) {
		t.Errorf("log file missing structured field: %s", b)
	}
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	logger, _, err := New(config.LogConfig{Level: "loud"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
}
