package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "game", "checkers")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "game=checkers") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "arcade.log")

	logger, closer, err := Setup(path, "debug")
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	logger.Debug("cue", "name", "move")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "name=move") {
		t.Errorf("log file content = %q", data)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.arcade/x.log")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".arcade", "x.log"); got != want {
		t.Errorf("ExpandHome() = %q, expected %q", got, want)
	}

	if got, _ := ExpandHome("/tmp/a.log"); got != "/tmp/a.log" {
		t.Errorf("absolute path changed: %q", got)
	}
}
