package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/shelves/internal/config"
)

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeFn()

	logger.With("component", "resolver").Warn("conflicting shelf votes",
		"album_id", "A1",
		"winner", "Standard",
		slog.Group("votes", "Standard", 2, "Incoming", 1),
		"reason", "two words",
	)

	line := buf.String()
	for _, want := range []string{
		"WARN ",
		"[resolver] conflicting shelf votes",
		"album_id=A1",
		"winner=Standard",
		"votes.Standard=2",
		"votes.Incoming=1",
		`reason="two words"`,
	} {
		if !strings.Contains(line, want) {
			t.Errorf("output %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component rendered as a pair: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Errorf("colour written to a non-terminal: %q", line)
	}
}

func TestConsoleHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Error("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("level filtering failed: %q", buf.String())
	}
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("scan finished", "albums", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if entry["level"] != "info" || entry["msg"] != "scan finished" || entry["albums"] != float64(3) {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Errorf("entry has no ts: %v", entry)
	}
}

func TestNew_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "shelves.log")

	logger, closeFn, err := New(Options{Writer: &buf, File: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("to both")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to both") || !strings.Contains(buf.String(), "to both") {
		t.Errorf("file %q, writer %q", data, buf.String())
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	if _, _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("New accepted an unknown format")
	}
}

func TestNewFromSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.Logging.Format = "json"
	logger, closeFn, err := NewFromSettings(s)
	if err != nil || logger == nil {
		t.Fatalf("NewFromSettings = %v, %v", logger, err)
	}
	closeFn()
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
