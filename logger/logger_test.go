package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestBuild_JSONLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := build("warn", FormatJSON, &buf).Sugar()

	l.Info("dropped")
	l.Warnw("kept", "task", "summarize")
	_ = l.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got error: %v", err)
	}
	if entry["msg"] != "kept" {
		t.Errorf("Expected msg 'kept', got %v", entry["msg"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("Expected level WARN, got %v", entry["level"])
	}
	if entry["task"] != "summarize" {
		t.Errorf("Expected task field 'summarize', got %v", entry["task"])
	}
}

func TestBuild_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := build("chatty", FormatJSON, &buf).Sugar()

	l.Debug("hidden")
	l.Info("shown")
	_ = l.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Expected debug entry to be filtered at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("Expected info entry to be written")
	}
}

func TestBuild_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := build("info", FormatConsole, &buf).Sugar()

	l.Info("hello")
	_ = l.Sync()

	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("Expected console output, got JSON: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "INFO") {
		t.Errorf("Expected INFO level in console output, got %s", buf.String())
	}
}
