package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" Warn ", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		level, err := ParseLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", tt.input, err)
			continue
		}
		if level != tt.expected {
			t.Errorf("ParseLevel(%q): expected %s, got %s", tt.input, tt.expected, level)
		}
	}
}

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, Config{Level: LevelInfo})
	if err != nil {
		t.Fatalf("NewWithWriter error: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("parsed", "kind", "select")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record should be filtered at INFO: %q", out)
	}
	if !strings.Contains(out, "msg=parsed") || !strings.Contains(out, "kind=select") {
		t.Errorf("unexpected text output %q", out)
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, Config{Level: LevelDebug, Format: FormatJSON})
	if err != nil {
		t.Fatalf("NewWithWriter error: %v", err)
	}

	logger.Debug("tokenized", "tokens", 7)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "tokenized" || record["level"] != "DEBUG" {
		t.Errorf("unexpected record %v", record)
	}
	if record["tokens"] != float64(7) {
		t.Errorf("expected tokens=7, got %v", record["tokens"])
	}
}

func TestNewWithWriterUnknownFormat(t *testing.T) {
	if _, err := NewWithWriter(&bytes.Buffer{}, Config{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sqlparse.log")

	logger, closeLog, err := New(Config{Level: LevelInfo, OutputPath: path})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	logger.Info("written to file")
	if err := closeLog(); err != nil {
		t.Fatalf("close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing record: %q", data)
	}
}

func TestNewStandardStreams(t *testing.T) {
	for _, path := range []string{"", "stderr", "stdout"} {
		logger, closeLog, err := New(Config{OutputPath: path})
		if err != nil {
			t.Errorf("New(%q) error: %v", path, err)
			continue
		}
		if logger == nil {
			t.Errorf("New(%q) returned nil logger", path)
		}
		if err := closeLog(); err != nil {
			t.Errorf("close for %q: %v", path, err)
		}
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("expected a logger for nil input")
	}
	// Must not panic or write anywhere.
	OrDiscard(nil).Error("dropped")

	logger := Discard()
	if OrDiscard(logger) != logger {
		t.Error("expected the same logger back")
	}
}
