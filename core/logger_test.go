package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLogFormatter(t *testing.T) {
	tests := map[string]log.Formatter{
		"":       log.TextFormatter,
		"text":   log.TextFormatter,
		"JSON":   log.JSONFormatter,
		"logfmt": log.LogfmtFormatter,
	}

	for name, want := range tests {
		got, err := ParseLogFormatter(name)
		if err != nil {
			t.Errorf("%q: unexpected error %v", name, err)
		}
		if got != want {
			t.Errorf("%q: expected %v, got %v", name, want, got)
		}
	}

	if _, err := ParseLogFormatter("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()

	logger, err := NewLogger(&buf, cfg)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug output suppressed, got %q", buf.String())
	}

	cfg.DebugLogs = true
	logger, err = NewLogger(&buf, cfg)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogFormat = "json"

	logger, err := NewLogger(&buf, cfg)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hello", "key", "value")

	if !strings.Contains(buf.String(), `"key":"value"`) {
		t.Errorf("expected JSON fields, got %q", buf.String())
	}
}

func TestNewLogger_RejectsUnknownFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFormat = "yaml"

	if _, err := NewLogger(&bytes.Buffer{}, cfg); err == nil {
		t.Error("expected error")
	}
}
