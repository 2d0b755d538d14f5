package core

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.config.yml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigFromValidFile(t *testing.T) {
	path := writeConfig(t, `
outputDir: ./out
publicDir: assets
templatesDir: ./templates
debugHeaders: true
debugLogs: true
logFormat: json
maxFormBytes: 2048
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.OutputDir != "./out" {
		t.Errorf("expected OutputDir './out', got %q", cfg.OutputDir)
	}
	if cfg.PublicDir != "assets" {
		t.Errorf("expected PublicDir 'assets', got %q", cfg.PublicDir)
	}
	if cfg.TemplatesDir != "./templates" {
		t.Errorf("expected TemplatesDir './templates', got %q", cfg.TemplatesDir)
	}
	if !cfg.DebugHeaders || !cfg.DebugLogs {
		t.Error("expected true values for all booleans")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected LogFormat 'json', got %q", cfg.LogFormat)
	}
	if cfg.MaxFormBytes != 2048 {
		t.Errorf("expected MaxFormBytes 2048, got %d", cfg.MaxFormBytes)
	}
}

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigFillsEmptyFields(t *testing.T) {
	path := writeConfig(t, `
debugLogs: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.OutputDir != "./cache" {
		t.Errorf("expected fallback OutputDir './cache', got %q", cfg.OutputDir)
	}
	if cfg.PublicDir != "public" {
		t.Errorf("expected fallback PublicDir 'public', got %q", cfg.PublicDir)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("expected fallback LogFormat 'text', got %q", cfg.LogFormat)
	}
	if cfg.MaxFormBytes != 1<<20 {
		t.Errorf("expected fallback MaxFormBytes, got %d", cfg.MaxFormBytes)
	}
	if !cfg.DebugLogs {
		t.Error("expected DebugLogs to be true")
	}
}

func TestLoadConfigRejectsInvalidYAML(t *testing.T) {
	path := writeConfig(t, "outputDir: [unterminated")

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadConfigRejectsNegativeFormLimit(t *testing.T) {
	path := writeConfig(t, "maxFormBytes: -1")

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for negative maxFormBytes")
	}
}
