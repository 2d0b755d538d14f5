package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-barry/todos/core"
	"github.com/go-barry/todos/routes"
)

func TestCopyEmbeddedDir(t *testing.T) {
	tmpDir := t.TempDir()

	if err := copyEmbeddedDir(routes.Templates, ".", tmpDir); err != nil {
		t.Fatalf("unexpected error copying embedded dir: %v", err)
	}

	err := fs.WalkDir(routes.Templates, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if _, err := os.Stat(filepath.Join(tmpDir, path)); err != nil {
			t.Errorf("expected file %s to exist, but got error: %v", path, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected walk error: %v", err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
}

func TestInitCommand_RunSuccess(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	if _, err := runCommand(InitCommand); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for _, file := range []string{"templates/index.html", "templates/layout.html", "templates/components/todo_list.html"} {
		if _, err := os.Stat(filepath.Join(tmpDir, file)); err != nil {
			t.Errorf("expected %s: %v", file, err)
		}
	}
	if info, err := os.Stat(filepath.Join(tmpDir, "public")); err != nil || !info.IsDir() {
		t.Errorf("expected public directory: %v", err)
	}

	cfg, err := core.LoadConfig(filepath.Join(tmpDir, core.DefaultConfigPath))
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.TemplatesDir != "templates" {
		t.Errorf("expected templatesDir 'templates', got %q", cfg.TemplatesDir)
	}
}

func TestInitCommand_RefusesExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	_ = os.WriteFile(core.DefaultConfigPath, []byte("debugLogs: true\n"), 0644)

	if _, err := runCommand(InitCommand); err == nil {
		t.Error("expected error when config already exists")
	}
}
