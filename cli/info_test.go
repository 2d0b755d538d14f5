package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInfoCommand_PrintsSummary(t *testing.T) {
	outputDir := t.TempDir()
	staticDir := filepath.Join(outputDir, "static")
	if err := os.MkdirAll(staticDir, 0755); err != nil {
		t.Fatal(err)
	}
	_ = os.WriteFile(filepath.Join(staticDir, "styles.min.css"), []byte("body{}"), 0644)
	_ = os.WriteFile(filepath.Join(staticDir, "styles.min.css.gz"), []byte("gz"), 0644)

	config := writeTestConfig(t, "outputDir: "+outputDir+"\ndebugHeaders: true\nlogFormat: json\n")

	output, err := runCommand(InfoCommand, "--config", config)
	if err != nil {
		t.Fatalf("info command failed: %v", err)
	}

	checks := []string{
		"📁 Output Directory: " + outputDir,
		"📁 Templates: (embedded)",
		"🔁 Debug Headers Enabled: true",
		"📝 Log Format: json",
		"🗂️  Routes Found: 1",
		"/ → index.html [actions: addTodo, default]",
		"💾 Cached Assets: 1",
	}

	for _, want := range checks {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestInfoCommand_MissingConfigUsesDefaults(t *testing.T) {
	output, err := runCommand(InfoCommand, "--config", filepath.Join(t.TempDir(), "none.yml"))
	if err != nil {
		t.Fatalf("info command failed: %v", err)
	}

	if !strings.Contains(output, "📁 Output Directory: ./cache") {
		t.Errorf("expected default output dir, got:\n%s", output)
	}
}
