package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"
)

func captureOutput(f func()) string {
	orig := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.config.yml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func runCommand(cmd *cli.Command, args ...string) (string, error) {
	app := &cli.App{
		Commands:       []*cli.Command{cmd},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}

	var err error
	out := captureOutput(func() {
		err = app.Run(append([]string{"todos", cmd.Name}, args...))
	})
	return out, err
}
