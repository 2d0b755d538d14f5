package core

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestWatchDirs_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index.html")
	if err := os.WriteFile(file, []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- WatchDirs(ctx, []string{dir, filepath.Join(dir, "missing")}, func() {
			reloads <- struct{}{}
		}, log.New(io.Discard))
	}()

	// Writes must be spaced wider than reloadDebounce or each one restarts
	// the timer and the reload never fires.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(3 * reloadDebounce)
	defer tick.Stop()

	for {
		select {
		case <-reloads:
			cancel()
			if err := <-done; err != nil {
				t.Errorf("unexpected watcher error: %v", err)
			}
			return
		case <-tick.C:
			_ = os.WriteFile(file, []byte(time.Now().String()), 0644)
		case <-deadline:
			t.Fatal("expected a reload after writing a watched file")
		}
	}
}

func TestWatchDirs_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WatchDirs(ctx, []string{t.TempDir()}, func() {}, log.New(io.Discard)); err != nil {
		t.Errorf("expected nil error on cancel, got %v", err)
	}
}
