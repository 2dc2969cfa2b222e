package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	writeFile(t, path, "width = 100\n")

	w, err := newFileWatcher(path)
	if err != nil {
		t.Fatalf("newFileWatcher() error: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	// Other files in the directory are ignored.
	writeFile(t, filepath.Join(dir, "other.toml"), "width = 1\n")
	select {
	case <-w.Changes:
		t.Fatal("change reported for another file")
	case <-time.After(3 * watchDebounce):
	}

	if err := os.WriteFile(path, []byte("width = 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported after writing the watched file")
	}
}

func TestFileWatcherMissingDir(t *testing.T) {
	w, err := newFileWatcher(filepath.Join(t.TempDir(), "nope", "scene.toml"))
	if err != nil {
		t.Fatalf("newFileWatcher() error: %v", err)
	}
	defer w.watcher.Close()
	if err := w.Start(); err == nil {
		t.Error("Start() succeeded for a missing directory")
	}
}
