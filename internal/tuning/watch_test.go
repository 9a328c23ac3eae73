package tuning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sandfall/internal/sims/sandfall"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func startWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sandfall.yaml")
	writeFile(t, path, "params:\n  hazard_chance: 0.2\n")
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w, path
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	w, path := startWatcher(t)

	writeFile(t, path, "params:\n  hazard_chance: 0.9\n  coyote_ticks: 3\n")

	select {
	case cfg := <-w.Updates():
		if cfg.Params.HazardChance != 0.9 || cfg.Params.CoyoteTicks != 3 {
			t.Fatalf("reloaded params = %+v", cfg.Params)
		}
	case err := <-w.Errors():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	w, path := startWatcher(t)

	writeFile(t, path, "params:\n  hazard_chance: 4\n")

	select {
	case err := <-w.Errors():
		if !errors.Is(err, sandfall.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	case cfg := <-w.Updates():
		t.Fatalf("invalid config delivered: %+v", cfg)
	case <-time.After(3 * time.Second):
		t.Fatal("no error after invalid write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	w, path := startWatcher(t)

	writeFile(t, filepath.Join(filepath.Dir(path), "other.yaml"), "width: 10\n")

	select {
	case cfg := <-w.Updates():
		t.Fatalf("reloaded on unrelated file: %+v", cfg)
	case <-time.After(4 * Debounce):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, _ := startWatcher(t)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Updates(); ok {
		t.Fatal("Updates should be closed")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	if _, err := Watch(filepath.Join(t.TempDir(), "missing", "sandfall.yaml")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
