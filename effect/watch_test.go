package effect

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestWatcherReloadsOnWrite verifies a write to the override file yields a merged catalog
func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effects.yaml")
	if err := os.WriteFile(path, []byte("kinds: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	data := "kinds:\n  e1: {width: 3, height: 1, frames: [{glyph: o}]}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-w.Catalogs:
		spec, err := c.Lookup("e1")
		if err != nil || spec.Width != 3 {
			t.Errorf("reloaded e1 = %+v, %v", spec, err)
		}
		if _, err := c.Lookup("e9"); err != nil {
			t.Error("reload dropped embedded kinds")
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effects.yaml")
	if err := os.WriteFile(path, []byte("kinds: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	_ = w.Close()
	if _, ok := <-w.Catalogs; ok {
		t.Error("Catalogs not closed")
	}
}
