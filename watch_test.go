package spritestudio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const watchDoc = `
packs:
  - name: hero
    parts: [{name: root}]
    animations:
      idle: {fps: 30, total_frame: 10}
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.yaml")
	if err := os.WriteFile(path, []byte(watchDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	r := LoadFile(5, path)
	if r.Err != nil {
		t.Fatalf("LoadFile: %v", r.Err)
	}
	if r.File != 5 || r.Path != path || r.Data == nil {
		t.Errorf("reload = %+v", r)
	}
	if _, _, ok := r.Data.Lookup(idle); !ok {
		t.Error("hero/idle should decode")
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if r := LoadFile(1, filepath.Join(dir, "missing.yaml")); r.Err == nil || r.Data != nil {
		t.Errorf("missing file: %+v", r)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("packs: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := LoadFile(1, bad); r.Err == nil {
		t.Error("malformed document should fail")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.yaml")
	if err := os.WriteFile(path, []byte("packs: []"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(map[FileID]string{9: path})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(watchDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-w.Reloads:
			if r.File != 9 {
				t.Fatalf("reload for file %d, want 9", r.File)
			}
			// a write can be observed before all bytes land
			if r.Err != nil || r.Data == nil {
				continue
			}
			if _, _, ok := r.Data.Lookup(idle); ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for a reload")
		}
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.yaml")
	if err := os.WriteFile(path, []byte(watchDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(map[FileID]string{1: path})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte(watchDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case r := <-w.Reloads:
		t.Errorf("unexpected reload %+v", r)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.yaml")
	if err := os.WriteFile(path, []byte(watchDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(map[FileID]string{1: path})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	select {
	case _, ok := <-w.Reloads:
		if ok {
			t.Error("Reloads should be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Reloads not closed")
	}
}
