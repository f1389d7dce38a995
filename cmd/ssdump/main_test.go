package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/spritestudio"
)

const heroDoc = `
packs:
  - name: hero
    parts:
      - {name: root}
      - {name: body, parent: root, type: normal}
    animations:
      walk:
        fps: 10
        total_frame: 10
        timelines:
          root:
            hide: [{frame: 0, value: false}]
          body:
            hide: [{frame: 0, value: false}]
            pos_x: [{frame: 0, value: 0}, {frame: 10, value: 10}]
            cell: [{frame: 0, value: {map_id: 0, cell_id: 2}}]
`

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hero.yaml")
	if err := os.WriteFile(path, []byte(heroDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	a := &app{
		store: spritestudio.NewStore(),
		key:   spritestudio.PlayKey{File: fileID},
		out:   &out,
	}
	if err := a.load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	return a, &out
}

func TestParseTimes(t *testing.T) {
	got, err := parseTimes(" 0, 0.5,,1 ")
	if err != nil {
		t.Fatalf("parseTimes: %v", err)
	}
	want := []float64{0, 0.5, 1}
	if len(got) != len(want) {
		t.Fatalf("parseTimes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseTimes[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if _, err := parseTimes("0,abc"); err == nil {
		t.Error("expected error for a non-numeric time")
	}
}

func TestLoad_DefaultsToFirstPackAndAnimation(t *testing.T) {
	a, _ := newTestApp(t)
	if a.key.Pack != "hero" || a.key.Animation != "walk" {
		t.Errorf("key = %+v, want hero/walk", a.key)
	}
}

func TestResolveKey_UnknownAnimation(t *testing.T) {
	a, _ := newTestApp(t)
	data, _ := a.store.Data(fileID)
	a.key.Animation = "run"
	if err := a.resolveKey(data); err == nil {
		t.Error("expected error for a missing animation")
	}
}

func TestDump_Times(t *testing.T) {
	a, out := newTestApp(t)
	a.times = []float64{0.5, 2}
	if err := a.dump(); err != nil {
		t.Fatalf("dump: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "hero/walk frame 5") {
		t.Errorf("output missing frame 5 header:\n%s", s)
	}
	if !strings.Contains(s, "cell=0:2") {
		t.Errorf("output missing body cell:\n%s", s)
	}
	if !strings.Contains(s, "t=2.000: exhausted") {
		t.Errorf("output missing exhausted line:\n%s", s)
	}
}

func TestDump_EveryFrame(t *testing.T) {
	a, out := newTestApp(t)
	a.every = true
	if err := a.dump(); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if got := strings.Count(out.String(), "hero/walk frame "); got != 10 {
		t.Errorf("dumped %d frames, want 10", got)
	}
}
