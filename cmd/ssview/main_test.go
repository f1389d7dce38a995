package main

import (
	"fmt"
	"testing"

	"github.com/phanxgames/spritestudio"
)

func TestCycle(t *testing.T) {
	names := []string{"idle", "jump", "walk"}
	tests := []struct {
		cur  string
		step int
		want string
	}{
		{"idle", 1, "jump"},
		{"walk", 1, "idle"},
		{"idle", -1, "walk"},
		{"jump", -1, "idle"},
		{"missing", 1, "jump"},
	}
	for _, tt := range tests {
		if got := cycle(names, tt.cur, tt.step); got != tt.want {
			t.Errorf("cycle(%q, %d) = %q, want %q", tt.cur, tt.step, got, tt.want)
		}
	}
	if got := cycle(nil, "idle", 1); got != "idle" {
		t.Errorf("cycle(nil) = %q, want idle", got)
	}
}

func TestPaletteSheet(t *testing.T) {
	s, err := paletteSheet()
	if err != nil {
		t.Fatal(err)
	}
	if s.CellCount() != len(paletteColors) {
		t.Fatalf("CellCount = %d, want %d", s.CellCount(), len(paletteColors))
	}
	c := s.Cell(5)
	if c.X != tileSize || c.Y != tileSize || c.Width != tileSize || c.Height != tileSize {
		t.Errorf("cell 5 = %+v, want second row, second column", c)
	}
}

func TestEventLogKeepsRecent(t *testing.T) {
	var l eventLog
	for i := 0; i < maxEvents+3; i++ {
		l.add(spritestudio.Event{Type: spritestudio.EventEnd, Pack: "hero", Animation: fmt.Sprint(i)})
	}
	if len(l.lines) != maxEvents {
		t.Fatalf("len = %d, want %d", len(l.lines), maxEvents)
	}
	if l.lines[0] != "End hero/3" {
		t.Errorf("oldest = %q, want End hero/3", l.lines[0])
	}
}

func TestFirstKey(t *testing.T) {
	walk := spritestudio.NewAnimationBuilder(1, 1, 30).Build()
	pack, err := spritestudio.NewPack("hero", []spritestudio.PartInfo{{ID: 0, Name: "root", Parent: spritestudio.NoParent}},
		map[string]*spritestudio.Animation{"walk": walk, "idle": walk}, nil)
	if err != nil {
		t.Fatal(err)
	}
	data := spritestudio.NewData(pack)

	key, err := firstKey(data, spritestudio.PlayKey{File: fileID})
	if err != nil {
		t.Fatal(err)
	}
	if key.Pack != "hero" || key.Animation != "idle" {
		t.Errorf("key = %+v, want hero/idle", key)
	}
	if _, err := firstKey(data, spritestudio.PlayKey{Pack: "hero", Animation: "run"}); err == nil {
		t.Error("expected error for a missing animation")
	}
	if _, err := firstKey(spritestudio.NewData(), spritestudio.PlayKey{}); err == nil {
		t.Error("expected error for an empty document")
	}
}
