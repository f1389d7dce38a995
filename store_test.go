package spritestudio

import "testing"

func TestStoreAddAndLookup(t *testing.T) {
	s := NewStore()
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
	pack := mustPack(t, "hero", rootAndChild(), map[string]*Animation{
		"idle": NewAnimationBuilder(2, 1, 30).Build(),
	}, nil)
	s.AddData(1, NewData(pack))

	p, anim, ok := s.Lookup(1, idle)
	if !ok || p != pack || anim == nil {
		t.Fatalf("Lookup = %v, %v, %v", p, anim, ok)
	}
	if _, _, ok := s.Lookup(2, idle); ok {
		t.Error("unknown file should not resolve")
	}
	if _, _, ok := s.Lookup(1, AnimationRef{Pack: "hero", Animation: "run"}); ok {
		t.Error("unknown animation should not resolve")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStoreSheetsWithoutData(t *testing.T) {
	s := NewStore()
	s.AddSheets(4, testSheet(1), testSheet(2))
	s.AddSheets(4, testSheet(3))

	if _, ok := s.Data(4); ok {
		t.Error("a file with only sheets has no data")
	}
	for mapID, want := range []testSheet{1, 2, 3} {
		sh, ok := s.Sheet(4, mapID)
		if !ok || sh != want {
			t.Errorf("Sheet(%d) = %v, %v, want %v", mapID, sh, ok, want)
		}
	}
	if _, ok := s.Sheet(4, 3); ok {
		t.Error("map id past the end should not resolve")
	}
	if _, ok := s.Sheet(4, -1); ok {
		t.Error("negative map id should not resolve")
	}
}

func TestStoreReplaceData(t *testing.T) {
	s := NewStore()
	first := NewData(mustPack(t, "a", nil, nil, nil))
	second := NewData(mustPack(t, "b", nil, nil, nil))
	s.AddData(1, first)
	s.AddSheets(1, testSheet(1))
	s.AddData(1, second)

	d, ok := s.Data(1)
	if !ok || d != second {
		t.Error("AddData should replace the previous data")
	}
	if _, ok := s.Sheet(1, 0); !ok {
		t.Error("replacing data should keep the sheets")
	}
}

func TestStoreUnload(t *testing.T) {
	s := NewStore()
	s.AddData(1, NewData())
	if !s.Unload(1) {
		t.Fatal("Unload of a registered file should report true")
	}
	if s.Unload(1) {
		t.Error("second Unload should report false")
	}
	if _, ok := s.Data(1); ok || s.Len() != 0 {
		t.Error("unloaded file still present")
	}
}

func TestStoreMaxDepthDefault(t *testing.T) {
	s := NewStore()
	if s.maxDepth() != DefaultMaxInstanceDepth {
		t.Errorf("maxDepth = %d, want %d", s.maxDepth(), DefaultMaxInstanceDepth)
	}
	s.MaxInstanceDepth = 2
	if s.maxDepth() != 2 {
		t.Errorf("maxDepth = %d, want 2", s.maxDepth())
	}
}

func TestNewPackRejectsBadOrder(t *testing.T) {
	for name, parts := range map[string][]PartInfo{
		"id mismatch":     {{ID: 1, Name: "a", Parent: NoParent}},
		"parent after":    {{ID: 0, Name: "a", Parent: 1}, {ID: 1, Name: "b", Parent: NoParent}},
		"self parent":     {{ID: 0, Name: "a", Parent: 0}},
		"negative parent": {{ID: 0, Name: "a", Parent: NoParent}, {ID: 1, Name: "b", Parent: -5}},
	} {
		if _, err := NewPack("p", parts, nil, nil); err == nil {
			t.Errorf("%s: expected ErrPartOrder", name)
		}
	}
}

func TestPackAccessors(t *testing.T) {
	anims := map[string]*Animation{
		"walk": NewAnimationBuilder(2, 1, 30).Build(),
		"idle": NewAnimationBuilder(2, 1, 30).Build(),
	}
	p := mustPack(t, "hero", rootAndChild(), anims, nil)
	if p.Name() != "hero" {
		t.Errorf("Name = %q", p.Name())
	}
	names := p.AnimationNames()
	if len(names) != 2 || names[0] != "idle" || names[1] != "walk" {
		t.Errorf("AnimationNames = %v", names)
	}
	if part, ok := p.PartByName("child"); !ok || part.ID != 1 {
		t.Errorf("PartByName(child) = %v, %v", part, ok)
	}
	if _, ok := p.Part(2); ok {
		t.Error("Part(2) should not exist")
	}
	if _, ok := p.Setup(); ok {
		t.Error("no setup animation expected")
	}
}
