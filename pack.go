package spritestudio

import (
	"errors"
	"fmt"
	"sort"
)

// ErrPartOrder is returned when a pack's parts are not stored parent
// before child with ids equal to their index.
var ErrPartOrder = errors.New("spritestudio: parts out of order")

// NoParent is the Parent value of a top-level part.
const NoParent = -1

// RootPartID is the id of the part that carries root motion.
const RootPartID = 0

// PartInfo is the static description of one part of a rig.
type PartInfo struct {
	ID     int
	Name   string
	Parent int // NoParent or a strictly smaller id
	Type   PartType
	Bounds BoundsShape
	// Ref is set for instance parts: the animation they play.
	Ref *AnimationRef
}

// HasParent reports whether the part is attached to another part.
func (p *PartInfo) HasParent() bool {
	return p.Parent != NoParent
}

// Pack is a rig (ordered parts) with its animations and an optional setup
// animation whose frame 0 supplies default cells.
type Pack struct {
	name       string
	parts      []PartInfo
	animations map[string]*Animation
	setup      *Animation
}

// NewPack validates the part ordering invariant and returns the pack.
// Every part's ID must equal its index and its Parent must be NoParent or
// a smaller id.
func NewPack(name string, parts []PartInfo, animations map[string]*Animation, setup *Animation) (*Pack, error) {
	for i := range parts {
		p := &parts[i]
		if p.ID != i {
			return nil, fmt.Errorf("%w: pack %q part %q has id %d at index %d", ErrPartOrder, name, p.Name, p.ID, i)
		}
		if p.Parent != NoParent && (p.Parent < 0 || p.Parent >= p.ID) {
			return nil, fmt.Errorf("%w: pack %q part %q (id %d) has parent %d", ErrPartOrder, name, p.Name, p.ID, p.Parent)
		}
	}
	debugCheckPartCount(name, len(parts))
	if animations == nil {
		animations = make(map[string]*Animation)
	}
	return &Pack{name: name, parts: parts, animations: animations, setup: setup}, nil
}

// Name returns the pack key.
func (p *Pack) Name() string {
	return p.name
}

// Parts returns the parts in declaration order. The returned slice MUST NOT
// be mutated.
func (p *Pack) Parts() []PartInfo {
	return p.parts
}

// Part returns the part with the given id.
func (p *Pack) Part(id int) (*PartInfo, bool) {
	if id < 0 || id >= len(p.parts) {
		return nil, false
	}
	return &p.parts[id], true
}

// PartByName finds a part by its authored name.
func (p *Pack) PartByName(name string) (*PartInfo, bool) {
	for i := range p.parts {
		if p.parts[i].Name == name {
			return &p.parts[i], true
		}
	}
	return nil, false
}

// Animation returns the named animation.
func (p *Pack) Animation(name string) (*Animation, bool) {
	a, ok := p.animations[name]
	return a, ok
}

// AnimationNames returns the animation keys in sorted order.
func (p *Pack) AnimationNames() []string {
	names := make([]string, 0, len(p.animations))
	for n := range p.animations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Setup returns the setup animation, if the pack has one.
func (p *Pack) Setup() (*Animation, bool) {
	return p.setup, p.setup != nil
}

// setupCell returns the part's frame-0 cell from the setup animation.
func (p *Pack) setupCell(partID int) (Cell, bool) {
	if p.setup == nil {
		return Cell{}, false
	}
	return p.setup.Cell(partID, 0)
}

// Data is the content of one animation file: its packs by key.
type Data struct {
	packs map[string]*Pack
}

// NewData groups packs by their names.
func NewData(packs ...*Pack) *Data {
	d := &Data{packs: make(map[string]*Pack, len(packs))}
	for _, p := range packs {
		d.packs[p.name] = p
	}
	return d
}

// Pack returns the named pack.
func (d *Data) Pack(name string) (*Pack, bool) {
	p, ok := d.packs[name]
	return p, ok
}

// PackNames returns the pack keys in sorted order.
func (d *Data) PackNames() []string {
	names := make([]string, 0, len(d.packs))
	for n := range d.packs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a pack and one of its animations.
func (d *Data) Lookup(ref AnimationRef) (*Pack, *Animation, bool) {
	pack, ok := d.packs[ref.Pack]
	if !ok {
		return nil, nil, false
	}
	anim, ok := pack.animations[ref.Animation]
	if !ok {
		return nil, nil, false
	}
	return pack, anim, true
}
