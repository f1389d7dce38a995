package spritestudio

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Decoding errors.
var (
	ErrUnknownInterpolation = errors.New("spritestudio: unknown interpolation")
	ErrUnknownPartType      = errors.New("spritestudio: unknown part type")
	ErrUnknownBounds        = errors.New("spritestudio: unknown bounds")
	ErrUnknownPart          = errors.New("spritestudio: unknown part")
	ErrBadDocument          = errors.New("spritestudio: bad document")
)

// dataDoc is the YAML layout of one animation file.
//
//	packs:
//	  - name: hero
//	    parts:
//	      - {name: root}
//	      - {name: body, parent: root, type: normal, bounds: quad}
//	      - {name: fx, parent: body, type: instance, ref: {pack: fx, animation: burst}}
//	    setup: {fps: 30, total_frame: 1, timelines: {...}}
//	    animations:
//	      idle:
//	        fps: 30
//	        total_frame: 60
//	        timelines:
//	          body:
//	            hide: [{frame: 0, value: false}]
//	            pos_x: [{frame: 0, value: 0}, {frame: 30, ipo: deceleration, value: 12}]
//	            color: [{frame: 0, value: "#ff8080"}]
type dataDoc struct {
	Packs []packDoc `yaml:"packs"`
}

type packDoc struct {
	Name       string                  `yaml:"name"`
	Parts      []partDoc               `yaml:"parts"`
	Setup      *animationDoc           `yaml:"setup"`
	Animations map[string]animationDoc `yaml:"animations"`
}

type partDoc struct {
	Name   string        `yaml:"name"`
	Parent string        `yaml:"parent"`
	Type   string        `yaml:"type"`
	Bounds string        `yaml:"bounds"`
	Ref    *AnimationRef `yaml:"ref"`
}

type animationDoc struct {
	FPS        int                    `yaml:"fps"`
	TotalFrame int                    `yaml:"total_frame"`
	Timelines  map[string]timelineDoc `yaml:"timelines"`
}

type keyDoc[T any] struct {
	Frame int    `yaml:"frame"`
	Ipo   string `yaml:"ipo"`
	Value T      `yaml:"value"`
}

type timelineDoc struct {
	Hide     []keyDoc[bool]        `yaml:"hide"`
	Cell     []keyDoc[cellDoc]     `yaml:"cell"`
	PosX     []keyDoc[float64]     `yaml:"pos_x"`
	PosY     []keyDoc[float64]     `yaml:"pos_y"`
	PosZ     []keyDoc[float64]     `yaml:"pos_z"`
	ScaleX   []keyDoc[float64]     `yaml:"scale_x"`
	ScaleY   []keyDoc[float64]     `yaml:"scale_y"`
	Rotation []keyDoc[float64]     `yaml:"rotation"`
	FlipH    []keyDoc[bool]        `yaml:"flip_h"`
	FlipV    []keyDoc[bool]        `yaml:"flip_v"`
	Alpha    []keyDoc[float64]     `yaml:"alpha"`
	Color    []keyDoc[string]      `yaml:"color"`
	User     []keyDoc[userDoc]     `yaml:"user"`
	Instance []keyDoc[instanceDoc] `yaml:"instance"`
	Vertex   []keyDoc[vertexDoc]   `yaml:"vertex"`
}

type cellDoc struct {
	MapID  int `yaml:"map_id"`
	CellID int `yaml:"cell_id"`
}

type userDoc struct {
	Integer *int32  `yaml:"integer"`
	Point   *Vec2   `yaml:"point"`
	Rect    *Rect   `yaml:"rect"`
	Text    *string `yaml:"text"`
}

type instanceDoc struct {
	Infinity    *bool    `yaml:"infinity"`
	LoopNum     *int     `yaml:"loop_num"`
	StartOffset *int     `yaml:"start_offset"`
	EndOffset   *int     `yaml:"end_offset"`
	Reverse     *bool    `yaml:"reverse"`
	PingPong    *bool    `yaml:"pingpong"`
	SpeedRate   *float64 `yaml:"speed_rate"`
	Independent *bool    `yaml:"independent"`
}

type vertexDoc struct {
	LT Vec2 `yaml:"lt"`
	RT Vec2 `yaml:"rt"`
	LB Vec2 `yaml:"lb"`
	RB Vec2 `yaml:"rb"`
}

// DecodeData parses a YAML animation file into Data. Parts must be listed
// parent before child; timelines refer to parts by name.
func DecodeData(src []byte) (*Data, error) {
	var doc dataDoc
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}
	packs := make([]*Pack, 0, len(doc.Packs))
	for i := range doc.Packs {
		p, err := doc.Packs[i].build()
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}
	return NewData(packs...), nil
}

func (d *packDoc) build() (*Pack, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("%w: pack without a name", ErrBadDocument)
	}
	ids := make(map[string]int, len(d.Parts))
	parts := make([]PartInfo, len(d.Parts))
	for i, pd := range d.Parts {
		info := PartInfo{ID: i, Name: pd.Name, Parent: NoParent, Ref: pd.Ref}
		if pd.Parent != "" {
			parent, ok := ids[pd.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: pack %q part %q has parent %q declared after it or missing", ErrPartOrder, d.Name, pd.Name, pd.Parent)
			}
			info.Parent = parent
		}
		var err error
		if pd.Type != "" {
			if info.Type, err = ParsePartType(pd.Type); err != nil {
				return nil, fmt.Errorf("pack %q part %q: %w", d.Name, pd.Name, err)
			}
		}
		if pd.Bounds != "" {
			if info.Bounds, err = ParseBoundsShape(pd.Bounds); err != nil {
				return nil, fmt.Errorf("pack %q part %q: %w", d.Name, pd.Name, err)
			}
		}
		if _, dup := ids[pd.Name]; dup {
			return nil, fmt.Errorf("%w: pack %q has two parts named %q", ErrBadDocument, d.Name, pd.Name)
		}
		ids[pd.Name] = i
		parts[i] = info
	}

	anims := make(map[string]*Animation, len(d.Animations))
	for name, ad := range d.Animations {
		a, err := ad.build(ids)
		if err != nil {
			return nil, fmt.Errorf("pack %q animation %q: %w", d.Name, name, err)
		}
		anims[name] = a
	}
	var setup *Animation
	if d.Setup != nil {
		var err error
		if setup, err = d.Setup.build(ids); err != nil {
			return nil, fmt.Errorf("pack %q setup: %w", d.Name, err)
		}
	}
	return NewPack(d.Name, parts, anims, setup)
}

func (d *animationDoc) build(ids map[string]int) (*Animation, error) {
	if d.FPS <= 0 {
		return nil, fmt.Errorf("%w: fps %d", ErrBadDocument, d.FPS)
	}
	b := NewAnimationBuilder(len(ids), d.TotalFrame, d.FPS)
	for name, td := range d.Timelines {
		id, ok := ids[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPart, name)
		}
		if err := td.fill(b.Part(id)); err != nil {
			return nil, fmt.Errorf("part %q: %w", name, err)
		}
	}
	return b.Build(), nil
}

// addKeys converts and appends one attribute's keyframes.
func addKeys[D, V any](dst *TimelineBuilder[V], keys []keyDoc[D], conv func(D) (V, error)) error {
	for _, k := range keys {
		ipo := InterpolationLinear
		if k.Ipo != "" {
			var err error
			if ipo, err = ParseInterpolation(k.Ipo); err != nil {
				return err
			}
		}
		v, err := conv(k.Value)
		if err != nil {
			return fmt.Errorf("frame %d: %w", k.Frame, err)
		}
		dst.Add(k.Frame, ipo, v)
	}
	return nil
}

func same[V any](v V) (V, error) { return v, nil }

func (t *timelineDoc) fill(b *PartTimelineBuilder) error {
	floats := []struct {
		dst  *TimelineBuilder[float64]
		keys []keyDoc[float64]
	}{
		{&b.PosX, t.PosX}, {&b.PosY, t.PosY}, {&b.PosZ, t.PosZ},
		{&b.ScaleX, t.ScaleX}, {&b.ScaleY, t.ScaleY},
		{&b.Rotation, t.Rotation}, {&b.Alpha, t.Alpha},
	}
	for _, f := range floats {
		if err := addKeys(f.dst, f.keys, same[float64]); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		dst  *TimelineBuilder[bool]
		keys []keyDoc[bool]
	}{{&b.Hide, t.Hide}, {&b.FlipH, t.FlipH}, {&b.FlipV, t.FlipV}} {
		if err := addKeys(f.dst, f.keys, same[bool]); err != nil {
			return err
		}
	}
	if err := addKeys(&b.Cell, t.Cell, func(c cellDoc) (Cell, error) {
		return Cell{MapID: c.MapID, CellID: c.CellID}, nil
	}); err != nil {
		return err
	}
	if err := addKeys(&b.Color, t.Color, parseColor); err != nil {
		return err
	}
	if err := addKeys(&b.User, t.User, func(u userDoc) (User, error) {
		return User(u), nil
	}); err != nil {
		return err
	}
	if err := addKeys(&b.Instance, t.Instance, func(d instanceDoc) (InstanceKey, error) {
		return d.builder().Build(), nil
	}); err != nil {
		return err
	}
	return addKeys(&b.Vertex, t.Vertex, func(v vertexDoc) (VertexKey, error) {
		return VertexKey(v), nil
	})
}

// parseColor reads a "#rgb" or "#rrggbb" tint. Alpha has its own timeline.
func parseColor(s string) (LinearColor, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorWhite, fmt.Errorf("%w: color %q", ErrBadDocument, s)
	}
	return LinearColor{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

func (d instanceDoc) builder() InstanceKeyBuilder {
	var b InstanceKeyBuilder
	if d.Infinity != nil {
		b = b.Infinity(*d.Infinity)
	}
	if d.LoopNum != nil {
		b = b.LoopNum(*d.LoopNum)
	}
	if d.StartOffset != nil {
		b = b.StartOffset(*d.StartOffset)
	}
	if d.EndOffset != nil {
		b = b.EndOffset(*d.EndOffset)
	}
	if d.Reverse != nil {
		b = b.Reverse(*d.Reverse)
	}
	if d.PingPong != nil {
		b = b.PingPong(*d.PingPong)
	}
	if d.SpeedRate != nil {
		b = b.SpeedRate(*d.SpeedRate)
	}
	if d.Independent != nil {
		b = b.Independent(*d.Independent)
	}
	return b
}
