package spritestudio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const decodeDoc = `
packs:
  - name: hero
    parts:
      - {name: root}
      - {name: body, parent: root, type: normal, bounds: circle_max}
      - {name: fx, parent: body, type: instance, ref: {pack: fx, animation: burst}}
    setup:
      fps: 30
      total_frame: 1
      timelines:
        body:
          cell: [{frame: 0, value: {map_id: 1, cell_id: 4}}]
    animations:
      idle:
        fps: 30
        total_frame: 60
        timelines:
          root:
            hide: [{frame: 0, value: false}]
            user: [{frame: 0, value: {integer: 3, text: hello, point: {x: 1, y: 2}}}]
          body:
            hide: [{frame: 0, value: false}, {frame: 40, value: true}]
            pos_x: [{frame: 0, value: 0}, {frame: 30, ipo: deceleration, value: 12}]
            rotation: [{frame: 0, ipo: step, value: 90}]
            color: [{frame: 0, value: "#ff8000"}]
            alpha: [{frame: 0, value: 0.5}]
            vertex: [{frame: 0, value: {lt: {x: 1, y: 0}, rb: {x: 0, y: -1}}}]
          fx:
            instance: [{frame: 10, ipo: step, value: {loop_num: 2, speed_rate: 0.5, reverse: true}}]
  - name: fx
    parts:
      - {name: spark}
    animations:
      burst:
        fps: 60
        total_frame: 12
`

func TestDecodeData(t *testing.T) {
	data, err := DecodeData([]byte(decodeDoc))
	require.NoError(t, err)
	assert.Equal(t, []string{"fx", "hero"}, data.PackNames())

	hero, ok := data.Pack("hero")
	require.True(t, ok)
	parts := hero.Parts()
	require.Len(t, parts, 3)
	assert.Equal(t, NoParent, parts[0].Parent)
	assert.Equal(t, PartNull, parts[0].Type)
	assert.Equal(t, 0, parts[1].Parent)
	assert.Equal(t, BoundsCircleMax, parts[1].Bounds)
	assert.Equal(t, PartInstance, parts[2].Type)
	require.NotNil(t, parts[2].Ref)
	assert.Equal(t, AnimationRef{Pack: "fx", Animation: "burst"}, *parts[2].Ref)

	_, idle, ok := data.Lookup(AnimationRef{Pack: "hero", Animation: "idle"})
	require.True(t, ok)
	assert.Equal(t, 30, idle.FPS())
	assert.Equal(t, 60, idle.TotalFrame())

	assert.False(t, idle.Hide(1, 39))
	assert.True(t, idle.Hide(1, 40))
	assert.True(t, idle.Hide(2, 0), "fx has no hide keys")

	tr, err := idle.LocalTransform(1, 30)
	require.NoError(t, err)
	assert.InDelta(t, 12, tr.X, 1e-5)
	assert.InDelta(t, 1.5707963, tr.Rotation, 1e-6)

	c, err := idle.LocalColor(1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, c.R, 1e-9)
	assert.InDelta(t, 128.0/255, c.G, 1e-9)
	assert.InDelta(t, 0, c.B, 1e-9)
	assert.InDelta(t, 0.5, c.A, 1e-9)

	v, err := idle.Vertex(1, 0)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, Vec2{X: 1}, v.LT)
	assert.Equal(t, Vec2{Y: -1}, v.RB)

	u, ok := idle.User(0, 5)
	require.True(t, ok)
	require.NotNil(t, u.Integer)
	assert.EqualValues(t, 3, *u.Integer)
	require.NotNil(t, u.Text)
	assert.Equal(t, "hello", *u.Text)
	assert.Equal(t, &Vec2{X: 1, Y: 2}, u.Point)
	assert.Nil(t, u.Rect)

	key, keyFrame, ok := idle.Instance(2, 15)
	require.True(t, ok)
	assert.Equal(t, 10, keyFrame)
	require.NotNil(t, key.LoopNum)
	assert.Equal(t, 2, *key.LoopNum)
	assert.InDelta(t, 0.5, key.SpeedRate, 1e-9)
	assert.True(t, key.Reverse)
	assert.False(t, key.Independent)

	setup, ok := hero.Setup()
	require.True(t, ok)
	cell, ok := setup.Cell(1, 0)
	require.True(t, ok)
	assert.Equal(t, Cell{MapID: 1, CellID: 4}, cell)
}

func TestDecodeDataInstanceDefaults(t *testing.T) {
	data, err := DecodeData([]byte(`
packs:
  - name: p
    parts: [{name: root}, {name: i, parent: root, type: instance, ref: {pack: p, animation: a}}]
    animations:
      a:
        fps: 10
        total_frame: 5
        timelines:
          i:
            instance: [{frame: 0, value: {infinity: true, loop_num: 4}}]
`))
	require.NoError(t, err)
	_, a, ok := data.Lookup(AnimationRef{Pack: "p", Animation: "a"})
	require.True(t, ok)
	key, _, ok := a.Instance(1, 0)
	require.True(t, ok)
	assert.True(t, key.Infinite())
	assert.InDelta(t, 1, key.SpeedRate, 1e-9)
}

func TestDecodeDataErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"not yaml", "packs: [", ErrBadDocument},
		{"unnamed pack", "packs: [{parts: []}]", ErrBadDocument},
		{"parent after child", `
packs:
  - name: p
    parts: [{name: a, parent: b}, {name: b}]`, ErrPartOrder},
		{"duplicate part", `
packs:
  - name: p
    parts: [{name: a}, {name: a}]`, ErrBadDocument},
		{"unknown part type", `
packs:
  - name: p
    parts: [{name: a, type: sprite}]`, ErrUnknownPartType},
		{"unknown bounds", `
packs:
  - name: p
    parts: [{name: a, bounds: hexagon}]`, ErrUnknownBounds},
		{"zero fps", `
packs:
  - name: p
    parts: [{name: a}]
    animations: {idle: {fps: 0, total_frame: 1}}`, ErrBadDocument},
		{"timeline for unknown part", `
packs:
  - name: p
    parts: [{name: a}]
    animations: {idle: {fps: 30, total_frame: 1, timelines: {b: {}}}}`, ErrUnknownPart},
		{"unknown interpolation", `
packs:
  - name: p
    parts: [{name: a}]
    animations:
      idle: {fps: 30, total_frame: 1, timelines: {a: {pos_x: [{frame: 0, ipo: cubic, value: 1}]}}}`, ErrUnknownInterpolation},
		{"bad color", `
packs:
  - name: p
    parts: [{name: a}]
    setup: {fps: 30, total_frame: 1, timelines: {a: {color: [{frame: 0, value: red}]}}}`, ErrBadDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := DecodeData([]byte(tt.doc))
			assert.Nil(t, data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeDataEmpty(t *testing.T) {
	data, err := DecodeData(nil)
	require.NoError(t, err)
	assert.Empty(t, data.PackNames())
}

func TestDecodeSampleDocument(t *testing.T) {
	r := LoadFile(1, "testdata/hero.yaml")
	require.NoError(t, r.Err)
	assert.Equal(t, []string{"hero", "spark"}, r.Data.PackNames())

	s := NewStore()
	s.AddData(r.File, r.Data)

	idle, err := s.Evaluate(PlayKey{File: 1, Pack: "hero", Animation: "idle"}, 0, DefaultRoot)
	require.NoError(t, err)
	require.NotNil(t, idle)
	assert.Equal(t, 4, idle.Len())
	require.Len(t, idle.Instances, 1)
	assert.Equal(t, 2, idle.Instances[0].Len())

	walk, err := s.Evaluate(PlayKey{File: 1, Pack: "hero", Animation: "walk"}, 0.5, DefaultRoot)
	require.NoError(t, err)
	require.NotNil(t, walk)
	head, ok := walk.Node(2)
	require.True(t, ok)
	assert.True(t, head.FlipH)
	assert.Empty(t, walk.Instances, "fx has no instance key in walk")
}
