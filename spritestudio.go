package spritestudio

import "fmt"

// FileID identifies one loaded animation file (one authored project).
type FileID uint32

// Vec2 is a 2D vector used for points and corner offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// LinearColor is an RGBA multiplier with components nominally in [0, 1].
type LinearColor struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = LinearColor{1, 1, 1, 1}

// Mul multiplies two colors component-wise.
func (c LinearColor) Mul(o LinearColor) LinearColor {
	return LinearColor{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Lerp blends from c to o by rate.
func (c LinearColor) Lerp(o LinearColor, rate float64) LinearColor {
	return LinearColor{
		c.R + (o.R-c.R)*rate,
		c.G + (o.G-c.G)*rate,
		c.B + (o.B-c.B)*rate,
		c.A + (o.A-c.A)*rate,
	}
}

// Cell references one cell (sprite) in one of a file's sprite sheets.
type Cell struct {
	MapID  int // sprite sheet index within the file
	CellID int // cell index within the sheet
}

// VertexKey holds the four corner offsets of a deformed quad.
type VertexKey struct {
	LT, RT, LB, RB Vec2
}

// Lerp blends from v to o by rate, corner by corner.
func (v VertexKey) Lerp(o VertexKey, rate float64) VertexKey {
	mix := func(a, b Vec2) Vec2 {
		return Vec2{a.X + (b.X-a.X)*rate, a.Y + (b.Y-a.Y)*rate}
	}
	return VertexKey{
		LT: mix(v.LT, o.LT),
		RT: mix(v.RT, o.RT),
		LB: mix(v.LB, o.LB),
		RB: mix(v.RB, o.RB),
	}
}

// User is the per-frame custom payload authored on a part. Each field is
// independently optional.
type User struct {
	Integer *int32
	Point   *Vec2
	Rect    *Rect
	Text    *string
}

// IsZero reports whether no field of the payload is set.
func (u User) IsZero() bool {
	return u.Integer == nil && u.Point == nil && u.Rect == nil && u.Text == nil
}

// PartType is the authored role of a part in a rig.
type PartType uint8

const (
	PartNull     PartType = iota // pivot with no visual
	PartNormal                   // sprite
	PartText                     // text box
	PartInstance                 // plays another animation
	PartMesh
	PartBone
	PartJoint
	PartArmature
	PartEffect
	PartMask
)

var partTypeNames = [...]string{
	PartNull:     "null",
	PartNormal:   "normal",
	PartText:     "text",
	PartInstance: "instance",
	PartMesh:     "mesh",
	PartBone:     "bone",
	PartJoint:    "joint",
	PartArmature: "armature",
	PartEffect:   "effect",
	PartMask:     "mask",
}

func (p PartType) String() string {
	if int(p) < len(partTypeNames) {
		return partTypeNames[p]
	}
	return fmt.Sprintf("PartType(%d)", uint8(p))
}

// ParsePartType maps an authored part type name to its PartType.
func ParsePartType(name string) (PartType, error) {
	for i, n := range partTypeNames {
		if n == name {
			return PartType(i), nil
		}
	}
	return PartNull, fmt.Errorf("%w: %q", ErrUnknownPartType, name)
}

// BoundsShape is the collision shape authored on a part. It is carried
// through to resolved nodes and never interpreted by the core.
type BoundsShape uint8

const (
	BoundsNone BoundsShape = iota
	BoundsQuad
	BoundsAABB
	BoundsCircle
	BoundsCircleMin
	BoundsCircleMax
)

var boundsNames = [...]string{
	BoundsNone:      "none",
	BoundsQuad:      "quad",
	BoundsAABB:      "aabb",
	BoundsCircle:    "circle",
	BoundsCircleMin: "circle_min",
	BoundsCircleMax: "circle_max",
}

func (b BoundsShape) String() string {
	if int(b) < len(boundsNames) {
		return boundsNames[b]
	}
	return fmt.Sprintf("BoundsShape(%d)", uint8(b))
}

// ParseBoundsShape maps an authored bounds name to its BoundsShape.
func ParseBoundsShape(name string) (BoundsShape, error) {
	for i, n := range boundsNames {
		if n == name {
			return BoundsShape(i), nil
		}
	}
	return BoundsNone, fmt.Errorf("%w: %q", ErrUnknownBounds, name)
}

// AnimationRef names an animation inside a pack of the same file.
type AnimationRef struct {
	Pack      string
	Animation string
}

func (r AnimationRef) String() string {
	return r.Pack + "/" + r.Animation
}
