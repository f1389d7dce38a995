package spritestudio

import "math"

// Transform is a part's local placement as sampled from its timelines.
// Rotation is in radians about Z.
type Transform struct {
	X, Y, Z  float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// IdentityTransform is the default local transform of an unanimated part.
var IdentityTransform = Transform{ScaleX: 1, ScaleY: 1}

// Matrix is a 2D affine matrix plus an accumulated Z translation. Rotation
// is always about Z and scale along Z is 1, so depth composes additively.
//
//	| A  C  Tx |
//	| B  D  Ty |     z' = z + Tz
//	| 0  0   1 |
type Matrix struct {
	A, B, C, D float64
	Tx, Ty, Tz float64
}

// IdentityMatrix is the identity transform.
var IdentityMatrix = Matrix{A: 1, D: 1}

// Matrix computes the local matrix Translate(X, Y, Z) * Rotate * Scale.
func (t Transform) Matrix() Matrix {
	sin, cos := math.Sincos(t.Rotation)
	return Matrix{
		A:  cos * t.ScaleX,
		B:  sin * t.ScaleX,
		C:  -sin * t.ScaleY,
		D:  cos * t.ScaleY,
		Tx: t.X,
		Ty: t.Y,
		Tz: t.Z,
	}
}

// Mul returns p * c, applying c first.
func (p Matrix) Mul(c Matrix) Matrix {
	return Matrix{
		A:  p.A*c.A + p.C*c.B,
		B:  p.B*c.A + p.D*c.B,
		C:  p.A*c.C + p.C*c.D,
		D:  p.B*c.C + p.D*c.D,
		Tx: p.A*c.Tx + p.C*c.Ty + p.Tx,
		Ty: p.B*c.Tx + p.D*c.Ty + p.Ty,
		Tz: p.Tz + c.Tz,
	}
}

// Invert returns the inverse matrix. Returns the identity matrix if the
// matrix is singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m.A*m.D - m.C*m.B
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix
	}
	invDet := 1.0 / det
	a := m.D * invDet
	b := -m.B * invDet
	c := -m.C * invDet
	d := m.A * invDet
	return Matrix{
		A: a, B: b, C: c, D: d,
		Tx: -(a*m.Tx + c*m.Ty),
		Ty: -(b*m.Tx + d*m.Ty),
		Tz: -m.Tz,
	}
}

// Apply transforms a local point into the matrix's parent space.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.Tx, m.B*x + m.D*y + m.Ty
}

// Placement is an entity's own world placement: the root of every
// composited hierarchy. Rotation is in radians.
type Placement struct {
	X, Y, Z  float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// NewPlacement returns a placement at (x, y) with unit scale.
func NewPlacement(x, y float64) Placement {
	return Placement{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

// Matrix returns the placement as a world matrix.
func (p Placement) Matrix() Matrix {
	return Transform(p).Matrix()
}

// Root is the parent state handed to the compositor for parts without a
// parent.
type Root struct {
	Matrix Matrix
	Color  LinearColor
}

// NewRoot builds a Root from a placement and an optional tint.
func NewRoot(p Placement, tint *LinearColor) Root {
	c := ColorWhite
	if tint != nil {
		c = *tint
	}
	return Root{Matrix: p.Matrix(), Color: c}
}

// DefaultRoot is an identity root with a white tint.
var DefaultRoot = Root{Matrix: IdentityMatrix, Color: ColorWhite}
