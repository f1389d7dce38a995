package render

import (
	"math"

	"github.com/phanxgames/spritestudio"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim is an in-flight ScrollTo, one tween per axis.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// FollowFunc reports the world position a camera should track. ok is false
// when the target is gone.
type FollowFunc func() (x, y float64, ok bool)

// Camera controls the view onto composited trees: position, zoom, rotation
// and viewport. Its View matrix plugs into Renderer.View.
type Camera struct {
	// X, Y is the world point shown at the viewport centre.
	X, Y float64
	// Zoom magnifies world units; 2 shows parts at twice their size.
	Zoom float64
	// Rotation turns the view, in radians.
	Rotation float64
	// Viewport is the screen area the view maps onto.
	Viewport spritestudio.Rect

	follow     FollowFunc
	offX, offY float64
	lerp       float64

	// BoundsEnabled keeps the visible area inside Bounds where it fits.
	BoundsEnabled bool
	Bounds        spritestudio.Rect

	scroll *scrollAnim
}

// NewCamera creates a Camera centered on the origin with the given viewport.
func NewCamera(viewport spritestudio.Rect) *Camera {
	return &Camera{Zoom: 1.0, Viewport: viewport}
}

// Follow makes the camera track target with the given offset and lerp
// factor. A lerp of 1.0 snaps immediately.
func (c *Camera) Follow(target FollowFunc, offsetX, offsetY, lerp float64) {
	c.follow = target
	c.offX, c.offY, c.lerp = offsetX, offsetY, lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.follow = nil
}

// ScrollTo eases the centre to x, y over duration seconds. It cancels a
// previous scroll; Follow takes over again once it finishes.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// SetBounds restricts the camera to bounds.
func (c *Camera) SetBounds(bounds spritestudio.Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds lifts the restriction set by SetBounds.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances follow, scroll and bounds clamping by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.follow != nil {
		if x, y, ok := c.follow(); ok {
			c.X += (x + c.offX - c.X) * c.lerp
			c.Y += (y + c.offY - c.Y) * c.lerp
		}
	}

	if c.scroll != nil {
		if !c.scroll.doneX {
			val, done := c.scroll.tweenX.Update(dt)
			c.X = float64(val)
			c.scroll.doneX = done
		}
		if !c.scroll.doneY {
			val, done := c.scroll.tweenY.Update(dt)
			c.Y = float64(val)
			c.scroll.doneY = done
		}
		if c.scroll.doneX && c.scroll.doneY {
			c.scroll = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// bounds smaller than the visible area center the camera
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// View returns the world-to-screen matrix:
//
//	Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
//
// where cx, cy is the viewport center.
func (c *Camera) View() spritestudio.Matrix {
	center := spritestudio.Transform{
		X:        c.Viewport.X + c.Viewport.Width/2,
		Y:        c.Viewport.Y + c.Viewport.Height/2,
		ScaleX:   c.Zoom,
		ScaleY:   c.Zoom,
		Rotation: -c.Rotation,
	}
	return center.Matrix().Mul(spritestudio.Matrix{A: 1, D: 1, Tx: -c.X, Ty: -c.Y})
}

// WorldToScreen maps a world point (such as a node's pivot) onto the screen.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return c.View().Apply(wx, wy)
}

// ScreenToWorld maps a screen point, such as the cursor, into the world.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return c.View().Invert().Apply(sx, sy)
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's
// visible area in world space.
func (c *Camera) VisibleBounds() spritestudio.Rect {
	inv := c.View().Invert()
	vx, vy := c.Viewport.X, c.Viewport.Y
	vr, vb := vx+c.Viewport.Width, vy+c.Viewport.Height

	var q [4]spritestudio.Vec2
	q[0].X, q[0].Y = inv.Apply(vx, vy)
	q[1].X, q[1].Y = inv.Apply(vr, vy)
	q[2].X, q[2].Y = inv.Apply(vx, vb)
	q[3].X, q[3].Y = inv.Apply(vr, vb)
	minX, minY, maxX, maxY := aabb(q)
	return spritestudio.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
