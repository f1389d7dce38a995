package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/phanxgames/spritestudio"
)

// GeoM converts a composited matrix to an ebiten GeoM.
func GeoM(m spritestudio.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(0, 1, m.C)
	g.SetElement(0, 2, m.Tx)
	g.SetElement(1, 0, m.B)
	g.SetElement(1, 1, m.D)
	g.SetElement(1, 2, m.Ty)
	return g
}

// ColorScale converts a tint to a premultiplied ebiten ColorScale.
func ColorScale(c spritestudio.LinearColor) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	return cs
}

// Item is one node queued for drawing together with the tree it came from.
type Item struct {
	Tree *spritestudio.Nodes
	Node *spritestudio.Node
}

// Flatten collects every node of the trees, instance sub-trees included,
// and orders them by world z. Ties keep tree order.
func Flatten(dst []Item, trees ...*spritestudio.Nodes) []Item {
	dst = dst[:0]
	for _, t := range trees {
		if t == nil {
			continue
		}
		t.Walk(func(tree *spritestudio.Nodes, n *spritestudio.Node) {
			dst = append(dst, Item{Tree: tree, Node: n})
		})
	}
	sort.SliceStable(dst, func(i, j int) bool { return dst[i].Node.Z() < dst[j].Node.Z() })
	return dst
}

// Quad returns the four corners (LT, RT, LB, RB) of a node's cell in world
// space, with flip and vertex deform applied.
func Quad(n *spritestudio.Node, r CellRegion) [4]spritestudio.Vec2 {
	w, h := float64(r.Width), float64(r.Height)
	left, top := -r.PivotX*w, -r.PivotY*h
	right, bottom := left+w, top+h
	if n.FlipH {
		left, right = -left, -right
	}
	if n.FlipV {
		top, bottom = -top, -bottom
	}
	corners := [4]spritestudio.Vec2{
		{X: left, Y: top},
		{X: right, Y: top},
		{X: left, Y: bottom},
		{X: right, Y: bottom},
	}
	if v := n.Vertex; v != nil {
		for i, off := range [4]spritestudio.Vec2{v.LT, v.RT, v.LB, v.RB} {
			corners[i].X += off.X
			corners[i].Y += off.Y
		}
	}
	for i := range corners {
		corners[i].X, corners[i].Y = n.Matrix.Apply(corners[i].X, corners[i].Y)
	}
	return corners
}

// Renderer draws resolved node trees onto an ebiten image.
type Renderer struct {
	// View is applied after each node's matrix (camera). Nil means
	// identity.
	View *spritestudio.Matrix
	// DrawBounds strokes every part's bounds shape.
	DrawBounds bool
	// BoundsColor picks the stroke color from a node's user payload. Nil
	// draws red.
	BoundsColor func(user *spritestudio.User) color.Color

	items []Item
	verts [4]ebiten.Vertex
}

var quadIndices = []uint16{0, 1, 2, 1, 3, 2}

// Draw draws the visible nodes of trees in depth order.
func (r *Renderer) Draw(dst *ebiten.Image, trees ...*spritestudio.Nodes) {
	r.items = Flatten(r.items, trees...)
	for _, it := range r.items {
		n := it.Node
		if n.Hidden {
			continue
		}
		if sheet, ok := n.Sheet.(*Sheet); ok && n.Cell != nil {
			r.drawSprite(dst, n, sheet)
		}
	}
	if r.DrawBounds {
		for _, it := range r.items {
			r.drawBounds(dst, it.Node)
		}
	}
}

func (r *Renderer) worldMatrix(n *spritestudio.Node) spritestudio.Matrix {
	if r.View == nil {
		return n.Matrix
	}
	return r.View.Mul(n.Matrix)
}

func (r *Renderer) drawSprite(dst *ebiten.Image, n *spritestudio.Node, sheet *Sheet) {
	region := sheet.Cell(n.Cell.CellID)
	img := sheet.SubImage(n.Cell.CellID)
	view := *n
	view.Matrix = r.worldMatrix(n)

	if n.Vertex == nil && !region.Rotated {
		var op ebiten.DrawImageOptions
		w, h := float64(region.Width), float64(region.Height)
		op.GeoM.Translate(-region.PivotX*w, -region.PivotY*h)
		sx, sy := 1.0, 1.0
		if n.FlipH {
			sx = -1
		}
		if n.FlipV {
			sy = -1
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Concat(GeoM(view.Matrix))
		op.ColorScale = ColorScale(n.Color)
		dst.DrawImage(img, &op)
		return
	}

	// deformed or rotated cells go through DrawTriangles
	q := Quad(&view, region)
	b := img.Bounds()
	src := [4][2]float32{
		{float32(b.Min.X), float32(b.Min.Y)},
		{float32(b.Max.X), float32(b.Min.Y)},
		{float32(b.Min.X), float32(b.Max.Y)},
		{float32(b.Max.X), float32(b.Max.Y)},
	}
	if region.Rotated {
		// page stores the cell turned clockwise
		src = [4][2]float32{src[1], src[3], src[0], src[2]}
	}
	c := n.Color
	for i := range r.verts {
		r.verts[i] = ebiten.Vertex{
			DstX:   float32(q[i].X),
			DstY:   float32(q[i].Y),
			SrcX:   src[i][0],
			SrcY:   src[i][1],
			ColorR: float32(c.R * c.A),
			ColorG: float32(c.G * c.A),
			ColorB: float32(c.B * c.A),
			ColorA: float32(c.A),
		}
	}
	dst.DrawTriangles(r.verts[:], quadIndices, img, nil)
}

func (r *Renderer) boundsColor(n *spritestudio.Node) color.Color {
	if r.BoundsColor != nil {
		if c := r.BoundsColor(n.User); c != nil {
			return c
		}
	}
	return colornames.Red
}

func (r *Renderer) drawBounds(dst *ebiten.Image, n *spritestudio.Node) {
	if n.Bounds == spritestudio.BoundsNone || n.Cell == nil {
		return
	}
	sheet, ok := n.Sheet.(*Sheet)
	if !ok {
		return
	}
	view := *n
	view.Matrix = r.worldMatrix(n)
	q := Quad(&view, sheet.Cell(n.Cell.CellID))
	clr := r.boundsColor(n)

	switch n.Bounds {
	case spritestudio.BoundsQuad:
		for _, e := range [4][2]int{{0, 1}, {1, 3}, {3, 2}, {2, 0}} {
			a, b := q[e[0]], q[e[1]]
			vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, false)
		}
	case spritestudio.BoundsAABB:
		minX, minY, maxX, maxY := aabb(q)
		vector.StrokeRect(dst, float32(minX), float32(minY), float32(maxX-minX), float32(maxY-minY), 1, clr, false)
	case spritestudio.BoundsCircle, spritestudio.BoundsCircleMin, spritestudio.BoundsCircleMax:
		cx, cy, radius := circle(q, n.Bounds)
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(radius), 1, clr, true)
	}
}

func aabb(q [4]spritestudio.Vec2) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range q {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}

// circle returns the circle of a quad: through its corners for
// BoundsCircle, touching its nearer edges for BoundsCircleMin and its
// farther edges for BoundsCircleMax.
func circle(q [4]spritestudio.Vec2, shape spritestudio.BoundsShape) (cx, cy, radius float64) {
	cx = (q[0].X + q[1].X + q[2].X + q[3].X) / 4
	cy = (q[0].Y + q[1].Y + q[2].Y + q[3].Y) / 4
	halfW := math.Hypot(q[1].X-q[0].X, q[1].Y-q[0].Y) / 2
	halfH := math.Hypot(q[2].X-q[0].X, q[2].Y-q[0].Y) / 2
	switch shape {
	case spritestudio.BoundsCircleMin:
		radius = math.Min(halfW, halfH)
	case spritestudio.BoundsCircleMax:
		radius = math.Max(halfW, halfH)
	default:
		radius = math.Hypot(halfW, halfH)
	}
	return
}
