package geom

import "math"

// Bounds returns an axis-aligned rectangle enclosing the path. It is exact
// for line segments and uses the control points of curves, so it may be
// larger than the curve itself. An empty path has zero bounds.
func (p *Path) Bounds() Rect {
	b := newBoundsAcc()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			b.add(e.Point)
		case LineTo:
			b.add(e.Point)
		case QuadTo:
			b.add(e.Control)
			b.add(e.Point)
		case CubicTo:
			b.add(e.Control1)
			b.add(e.Control2)
			b.add(e.Point)
		}
	}
	return b.rect()
}

// TightBounds returns the exact bounding box of the path using curve
// extrema.
func (p *Path) TightBounds() Rect {
	b := newBoundsAcc()
	var current Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			b.add(e.Point)
			current = e.Point
		case LineTo:
			b.add(e.Point)
			current = e.Point
		case QuadTo:
			r := QuadBez{current, e.Control, e.Point}.BoundingBox()
			b.add(r.Min)
			b.add(r.Max)
			current = e.Point
		case CubicTo:
			r := CubicBez{current, e.Control1, e.Control2, e.Point}.BoundingBox()
			b.add(r.Min)
			b.add(r.Max)
			current = e.Point
		}
	}
	return b.rect()
}

type boundsAcc struct {
	r   Rect
	any bool
}

func newBoundsAcc() boundsAcc {
	return boundsAcc{r: Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}}
}

func (b *boundsAcc) add(pt Point) {
	b.any = true
	b.r.Min.X = math.Min(b.r.Min.X, pt.X)
	b.r.Min.Y = math.Min(b.r.Min.Y, pt.Y)
	b.r.Max.X = math.Max(b.r.Max.X, pt.X)
	b.r.Max.Y = math.Max(b.r.Max.Y, pt.Y)
}

func (b *boundsAcc) rect() Rect {
	if !b.any {
		return Rect{}
	}
	return b.r
}
