package geom

// DefaultTolerance is the flattening tolerance used when a caller passes a
// non-positive value. It is a quarter of a device pixel.
const DefaultTolerance = 0.25

// maxFlattenDepth caps curve subdivision. A curve still not flat at this
// depth is accepted as its current chord.
const maxFlattenDepth = 16

// Polyline is one flattened subpath.
type Polyline struct {
	Points []Point
	// Closed is set when the subpath ended with Close. The closing edge
	// from the last point back to the first is implied, not stored.
	Closed bool
}

// Edges calls fn for every edge of the polyline. When implicitClose is
// true an open polyline is treated as closed, the way fills treat it.
func (pl Polyline) Edges(implicitClose bool, fn func(a, b Point)) {
	n := len(pl.Points)
	for i := 1; i < n; i++ {
		fn(pl.Points[i-1], pl.Points[i])
	}
	if n > 1 && (pl.Closed || implicitClose) {
		fn(pl.Points[n-1], pl.Points[0])
	}
}

func normTolerance(tolerance float64) float64 {
	if !(tolerance > 0) {
		return DefaultTolerance
	}
	return tolerance
}

// Polylines flattens the path into one polyline per subpath. Each curve is
// subdivided until its control polygon lies within tolerance of its chord.
// Subpaths made of a lone MoveTo are dropped.
func (p *Path) Polylines(tolerance float64) []Polyline {
	tolerance = normTolerance(tolerance)

	var out []Polyline
	var cur Polyline
	var drew bool
	var current Point
	flush := func() {
		if drew {
			out = append(out, cur)
		}
		cur = Polyline{}
		drew = false
	}
	emit := func(pt Point) {
		cur.Points = append(cur.Points, pt)
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			cur.Points = []Point{e.Point}
			current = e.Point
		case LineTo:
			emit(e.Point)
			current = e.Point
			drew = true
		case QuadTo:
			flattenQuad(QuadBez{current, e.Control, e.Point}, tolerance, 0, emit)
			current = e.Point
			drew = true
		case CubicTo:
			flattenCubic(CubicBez{current, e.Control1, e.Control2, e.Point}, tolerance, 0, emit)
			current = e.Point
			drew = true
		case Close:
			if n := len(cur.Points); n > 1 && cur.Points[n-1] == cur.Points[0] {
				cur.Points = cur.Points[:n-1]
			}
			cur.Closed = true
			drew = true
			flush()
		}
	}
	flush()
	return out
}

// Flatten converts the path into line segments. Closed subpaths include
// their closing edge. A smaller tolerance never yields fewer segments.
func (p *Path) Flatten(tolerance float64) []Line {
	var lines []Line
	for _, pl := range p.Polylines(tolerance) {
		pl.Edges(false, func(a, b Point) {
			lines = append(lines, Line{P0: a, P1: b})
		})
	}
	return lines
}

// FlattenPath returns a copy of the path in which every curve is replaced
// by line segments. The winding rule is kept.
func (p *Path) FlattenPath(tolerance float64) *Path {
	out := NewPathRule(p.rule)
	for _, pl := range p.Polylines(tolerance) {
		out.MoveTo(pl.Points[0].X, pl.Points[0].Y)
		for _, pt := range pl.Points[1:] {
			out.LineTo(pt.X, pt.Y)
		}
		if pl.Closed {
			out.Close()
		}
	}
	return out
}

// flattenQuad emits the end points of the chords approximating q. The
// start point is assumed already emitted. A NaN flatness compares false
// and is accepted at once, so degenerate input terminates.
func flattenQuad(q QuadBez, tolerance float64, depth int, emit func(Point)) {
	if depth >= maxFlattenDepth || !(q.flatness() > tolerance) {
		emit(q.P2)
		return
	}
	a, b := q.Subdivide()
	flattenQuad(a, tolerance, depth+1, emit)
	flattenQuad(b, tolerance, depth+1, emit)
}

func flattenCubic(c CubicBez, tolerance float64, depth int, emit func(Point)) {
	if depth >= maxFlattenDepth || !(c.flatness() > tolerance) {
		emit(c.P3)
		return
	}
	a, b := c.Subdivide()
	flattenCubic(a, tolerance, depth+1, emit)
	flattenCubic(b, tolerance, depth+1, emit)
}
