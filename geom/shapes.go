package geom

import "math"

// ArcType selects how an arc built by ArcShape is closed.
type ArcType uint8

const (
	// ArcOpen leaves the arc as an open curve.
	ArcOpen ArcType = iota
	// ArcChord closes the arc with a straight line between its ends.
	ArcChord
	// ArcPie closes the arc with lines to and from the ellipse center.
	ArcPie
)

// Rectangle adds a closed rectangle subpath.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Ellipse adds an ellipse centered at (cx, cy) built from four cubics.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	p.MoveTo(cx+rx, cy)
	p.ellipticalArc(cx, cy, rx, ry, 0, 2*math.Pi)
	p.Close()
}

// Circle adds a circle centered at (cx, cy).
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Arc adds a circular arc from angle1 to angle2 (radians) around (cx, cy).
// The arc sweeps in the direction of increasing angle and covers at most
// one full turn. It connects to the current point with a line, or starts a
// new subpath when there is none. Non-finite angles add nothing.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64) {
	const twoPi = 2 * math.Pi
	sweep := angle2 - angle1
	if math.IsNaN(sweep) || math.IsInf(sweep, 0) {
		return
	}
	switch {
	case sweep >= twoPi:
		sweep = twoPi
	case sweep < 0:
		sweep = math.Mod(sweep, twoPi)
		if sweep < 0 {
			sweep += twoPi
		}
	}
	a := math.Mod(angle1, twoPi)
	start := Pt(cx+r*math.Cos(a), cy+r*math.Sin(a))
	if cur, ok := p.CurrentPoint(); ok && !p.closed {
		if cur != start {
			p.LineTo(start.X, start.Y)
		}
	} else {
		p.MoveTo(start.X, start.Y)
	}
	p.ellipticalArc(cx, cy, r, r, a, sweep)
}

// RoundedRectangle adds a rectangle whose corners are quarter ellipses
// with radii rx and ry, clamped to half the width and height.
func (p *Path) RoundedRectangle(x, y, w, h, rx, ry float64) {
	rx = math.Min(math.Abs(rx), math.Abs(w)/2)
	ry = math.Min(math.Abs(ry), math.Abs(h)/2)
	if rx == 0 || ry == 0 {
		p.Rectangle(x, y, w, h)
		return
	}
	p.MoveTo(x+rx, y)
	p.LineTo(x+w-rx, y)
	p.ellipticalArc(x+w-rx, y+ry, rx, ry, -math.Pi/2, math.Pi/2)
	p.LineTo(x+w, y+h-ry)
	p.ellipticalArc(x+w-rx, y+h-ry, rx, ry, 0, math.Pi/2)
	p.LineTo(x+rx, y+h)
	p.ellipticalArc(x+rx, y+h-ry, rx, ry, math.Pi/2, math.Pi/2)
	p.LineTo(x, y+ry)
	p.ellipticalArc(x+rx, y+ry, rx, ry, math.Pi, math.Pi/2)
	p.Close()
}

// ArcShape adds an elliptical arc framed by the rectangle (x, y, w, h).
// Angles are in degrees, measured counter-clockwise on screen from the
// positive x axis, the way the legacy Arc2D measures them.
func (p *Path) ArcShape(x, y, w, h, startDeg, extentDeg float64, kind ArcType) {
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	if extentDeg > 360 {
		extentDeg = 360
	} else if extentDeg < -360 {
		extentDeg = -360
	}
	// Screen y points down, so counter-clockwise is a negative angle.
	a := -startDeg * math.Pi / 180
	sweep := -extentDeg * math.Pi / 180

	start := Pt(cx+rx*math.Cos(a), cy+ry*math.Sin(a))
	if kind == ArcPie {
		p.MoveTo(cx, cy)
		p.LineTo(start.X, start.Y)
	} else {
		p.MoveTo(start.X, start.Y)
	}
	p.ellipticalArc(cx, cy, rx, ry, a, sweep)
	if kind != ArcOpen {
		p.Close()
	}
}

// Polygon adds a closed polygon through pts. Fewer than two points add
// nothing.
func (p *Path) Polygon(pts []Point) {
	if len(pts) < 2 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
}

// NewLine returns an open path with a single segment.
func NewLine(x1, y1, x2, y2 float64) *Path {
	p := NewPath()
	p.MoveTo(x1, y1)
	p.LineTo(x2, y2)
	return p
}

// NewRectangle returns a closed rectangular path.
func NewRectangle(x, y, w, h float64) *Path {
	p := NewPath()
	p.Rectangle(x, y, w, h)
	return p
}

// NewEllipse returns an ellipse inscribed in the rectangle (x, y, w, h).
func NewEllipse(x, y, w, h float64) *Path {
	p := NewPath()
	p.Ellipse(x+w/2, y+h/2, w/2, h/2)
	return p
}

// ellipticalArc appends cubic segments for the arc starting at angle a and
// sweeping by sweep radians. The current point must already be at the arc
// start. Each segment spans at most a quarter turn.
func (p *Path) ellipticalArc(cx, cy, rx, ry, a, sweep float64) {
	if sweep == 0 {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		a0 := a + float64(i)*step
		a1 := a0 + step
		sin0, cos0 := math.Sincos(a0)
		sin1, cos1 := math.Sincos(a1)
		p.CubicTo(
			cx+rx*(cos0-k*sin0), cy+ry*(sin0+k*cos0),
			cx+rx*(cos1+k*sin1), cy+ry*(sin1-k*cos1),
			cx+rx*cos1, cy+ry*sin1,
		)
	}
}
