package geom

import (
	"math"
	"sort"
)

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// BoundingBox returns the axis-aligned bounding box of the line.
func (l Line) BoundingBox() Rect {
	return NewRect(l.P0, l.P1)
}

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	p01 := q.P0.Lerp(q.P1, 0.5)
	p12 := q.P1.Lerp(q.P2, 0.5)
	mid := p01.Lerp(p12, 0.5)
	return QuadBez{P0: q.P0, P1: p01, P2: mid}, QuadBez{P0: mid, P1: p12, P2: q.P2}
}

// flatness returns max‖Δ²P‖·n(n−1)/8, an upper bound on the distance
// between the curve and its chord.
func (q QuadBez) flatness() float64 {
	d := q.P0.Sub(q.P1.Mul(2)).Add(q.P2)
	return 0.25 * d.Length()
}

// Extrema returns parameter values in (0, 1) where the derivative of x or
// y is zero.
func (q QuadBez) Extrema() []float64 {
	var result []float64
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)

	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	bbox := NewRect(q.P0, q.P2)
	for _, t := range q.Extrema() {
		p := q.Eval(t)
		bbox = bbox.Union(NewRect(p, p))
	}
	return bbox
}

// Raise elevates the quadratic to an exactly equivalent cubic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// Length returns the arc length of the curve.
func (q QuadBez) Length() float64 {
	return q.Raise().Length()
}

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

func (c CubicBez) flatness() float64 {
	d1 := c.P0.Sub(c.P1.Mul(2)).Add(c.P2)
	d2 := c.P1.Sub(c.P2.Mul(2)).Add(c.P3)
	return 0.75 * math.Max(d1.Length(), d2.Length())
}

// Extrema returns parameter values in [0, 1] where the derivative of x or
// y is zero. There are at most four.
func (c CubicBez) Extrema() []float64 {
	result := make([]float64, 0, 4)
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	result = append(result, unitRoots(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	result = append(result, unitRoots(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)
	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)
	for _, t := range c.Extrema() {
		p := c.Eval(t)
		bbox = bbox.Union(NewRect(p, p))
	}
	return bbox
}

// unitRoots returns the real roots of a*t² + b*t + c = 0 inside [0, 1].
func unitRoots(a, b, c float64) []float64 {
	var roots []float64
	const eps = 1e-12
	if math.Abs(a) < eps {
		if b != 0 {
			roots = append(roots, -c/b)
		}
	} else {
		disc := b*b - 4*a*c
		switch {
		case disc == 0:
			roots = append(roots, -b/(2*a))
		case disc > 0:
			// Stable form avoids cancellation between -b and sqrt(disc).
			q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
			roots = append(roots, q/a)
			if q != 0 {
				roots = append(roots, c/q)
			}
		}
	}
	out := roots[:0]
	for _, t := range roots {
		if t >= 0 && t <= 1 {
			out = append(out, t)
		}
	}
	return out
}

// Length returns the arc length of the curve, to a relative error of
// about 1e-6.
func (c CubicBez) Length() float64 {
	return c.arcLength(0)
}

// arcLength blends chord and control polygon lengths (Gravesen), halving
// until the two agree.
func (c CubicBez) arcLength(depth int) float64 {
	chord := c.P0.Distance(c.P3)
	poly := c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)
	if depth >= maxFlattenDepth || !(poly-chord > 1e-6*poly) {
		return (chord + poly) / 2
	}
	a, b := c.Subdivide()
	return a.arcLength(depth+1) + b.arcLength(depth+1)
}
