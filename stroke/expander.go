package stroke

import (
	"math"

	"github.com/nullpops/awt/geom"
)

// rail collects one offset side of a subpath.
type rail struct {
	elems []geom.PathElement
}

func (r *rail) isEmpty() bool { return len(r.elems) == 0 }

func (r *rail) moveTo(p geom.Point) { r.elems = append(r.elems, geom.MoveTo{Point: p}) }

func (r *rail) lineTo(p geom.Point) { r.elems = append(r.elems, geom.LineTo{Point: p}) }

func (r *rail) cubicTo(c1, c2, p geom.Point) {
	r.elems = append(r.elems, geom.CubicTo{Control1: c1, Control2: c2, Point: p})
}

func (r *rail) reset() { r.elems = r.elems[:0] }

// expander turns polylines into stroke outlines. It walks each polyline
// once, growing a left (forward) and right (backward) rail, and stitches
// them together with caps when the subpath ends.
type expander struct {
	style      Style
	halfWidth  float64
	miterLimit float64
	joinThresh float64

	forward  rail
	backward rail
	out      *geom.Path

	startPt   geom.Point
	startNorm geom.Point
	startTan  geom.Point
	lastPt    geom.Point
	lastTan   geom.Point
	lastNorm  geom.Point
}

func newExpander(style Style, tolerance float64, out *geom.Path) *expander {
	return &expander{
		style:      style,
		halfWidth:  style.Width / 2,
		miterLimit: style.miterLimit(),
		joinThresh: 2 * tolerance / style.Width,
		out:        out,
	}
}

// normal returns the right-hand offset for tangent t, scaled to half the
// stroke width.
func (e *expander) normal(t geom.Point) geom.Point {
	return t.Perp().Mul(e.halfWidth / t.Length())
}

func (e *expander) polyline(pl geom.Polyline) {
	pts := make([]geom.Point, 0, len(pl.Points))
	for _, p := range pl.Points {
		if len(pts) == 0 || p != pts[len(pts)-1] {
			pts = append(pts, p)
		}
	}
	if pl.Closed && len(pts) > 1 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	switch len(pts) {
	case 0:
		return
	case 1:
		e.dot(pts[0])
		return
	}

	e.startPt, e.lastPt = pts[0], pts[0]
	for _, p := range pts[1:] {
		e.segment(p)
	}
	if pl.Closed {
		e.segment(e.startPt)
		e.finishClosed()
		return
	}
	e.finish()
}

func (e *expander) segment(p geom.Point) {
	tan := p.Sub(e.lastPt)
	e.join(tan)
	e.lastTan = tan
	norm := e.normal(tan)
	e.forward.lineTo(p.Sub(norm))
	e.backward.lineTo(p.Add(norm))
	e.lastPt = p
	e.lastNorm = norm
}

// join connects the segment starting with tangent tan to the previous one.
func (e *expander) join(tan geom.Point) {
	p0 := e.lastPt
	norm := e.normal(tan)
	if e.forward.isEmpty() {
		e.forward.moveTo(p0.Sub(norm))
		e.backward.moveTo(p0.Add(norm))
		e.startTan = tan
		e.startNorm = norm
		return
	}

	ab, cd := e.lastTan, tan
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)
	lastNorm := e.normal(ab)

	// Nearly straight: keep both rails continuous without a corner.
	if dot > 0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.lineTo(p0.Sub(norm))
		e.backward.lineTo(p0.Add(norm))
		return
	}

	// cross > 0 turns toward the backward rail, so the forward rail is
	// on the outside of the corner.
	outer, inner := &e.forward, &e.backward
	outerLast, outerNext := p0.Sub(lastNorm), p0.Sub(norm)
	innerNext := p0.Add(norm)
	if cross < 0 {
		outer, inner = inner, outer
		outerLast, outerNext = p0.Add(lastNorm), p0.Add(norm)
		innerNext = p0.Sub(norm)
	}

	// The inner rail passes through the pivot so overlapping offsets at
	// the corner still wind the same way.
	inner.lineTo(p0)
	inner.lineTo(innerNext)

	switch e.style.Join {
	case JoinBevel:
		outer.lineTo(outerNext)
	case JoinMiter:
		// The miter ratio is 1/sin(theta/2) for interior angle theta; in
		// terms of the turn it is sqrt(2/(1+cos)).
		if 2*hypot < (hypot+dot)*e.miterLimit*e.miterLimit {
			h := ab.Cross(outerNext.Sub(outerLast)) / cross
			outer.lineTo(outerNext.Sub(cd.Mul(h)))
		}
		outer.lineTo(outerNext)
	case JoinRound:
		angle := math.Atan2(cross, dot)
		arc(outer, p0, outerLast.Sub(p0), angle)
	}
}

// finish stitches an open subpath: forward rail, end cap, backward rail
// reversed, start cap.
func (e *expander) finish() {
	if e.forward.isEmpty() {
		return
	}
	e.appendForward()
	e.endCap(e.lastPt, e.lastNorm.Mul(-1))
	e.appendReversed()
	e.startCap(e.startPt, e.startNorm)
	e.forward.reset()
	e.backward.reset()
}

// finishClosed emits a closed subpath as two rings.
func (e *expander) finishClosed() {
	if e.forward.isEmpty() {
		return
	}
	e.join(e.startTan)
	e.appendForward()
	e.out.Close()

	last := e.backward.elems[len(e.backward.elems)-1]
	p := endPoint(last)
	e.out.MoveTo(p.X, p.Y)
	e.appendReversed()
	e.out.Close()
	e.forward.reset()
	e.backward.reset()
}

func (e *expander) appendForward() {
	for _, el := range e.forward.elems {
		switch el := el.(type) {
		case geom.MoveTo:
			e.out.MoveTo(el.Point.X, el.Point.Y)
		case geom.LineTo:
			e.out.LineTo(el.Point.X, el.Point.Y)
		case geom.CubicTo:
			e.out.CubicTo(el.Control1.X, el.Control1.Y, el.Control2.X, el.Control2.Y, el.Point.X, el.Point.Y)
		}
	}
}

// appendReversed walks the backward rail from its end to its start. The
// current point is assumed to be the rail's last point already.
func (e *expander) appendReversed() {
	elems := e.backward.elems
	for i := len(elems) - 1; i >= 1; i-- {
		p := endPoint(elems[i-1])
		switch el := elems[i].(type) {
		case geom.LineTo:
			e.out.LineTo(p.X, p.Y)
		case geom.CubicTo:
			e.out.CubicTo(el.Control2.X, el.Control2.Y, el.Control1.X, el.Control1.Y, p.X, p.Y)
		}
	}
}

// endCap leaves the forward rail end and arrives at the backward rail end.
// norm points from center to the forward rail.
func (e *expander) endCap(center, norm geom.Point) {
	switch e.style.Cap {
	case CapButt:
		p := center.Sub(norm)
		e.out.LineTo(p.X, p.Y)
	case CapRound:
		arcPath(e.out, center, norm, math.Pi)
	case CapSquare:
		e.squareCap(center, norm)
		p := center.Sub(norm)
		e.out.LineTo(p.X, p.Y)
	}
}

// startCap closes the outline from the backward rail start.
func (e *expander) startCap(center, norm geom.Point) {
	switch e.style.Cap {
	case CapRound:
		arcPath(e.out, center, norm, math.Pi)
	case CapSquare:
		e.squareCap(center, norm)
	}
	e.out.Close()
}

// squareCap draws the two far corners of a square cap. The extension
// runs along norm rotated a quarter turn, which is the direction of travel.
func (e *expander) squareCap(center, norm geom.Point) {
	ext := norm.Perp()
	p1 := center.Add(norm).Add(ext)
	p2 := center.Sub(norm).Add(ext)
	e.out.LineTo(p1.X, p1.Y)
	e.out.LineTo(p2.X, p2.Y)
}

// dot draws a zero-length subpath: a disc for round caps, an axis-aligned
// square for square caps, and nothing for butt caps.
func (e *expander) dot(p geom.Point) {
	switch e.style.Cap {
	case CapRound:
		e.out.Circle(p.X, p.Y, e.halfWidth)
	case CapSquare:
		e.out.Rectangle(p.X-e.halfWidth, p.Y-e.halfWidth, e.style.Width, e.style.Width)
	}
}

// arc appends a circular arc around center starting at center+from and
// sweeping angle radians, as at most quarter-turn cubics.
func arc(r *rail, center, from geom.Point, angle float64) {
	forEachArcSegment(center, from, angle, func(c1, c2, p geom.Point) {
		r.cubicTo(c1, c2, p)
	})
}

func arcPath(out *geom.Path, center, from geom.Point, angle float64) {
	forEachArcSegment(center, from, angle, func(c1, c2, p geom.Point) {
		out.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
	})
}

func forEachArcSegment(center, from geom.Point, angle float64, emit func(c1, c2, p geom.Point)) {
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := angle / float64(n)
	radius := from.Length()
	a0 := math.Atan2(from.Y, from.X)
	// Control point distance for a circular arc of this step.
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		a1 := a0 + step
		sin0, cos0 := math.Sincos(a0)
		sin1, cos1 := math.Sincos(a1)
		p0 := geom.Pt(center.X+radius*cos0, center.Y+radius*sin0)
		p1 := geom.Pt(center.X+radius*cos1, center.Y+radius*sin1)
		c1 := geom.Pt(p0.X-k*radius*sin0, p0.Y+k*radius*cos0)
		c2 := geom.Pt(p1.X+k*radius*sin1, p1.Y-k*radius*cos1)
		emit(c1, c2, p1)
		a0 = a1
	}
}

func endPoint(el geom.PathElement) geom.Point {
	switch el := el.(type) {
	case geom.MoveTo:
		return el.Point
	case geom.LineTo:
		return el.Point
	case geom.QuadTo:
		return el.Point
	case geom.CubicTo:
		return el.Point
	}
	return geom.Point{}
}
