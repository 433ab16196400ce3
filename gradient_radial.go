package awt

import (
	"fmt"
	"math"

	"github.com/nullpops/awt/geom"
)

// focusScale pulls a focus lying on or outside the circle back inside.
const focusScale = 0.99

// RadialGradientPaint is a multi-stop gradient radiating from Focus to
// the circle at Center with Radius. Offset 0 is at the focus and offset 1
// on the circle.
type RadialGradientPaint struct {
	Center     geom.Point
	Focus      geom.Point
	Radius     float64
	Stops      []ColorStop
	Cycle      CycleMethod
	ColorSpace ColorSpace
}

func (RadialGradientPaint) isPaint() {}

// NewRadialGradientPaint returns a gradient focused on its center.
func NewRadialGradientPaint(cx, cy, radius float64, stops ...ColorStop) RadialGradientPaint {
	c := geom.Pt(cx, cy)
	return RadialGradientPaint{Center: c, Focus: c, Radius: radius, Stops: stops}
}

func (g RadialGradientPaint) validate() error {
	if !g.Center.IsFinite() || !g.Focus.IsFinite() {
		return fmt.Errorf("%w: gradient points not finite", ErrInvalidPaint)
	}
	if !(g.Radius > 0) || math.IsInf(g.Radius, 0) {
		return fmt.Errorf("%w: radius %v", ErrInvalidPaint, g.Radius)
	}
	return validateStops(g.Stops)
}

// clampedFocus returns the focus, moved inside the circle when needed.
func (g RadialGradientPaint) clampedFocus() geom.Point {
	d := g.Focus.Sub(g.Center)
	if dist := d.Length(); dist > g.Radius*focusScale {
		return g.Center.Add(d.Mul(g.Radius * focusScale / dist))
	}
	return g.Focus
}

func (g RadialGradientPaint) colorAt(p geom.Point) Color {
	return colorAtOffset(g.Stops, g.offset(p, g.clampedFocus()), g.Cycle, g.ColorSpace)
}

// offset is the ratio of the distance from focus to p over the distance
// from focus to the circle along the same ray.
func (g RadialGradientPaint) offset(p, focus geom.Point) float64 {
	if focus == g.Center {
		return p.Distance(g.Center) / g.Radius
	}

	dx := p.X - focus.X
	dy := p.Y - focus.Y
	fx := g.Center.X - focus.X
	fy := g.Center.Y - focus.Y

	// Ray focus + s*(p - focus) meets the circle where
	// s^2*|d|^2 - 2s*(d.f) + |f|^2 - r^2 = 0.
	a := dx*dx + dy*dy
	if a == 0 {
		return 0
	}
	b := -2 * (dx*fx + dy*fy)
	c := fx*fx + fy*fy - g.Radius*g.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 1
	}
	// The focus is inside the circle, so c < 0 and exactly one root is
	// positive.
	s := (-b + math.Sqrt(disc)) / (2 * a)
	if !(s > 0) {
		return 0
	}
	return 1 / s
}
