package awt

import (
	"fmt"

	"github.com/nullpops/awt/geom"
)

// Paint is what fills a shape: a Color, GradientPaint,
// LinearGradientPaint or RadialGradientPaint. The set is closed.
type Paint interface {
	isPaint()
}

// validatePaint reports why p cannot be evaluated, or nil.
func validatePaint(p Paint) error {
	switch p := p.(type) {
	case Color:
		return nil
	case GradientPaint:
		return p.validate()
	case LinearGradientPaint:
		return p.validate()
	case RadialGradientPaint:
		return p.validate()
	case nil:
		return fmt.Errorf("%w: nil paint", ErrInvalidPaint)
	}
	return fmt.Errorf("%w: unknown paint %T", ErrInvalidPaint, p)
}

// clonePaint copies the stop slices so later edits by the caller do not
// reach a stored paint.
func clonePaint(p Paint) Paint {
	switch p := p.(type) {
	case LinearGradientPaint:
		p.Stops = cloneStops(p.Stops)
		return p
	case RadialGradientPaint:
		p.Stops = cloneStops(p.Stops)
		return p
	}
	return p
}

// ResolvedPaint is a paint bound to the transform in effect when it was
// drawn. Hosts call ColorAt with device coordinates.
type ResolvedPaint struct {
	paint   Paint
	toUser  geom.Matrix
	solid   Color
	isSolid bool
	opaque  bool
}

// resolvePaint binds p to userToDevice. A gradient drawn through a
// singular transform cannot be evaluated and reports the inversion error.
func resolvePaint(p Paint, userToDevice geom.Matrix) (ResolvedPaint, error) {
	switch p := p.(type) {
	case Color:
		return ResolvedPaint{paint: p, solid: p, isSolid: true, opaque: p.IsOpaque()}, nil
	case GradientPaint:
		inv, err := userToDevice.Invert()
		if err != nil {
			return ResolvedPaint{}, err
		}
		return ResolvedPaint{paint: p, toUser: inv, opaque: p.C1.IsOpaque() && p.C2.IsOpaque()}, nil
	case LinearGradientPaint:
		inv, err := userToDevice.Invert()
		if err != nil {
			return ResolvedPaint{}, err
		}
		return ResolvedPaint{paint: p, toUser: inv, opaque: stopsOpaque(p.Stops)}, nil
	case RadialGradientPaint:
		inv, err := userToDevice.Invert()
		if err != nil {
			return ResolvedPaint{}, err
		}
		return ResolvedPaint{paint: p, toUser: inv, opaque: stopsOpaque(p.Stops)}, nil
	}
	return ResolvedPaint{}, validatePaint(p)
}

func stopsOpaque(stops []ColorStop) bool {
	for _, s := range stops {
		if !s.Color.IsOpaque() {
			return false
		}
	}
	return true
}

// SolidPaint returns a ResolvedPaint for a plain color. Hosts replaying
// recorded operations use it to build FillOps by hand.
func SolidPaint(c Color) ResolvedPaint {
	p, _ := resolvePaint(c, geom.Identity())
	return p
}

// Paint returns the unresolved paint.
func (rp ResolvedPaint) Paint() Paint { return rp.paint }

// Solid returns the color when the paint is a plain Color.
func (rp ResolvedPaint) Solid() (Color, bool) { return rp.solid, rp.isSolid }

// IsOpaque reports whether every color the paint can produce is opaque.
func (rp ResolvedPaint) IsOpaque() bool { return rp.opaque }

// ColorAt returns the paint color at device point (x, y). Hosts usually
// pass pixel centers.
func (rp ResolvedPaint) ColorAt(x, y float64) Color {
	if rp.isSolid {
		return rp.solid
	}
	p := rp.toUser.TransformPoint(geom.Pt(x, y))
	switch paint := rp.paint.(type) {
	case GradientPaint:
		return paint.colorAt(p)
	case LinearGradientPaint:
		return paint.colorAt(p)
	case RadialGradientPaint:
		return paint.colorAt(p)
	}
	return Transparent
}
