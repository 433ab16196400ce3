package awt

import (
	"fmt"

	"github.com/nullpops/awt/geom"
)

// LinearGradientPaint is a multi-stop gradient along the line from Start
// to End.
//
// Example:
//
//	p := awt.LinearGradientPaint{
//	    Start: geom.Pt(0, 0),
//	    End:   geom.Pt(100, 0),
//	    Stops: []awt.ColorStop{{0, awt.Red}, {0.5, awt.Yellow}, {1, awt.Blue}},
//	}
type LinearGradientPaint struct {
	Start, End geom.Point
	Stops      []ColorStop
	Cycle      CycleMethod
	ColorSpace ColorSpace
}

func (LinearGradientPaint) isPaint() {}

func (g LinearGradientPaint) validate() error {
	if !g.Start.IsFinite() || !g.End.IsFinite() {
		return fmt.Errorf("%w: gradient points not finite", ErrInvalidPaint)
	}
	if g.Start == g.End {
		return fmt.Errorf("%w: gradient start equals end", ErrInvalidPaint)
	}
	return validateStops(g.Stops)
}

// colorAt projects p onto the gradient line.
func (g LinearGradientPaint) colorAt(p geom.Point) Color {
	d := g.End.Sub(g.Start)
	t := p.Sub(g.Start).Dot(d) / d.Dot(d)
	return colorAtOffset(g.Stops, t, g.Cycle, g.ColorSpace)
}
