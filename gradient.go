package awt

import (
	"fmt"
	"math"
	"sort"

	"github.com/nullpops/awt/geom"
	"github.com/nullpops/awt/internal/color"
)

// CycleMethod decides the color outside a gradient's [0, 1] range.
type CycleMethod uint8

const (
	// NoCycle extends the end colors.
	NoCycle CycleMethod = iota
	// Reflect mirrors the gradient back and forth.
	Reflect
	// Repeat restarts the gradient at each period.
	Repeat
)

func (m CycleMethod) String() string {
	switch m {
	case NoCycle:
		return "no-cycle"
	case Reflect:
		return "reflect"
	case Repeat:
		return "repeat"
	}
	return fmt.Sprintf("CycleMethod(%d)", uint8(m))
}

// ColorSpace selects where multi-stop gradients interpolate.
type ColorSpace uint8

const (
	// SRGB interpolates the stored components directly.
	SRGB ColorSpace = iota
	// LinearRGB interpolates in linear light.
	LinearRGB
)

// ColorStop is a color at a position in a multi-stop gradient.
type ColorStop struct {
	Offset float64 // 0 to 1, strictly increasing across stops
	Color  Color
}

// GradientPaint is the two-color gradient between P1 and P2. Beyond the
// end points it extends C1 and C2, or when Cyclic is set it reflects back
// and forth.
type GradientPaint struct {
	P1, P2 geom.Point
	C1, C2 Color
	Cyclic bool
}

func (GradientPaint) isPaint() {}

// NewGradientPaint returns an acyclic gradient from (x1, y1) to (x2, y2).
func NewGradientPaint(x1, y1 float64, c1 Color, x2, y2 float64, c2 Color) GradientPaint {
	return GradientPaint{P1: geom.Pt(x1, y1), C1: c1, P2: geom.Pt(x2, y2), C2: c2}
}

// colorAt evaluates the gradient at a user-space point.
func (g GradientPaint) colorAt(p geom.Point) Color {
	d := g.P2.Sub(g.P1)
	lengthSq := d.Dot(d)
	if lengthSq == 0 {
		return g.C2
	}
	t := p.Sub(g.P1).Dot(d) / lengthSq
	mode := NoCycle
	if g.Cyclic {
		mode = Reflect
	}
	return g.C1.Lerp(g.C2, applyCycle(t, mode))
}

func (g GradientPaint) validate() error {
	if !g.P1.IsFinite() || !g.P2.IsFinite() {
		return fmt.Errorf("%w: gradient points not finite", ErrInvalidPaint)
	}
	return nil
}

// applyCycle maps t into [0, 1].
func applyCycle(t float64, mode CycleMethod) float64 {
	switch mode {
	case Repeat:
		t -= math.Floor(t)
	case Reflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int64(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

// validateStops checks the multi-stop rules: at least two stops, offsets
// finite and strictly increasing within [0, 1].
func validateStops(stops []ColorStop) error {
	if len(stops) < 2 {
		return fmt.Errorf("%w: need at least 2 stops, have %d", ErrInvalidPaint, len(stops))
	}
	for i, s := range stops {
		if !(s.Offset >= 0 && s.Offset <= 1) {
			return fmt.Errorf("%w: stop %d offset %v outside [0, 1]", ErrInvalidPaint, i, s.Offset)
		}
		if i > 0 && !(s.Offset > stops[i-1].Offset) {
			return fmt.Errorf("%w: stop %d offset %v not increasing", ErrInvalidPaint, i, s.Offset)
		}
	}
	return nil
}

// colorAtOffset interpolates validated stops at t.
func colorAtOffset(stops []ColorStop, t float64, mode CycleMethod, space ColorSpace) Color {
	t = applyCycle(t, mode)

	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	s1, s2 := stops[idx-1], stops[idx]
	localT := (t - s1.Offset) / (s2.Offset - s1.Offset)
	if space == LinearRGB {
		return lerpLinear(s1.Color, s2.Color, localT)
	}
	return s1.Color.Lerp(s2.Color, localT)
}

func lerpLinear(c1, c2 Color, t float64) Color {
	rgb := color.LerpLinear(
		[3]float64{clamp01(c1.R), clamp01(c1.G), clamp01(c1.B)},
		[3]float64{clamp01(c2.R), clamp01(c2.G), clamp01(c2.B)},
		t,
	)
	return Color{R: rgb[0], G: rgb[1], B: rgb[2], A: c1.A + (c2.A-c1.A)*t}
}

func cloneStops(stops []ColorStop) []ColorStop {
	return append([]ColorStop(nil), stops...)
}
