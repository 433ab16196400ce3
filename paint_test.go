package awt

import (
	"errors"
	"math"
	"testing"

	"github.com/nullpops/awt/geom"
)

func near(a, b Color, eps float64) bool {
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps &&
		math.Abs(a.B-b.B) <= eps && math.Abs(a.A-b.A) <= eps
}

func TestGradientPaint(t *testing.T) {
	acyclic := NewGradientPaint(0, 0, Black, 10, 0, White)
	cyclic := acyclic
	cyclic.Cyclic = true

	tests := []struct {
		name string
		p    GradientPaint
		x    float64
		want float64
	}{
		{"start", acyclic, 0, 0},
		{"middle", acyclic, 5, 0.5},
		{"before start pads", acyclic, -20, 0},
		{"past end pads", acyclic, 30, 1},
		{"cyclic reflects", cyclic, 15, 0.5},
		{"cyclic second period", cyclic, 18, 0.2},
		{"cyclic behind start", cyclic, -2, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.colorAt(geom.Pt(tt.x, 7))
			if math.Abs(got.R-tt.want) > 1e-9 {
				t.Errorf("colorAt(%v) = %v, want %v", tt.x, got.R, tt.want)
			}
		})
	}

	same := NewGradientPaint(1, 1, Red, 1, 1, Blue)
	if got := same.colorAt(geom.Pt(0, 0)); got != Blue {
		t.Errorf("zero-length gradient = %v, want second color", got)
	}
}

func TestLinearGradientPaint(t *testing.T) {
	p := LinearGradientPaint{
		Start: geom.Pt(0, 0),
		End:   geom.Pt(0, 100),
		Stops: []ColorStop{{0, Red}, {0.5, Green}, {1, Blue}},
	}
	if err := p.validate(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		cycle CycleMethod
		y     float64
		want  Color
	}{
		{"first stop", NoCycle, 0, Red},
		{"mid stop", NoCycle, 50, Green},
		{"between", NoCycle, 25, RGB(0.5, 0.5, 0)},
		{"pad", NoCycle, 150, Blue},
		{"repeat", Repeat, 125, RGB(0.5, 0.5, 0)},
		{"reflect", Reflect, 150, Green},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := p
			q.Cycle = tt.cycle
			if got := q.colorAt(geom.Pt(33, tt.y)); !near(got, tt.want, 1e-9) {
				t.Errorf("colorAt(y=%v) = %+v, want %+v", tt.y, got, tt.want)
			}
		})
	}
}

func TestLinearRGBInterpolation(t *testing.T) {
	p := LinearGradientPaint{
		End:        geom.Pt(10, 0),
		Stops:      []ColorStop{{0, Black}, {1, White}},
		ColorSpace: LinearRGB,
	}
	mid := p.colorAt(geom.Pt(5, 0))
	if !(mid.R > 0.7 && mid.R < 0.75) {
		t.Errorf("linear-light midpoint = %v, want about 0.735", mid.R)
	}
	p.ColorSpace = SRGB
	if mid := p.colorAt(geom.Pt(5, 0)); math.Abs(mid.R-0.5) > 1e-9 {
		t.Errorf("sRGB midpoint = %v", mid.R)
	}
}

func TestRadialGradientPaint(t *testing.T) {
	p := NewRadialGradientPaint(50, 50, 10, ColorStop{0, White}, ColorStop{1, Black})
	if err := p.validate(); err != nil {
		t.Fatal(err)
	}
	if got := p.colorAt(geom.Pt(50, 50)); got != White {
		t.Errorf("center = %v", got)
	}
	if got := p.colorAt(geom.Pt(55, 50)); math.Abs(got.R-0.5) > 1e-9 {
		t.Errorf("half radius = %v", got.R)
	}
	if got := p.colorAt(geom.Pt(50, 80)); got != Black {
		t.Errorf("outside = %v", got)
	}

	// With the focus off center, offset 0 moves to the focus and offset 1
	// stays on the circle.
	p.Focus = geom.Pt(55, 50)
	if got := p.colorAt(geom.Pt(55, 50)); !near(got, White, 1e-9) {
		t.Errorf("at focus = %v", got)
	}
	if got := p.colorAt(geom.Pt(40, 50)); !near(got, Black, 1e-9) {
		t.Errorf("on circle = %v", got)
	}
	if got := p.colorAt(geom.Pt(47.5, 50)); math.Abs(got.R-0.5) > 1e-9 {
		t.Errorf("halfway to circle = %v", got.R)
	}

	// A focus outside the circle is pulled inside.
	p.Focus = geom.Pt(100, 50)
	if f := p.clampedFocus(); math.Abs(f.Distance(p.Center)-9.9) > 1e-9 {
		t.Errorf("clamped focus = %v", f)
	}
}

func TestValidatePaint(t *testing.T) {
	stops := []ColorStop{{0, Red}, {1, Blue}}
	tests := []struct {
		name string
		p    Paint
		ok   bool
	}{
		{"color", Red, true},
		{"gradient", NewGradientPaint(0, 0, Red, 1, 1, Blue), true},
		{"gradient NaN", NewGradientPaint(math.NaN(), 0, Red, 1, 1, Blue), false},
		{"linear", LinearGradientPaint{End: geom.Pt(1, 0), Stops: stops}, true},
		{"linear zero length", LinearGradientPaint{Stops: stops}, false},
		{"linear unordered", LinearGradientPaint{End: geom.Pt(1, 0), Stops: []ColorStop{{0.5, Red}, {0.5, Blue}}}, false},
		{"linear out of range", LinearGradientPaint{End: geom.Pt(1, 0), Stops: []ColorStop{{0, Red}, {1.5, Blue}}}, false},
		{"radial", RadialGradientPaint{Radius: 1, Stops: stops}, true},
		{"radial zero radius", RadialGradientPaint{Stops: stops}, false},
		{"radial infinite radius", RadialGradientPaint{Radius: math.Inf(1), Stops: stops}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePaint(tt.p)
			if tt.ok && err != nil {
				t.Errorf("validatePaint = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidPaint) {
				t.Errorf("validatePaint = %v, want ErrInvalidPaint", err)
			}
		})
	}
}

func TestResolvedPaint(t *testing.T) {
	solid := SolidPaint(RGBA(1, 0, 0, 0.5))
	if c, ok := solid.Solid(); !ok || c.A != 0.5 {
		t.Errorf("Solid = %v, %v", c, ok)
	}
	if solid.IsOpaque() {
		t.Error("translucent color reported opaque")
	}

	lin := LinearGradientPaint{End: geom.Pt(10, 0), Stops: []ColorStop{{0, Black}, {1, White}}}
	rp, err := resolvePaint(lin, geom.Scale(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rp.Solid(); ok {
		t.Error("gradient reported solid")
	}
	if got := rp.ColorAt(10, 0); math.Abs(got.R-0.5) > 1e-9 {
		t.Errorf("ColorAt(10, 0) under 2x scale = %v, want 0.5", got.R)
	}

	if _, err := resolvePaint(lin, geom.Scale(0, 1)); !errors.Is(err, geom.ErrNoninvertible) {
		t.Errorf("singular resolve = %v", err)
	}
}

func TestClonePaint(t *testing.T) {
	stops := []ColorStop{{0, Red}, {1, Blue}}
	p := clonePaint(LinearGradientPaint{End: geom.Pt(1, 0), Stops: stops}).(LinearGradientPaint)
	stops[0].Color = Green
	if p.Stops[0].Color != Red {
		t.Error("clonePaint shares stops")
	}
}
