package stroke

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nullpops/awt/geom"
)

func line(x0, y0, x1, y1 float64) *geom.Path {
	p := geom.NewPath()
	p.MoveTo(x0, y0)
	p.LineTo(x1, y1)
	return p
}

// corner is a right-angle turn at (10, 0).
func corner() *geom.Path {
	p := line(0, 0, 10, 0)
	p.LineTo(10, 10)
	return p
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	want := Style{Width: 1, Cap: CapSquare, Join: JoinMiter, MiterLimit: 10}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("DefaultStyle mismatch (-want +got):\n%s", diff)
	}
	if s.IsDashed() {
		t.Error("default style is dashed")
	}
}

func TestToFillEmpty(t *testing.T) {
	tests := []struct {
		name  string
		path  *geom.Path
		style Style
	}{
		{"zero width", line(0, 0, 10, 0), DefaultStyle().WithWidth(0)},
		{"negative width", line(0, 0, 10, 0), DefaultStyle().WithWidth(-3)},
		{"NaN width", line(0, 0, 10, 0), DefaultStyle().WithWidth(math.NaN())},
		{"nil path", nil, DefaultStyle()},
		{"empty path", geom.NewPath(), DefaultStyle()},
		{"lone move", func() *geom.Path { p := geom.NewPath(); p.MoveTo(3, 3); return p }(), DefaultStyle()},
		{"butt dot", line(5, 5, 5, 5), DefaultStyle().WithCap(CapButt)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToFill(tt.path, tt.style)
			if !got.IsEmpty() {
				t.Errorf("ToFill = %d elements, want empty", got.Len())
			}
			if got.Rule() != geom.NonZero {
				t.Errorf("Rule = %v, want non-zero", got.Rule())
			}
		})
	}
}

func TestToFillButtLine(t *testing.T) {
	got := ToFill(line(0, 0, 10, 0), DefaultStyle().WithWidth(2).WithCap(CapButt))
	want := []geom.PathElement{
		geom.MoveTo{Point: geom.Pt(0, -1)},
		geom.LineTo{Point: geom.Pt(10, -1)},
		geom.LineTo{Point: geom.Pt(10, 1)},
		geom.LineTo{Point: geom.Pt(0, 1)},
		geom.Close{},
	}
	if diff := cmp.Diff(want, got.Elements()); diff != "" {
		t.Errorf("ToFill mismatch (-want +got):\n%s", diff)
	}
}

func TestToFillCaps(t *testing.T) {
	tests := []struct {
		cap     Cap
		inside  []geom.Point
		outside []geom.Point
		bounds  geom.Rect
	}{
		{
			cap:     CapButt,
			inside:  []geom.Point{{X: 9.9, Y: 0.5}},
			outside: []geom.Point{{X: 10.1, Y: 0.5}, {X: -0.1, Y: 0.5}},
			bounds:  geom.NewRect(geom.Pt(0, -1), geom.Pt(10, 1)),
		},
		{
			cap:     CapSquare,
			inside:  []geom.Point{{X: 10.9, Y: 0.9}, {X: -0.9, Y: -0.9}},
			outside: []geom.Point{{X: 11.1, Y: 0.5}},
			bounds:  geom.NewRect(geom.Pt(-1, -1), geom.Pt(11, 1)),
		},
		{
			cap:     CapRound,
			inside:  []geom.Point{{X: 10.7, Y: 0.1}, {X: -0.7, Y: -0.1}},
			outside: []geom.Point{{X: 10.9, Y: 0.9}, {X: 11.1, Y: 0}},
			bounds:  geom.NewRect(geom.Pt(-1, -1), geom.Pt(11, 1)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.cap.String(), func(t *testing.T) {
			got := ToFill(line(0, 0, 10, 0), DefaultStyle().WithWidth(2).WithCap(tt.cap))
			for _, p := range tt.inside {
				if !got.Contains(p) {
					t.Errorf("Contains(%v) = false", p)
				}
			}
			for _, p := range tt.outside {
				if got.Contains(p) {
					t.Errorf("Contains(%v) = true", p)
				}
			}
			if b := got.TightBounds(); !rectNear(b, tt.bounds, 1e-9) {
				t.Errorf("TightBounds = %v, want %v", b, tt.bounds)
			}
		})
	}
}

func rectNear(a, b geom.Rect, eps float64) bool {
	return math.Abs(a.Min.X-b.Min.X) <= eps && math.Abs(a.Min.Y-b.Min.Y) <= eps &&
		math.Abs(a.Max.X-b.Max.X) <= eps && math.Abs(a.Max.Y-b.Max.Y) <= eps
}

func TestToFillJoins(t *testing.T) {
	// The outer corner of a width 2 right-angle turn is at (11, -1).
	nearCorner := geom.Pt(10.9, -0.9)
	midCorner := geom.Pt(10.6, -0.6)
	straight := geom.Pt(5, -0.5)

	tests := []struct {
		name       string
		style      Style
		nearInside bool
		midInside  bool
	}{
		{"miter", DefaultStyle().WithWidth(2), true, true},
		// sqrt(2) exceeds a limit of 1.4, so the corner is beveled.
		{"miter limited", DefaultStyle().WithWidth(2).WithMiterLimit(1.4), false, false},
		{"miter at limit 1.5", DefaultStyle().WithWidth(2).WithMiterLimit(1.5), true, true},
		{"bevel", DefaultStyle().WithWidth(2).WithJoin(JoinBevel), false, false},
		{"round", DefaultStyle().WithWidth(2).WithJoin(JoinRound), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToFill(corner(), tt.style)
			if c := got.Contains(nearCorner); c != tt.nearInside {
				t.Errorf("Contains(%v) = %v, want %v", nearCorner, c, tt.nearInside)
			}
			if c := got.Contains(midCorner); c != tt.midInside {
				t.Errorf("Contains(%v) = %v, want %v", midCorner, c, tt.midInside)
			}
			if !got.Contains(straight) {
				t.Errorf("Contains(%v) = false", straight)
			}
		})
	}
}

func TestToFillMiterFallsBackToBevel(t *testing.T) {
	bevel := ToFill(corner(), DefaultStyle().WithWidth(2).WithJoin(JoinBevel))
	limited := ToFill(corner(), DefaultStyle().WithWidth(2).WithMiterLimit(1))
	if diff := cmp.Diff(bevel.Elements(), limited.Elements()); diff != "" {
		t.Errorf("limited miter differs from bevel (-bevel +miter):\n%s", diff)
	}
}

func TestToFillMiterLimitThreshold(t *testing.T) {
	// The turn back toward (0, 2) leaves an interior angle of about 11.3
	// degrees, a miter ratio near 10.
	acute := line(0, 0, 10, 0)
	acute.LineTo(0, 2)

	tests := []struct {
		name  string
		path  func() *geom.Path
		spike bool
	}{
		{"acute corner bevels", func() *geom.Path { return acute.Clone() }, false},
		{"right angle keeps its spike", corner, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bevel := ToFill(tt.path(), DefaultStyle().WithWidth(2).WithJoin(JoinBevel))
			miter := ToFill(tt.path(), DefaultStyle().WithWidth(2).WithMiterLimit(4))
			same := cmp.Equal(bevel.Elements(), miter.Elements())
			if same == tt.spike {
				t.Errorf("miter equals bevel = %v, want %v", same, !tt.spike)
			}
		})
	}

	// The right-angle miter reaches the outer corner at (11, -1).
	miter := ToFill(corner(), DefaultStyle().WithWidth(2).WithMiterLimit(4))
	if !miter.Contains(geom.Pt(10.9, -0.9)) {
		t.Error("miter join misses its tip")
	}
	bevel := ToFill(corner(), DefaultStyle().WithWidth(2).WithJoin(JoinBevel))
	if bevel.Contains(geom.Pt(10.9, -0.9)) {
		t.Error("bevel join covers the miter tip")
	}
}

func TestToFillClosedRing(t *testing.T) {
	p := geom.NewRectangle(0, 0, 10, 10)
	got := ToFill(p, DefaultStyle().WithWidth(2))

	for _, pt := range []geom.Point{{X: 0.5, Y: 5}, {X: -0.5, Y: 5}, {X: 5, Y: 10.5}, {X: -0.9, Y: -0.9}} {
		if !got.Contains(pt) {
			t.Errorf("ring Contains(%v) = false", pt)
		}
	}
	for _, pt := range []geom.Point{{X: 5, Y: 5}, {X: -1.5, Y: 5}, {X: 11.5, Y: 5}} {
		if got.Contains(pt) {
			t.Errorf("ring Contains(%v) = true", pt)
		}
	}
}

func TestToFillDots(t *testing.T) {
	p := line(5, 5, 5, 5)

	sq := ToFill(p, DefaultStyle().WithWidth(4))
	if want := geom.NewRect(geom.Pt(3, 3), geom.Pt(7, 7)); sq.Bounds() != want {
		t.Errorf("square dot bounds = %v, want %v", sq.Bounds(), want)
	}

	round := ToFill(p, DefaultStyle().WithWidth(4).WithCap(CapRound))
	if !round.Contains(geom.Pt(5, 5)) || !round.Contains(geom.Pt(6.9, 5)) {
		t.Error("round dot misses its center or rim")
	}
	if round.Contains(geom.Pt(6.5, 6.5)) {
		t.Error("round dot covers its bounding square corner")
	}
}

func TestToFillDashed(t *testing.T) {
	style := DefaultStyle().WithWidth(2).WithCap(CapButt).WithDash(0, 4, 2)
	got := ToFill(line(0, 0, 10, 0), style)

	for _, x := range []float64{1, 3.9, 6.1, 9.9} {
		if !got.Contains(geom.Pt(x, 0.5)) {
			t.Errorf("dash missing at x=%v", x)
		}
	}
	for _, x := range []float64{4.1, 5.9, 10.1} {
		if got.Contains(geom.Pt(x, 0.5)) {
			t.Errorf("gap filled at x=%v", x)
		}
	}
}

func TestConverterTolerance(t *testing.T) {
	circle := geom.NewEllipse(0, 0, 100, 100)
	style := DefaultStyle().WithWidth(3)

	coarse := NewConverter()
	fine := NewConverter()
	fine.SetTolerance(0.01)
	fine.SetTolerance(-1) // ignored
	if fine.Tolerance() != 0.01 {
		t.Fatalf("Tolerance = %v, want 0.01", fine.Tolerance())
	}

	a := coarse.ToFill(circle, style).Len()
	b := fine.ToFill(circle, style).Len()
	if b <= a {
		t.Errorf("finer tolerance produced %d elements, coarse %d", b, a)
	}

	var zero Converter
	if zero.Tolerance() != geom.DefaultTolerance {
		t.Errorf("zero Converter tolerance = %v", zero.Tolerance())
	}
}

func TestToFillDoesNotMutateInput(t *testing.T) {
	p := corner()
	before := p.Elements()
	ToFill(p, DefaultStyle().WithDash(1, 3, 1))
	if diff := cmp.Diff(before, p.Elements()); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}
