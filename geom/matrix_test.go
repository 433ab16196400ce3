package geom

import (
	"errors"
	"math"
	"testing"
)

func approxPoint(a, b Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(10, -3)},
		{"scale", Scale(2, 4)},
		{"rotate", Rotate(0.7)},
		{"shear", Shear(0.3, -0.2)},
		{"composite", Translate(5, 5).Multiply(Rotate(1.1)).Multiply(Scale(3, 0.5))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := tt.m.Invert()
			if err != nil {
				t.Fatalf("Invert() error = %v", err)
			}
			p := Pt(3.5, -7.25)
			got := inv.TransformPoint(tt.m.TransformPoint(p))
			if !approxPoint(got, p, 1e-9) {
				t.Errorf("inverse round trip = %v, want %v", got, p)
			}
		})
	}
}

func TestMatrixInvertDegenerate(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"zero scale x", Scale(0, 1)},
		{"zero matrix", Matrix{}},
		{"collinear rows", Matrix{A: 1, B: 2, D: 2, E: 4}},
		{"nan", Matrix{A: math.NaN(), E: 1}},
		{"inf translate", Matrix{A: 1, E: 1, C: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.Invert()
			if !errors.Is(err, ErrNoninvertible) {
				t.Fatalf("Invert() error = %v, want ErrNoninvertible", err)
			}
			var ne *NoninvertibleTransformError
			if !errors.As(err, &ne) {
				t.Errorf("error %T is not *NoninvertibleTransformError", err)
			}
		})
	}
}

func TestQuadrantRotateExact(t *testing.T) {
	tests := []struct {
		n    int
		want Point
	}{
		{0, Pt(1, 0)},
		{1, Pt(0, 1)},
		{2, Pt(-1, 0)},
		{3, Pt(0, -1)},
		{-1, Pt(0, -1)},
		{5, Pt(0, 1)},
	}
	for _, tt := range tests {
		got := QuadrantRotate(tt.n).TransformPoint(Pt(1, 0))
		if got != tt.want {
			t.Errorf("QuadrantRotate(%d) maps (1,0) to %v, want %v", tt.n, got, tt.want)
		}
	}
	if got := Rotate(math.Pi / 2).TransformPoint(Pt(1, 0)); got != Pt(0, 1) {
		t.Errorf("Rotate(pi/2) maps (1,0) to %v, want exact (0,1)", got)
	}
}

func TestRotateAbout(t *testing.T) {
	m := RotateAbout(math.Pi, 5, 5)
	if got := m.TransformPoint(Pt(5, 5)); !approxPoint(got, Pt(5, 5), 1e-12) {
		t.Errorf("anchor moved to %v", got)
	}
	if got := m.TransformPoint(Pt(6, 5)); !approxPoint(got, Pt(4, 5), 1e-12) {
		t.Errorf("RotateAbout(pi) maps (6,5) to %v, want (4,5)", got)
	}
}

func samplePath() *Path {
	p := NewPath()
	p.MoveTo(1, 2)
	p.LineTo(10, 2)
	p.QuadraticTo(12, 6, 10, 10)
	p.CubicTo(8, 12, 3, 12, 1, 10)
	p.Close()
	return p
}

func elementPoints(p *Path) []Point {
	var pts []Point
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			pts = append(pts, e.Point)
		case LineTo:
			pts = append(pts, e.Point)
		case QuadTo:
			pts = append(pts, e.Control, e.Point)
		case CubicTo:
			pts = append(pts, e.Control1, e.Control2, e.Point)
		}
	}
	return pts
}

func TestTransformComposition(t *testing.T) {
	mats := []Matrix{
		Identity(),
		Translate(3, -4),
		Scale(2, 0.5),
		Rotate(0.3),
		Shear(0.4, 0.1),
		Translate(1, 1).Multiply(Rotate(-2)).Multiply(Scale(-1, 3)),
	}
	p := samplePath()
	for i, m := range mats {
		for j, n := range mats {
			twice := p.Transform(m).Transform(n)
			once := p.Transform(n.Multiply(m))
			a, b := elementPoints(twice), elementPoints(once)
			if len(a) != len(b) {
				t.Fatalf("M%d,N%d: point count %d != %d", i, j, len(a), len(b))
			}
			for k := range a {
				if !approxPoint(a[k], b[k], 1e-9) {
					t.Errorf("M%d,N%d: point %d = %v, want %v", i, j, k, a[k], b[k])
				}
			}
		}
	}
}

func TestTransformDoesNotMutate(t *testing.T) {
	p := samplePath()
	before := elementPoints(p)
	_ = p.Transform(Scale(3, 3))
	after := elementPoints(p)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input path mutated at point %d: %v -> %v", i, before[i], after[i])
		}
	}
}

func TestMatrixScaleFactor(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"identity", Identity(), 1},
		{"uniform", Scale(3, 3), 3},
		{"non-uniform", Scale(2, 5), 5},
		{"rotated", Rotate(0.8).Multiply(Scale(4, 1)), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.ScaleFactor(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScaleFactor() = %v, want %v", got, tt.want)
			}
		})
	}
}
