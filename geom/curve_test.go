package geom

import (
	"math"
	"testing"
)

func TestCurveLength(t *testing.T) {
	const k = 0.5522847498
	tests := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"line", Line{Pt(0, 0), Pt(3, 4)}.Length(), 5, 1e-12},
		{"straight quad", QuadBez{Pt(0, 0), Pt(1, 0), Pt(2, 0)}.Length(), 2, 1e-9},
		{"arched quad", QuadBez{Pt(0, 0), Pt(1, 1), Pt(2, 0)}.Length(), math.Sqrt2 + math.Asinh(1), 1e-5},
		{"straight cubic", CubicBez{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}.Length(), 3, 1e-9},
		{"quarter circle", CubicBez{Pt(1, 0), Pt(1, k), Pt(k, 1), Pt(0, 1)}.Length(), math.Pi / 2, 1e-3},
		{"point", CubicBez{Pt(2, 2), Pt(2, 2), Pt(2, 2), Pt(2, 2)}.Length(), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > tt.tol {
				t.Errorf("Length = %v, want %v ± %v", tt.got, tt.want, tt.tol)
			}
		})
	}
}

func TestCubicBoundingBoxUsesExtrema(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	bb := c.BoundingBox()
	// The curve peaks at y = 7.5 for t = 0.5, below the control points.
	if math.Abs(bb.Max.Y-7.5) > 1e-9 || bb.Min.Y != 0 || bb.Max.X != 10 {
		t.Errorf("BoundingBox = %v, want (0,0)-(10,7.5)", bb)
	}
}

func TestQuadRaiseMatches(t *testing.T) {
	q := QuadBez{Pt(0, 0), Pt(4, 8), Pt(8, 0)}
	c := q.Raise()
	for _, tt := range []float64{0, 0.25, 0.5, 0.9, 1} {
		if d := q.Eval(tt).Distance(c.Eval(tt)); d > 1e-12 {
			t.Errorf("t=%v: quad and raised cubic differ by %v", tt, d)
		}
	}
}
