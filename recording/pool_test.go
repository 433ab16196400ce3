package recording

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nullpops/awt"
	"github.com/nullpops/awt/geom"
)

func TestResourcePoolPolygons(t *testing.T) {
	pool := NewResourcePool()
	polys := [][]geom.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}},
	}
	ref := pool.AddPolygons(polys)
	got := pool.Polygons(ref)
	if diff := cmp.Diff(polys, got); diff != "" {
		t.Fatalf("Polygons mismatch (-want +got):\n%s", diff)
	}

	// Appending to a stored ring must not spill into its neighbour.
	_ = append(got[0], geom.Point{X: 42, Y: 42})
	if got[1][0] != (geom.Point{X: 5, Y: 5}) {
		t.Errorf("second ring clobbered: %v", got[1])
	}
	if pool.Polygons(PolygonsRef(7)) != nil {
		t.Error("Polygons(invalid) != nil")
	}
}

func TestResourcePoolPaintAndClip(t *testing.T) {
	pool := NewResourcePool()
	pref := pool.AddPaint(awt.SolidPaint(awt.Green))
	rp, ok := pool.Paint(pref)
	if !ok {
		t.Fatal("Paint(ref) not found")
	}
	if c, solid := rp.Solid(); !solid || c != awt.Green {
		t.Errorf("Paint(ref).Solid() = %v, %v; want green", c, solid)
	}
	if _, ok := pool.Paint(PaintRef(InvalidRef)); ok {
		t.Error("Paint(InvalidRef) found")
	}

	clip := geom.RectArea(geom.RectXYWH(0, 0, 2, 2))
	if got := pool.Clip(pool.AddClip(clip)); got != clip {
		t.Error("Clip(ref) returned a different area")
	}
	if pool.Clip(ClipRef(5)) != nil {
		t.Error("Clip(invalid) != nil")
	}

	pool.Clear()
	if pool.PolygonsCount()+pool.PaintCount()+pool.ClipCount() != 0 {
		t.Error("Clear left resources behind")
	}
}

func TestRefValidity(t *testing.T) {
	if !PolygonsRef(0).IsValid() || PolygonsRef(InvalidRef).IsValid() {
		t.Error("PolygonsRef validity wrong")
	}
	if !PaintRef(0).IsValid() || PaintRef(InvalidRef).IsValid() {
		t.Error("PaintRef validity wrong")
	}
	if !ClipRef(0).IsValid() || ClipRef(InvalidRef).IsValid() {
		t.Error("ClipRef validity wrong")
	}
}
