package awt

import "github.com/nullpops/awt/geom"

// Rasterizer is the host: it fills device-space polygons. Fill must not
// retain op or its slices after returning.
type Rasterizer interface {
	Fill(op *FillOp) error
}

// RasterizerFunc adapts a function to Rasterizer.
type RasterizerFunc func(op *FillOp) error

// Fill calls f(op).
func (f RasterizerFunc) Fill(op *FillOp) error { return f(op) }

// FillOp is one fill submitted to the host.
type FillOp struct {
	// Polygons are closed device-space rings; the last point connects
	// back to the first.
	Polygons [][]geom.Point
	Rule     geom.WindingRule
	// Bounds encloses every polygon.
	Bounds geom.Rect

	Paint     ResolvedPaint
	Composite Composite

	// Clip is the device clip, nil when unbounded. ClipBounds is its
	// bounding box and is only meaningful when Clip is set.
	Clip       *geom.Area
	ClipBounds geom.Rect

	Antialias bool
}

// Visible returns the part of Bounds inside the clip.
func (op *FillOp) Visible() geom.Rect {
	if op.Clip == nil {
		return op.Bounds
	}
	return op.Bounds.Intersect(op.ClipBounds)
}
