package recording

import (
	"github.com/nullpops/awt"
	"github.com/nullpops/awt/geom"
)

// ResourcePool stores the data recorded commands refer to. Polygons are
// copied on the way in; paints and clip areas are immutable and kept by
// value or pointer.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	polygons [][][]geom.Point
	paints   []awt.ResolvedPaint
	clips    []*geom.Area
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		polygons: make([][][]geom.Point, 0, 64),
		paints:   make([]awt.ResolvedPaint, 0, 16),
		clips:    make([]*geom.Area, 0, 4),
	}
}

// AddPolygons stores a deep copy of polys and returns its reference.
func (p *ResourcePool) AddPolygons(polys [][]geom.Point) PolygonsRef {
	n := 0
	for _, ring := range polys {
		n += len(ring)
	}
	// One backing array for every ring of the set.
	flat := make([]geom.Point, 0, n)
	cp := make([][]geom.Point, len(polys))
	for i, ring := range polys {
		start := len(flat)
		flat = append(flat, ring...)
		cp[i] = flat[start:len(flat):len(flat)]
	}
	p.polygons = append(p.polygons, cp)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PolygonsRef(uint32(len(p.polygons) - 1))
}

// Polygons returns the polygon set for ref, or nil for an invalid ref.
func (p *ResourcePool) Polygons(ref PolygonsRef) [][]geom.Point {
	if int(ref) >= len(p.polygons) {
		return nil
	}
	return p.polygons[ref]
}

// AddPaint stores rp and returns its reference.
func (p *ResourcePool) AddPaint(rp awt.ResolvedPaint) PaintRef {
	p.paints = append(p.paints, rp)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PaintRef(uint32(len(p.paints) - 1))
}

// Paint returns the paint for ref. ok is false for an invalid ref.
func (p *ResourcePool) Paint(ref PaintRef) (rp awt.ResolvedPaint, ok bool) {
	if int(ref) >= len(p.paints) {
		return awt.ResolvedPaint{}, false
	}
	return p.paints[ref], true
}

// AddClip stores a and returns its reference.
func (p *ResourcePool) AddClip(a *geom.Area) ClipRef {
	p.clips = append(p.clips, a)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ClipRef(uint32(len(p.clips) - 1))
}

// Clip returns the area for ref, or nil for an invalid ref.
func (p *ResourcePool) Clip(ref ClipRef) *geom.Area {
	if int(ref) >= len(p.clips) {
		return nil
	}
	return p.clips[ref]
}

// PolygonsCount returns the number of stored polygon sets.
func (p *ResourcePool) PolygonsCount() int { return len(p.polygons) }

// PaintCount returns the number of stored paints.
func (p *ResourcePool) PaintCount() int { return len(p.paints) }

// ClipCount returns the number of stored clips.
func (p *ResourcePool) ClipCount() int { return len(p.clips) }

// Clear removes all resources from the pool, keeping its capacity.
func (p *ResourcePool) Clear() {
	p.polygons = p.polygons[:0]
	p.paints = p.paints[:0]
	p.clips = p.clips[:0]
}
