package geom

// containsTolerance is the flattening tolerance used for hit testing.
const containsTolerance = 0.01

// Winding returns the winding number of pt relative to the path. Open
// subpaths are treated as implicitly closed. A horizontal ray is cast to
// the right and each crossing edge adds its direction; the half-open rule
// on edge end points counts a vertex shared by two edges once.
func (p *Path) Winding(pt Point) int {
	var winding int
	for _, pl := range p.Polylines(containsTolerance) {
		pl.Edges(true, func(a, b Point) {
			winding += lineWinding(a, b, pt)
		})
	}
	return winding
}

// Contains reports whether pt is inside the path under its winding rule.
func (p *Path) Contains(pt Point) bool {
	return p.ContainsRule(pt, p.rule)
}

// ContainsRule reports whether pt is inside the path under rule.
func (p *Path) ContainsRule(pt Point, rule WindingRule) bool {
	if !pt.IsFinite() {
		return false
	}
	return rule.Inside(p.Winding(pt))
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// SignedArea returns the signed area enclosed by the flattened path using
// the shoelace formula. Open subpaths are implicitly closed. With y down,
// clockwise subpaths on screen give positive area.
func (p *Path) SignedArea() float64 {
	var area float64
	for _, pl := range p.Polylines(containsTolerance) {
		pl.Edges(true, func(a, b Point) {
			area += 0.5 * (a.X*b.Y - b.X*a.Y)
		})
	}
	return area
}
