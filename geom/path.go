package geom

// PathElement represents a single element in a path.
// The set of variants is closed: MoveTo, LineTo, QuadTo, CubicTo, Close.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// WindingRule decides which regions enclosed by a path count as inside.
type WindingRule uint8

const (
	// NonZero treats a point as inside when its winding number is not zero.
	NonZero WindingRule = iota
	// EvenOdd treats a point as inside when its winding number is odd.
	EvenOdd
)

// String returns the legacy name of the rule.
func (r WindingRule) String() string {
	if r == EvenOdd {
		return "even-odd"
	}
	return "non-zero"
}

// Inside reports whether winding number w is inside under r.
func (r WindingRule) Inside(w int) bool {
	if r == EvenOdd {
		return w&1 != 0
	}
	return w != 0
}

// Path represents a vector path.
//
// A Path is always well-formed: every drawing element follows a MoveTo.
// A LineTo issued without a current point behaves like MoveTo, a curve
// issued without a current point first moves to its first control point,
// and a drawing element issued right after Close implicitly moves to the
// start of the subpath that was just closed. Close with no open subpath
// does nothing. Consecutive MoveTo calls collapse into the last one.
//
// Paths are mutable and owned by whoever built them. Share them with
// Clone; Elements returns a copy.
type Path struct {
	elements []PathElement
	rule     WindingRule
	start    Point // start of the current subpath
	current  Point
	has      bool // current point is valid
	open     bool // current subpath has drawing elements and no Close
	closed   bool // last element is Close
}

// NewPath creates a new empty path with the non-zero winding rule.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// NewPathRule creates a new empty path with the given winding rule.
func NewPathRule(rule WindingRule) *Path {
	p := NewPath()
	p.rule = rule
	return p
}

// Rule returns the winding rule used by Contains and by fills.
func (p *Path) Rule() WindingRule {
	return p.rule
}

// SetRule sets the winding rule.
func (p *Path) SetRule(rule WindingRule) {
	p.rule = rule
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	if n := len(p.elements); n > 0 {
		if _, ok := p.elements[n-1].(MoveTo); ok {
			p.elements[n-1] = MoveTo{Point: pt}
			p.start, p.current = pt, pt
			return
		}
	}
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.has = true
	p.open = false
	p.closed = false
}

// ensureSubpath makes sure a drawing element has a subpath to extend.
func (p *Path) ensureSubpath(first Point) {
	switch {
	case !p.has:
		p.MoveTo(first.X, first.Y)
	case p.closed:
		p.MoveTo(p.start.X, p.start.Y)
	}
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	if !p.has {
		p.MoveTo(x, y)
		return
	}
	p.ensureSubpath(pt)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	p.open = true
}

// QuadraticTo draws a quadratic Bezier curve through control (cx, cy)
// to (x, y).
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	ctrl := Pt(cx, cy)
	pt := Pt(x, y)
	p.ensureSubpath(ctrl)
	p.elements = append(p.elements, QuadTo{Control: ctrl, Point: pt})
	p.current = pt
	p.open = true
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	ctrl1 := Pt(c1x, c1y)
	ctrl2 := Pt(c2x, c2y)
	pt := Pt(x, y)
	p.ensureSubpath(ctrl1)
	p.elements = append(p.elements, CubicTo{
		Control1: ctrl1,
		Control2: ctrl2,
		Point:    pt,
	})
	p.current = pt
	p.open = true
}

// Close closes the current subpath by drawing a line to its start point.
// It does nothing when no subpath is open.
func (p *Path) Close() {
	if !p.has || p.closed {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
	p.open = false
	p.closed = true
}

// Reset removes all elements from the path. The winding rule is kept.
func (p *Path) Reset() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
	p.has, p.open, p.closed = false, false, false
}

// Elements returns a copy of the path elements.
func (p *Path) Elements() []PathElement {
	out := make([]PathElement, len(p.elements))
	copy(out, p.elements)
	return out
}

// Len returns the number of elements.
func (p *Path) Len() int {
	return len(p.elements)
}

// IsEmpty reports whether the path has no drawing elements.
func (p *Path) IsEmpty() bool {
	for _, e := range p.elements {
		if _, ok := e.(MoveTo); !ok {
			return false
		}
	}
	return true
}

// CurrentPoint returns the current point and whether it is set.
func (p *Path) CurrentPoint() (Point, bool) {
	return p.current, p.has
}

// Append adds the elements of other to p. When connect is true and p has a
// current point, the leading MoveTo of other becomes a LineTo, the way the
// legacy Path2D.append does.
func (p *Path) Append(other *Path, connect bool) {
	for i, elem := range other.elements {
		switch e := elem.(type) {
		case MoveTo:
			if i == 0 && connect && p.has && !p.closed {
				if e.Point != p.current {
					p.LineTo(e.Point.X, e.Point.Y)
				}
				continue
			}
			p.MoveTo(e.Point.X, e.Point.Y)
		case LineTo:
			p.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			p.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			p.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			p.Close()
		}
	}
}

// Transform returns a new path with the matrix applied to every control
// and end point. The receiver is not modified.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPathRule(p.rule)
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			ctrl1 := m.TransformPoint(e.Control1)
			ctrl2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := *p
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	return &result
}

// Subpaths returns the number of subpaths that have at least one element.
func (p *Path) Subpaths() int {
	n := 0
	for _, e := range p.elements {
		if _, ok := e.(MoveTo); ok {
			n++
		}
	}
	return n
}

// IsFinite reports whether every coordinate in the path is finite.
func (p *Path) IsFinite() bool {
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			if !e.Point.IsFinite() {
				return false
			}
		case LineTo:
			if !e.Point.IsFinite() {
				return false
			}
		case QuadTo:
			if !e.Control.IsFinite() || !e.Point.IsFinite() {
				return false
			}
		case CubicTo:
			if !e.Control1.IsFinite() || !e.Control2.IsFinite() || !e.Point.IsFinite() {
				return false
			}
		}
	}
	return true
}
