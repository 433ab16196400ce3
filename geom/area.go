package geom

import (
	"fmt"
	"math"
	"sync"

	"github.com/nullpops/awt/internal/logging"
)

// areaTolerance is the flattening tolerance used when a path is resolved
// into an Area.
const areaTolerance = 0.05

// Op is a boolean region operation.
type Op uint8

const (
	OpUnion Op = iota
	OpIntersect
	OpSubtract
	OpXor
)

func (op Op) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpIntersect:
		return "intersect"
	case OpSubtract:
		return "subtract"
	case OpXor:
		return "xor"
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

func (op Op) apply(a, b bool) bool {
	switch op {
	case OpIntersect:
		return a && b
	case OpSubtract:
		return a && !b
	case OpXor:
		return a != b
	}
	return a || b
}

// Area is an immutable region of the plane. It is built from a path and
// resolved on first use into a canonical set of non-overlapping
// trapezoids, ordered top to bottom and left to right. Self-intersections
// are removed and contour orientation no longer matters once resolved.
//
// Boolean operations return new Areas; an Area is never modified after
// construction and is safe for concurrent use.
type Area struct {
	src  *Path
	once sync.Once
	tr   []trap
	err  error
}

// NewArea returns the region enclosed by p under p's winding rule. Open
// subpaths are implicitly closed. The path is copied.
func NewArea(p *Path) *Area {
	if p == nil {
		return EmptyArea()
	}
	return &Area{src: p.Clone()}
}

// EmptyArea returns a region containing no points.
func EmptyArea() *Area {
	return resolvedArea(nil)
}

// RectArea returns the region covered by r.
func RectArea(r Rect) *Area {
	if r.IsEmpty() {
		return EmptyArea()
	}
	return resolvedArea([]trap{{
		y0: r.Min.Y, y1: r.Max.Y,
		xl0: r.Min.X, xl1: r.Min.X,
		xr0: r.Max.X, xr1: r.Max.X,
	}})
}

func resolvedArea(tr []trap) *Area {
	a := &Area{}
	a.once.Do(func() { a.tr = tr })
	return a
}

func (a *Area) resolve() ([]trap, error) {
	a.once.Do(func() {
		if a.src == nil {
			return
		}
		if !a.src.IsFinite() {
			a.err = &DegenerateGeometryError{Reason: "non-finite coordinate"}
			return
		}
		var b edgesBuilder
		b.addPath(a.src, areaTolerance, 0)
		rule := a.src.rule
		a.tr = sweep(&b, func(w [2]int) bool { return rule.Inside(w[0]) })
		logging.Logger().Debug("geom: area resolved",
			"edges", len(b.edges), "trapezoids", len(a.tr))
	})
	return a.tr, a.err
}

// Canonical resolves the area and returns it, or the error that prevented
// resolution.
func (a *Area) Canonical() (*Area, error) {
	if _, err := a.resolve(); err != nil {
		return nil, err
	}
	return a, nil
}

// traps returns the resolved trapezoids. An unresolvable area is empty.
func (a *Area) traps() []trap {
	tr, _ := a.resolve()
	return tr
}

// BooleanOp combines a and b. Both operands are canonicalized first; an
// operand with non-finite coordinates yields *DegenerateGeometryError.
func BooleanOp(a, b *Area, op Op) (*Area, error) {
	ta, err := a.resolve()
	if err != nil {
		return nil, withOperand(err, "a")
	}
	tb, err := b.resolve()
	if err != nil {
		return nil, withOperand(err, "b")
	}

	// Fast paths that need no sweep.
	switch {
	case len(tb) == 0 && op != OpIntersect:
		return resolvedArea(ta), nil
	case len(ta) == 0 && (op == OpUnion || op == OpXor):
		return resolvedArea(tb), nil
	case len(ta) == 0 || len(tb) == 0:
		return EmptyArea(), nil
	}

	var eb edgesBuilder
	eb.addTraps(ta, 0)
	eb.addTraps(tb, 1)
	tr := sweep(&eb, func(w [2]int) bool { return op.apply(w[0] != 0, w[1] != 0) })
	logging.Logger().Debug("geom: boolean op",
		"op", op.String(), "a", len(ta), "b", len(tb), "result", len(tr))
	return resolvedArea(tr), nil
}

func withOperand(err error, operand string) error {
	if dg, ok := err.(*DegenerateGeometryError); ok {
		return &DegenerateGeometryError{Operand: operand, Reason: dg.Reason}
	}
	return err
}

// Union returns a ∪ b.
func (a *Area) Union(b *Area) (*Area, error) { return BooleanOp(a, b, OpUnion) }

// Intersect returns a ∩ b.
func (a *Area) Intersect(b *Area) (*Area, error) { return BooleanOp(a, b, OpIntersect) }

// Subtract returns a − b.
func (a *Area) Subtract(b *Area) (*Area, error) { return BooleanOp(a, b, OpSubtract) }

// Xor returns the points in exactly one of a and b.
func (a *Area) Xor(b *Area) (*Area, error) { return BooleanOp(a, b, OpXor) }

// IsEmpty reports whether the area contains no points.
func (a *Area) IsEmpty() bool {
	return len(a.traps()) == 0
}

// IsRectangular reports whether the area is a single axis-aligned
// rectangle.
func (a *Area) IsRectangular() bool {
	tr := a.traps()
	if len(tr) != 1 {
		return false
	}
	t := tr[0]
	return t.xl0 == t.xl1 && t.xr0 == t.xr1
}

// Bounds returns the bounding box of the area.
func (a *Area) Bounds() Rect {
	b := newBoundsAcc()
	for _, t := range a.traps() {
		b.add(Pt(math.Min(t.xl0, t.xl1), t.y0))
		b.add(Pt(math.Max(t.xr0, t.xr1), t.y1))
	}
	return b.rect()
}

// Contains reports whether pt lies inside the area. Top and left edges are
// inside, bottom and right edges are outside.
func (a *Area) Contains(pt Point) bool {
	for _, t := range a.traps() {
		if t.y0 > pt.Y {
			break
		}
		if t.contains(pt) {
			return true
		}
	}
	return false
}

// Size returns the enclosed area.
func (a *Area) Size() float64 {
	var s float64
	for _, t := range a.traps() {
		s += t.area()
	}
	return s
}

// Equal reports whether a and b cover the same region, up to a symmetric
// difference of at most eps square units.
func (a *Area) Equal(b *Area, eps float64) bool {
	x, err := BooleanOp(a, b, OpXor)
	if err != nil {
		return false
	}
	return x.Size() <= eps
}

// Path returns the area as a path of closed trapezoid outlines, all
// oriented clockwise on screen, using the non-zero rule.
func (a *Area) Path() *Path {
	p := NewPathRule(NonZero)
	for _, t := range a.traps() {
		p.MoveTo(t.xl0, t.y0)
		p.LineTo(t.xr0, t.y0)
		p.LineTo(t.xr1, t.y1)
		p.LineTo(t.xl1, t.y1)
		p.Close()
	}
	return p
}

// Polygons returns the trapezoid outlines as point lists.
func (a *Area) Polygons() [][]Point {
	tr := a.traps()
	out := make([][]Point, 0, len(tr))
	for _, t := range tr {
		out = append(out, []Point{
			{t.xl0, t.y0}, {t.xr0, t.y0}, {t.xr1, t.y1}, {t.xl1, t.y1},
		})
	}
	return out
}

// Transform returns the area mapped by m. Non-finite matrices produce an
// area whose resolution fails.
func (a *Area) Transform(m Matrix) *Area {
	if a.IsEmpty() {
		return EmptyArea()
	}
	if m.IsTranslation() {
		tr := append([]trap(nil), a.traps()...)
		for i := range tr {
			tr[i].y0 += m.F
			tr[i].y1 += m.F
			tr[i].xl0 += m.C
			tr[i].xl1 += m.C
			tr[i].xr0 += m.C
			tr[i].xr1 += m.C
		}
		if m.IsFinite() {
			return resolvedArea(tr)
		}
	}
	return NewArea(a.Path().Transform(m))
}
