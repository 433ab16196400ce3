package geom

import (
	"math"
	"sort"
)

// edge is a non-horizontal polygon edge stored top to bottom (ya < yb).
// dir is +1 when the source edge ran downward and -1 when it ran upward.
type edge struct {
	xa, ya, xb, yb float64
	dir            int
	operand        int
}

func (e edge) xAt(y float64) float64 {
	return e.xa + (y-e.ya)*(e.xb-e.xa)/(e.yb-e.ya)
}

// trap is a trapezoid with horizontal top and bottom. The left side runs
// from (xl0, y0) to (xl1, y1) and the right side from (xr0, y0) to (xr1, y1).
type trap struct {
	y0, y1   float64
	xl0, xl1 float64
	xr0, xr1 float64
}

func (t trap) area() float64 {
	return 0.5 * ((t.xr0 - t.xl0) + (t.xr1 - t.xl1)) * (t.y1 - t.y0)
}

func (t trap) contains(pt Point) bool {
	if pt.Y < t.y0 || pt.Y >= t.y1 {
		return false
	}
	f := (pt.Y - t.y0) / (t.y1 - t.y0)
	xl := t.xl0 + f*(t.xl1-t.xl0)
	xr := t.xr0 + f*(t.xr1-t.xr0)
	return pt.X >= xl && pt.X < xr
}

// edgesBuilder collects sweep edges and tracks the coordinate magnitude
// used to scale comparison epsilons.
type edgesBuilder struct {
	edges  []edge
	maxAbs float64
}

func (b *edgesBuilder) add(p0, p1 Point, operand int) {
	if p0.Y == p1.Y {
		return
	}
	b.maxAbs = math.Max(b.maxAbs, math.Max(math.Max(math.Abs(p0.X), math.Abs(p0.Y)),
		math.Max(math.Abs(p1.X), math.Abs(p1.Y))))
	if p0.Y < p1.Y {
		b.edges = append(b.edges, edge{p0.X, p0.Y, p1.X, p1.Y, 1, operand})
	} else {
		b.edges = append(b.edges, edge{p1.X, p1.Y, p0.X, p0.Y, -1, operand})
	}
}

func (b *edgesBuilder) addPath(p *Path, tolerance float64, operand int) {
	for _, pl := range p.Polylines(tolerance) {
		pl.Edges(true, func(a, c Point) { b.add(a, c, operand) })
	}
}

// addTraps adds the outline of each trapezoid, oriented clockwise on screen.
func (b *edgesBuilder) addTraps(traps []trap, operand int) {
	for _, t := range traps {
		b.add(Pt(t.xl1, t.y1), Pt(t.xl0, t.y0), operand)
		b.add(Pt(t.xr0, t.y0), Pt(t.xr1, t.y1), operand)
	}
}

// crossing is one edge as seen inside a band.
type crossing struct {
	x0, x1, xm float64
	dir        int
	operand    int
}

// sweep decomposes the region where inside reports true into trapezoids.
// Band breaks are placed at every edge end point and every pairwise edge
// intersection, so no two edges cross inside a band. Within a band the
// edges are ordered left to right and the winding number of each operand
// is accumulated. Vertically adjacent trapezoids with collinear sides are
// merged.
func sweep(b *edgesBuilder, inside func(w [2]int) bool) []trap {
	edges := b.edges
	if len(edges) == 0 {
		return nil
	}
	eps := 1e-10 * math.Max(1, b.maxAbs)

	sort.Slice(edges, func(i, j int) bool { return edges[i].ya < edges[j].ya })

	ys := make([]float64, 0, 2*len(edges))
	for _, e := range edges {
		ys = append(ys, e.ya, e.yb)
	}
	ys = append(ys, intersections(edges)...)
	sort.Float64s(ys)
	ys = dedupe(ys, eps)

	var out []trap
	var prevOpen []int // indices into out of traps ending at the previous band
	var active []edge
	next := 0
	row := make([]crossing, 0, 16)

	for i := 0; i+1 < len(ys); i++ {
		y0, y1 := ys[i], ys[i+1]
		ym := 0.5 * (y0 + y1)

		for next < len(edges) && edges[next].ya <= ym {
			active = append(active, edges[next])
			next++
		}
		kept := active[:0]
		for _, e := range active {
			if e.yb > ym {
				kept = append(kept, e)
			}
		}
		active = kept

		row = row[:0]
		for _, e := range active {
			if e.ya > ym {
				continue
			}
			row = append(row, crossing{
				x0: e.xAt(y0), x1: e.xAt(y1), xm: e.xAt(ym),
				dir: e.dir, operand: e.operand,
			})
		}
		sort.Slice(row, func(i, j int) bool {
			if row[i].xm != row[j].xm {
				return row[i].xm < row[j].xm
			}
			return row[i].x0+row[i].x1 < row[j].x0+row[j].x1
		})

		var open []int
		var w [2]int
		in := false
		var left crossing
		for k := 0; k < len(row); {
			// Edges that coincide across the band are applied together so
			// touching intervals do not split into separate trapezoids.
			g := row[k]
			for k < len(row) && math.Abs(row[k].x0-g.x0) <= eps && math.Abs(row[k].x1-g.x1) <= eps {
				w[row[k].operand] += row[k].dir
				k++
			}
			now := inside(w)
			switch {
			case now && !in:
				left = g
			case !now && in:
				t := trap{y0: y0, y1: y1, xl0: left.x0, xl1: left.x1, xr0: g.x0, xr1: g.x1}
				if idx, ok := mergeInto(out, prevOpen, t, eps); ok {
					out[idx].y1 = y1
					out[idx].xl1 = t.xl1
					out[idx].xr1 = t.xr1
					open = append(open, idx)
				} else {
					out = append(out, t)
					open = append(open, len(out)-1)
				}
			}
			in = now
		}
		prevOpen = open
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].y0 != out[j].y0 {
			return out[i].y0 < out[j].y0
		}
		return out[i].xl0 < out[j].xl0
	})
	return out
}

// mergeInto finds a trapezoid from the previous band whose bottom matches
// the top of t and whose sides continue along the same lines.
func mergeInto(out []trap, prevOpen []int, t trap, eps float64) (int, bool) {
	for _, idx := range prevOpen {
		p := out[idx]
		if p.y1 != t.y0 {
			continue
		}
		if math.Abs(p.xl1-t.xl0) > eps || math.Abs(p.xr1-t.xr0) > eps {
			continue
		}
		if collinear(p.xl0, p.y0, p.xl1, p.y1, t.xl1, t.y1, eps) &&
			collinear(p.xr0, p.y0, p.xr1, p.y1, t.xr1, t.y1, eps) {
			return idx, true
		}
	}
	return 0, false
}

// collinear reports whether (x2, y2) lies on the line through the first
// two points, measured as horizontal distance.
func collinear(x0, y0, x1, y1, x2, y2, eps float64) bool {
	x := x0 + (y2-y0)*(x1-x0)/(y1-y0)
	return math.Abs(x-x2) <= eps
}

// intersections returns the y values where two edges cross. Edges must be
// sorted by ya.
func intersections(edges []edge) []float64 {
	var ys []float64
	for i := range edges {
		e := edges[i]
		for j := i + 1; j < len(edges) && edges[j].ya < e.yb; j++ {
			f := edges[j]
			top := math.Max(e.ya, f.ya)
			bot := math.Min(e.yb, f.yb)
			if bot <= top {
				continue
			}
			d0 := e.xAt(top) - f.xAt(top)
			d1 := e.xAt(bot) - f.xAt(bot)
			if (d0 < 0 && d1 > 0) || (d0 > 0 && d1 < 0) {
				ys = append(ys, top+(bot-top)*d0/(d0-d1))
			}
		}
	}
	return ys
}

// dedupe removes values within eps of their predecessor from a sorted slice.
func dedupe(ys []float64, eps float64) []float64 {
	if len(ys) == 0 {
		return ys
	}
	out := ys[:1]
	for _, y := range ys[1:] {
		if y-out[len(out)-1] > eps {
			out = append(out, y)
		}
	}
	return out
}
