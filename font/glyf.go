package font

import (
	"github.com/nullpops/awt/geom"
)

// MaxComponentDepth bounds composite glyph nesting. A composite nested
// deeper than this is malformed.
const MaxComponentDepth = 16

// Simple glyph flags.
const (
	flagOnCurve = 0x01
	flagXShort  = 0x02
	flagYShort  = 0x04
	flagRepeat  = 0x08
	flagXSame   = 0x10
	flagYSame   = 0x20
)

// Composite glyph component flags.
const (
	compArgsAreWords   = 0x0001
	compArgsAreXY      = 0x0002
	compHaveScale      = 0x0008
	compMoreComponents = 0x0020
	compHaveXYScale    = 0x0040
	compHaveTwoByTwo   = 0x0080
	compUseMyMetrics   = 0x0200
	compScaledOffset   = 0x0800
	compUnscaledOffset = 0x1000
)

func parseLoca(b []byte, numGlyphs int, long bool, glyfLen int) ([]uint32, error) {
	size := 2
	if long {
		size = 4
	}
	if len(b) < size*(numGlyphs+1) {
		return nil, malformed("loca", "need %d entries, have %d bytes", numGlyphs+1, len(b))
	}
	r := newReader(b)
	offs := make([]uint32, numGlyphs+1)
	for i := range offs {
		if long {
			offs[i] = r.u32()
		} else {
			offs[i] = uint32(r.u16()) * 2
		}
		if i > 0 && offs[i] < offs[i-1] {
			return nil, malformed("loca", "offsets decrease at glyph %d", i)
		}
	}
	if int64(offs[numGlyphs]) > int64(glyfLen) {
		return nil, malformed("loca", "last offset %d past glyf length %d", offs[numGlyphs], glyfLen)
	}
	return offs, nil
}

// glyphPoint is an outline point in font units.
type glyphPoint struct {
	x, y float64
	on   bool
}

// glyphData is a decoded glyf entry before conversion to a path. Points
// are kept flat so composite point matching can index them.
type glyphData struct {
	points []glyphPoint
	ends   []int // index of the last point of each contour
	// metricsFrom is the glyph whose horizontal metrics apply, set by
	// USE_MY_METRICS on a component.
	metricsFrom GlyphID
}

// glyfDecoder resolves composites recursively. inProgress holds the
// chain of glyphs being decoded so a reference back into it is a cycle.
type glyfDecoder struct {
	glyf       []byte
	loca       []uint32
	inProgress map[GlyphID]bool
}

func (d *glyfDecoder) decode(gid GlyphID, depth int) (*glyphData, error) {
	if int(gid)+1 >= len(d.loca) {
		return nil, malformed("glyf", "component references glyph %d of %d", gid, len(d.loca)-1)
	}
	if depth > MaxComponentDepth {
		return nil, malformed("glyf", "composite nesting deeper than %d at glyph %d", MaxComponentDepth, gid)
	}
	if d.inProgress[gid] {
		return nil, malformed("glyf", "component cycle through glyph %d", gid)
	}

	start, end := d.loca[gid], d.loca[gid+1]
	if start == end {
		return &glyphData{metricsFrom: gid}, nil
	}
	b := d.glyf[start:end]
	r := newReader(b)
	numContours := r.i16()
	r.skip(8) // bounding box
	if !r.ok() {
		return nil, malformed("glyf", "glyph %d header truncated", gid)
	}
	if numContours >= 0 {
		g, err := decodeSimple(r, int(numContours))
		if err != nil {
			return nil, malformed("glyf", "glyph %d: %v", gid, err)
		}
		g.metricsFrom = gid
		return g, nil
	}

	d.inProgress[gid] = true
	defer delete(d.inProgress, gid)
	return d.decodeComposite(gid, r, depth)
}

type glyfError string

func (e glyfError) Error() string { return string(e) }

func decodeSimple(r *reader, numContours int) (*glyphData, error) {
	g := &glyphData{ends: make([]int, numContours)}
	prev := -1
	for i := range g.ends {
		g.ends[i] = int(r.u16())
		if g.ends[i] < prev {
			return nil, glyfError("contour end points not increasing")
		}
		prev = g.ends[i]
	}
	if numContours == 0 {
		return g, nil
	}
	n := g.ends[numContours-1] + 1
	r.skip(int(r.u16())) // instructions
	if !r.ok() {
		return nil, glyfError("truncated before flags")
	}

	flags := make([]byte, n)
	for i := 0; i < n; {
		f := r.u8()
		flags[i] = f
		i++
		if f&flagRepeat != 0 {
			for count := int(r.u8()); count > 0 && i < n; count-- {
				flags[i] = f
				i++
			}
		}
		if !r.ok() {
			return nil, glyfError("truncated flags")
		}
	}

	g.points = make([]glyphPoint, n)
	var x int
	for i, f := range flags {
		switch {
		case f&flagXShort != 0:
			dx := int(r.u8())
			if f&flagXSame == 0 {
				dx = -dx
			}
			x += dx
		case f&flagXSame == 0:
			x += int(r.i16())
		}
		g.points[i].x = float64(x)
		g.points[i].on = f&flagOnCurve != 0
	}
	var y int
	for i, f := range flags {
		switch {
		case f&flagYShort != 0:
			dy := int(r.u8())
			if f&flagYSame == 0 {
				dy = -dy
			}
			y += dy
		case f&flagYSame == 0:
			y += int(r.i16())
		}
		g.points[i].y = float64(y)
	}
	if !r.ok() {
		return nil, glyfError("truncated coordinates")
	}
	return g, nil
}

func (d *glyfDecoder) decodeComposite(gid GlyphID, r *reader, depth int) (*glyphData, error) {
	out := &glyphData{metricsFrom: gid}
	for {
		flags := r.u16()
		child := GlyphID(r.u16())
		var arg1, arg2 int
		switch {
		case flags&compArgsAreWords != 0 && flags&compArgsAreXY != 0:
			arg1, arg2 = int(r.i16()), int(r.i16())
		case flags&compArgsAreWords != 0:
			arg1, arg2 = int(r.u16()), int(r.u16())
		case flags&compArgsAreXY != 0:
			arg1, arg2 = int(r.i8()), int(r.i8())
		default:
			arg1, arg2 = int(r.u8()), int(r.u8())
		}

		// x' = a*x + c*y, y' = b*x + d*y
		a, b, c, dd := 1.0, 0.0, 0.0, 1.0
		switch {
		case flags&compHaveScale != 0:
			a = r.f2dot14()
			dd = a
		case flags&compHaveXYScale != 0:
			a = r.f2dot14()
			dd = r.f2dot14()
		case flags&compHaveTwoByTwo != 0:
			a = r.f2dot14()
			b = r.f2dot14()
			c = r.f2dot14()
			dd = r.f2dot14()
		}
		if !r.ok() {
			return nil, malformed("glyf", "composite glyph %d truncated", gid)
		}

		comp, err := d.decode(child, depth+1)
		if err != nil {
			return nil, err
		}

		pts := make([]glyphPoint, len(comp.points))
		for i, p := range comp.points {
			pts[i] = glyphPoint{x: a*p.x + c*p.y, y: b*p.x + dd*p.y, on: p.on}
		}

		var dx, dy float64
		if flags&compArgsAreXY != 0 {
			dx, dy = float64(arg1), float64(arg2)
			if flags&compScaledOffset != 0 && flags&compUnscaledOffset == 0 {
				dx, dy = a*dx+c*dy, b*dx+dd*dy
			}
		} else {
			// Point matching: align the child's point arg2 with the
			// parent's point arg1.
			if arg1 >= len(out.points) || arg2 >= len(pts) {
				return nil, malformed("glyf", "composite glyph %d anchor points %d/%d out of range", gid, arg1, arg2)
			}
			dx = out.points[arg1].x - pts[arg2].x
			dy = out.points[arg1].y - pts[arg2].y
		}

		base := len(out.points)
		for _, p := range pts {
			p.x += dx
			p.y += dy
			out.points = append(out.points, p)
		}
		for _, e := range comp.ends {
			out.ends = append(out.ends, base+e)
		}
		if flags&compUseMyMetrics != 0 {
			out.metricsFrom = comp.metricsFrom
		}

		if flags&compMoreComponents == 0 {
			return out, nil
		}
	}
}

// path converts quadratic TrueType contours into a path. Consecutive
// off-curve points imply an on-curve point at their midpoint.
func (g *glyphData) path() *geom.Path {
	p := geom.NewPath()
	start := 0
	for _, end := range g.ends {
		contour := g.points[start : end+1]
		start = end + 1
		appendContour(p, contour)
	}
	return p
}

func midpoint(a, b glyphPoint) glyphPoint {
	return glyphPoint{x: (a.x + b.x) / 2, y: (a.y + b.y) / 2, on: true}
}

func appendContour(p *geom.Path, c []glyphPoint) {
	n := len(c)
	if n == 0 {
		return
	}
	// Find an on-curve start point, or synthesize one.
	first := -1
	for i, pt := range c {
		if pt.on {
			first = i
			break
		}
	}
	var startPt glyphPoint
	if first < 0 {
		startPt = midpoint(c[0], c[n-1])
		first = 0
	} else {
		startPt = c[first]
		first++
	}
	p.MoveTo(startPt.x, startPt.y)

	var ctrl *glyphPoint
	for k := 0; k < n; k++ {
		pt := c[(first+k)%n]
		if pt == startPt && k == n-1 && ctrl == nil {
			break
		}
		if pt.on {
			if ctrl != nil {
				p.QuadraticTo(ctrl.x, ctrl.y, pt.x, pt.y)
				ctrl = nil
			} else {
				p.LineTo(pt.x, pt.y)
			}
			continue
		}
		if ctrl != nil {
			m := midpoint(*ctrl, pt)
			p.QuadraticTo(ctrl.x, ctrl.y, m.x, m.y)
		}
		cp := pt
		ctrl = &cp
	}
	if ctrl != nil {
		p.QuadraticTo(ctrl.x, ctrl.y, startPt.x, startPt.y)
	}
	p.Close()
}
