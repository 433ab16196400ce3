package awt

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/nullpops/awt/font"
	"github.com/nullpops/awt/geom"
	"github.com/nullpops/awt/stroke"
)

// Graphics is a drawing session over a host Rasterizer. It keeps a stack
// of RenderStates and turns every draw call into device-space FillOps.
//
// A Graphics is used from one goroutine at a time.
type Graphics struct {
	host  Rasterizer
	opts  options
	state SessionState
	stack []RenderState
}

// NewGraphics returns an Idle session drawing to host.
func NewGraphics(host Rasterizer, opts ...Option) *Graphics {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Graphics{host: host, opts: o}
}

// Session returns the lifecycle state.
func (g *Graphics) Session() SessionState { return g.state }

// Depth returns the number of outstanding Saves.
func (g *Graphics) Depth() int {
	if len(g.stack) == 0 {
		return 0
	}
	return len(g.stack) - 1
}

func (g *Graphics) check(op string) error {
	switch g.state {
	case Drawing:
		return nil
	case Failed:
		return &StateError{Op: op, State: g.state, Err: ErrSessionFailed}
	}
	return &StateError{Op: op, State: g.state, Err: ErrNotDrawing}
}

func (g *Graphics) top() *RenderState { return &g.stack[len(g.stack)-1] }

// Begin starts a session with the initial state: identity transform, no
// clip, the configured paint, stroke and font, and SrcOver.
func (g *Graphics) Begin() error {
	if g.state != Idle {
		return &StateError{Op: "begin", State: g.state, Err: ErrSessionActive}
	}
	g.stack = append(g.stack[:0], RenderState{
		Transform: geom.Identity(),
		Paint:     clonePaint(g.opts.paint),
		Stroke:    g.opts.stroke.Clone(),
		Composite: SrcOverComposite,
		Font:      g.opts.face,
		Hints:     Hints{Antialias: g.opts.antialias, TextAntialias: g.opts.antialias},
	})
	g.state = Drawing
	return nil
}

// End discards every saved state and returns the session to Idle. It
// also clears a failed session.
func (g *Graphics) End() error {
	if g.state == Idle {
		return &StateError{Op: "end", State: g.state, Err: ErrNotDrawing}
	}
	clear(g.stack)
	g.stack = g.stack[:0]
	g.state = Idle
	return nil
}

// Save pushes a copy of the current state.
func (g *Graphics) Save() error {
	if err := g.check("save"); err != nil {
		return err
	}
	g.stack = append(g.stack, g.top().Clone())
	return nil
}

// Restore pops the state pushed by the matching Save. Without one the
// session fails and Restore returns *UnbalancedStateError.
func (g *Graphics) Restore() error {
	if err := g.check("restore"); err != nil {
		return err
	}
	if len(g.stack) <= 1 {
		g.state = Failed
		Logger().Warn("awt: restore without save", slog.Int("depth", len(g.stack)))
		return &UnbalancedStateError{Depth: len(g.stack)}
	}
	g.stack[len(g.stack)-1] = RenderState{}
	g.stack = g.stack[:len(g.stack)-1]
	return nil
}

// State returns a copy of the current state.
func (g *Graphics) State() (RenderState, error) {
	if err := g.check("state"); err != nil {
		return RenderState{}, err
	}
	return g.top().Clone(), nil
}

// SetTransform replaces the user to device transform.
func (g *Graphics) SetTransform(m geom.Matrix) error {
	if err := g.check("set transform"); err != nil {
		return err
	}
	g.top().Transform = m
	return nil
}

// ConcatTransform applies m before the current transform, so m maps
// the new user space into the old one.
func (g *Graphics) ConcatTransform(m geom.Matrix) error {
	if err := g.check("transform"); err != nil {
		return err
	}
	s := g.top()
	s.Transform = s.Transform.Multiply(m)
	return nil
}

// Translate concatenates a translation.
func (g *Graphics) Translate(x, y float64) error {
	return g.ConcatTransform(geom.Translate(x, y))
}

// Scale concatenates a scale.
func (g *Graphics) Scale(x, y float64) error {
	return g.ConcatTransform(geom.Scale(x, y))
}

// Rotate concatenates a rotation in radians.
func (g *Graphics) Rotate(angle float64) error {
	return g.ConcatTransform(geom.Rotate(angle))
}

// RotateAbout concatenates a rotation around (x, y).
func (g *Graphics) RotateAbout(angle, x, y float64) error {
	return g.ConcatTransform(geom.RotateAbout(angle, x, y))
}

// Shear concatenates a shear.
func (g *Graphics) Shear(x, y float64) error {
	return g.ConcatTransform(geom.Shear(x, y))
}

// SetClip intersects the clip with area, given in user space. The clip
// only ever narrows; Restore brings back a wider one. A nil area is
// ignored.
func (g *Graphics) SetClip(area *geom.Area) error {
	if err := g.check("clip"); err != nil {
		return err
	}
	if area == nil {
		return nil
	}
	if _, err := area.Canonical(); err != nil {
		return fmt.Errorf("awt: clip: %w", err)
	}
	s := g.top()
	dev, err := area.Transform(s.Transform).Canonical()
	if err != nil {
		return fmt.Errorf("awt: clip: %w", err)
	}
	if s.Clip != nil {
		dev, err = s.Clip.Intersect(dev)
		if err != nil {
			return fmt.Errorf("awt: clip: %w", err)
		}
	}
	s.Clip = dev
	Logger().Debug("awt: clip narrowed",
		slog.Any("bounds", dev.Bounds()),
		slog.Bool("rectangular", dev.IsRectangular()),
	)
	return nil
}

// ClipPath intersects the clip with the region enclosed by p.
func (g *Graphics) ClipPath(p *geom.Path) error {
	if p == nil {
		return g.check("clip")
	}
	return g.SetClip(geom.NewArea(p))
}

// ClipRect intersects the clip with a user-space rectangle.
func (g *Graphics) ClipRect(x, y, w, h float64) error {
	return g.SetClip(geom.RectArea(geom.RectXYWH(x, y, w, h)))
}

// ClipBounds returns the clip's bounding box in user space. ok is false
// when the clip is unbounded. A singular transform reports its inversion
// error.
func (g *Graphics) ClipBounds() (r geom.Rect, ok bool, err error) {
	if err := g.check("clip bounds"); err != nil {
		return geom.Rect{}, false, err
	}
	s := g.top()
	if s.Clip == nil {
		return geom.Rect{}, false, nil
	}
	inv, err := s.Transform.Invert()
	if err != nil {
		return geom.Rect{}, false, fmt.Errorf("awt: clip bounds: %w", err)
	}
	return s.Clip.Bounds().Transform(inv), true, nil
}

// SetPaint sets the paint. Invalid gradients are rejected here rather
// than at draw time.
func (g *Graphics) SetPaint(p Paint) error {
	if err := g.check("set paint"); err != nil {
		return err
	}
	if err := validatePaint(p); err != nil {
		return err
	}
	g.top().Paint = clonePaint(p)
	return nil
}

// SetStroke sets the pen used by DrawPath.
func (g *Graphics) SetStroke(s stroke.Style) error {
	if err := g.check("set stroke"); err != nil {
		return err
	}
	g.top().Stroke = s.Clone()
	return nil
}

// SetComposite sets the compositing rule.
func (g *Graphics) SetComposite(c Composite) error {
	if err := g.check("set composite"); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}
	g.top().Composite = c
	return nil
}

// SetFont sets the face used by DrawString.
func (g *Graphics) SetFont(face *font.Face) error {
	if err := g.check("set font"); err != nil {
		return err
	}
	if face == nil || face.Font == nil {
		return fmt.Errorf("awt: set font: %w", ErrNoFont)
	}
	g.top().Font = face
	return nil
}

// SetHint sets a rendering hint.
func (g *Graphics) SetHint(key Hint, on bool) error {
	if err := g.check("set hint"); err != nil {
		return err
	}
	return g.top().Hints.set(key, on)
}

// userTolerance converts the device tolerance into user space for m.
func (g *Graphics) userTolerance(m geom.Matrix) float64 {
	sf := m.ScaleFactor()
	if !(sf > 0) || math.IsInf(sf, 0) {
		return g.opts.tolerance
	}
	return g.opts.tolerance / sf
}

// DrawPath strokes p with the current stroke.
func (g *Graphics) DrawPath(p *geom.Path) error {
	if err := g.check("draw"); err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	s := g.top()
	var conv stroke.Converter
	conv.SetTolerance(g.userTolerance(s.Transform))
	outline := conv.ToFill(p, s.Stroke)
	return g.fill("draw", outline.Transform(s.Transform), geom.NonZero, s.Hints.Antialias)
}

// FillPath fills the interior of p under its winding rule.
func (g *Graphics) FillPath(p *geom.Path) error {
	if err := g.check("fill"); err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	s := g.top()
	return g.fill("fill", p.Transform(s.Transform), p.Rule(), s.Hints.Antialias)
}

// fill submits a device-space path to the host.
func (g *Graphics) fill(op string, dev *geom.Path, rule geom.WindingRule, antialias bool) error {
	s := g.top()
	bounds := dev.Bounds()
	if bounds.IsEmpty() {
		return nil
	}
	var clipBounds geom.Rect
	if s.Clip != nil {
		clipBounds = s.Clip.Bounds()
		if !bounds.Overlaps(clipBounds) {
			Logger().Debug("awt: fill rejected by clip",
				slog.String("op", op),
				slog.Any("bounds", bounds),
			)
			return nil
		}
	}

	polys := devicePolygons(dev, g.opts.tolerance)
	if len(polys) == 0 {
		return nil
	}
	paint, err := resolvePaint(s.Paint, s.Transform)
	if err != nil {
		// A gradient seen through a singular transform covers no area.
		Logger().Debug("awt: paint not resolvable", slog.String("op", op), slog.Any("err", err))
		return nil
	}

	fop := &FillOp{
		Polygons:   polys,
		Rule:       rule,
		Bounds:     bounds,
		Paint:      paint,
		Composite:  s.Composite,
		Clip:       s.Clip,
		ClipBounds: clipBounds,
		Antialias:  antialias,
	}
	if err := g.host.Fill(fop); err != nil {
		Logger().Warn("awt: host fill failed", slog.String("op", op), slog.Any("err", err))
		return fmt.Errorf("awt: %s: host fill: %w", op, err)
	}
	return nil
}

// devicePolygons flattens dev into rings of at least three points.
func devicePolygons(dev *geom.Path, tolerance float64) [][]geom.Point {
	var polys [][]geom.Point
	for _, pl := range dev.Polylines(tolerance) {
		if len(pl.Points) < 3 {
			continue
		}
		polys = append(polys, pl.Points)
	}
	return polys
}

// DrawGlyphRun fills each glyph of run with its origin on the baseline at
// (x, y) plus the accumulated advances and kerning.
func (g *Graphics) DrawGlyphRun(run font.GlyphRun, x, y float64) error {
	if err := g.check("draw glyphs"); err != nil {
		return err
	}
	face := run.Face
	if face == nil || face.Font == nil {
		return fmt.Errorf("awt: draw glyphs: %w", ErrNoFont)
	}
	s := g.top()
	advances := run.Advances()
	pen := x
	for i, gid := range run.Glyphs {
		o, err := face.GlyphOutline(gid)
		if err != nil {
			return fmt.Errorf("awt: draw glyphs: %w", err)
		}
		if !o.Path.IsEmpty() {
			m := s.Transform.Multiply(geom.Translate(pen, y))
			if err := g.fill("draw glyphs", o.Path.Transform(m), geom.NonZero, s.Hints.TextAntialias); err != nil {
				return err
			}
		}
		pen += advances[i]
	}
	return nil
}

// DrawString lays out text with the current font and draws it with its
// baseline starting at (x, y).
func (g *Graphics) DrawString(text string, x, y float64) error {
	if err := g.check("draw string"); err != nil {
		return err
	}
	face := g.top().Font
	if face == nil {
		return fmt.Errorf("awt: draw string: %w", ErrNoFont)
	}
	return g.DrawGlyphRun(face.Layout(text), x, y)
}

// Hit reports whether the shape, or its stroke when onStroke is set,
// touches the device-space rectangle r inside the clip.
func (g *Graphics) Hit(r geom.Rect, p *geom.Path, onStroke bool) (bool, error) {
	if err := g.check("hit"); err != nil {
		return false, err
	}
	if p == nil || r.IsEmpty() {
		return false, nil
	}
	s := g.top()
	shape := p
	if onStroke {
		var conv stroke.Converter
		conv.SetTolerance(g.userTolerance(s.Transform))
		shape = conv.ToFill(p, s.Stroke)
	}
	target := geom.RectArea(r)
	if s.Clip != nil {
		var err error
		if target, err = target.Intersect(s.Clip); err != nil {
			return false, fmt.Errorf("awt: hit: %w", err)
		}
	}
	hit, err := geom.NewArea(shape.Transform(s.Transform)).Intersect(target)
	if err != nil {
		return false, fmt.Errorf("awt: hit: %w", err)
	}
	return !hit.IsEmpty(), nil
}
