package stroke

import (
	"log/slog"

	"github.com/nullpops/awt/geom"
	"github.com/nullpops/awt/internal/logging"
)

// Converter expands strokes at a fixed flattening tolerance. The zero
// value uses geom.DefaultTolerance. A Converter holds no other state and
// may be shared.
type Converter struct {
	tolerance float64
}

// NewConverter returns a Converter with the default tolerance.
func NewConverter() *Converter {
	return &Converter{tolerance: geom.DefaultTolerance}
}

// SetTolerance sets the maximum distance between a curve and its
// flattened chords. Non-positive values are ignored.
func (c *Converter) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		c.tolerance = tolerance
	}
}

// Tolerance returns the flattening tolerance in use.
func (c *Converter) Tolerance() float64 {
	if !(c.tolerance > 0) {
		return geom.DefaultTolerance
	}
	return c.tolerance
}

// ToFill returns the outline covered by stroking p with style. An empty
// pen or an empty path yields an empty path. The result always uses the
// NonZero rule.
func (c *Converter) ToFill(p *geom.Path, style Style) *geom.Path {
	out := geom.NewPath()
	if p == nil || p.IsEmpty() || style.IsEmpty() {
		return out
	}
	tol := c.Tolerance()
	lines := p.Polylines(tol)
	if pattern := style.dashPattern(); pattern != nil {
		lines = dashAll(lines, pattern, style.DashPhase)
	}
	e := newExpander(style, tol, out)
	for _, pl := range lines {
		e.polyline(pl)
	}
	logging.Logger().Debug("stroke: expanded",
		slog.Int("subpaths", len(lines)),
		slog.Int("elements", out.Len()),
		slog.Float64("width", style.Width),
	)
	return out
}

var defaultConverter Converter

// ToFill strokes p with style at the default tolerance.
func ToFill(p *geom.Path, style Style) *geom.Path {
	return defaultConverter.ToFill(p, style)
}
