package awt

import (
	"github.com/nullpops/awt/font"
	"github.com/nullpops/awt/geom"
	"github.com/nullpops/awt/stroke"
)

// Option configures a Graphics during creation.
//
// Example:
//
//	g := awt.NewGraphics(host,
//	    awt.WithTolerance(0.1),
//	    awt.WithFont(font.NewFace(f, 12)),
//	)
type Option func(*options)

type options struct {
	tolerance float64
	face      *font.Face
	paint     Paint
	stroke    stroke.Style
	antialias bool
}

func defaultOptions() options {
	return options{
		tolerance: geom.DefaultTolerance,
		paint:     Black,
		stroke:    stroke.DefaultStyle(),
		antialias: true,
	}
}

// WithTolerance sets the device-space flattening tolerance for curves
// and strokes. Non-positive values are ignored.
func WithTolerance(tolerance float64) Option {
	return func(o *options) {
		if tolerance > 0 {
			o.tolerance = tolerance
		}
	}
}

// WithFont sets the font each session starts with.
func WithFont(face *font.Face) Option {
	return func(o *options) {
		o.face = face
	}
}

// WithPaint sets the paint each session starts with. A paint that fails
// validation is ignored.
func WithPaint(p Paint) Option {
	return func(o *options) {
		if validatePaint(p) == nil {
			o.paint = clonePaint(p)
		}
	}
}

// WithStroke sets the stroke each session starts with.
func WithStroke(s stroke.Style) Option {
	return func(o *options) {
		o.stroke = s.Clone()
	}
}

// WithAntialias sets the initial antialias hints for shapes and text.
func WithAntialias(on bool) Option {
	return func(o *options) {
		o.antialias = on
	}
}
