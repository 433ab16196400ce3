package font

// Face is a Font at a point size. It provides the legacy FontMetrics view.
type Face struct {
	Font *Font
	Size float64
}

// NewFace returns f at size points.
func NewFace(f *Font, size float64) *Face {
	return &Face{Font: f, Size: size}
}

// Metrics returns the scaled vertical metrics.
func (fc *Face) Metrics() Metrics { return fc.Font.Metrics(fc.Size) }

// Ascent returns the distance from the baseline to the top of most glyphs.
func (fc *Face) Ascent() float64 { return fc.Metrics().Ascent }

// Descent returns the positive distance from the baseline to the bottom
// of most glyphs.
func (fc *Face) Descent() float64 { return fc.Metrics().Descent }

// Leading returns the line gap.
func (fc *Face) Leading() float64 { return fc.Metrics().LineGap }

// Height returns ascent + descent + leading.
func (fc *Face) Height() float64 { return fc.Metrics().Height() }

// CharWidth returns the advance of the glyph mapped from r.
func (fc *Face) CharWidth(r rune) float64 {
	return fc.Font.GlyphAdvance(fc.Font.GlyphIndex(r), fc.Size)
}

// StringWidth returns the total advance of s including kerning.
func (fc *Face) StringWidth(s string) float64 {
	return fc.Layout(s).Width()
}

// GlyphOutline returns the outline of gid scaled to the face size in a
// y-down space with the origin on the baseline.
func (fc *Face) GlyphOutline(gid GlyphID) (*GlyphOutline, error) {
	o, err := fc.Font.Outline(gid)
	if err != nil {
		return nil, err
	}
	m := GlyphMatrix(fc.Size, fc.Font.UnitsPerEm())
	s := fc.Size / float64(fc.Font.UnitsPerEm())
	return &GlyphOutline{
		Path:    o.Path.Transform(m),
		Advance: o.Advance * s,
		LSB:     o.LSB * s,
		Bounds:  o.Bounds.Transform(m),
	}, nil
}
