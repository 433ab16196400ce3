package font

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nullpops/awt/cache"
	"github.com/nullpops/awt/geom"
	"github.com/nullpops/awt/internal/logging"
)

// GlyphID indexes a glyph within a font.
type GlyphID uint16

// MissingGlyph is the .notdef glyph returned for unmapped runes.
const MissingGlyph GlyphID = 0

// symbolBase is where Symbol-encoded cmaps place their byte codes.
const symbolBase = 0xF000

// Metrics are vertical font metrics scaled to a point size. Descent is a
// positive distance below the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Height returns the baseline-to-baseline distance.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// GlyphOutline is a glyph shape in font units with y pointing up.
type GlyphOutline struct {
	Path    *geom.Path
	Advance float64
	LSB     float64
	Bounds  geom.Rect
}

// Font is a parsed sfnt font. It is immutable and safe for concurrent use.
type Font struct {
	head  headTable
	hhea  hheaTable
	os2   os2Table
	post  postTable
	names map[uint16]string

	numGlyphs int
	hmtx      []hMetric
	cmap      cmapSubtable
	symbol    bool
	kern      *kernTable

	// Exactly one outline source is set.
	glyf []byte
	loca []uint32
	cff  *cffFont

	outlines *cache.Sharded[GlyphID, *GlyphOutline]
}

// Open parses a single font, or the first font of a collection.
func Open(data []byte) (*Font, error) {
	return OpenCollection(data, 0)
}

// OpenReader reads all of r and parses it with Open.
func OpenReader(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("font: read: %w", err)
	}
	return Open(data)
}

// OpenCollection parses font index of a .ttc collection. For a plain sfnt
// file only index 0 is valid.
func OpenCollection(data []byte, index int) (*Font, error) {
	dir, err := directoryFor(data, index)
	if err != nil {
		return nil, err
	}
	if err := dir.requireTables(); err != nil {
		return nil, err
	}
	f, err := parseFont(dir)
	if err != nil {
		return nil, err
	}
	logging.Logger().Info("font: opened",
		slog.String("family", f.FamilyName()),
		slog.Int("glyphs", f.numGlyphs),
		slog.Int("unitsPerEm", f.UnitsPerEm()),
		slog.String("tables", strings.Join(dir.tags(), " ")),
	)
	return f, nil
}

func parseFont(dir *tableDirectory) (*Font, error) {
	f := &Font{
		outlines: cache.NewSharded[GlyphID, *GlyphOutline](func(g GlyphID) uint64 {
			return cache.Uint64Hasher(uint64(g))
		}),
	}
	var err error
	t := dir.tables
	if f.head, err = parseHead(t["head"]); err != nil {
		return nil, err
	}
	if f.hhea, err = parseHhea(t["hhea"]); err != nil {
		return nil, err
	}
	if f.numGlyphs, err = parseMaxp(t["maxp"]); err != nil {
		return nil, err
	}
	if f.hmtx, err = parseHmtx(t["hmtx"], int(f.hhea.numberOfHMetrics), f.numGlyphs); err != nil {
		return nil, err
	}
	if f.cmap, f.symbol, err = parseCmap(t["cmap"]); err != nil {
		return nil, err
	}

	if dir.has("glyf") && dir.has("loca") {
		f.glyf = t["glyf"]
		f.loca, err = parseLoca(t["loca"], f.numGlyphs, f.head.indexToLocFormat == 1, len(f.glyf))
	} else {
		f.cff, err = parseCFF(t["CFF "])
		if err == nil && len(f.cff.charStrings) < f.numGlyphs {
			err = malformed("CFF ", "%d charstrings for %d glyphs", len(f.cff.charStrings), f.numGlyphs)
		}
	}
	if err != nil {
		return nil, err
	}

	if b, ok := t["kern"]; ok {
		if f.kern, err = parseKern(b); err != nil {
			return nil, err
		}
	}
	if b, ok := t["OS/2"]; ok {
		if f.os2, err = parseOS2(b); err != nil {
			return nil, err
		}
	}
	if b, ok := t["post"]; ok {
		if f.post, err = parsePost(b); err != nil {
			return nil, err
		}
	}
	if b, ok := t["name"]; ok {
		if f.names, err = parseName(b); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// UnitsPerEm returns the design grid size.
func (f *Font) UnitsPerEm() int { return int(f.head.unitsPerEm) }

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int { return f.numGlyphs }

func (f *Font) scale(pointSize float64) float64 {
	return pointSize / float64(f.head.unitsPerEm)
}

// Metrics returns ascent, descent and line gap at pointSize. The OS/2
// typographic values are used when the font sets USE_TYPO_METRICS,
// otherwise the hhea values.
func (f *Font) Metrics(pointSize float64) Metrics {
	asc, desc, gap := float64(f.hhea.ascender), float64(f.hhea.descender), float64(f.hhea.lineGap)
	if f.os2.present && f.os2.fsSelection&fsSelectionUseTypoMetrics != 0 {
		asc, desc, gap = float64(f.os2.typoAscender), float64(f.os2.typoDescender), float64(f.os2.typoLineGap)
	}
	s := f.scale(pointSize)
	if desc < 0 {
		desc = -desc
	}
	return Metrics{Ascent: asc * s, Descent: desc * s, LineGap: gap * s}
}

// GlyphIndex maps r through the cmap. Unmapped runes return MissingGlyph.
func (f *Font) GlyphIndex(r rune) GlyphID {
	if g, ok := f.cmap.lookup(r); ok && int(g) < f.numGlyphs {
		return g
	}
	if f.symbol && r >= 0 && r <= 0xFF {
		if g, ok := f.cmap.lookup(symbolBase + r); ok && int(g) < f.numGlyphs {
			return g
		}
	}
	return MissingGlyph
}

// GlyphAdvance returns the advance width of gid at pointSize.
func (f *Font) GlyphAdvance(gid GlyphID, pointSize float64) float64 {
	if int(gid) >= f.numGlyphs {
		return 0
	}
	return float64(f.hmtx[gid].advance) * f.scale(pointSize)
}

// Kerning returns the pair adjustment between left and right at
// pointSize. Pairs without an entry return 0.
func (f *Font) Kerning(left, right GlyphID, pointSize float64) float64 {
	return float64(f.kern.lookup(left, right)) * f.scale(pointSize)
}

// Outline returns the outline of gid in font units. The returned path is
// a copy the caller may modify.
func (f *Font) Outline(gid GlyphID) (*GlyphOutline, error) {
	if int(gid) >= f.numGlyphs {
		return nil, fmt.Errorf("%w: %d of %d", ErrGlyphOutOfRange, gid, f.numGlyphs)
	}
	o, err := f.outlines.LoadOrCompute(gid, func() (*GlyphOutline, error) {
		logging.Logger().Debug("font: decoding outline", slog.Int("glyph", int(gid)))
		return f.decodeOutline(gid)
	})
	if err != nil {
		return nil, err
	}
	out := *o
	out.Path = o.Path.Clone()
	return &out, nil
}

func (f *Font) decodeOutline(gid GlyphID) (*GlyphOutline, error) {
	var (
		p       *geom.Path
		metrics = gid
	)
	if f.cff != nil {
		var err error
		if p, err = f.cff.outline(gid); err != nil {
			return nil, err
		}
	} else {
		d := &glyfDecoder{glyf: f.glyf, loca: f.loca, inProgress: make(map[GlyphID]bool)}
		g, err := d.decode(gid, 0)
		if err != nil {
			return nil, err
		}
		p = g.path()
		metrics = g.metricsFrom
	}
	m := f.hmtx[metrics]
	return &GlyphOutline{
		Path:    p,
		Advance: float64(m.advance),
		LSB:     float64(m.lsb),
		Bounds:  p.TightBounds(),
	}, nil
}

// GlyphMatrix maps font units to a y-down device space at size.
func GlyphMatrix(size float64, unitsPerEm int) geom.Matrix {
	s := size / float64(unitsPerEm)
	return geom.Scale(s, -s)
}

// FamilyName returns the font family name, or "" if the font has none.
func (f *Font) FamilyName() string { return f.names[nameFamily] }

// FullName returns the full font name.
func (f *Font) FullName() string { return f.names[nameFull] }

// SubfamilyName returns the style name, such as "Bold Italic".
func (f *Font) SubfamilyName() string { return f.names[nameSubfamily] }

// PostScriptName returns the PostScript name.
func (f *Font) PostScriptName() string { return f.names[namePostScript] }

// ItalicAngle returns the post table italic angle in degrees
// counter-clockwise from vertical.
func (f *Font) ItalicAngle() float64 { return f.post.italicAngle }

// IsFixedPitch reports whether the post table marks the font monospaced.
func (f *Font) IsFixedPitch() bool { return f.post.isFixedPitch }

// XHeight returns the OS/2 x-height at pointSize, or 0 when absent.
func (f *Font) XHeight(pointSize float64) float64 {
	return float64(f.os2.xHeight) * f.scale(pointSize)
}

// CapHeight returns the OS/2 cap height at pointSize, or 0 when absent.
func (f *Font) CapHeight(pointSize float64) float64 {
	return float64(f.os2.capHeight) * f.scale(pointSize)
}

// UnderlinePosition returns the underline offset at pointSize. Positive
// values lie below the baseline, matching Descent.
func (f *Font) UnderlinePosition(pointSize float64) float64 {
	return -float64(f.post.underlinePosition) * f.scale(pointSize)
}

// UnderlineThickness returns the underline stroke width at pointSize.
func (f *Font) UnderlineThickness(pointSize float64) float64 {
	return float64(f.post.underlineThickness) * f.scale(pointSize)
}

// Bounds returns the head table bounding box of all glyphs in font units.
func (f *Font) Bounds() geom.Rect {
	return geom.NewRect(
		geom.Pt(float64(f.head.xMin), float64(f.head.yMin)),
		geom.Pt(float64(f.head.xMax), float64(f.head.yMax)),
	)
}
