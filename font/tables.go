package font

const headMagic = 0x5F0F3CF5

type headTable struct {
	unitsPerEm       uint16
	xMin, yMin       int16
	xMax, yMax       int16
	macStyle         uint16
	indexToLocFormat int16
}

func parseHead(b []byte) (headTable, error) {
	r := newReader(b)
	var h headTable
	r.skip(12) // version, fontRevision, checksumAdjustment
	magic := r.u32()
	r.skip(2) // flags
	h.unitsPerEm = r.u16()
	r.skip(16) // created, modified
	h.xMin, h.yMin = r.i16(), r.i16()
	h.xMax, h.yMax = r.i16(), r.i16()
	h.macStyle = r.u16()
	r.skip(4) // lowestRecPPEM, fontDirectionHint
	h.indexToLocFormat = r.i16()
	if !r.ok() {
		return h, malformed("head", "truncated (%d bytes)", len(b))
	}
	if magic != headMagic {
		return h, malformed("head", "bad magic number 0x%08x", magic)
	}
	if h.unitsPerEm < 16 || h.unitsPerEm > 16384 {
		return h, malformed("head", "unitsPerEm %d outside [16, 16384]", h.unitsPerEm)
	}
	if h.indexToLocFormat != 0 && h.indexToLocFormat != 1 {
		return h, malformed("head", "indexToLocFormat %d", h.indexToLocFormat)
	}
	return h, nil
}

type hheaTable struct {
	ascender, descender, lineGap  int16
	advanceWidthMax               uint16
	caretSlopeRise, caretSlopeRun int16
	numberOfHMetrics              uint16
}

func parseHhea(b []byte) (hheaTable, error) {
	r := newReader(b)
	var h hheaTable
	r.skip(4) // version
	h.ascender = r.i16()
	h.descender = r.i16()
	h.lineGap = r.i16()
	h.advanceWidthMax = r.u16()
	r.skip(6) // minLeftSideBearing, minRightSideBearing, xMaxExtent
	h.caretSlopeRise = r.i16()
	h.caretSlopeRun = r.i16()
	r.skip(12) // caretOffset, reserved, metricDataFormat
	h.numberOfHMetrics = r.u16()
	if !r.ok() {
		return h, malformed("hhea", "truncated (%d bytes)", len(b))
	}
	if h.numberOfHMetrics == 0 {
		return h, malformed("hhea", "numberOfHMetrics is zero")
	}
	return h, nil
}

func parseMaxp(b []byte) (int, error) {
	r := newReader(b)
	version := r.u32()
	n := r.u16()
	if !r.ok() {
		return 0, malformed("maxp", "truncated (%d bytes)", len(b))
	}
	if version != 0x00005000 && version != 0x00010000 {
		return 0, malformed("maxp", "unsupported version 0x%08x", version)
	}
	if n == 0 {
		return 0, malformed("maxp", "font has no glyphs")
	}
	return int(n), nil
}

// hMetric is one glyph's horizontal metrics in font units.
type hMetric struct {
	advance uint16
	lsb     int16
}

// parseHmtx expands the table so every glyph has an entry. Glyphs past
// numberOfHMetrics repeat the last advance.
func parseHmtx(b []byte, numHMetrics, numGlyphs int) ([]hMetric, error) {
	if numHMetrics > numGlyphs {
		numHMetrics = numGlyphs
	}
	need := 4*numHMetrics + 2*(numGlyphs-numHMetrics)
	if len(b) < need {
		return nil, malformed("hmtx", "need %d bytes for %d glyphs, have %d", need, numGlyphs, len(b))
	}
	r := newReader(b)
	out := make([]hMetric, numGlyphs)
	for i := 0; i < numHMetrics; i++ {
		out[i] = hMetric{advance: r.u16(), lsb: r.i16()}
	}
	last := out[numHMetrics-1].advance
	for i := numHMetrics; i < numGlyphs; i++ {
		out[i] = hMetric{advance: last, lsb: r.i16()}
	}
	return out, nil
}

const fsSelectionUseTypoMetrics = 1 << 7

type os2Table struct {
	present               bool
	version               uint16
	avgCharWidth          int16
	weightClass           uint16
	fsSelection           uint16
	typoAscender          int16
	typoDescender         int16
	typoLineGap           int16
	winAscent, winDescent uint16
	xHeight, capHeight    int16
}

func parseOS2(b []byte) (os2Table, error) {
	r := newReader(b)
	t := os2Table{present: true}
	t.version = r.u16()
	t.avgCharWidth = r.i16()
	t.weightClass = r.u16()
	r.seek(62)
	t.fsSelection = r.u16()
	r.skip(4) // usFirstCharIndex, usLastCharIndex
	t.typoAscender = r.i16()
	t.typoDescender = r.i16()
	t.typoLineGap = r.i16()
	t.winAscent = r.u16()
	t.winDescent = r.u16()
	if !r.ok() {
		return t, malformed("OS/2", "truncated (%d bytes)", len(b))
	}
	if t.version >= 2 {
		r.seek(86)
		t.xHeight = r.i16()
		t.capHeight = r.i16()
		if !r.ok() {
			return t, malformed("OS/2", "version %d truncated (%d bytes)", t.version, len(b))
		}
	}
	return t, nil
}

type postTable struct {
	italicAngle        float64
	underlinePosition  int16
	underlineThickness int16
	isFixedPitch       bool
}

func parsePost(b []byte) (postTable, error) {
	r := newReader(b)
	var p postTable
	r.skip(4) // version
	p.italicAngle = r.fixed()
	p.underlinePosition = r.i16()
	p.underlineThickness = r.i16()
	p.isFixedPitch = r.u32() != 0
	if !r.ok() {
		return p, malformed("post", "truncated (%d bytes)", len(b))
	}
	return p, nil
}
