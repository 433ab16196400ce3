package font

import "sort"

// cmapSubtable maps code points to glyph ids.
type cmapSubtable interface {
	lookup(r rune) (GlyphID, bool)
}

type cmapCandidate struct {
	rank   int
	symbol bool
	off    int
}

// rankEncoding orders cmap encodings, lower is better. Full-repertoire
// Unicode tables win over BMP tables, and Symbol and Macintosh tables are
// used only as a fallback.
func rankEncoding(platform, encoding uint16) (rank int, symbol bool) {
	switch {
	case platform == 3 && encoding == 10, platform == 0 && (encoding == 4 || encoding == 6):
		return 0, false
	case platform == 3 && encoding == 1, platform == 0 && encoding <= 3:
		return 1, false
	case platform == 3 && encoding == 0:
		return 2, true
	case platform == 1 && encoding == 0:
		return 3, false
	}
	return -1, false
}

// parseCmap selects the preferred supported subtable. The returned flag is
// set for Symbol-encoded fonts, whose glyphs live at U+F000 + byte.
func parseCmap(b []byte) (cmapSubtable, bool, error) {
	r := newReader(b)
	r.skip(2) // version
	n := int(r.u16())
	if !r.ok() {
		return nil, false, malformed("cmap", "truncated header")
	}
	var cands []cmapCandidate
	for i := 0; i < n; i++ {
		platform := r.u16()
		encoding := r.u16()
		off := int(r.u32())
		if !r.ok() {
			return nil, false, malformed("cmap", "truncated encoding record %d of %d", i, n)
		}
		if off < 0 || off+2 > len(b) {
			return nil, false, malformed("cmap", "encoding record %d offset %d out of range", i, off)
		}
		if rank, symbol := rankEncoding(platform, encoding); rank >= 0 {
			cands = append(cands, cmapCandidate{rank: rank, symbol: symbol, off: off})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].rank < cands[j].rank })

	for _, c := range cands {
		format, _ := u16At(b, c.off)
		var (
			sub cmapSubtable
			err error
		)
		switch format {
		case 0:
			sub, err = parseCmap0(b[c.off:])
		case 4:
			sub, err = parseCmap4(b[c.off:])
		case 6:
			sub, err = parseCmap6(b[c.off:])
		case 10:
			sub, err = parseCmap10(b[c.off:])
		case 12, 13:
			sub, err = parseCmap12(b[c.off:], format == 13)
		default:
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return sub, c.symbol, nil
	}
	return nil, false, malformed("cmap", "no supported Unicode subtable")
}

type cmap0 struct {
	glyphs []byte
}

func parseCmap0(b []byte) (cmapSubtable, error) {
	if len(b) < 6+256 {
		return nil, malformed("cmap", "format 0 truncated")
	}
	return cmap0{glyphs: b[6 : 6+256]}, nil
}

func (c cmap0) lookup(r rune) (GlyphID, bool) {
	if r < 0 || r > 255 {
		return 0, false
	}
	g := GlyphID(c.glyphs[r])
	return g, g != 0
}

type cmap4Segment struct {
	start, end uint16
	delta      uint16
	rangeOff   uint16
	rangePos   int // byte offset of this segment's idRangeOffset entry
}

type cmap4 struct {
	data []byte
	segs []cmap4Segment
}

func parseCmap4(b []byte) (cmapSubtable, error) {
	r := newReader(b)
	r.skip(2) // format
	length := int(r.u16())
	r.skip(2) // language
	segCount := int(r.u16()) / 2
	r.skip(6) // searchRange, entrySelector, rangeShift
	if !r.ok() {
		return nil, malformed("cmap", "format 4 truncated header")
	}
	// Some fonts overstate the length; clamp to what is there.
	if length > len(b) {
		length = len(b)
	}
	need := 14 + 8*segCount + 2
	if segCount == 0 || need > length {
		return nil, malformed("cmap", "format 4 with %d segments does not fit in %d bytes", segCount, length)
	}
	data := b[:length]
	endPos := 14
	startPos := endPos + 2*segCount + 2
	deltaPos := startPos + 2*segCount
	rangePos := deltaPos + 2*segCount

	segs := make([]cmap4Segment, segCount)
	for i := range segs {
		end, _ := u16At(data, endPos+2*i)
		start, _ := u16At(data, startPos+2*i)
		delta, _ := u16At(data, deltaPos+2*i)
		ro, _ := u16At(data, rangePos+2*i)
		if start > end {
			return nil, malformed("cmap", "format 4 segment %d has start %d > end %d", i, start, end)
		}
		segs[i] = cmap4Segment{start: start, end: end, delta: delta, rangeOff: ro, rangePos: rangePos + 2*i}
	}
	return &cmap4{data: data, segs: segs}, nil
}

func (c *cmap4) lookup(r rune) (GlyphID, bool) {
	if r < 0 || r > 0xFFFF {
		return 0, false
	}
	cp := uint16(r)
	i := sort.Search(len(c.segs), func(i int) bool { return c.segs[i].end >= cp })
	if i == len(c.segs) || c.segs[i].start > cp {
		return 0, false
	}
	s := c.segs[i]
	if s.rangeOff == 0 {
		g := GlyphID(cp + s.delta)
		return g, g != 0
	}
	pos := s.rangePos + int(s.rangeOff) + 2*int(cp-s.start)
	g, ok := u16At(c.data, pos)
	if !ok || g == 0 {
		return 0, false
	}
	g += s.delta
	return GlyphID(g), g != 0
}

type cmap6 struct {
	first  uint32
	glyphs []byte
}

func parseCmap6(b []byte) (cmapSubtable, error) {
	r := newReader(b)
	r.skip(6) // format, length, language
	first := r.u16()
	count := int(r.u16())
	glyphs := r.bytes(2 * count)
	if !r.ok() {
		return nil, malformed("cmap", "format 6 truncated")
	}
	return cmap6{first: uint32(first), glyphs: glyphs}, nil
}

func (c cmap6) lookup(r rune) (GlyphID, bool) {
	if r < 0 || uint32(r) < c.first {
		return 0, false
	}
	g, ok := u16At(c.glyphs, 2*int(uint32(r)-c.first))
	return GlyphID(g), ok && g != 0
}

type cmap10 struct {
	first  uint32
	glyphs []byte
}

func parseCmap10(b []byte) (cmapSubtable, error) {
	r := newReader(b)
	r.skip(12) // format, reserved, length, language
	first := r.u32()
	count := r.u32()
	if !r.ok() || uint64(count)*2 > uint64(len(b)) {
		return nil, malformed("cmap", "format 10 truncated")
	}
	glyphs := r.bytes(2 * int(count))
	if !r.ok() {
		return nil, malformed("cmap", "format 10 truncated")
	}
	return cmap10{first: first, glyphs: glyphs}, nil
}

func (c cmap10) lookup(r rune) (GlyphID, bool) {
	if r < 0 || uint32(r) < c.first {
		return 0, false
	}
	g, ok := u16At(c.glyphs, 2*int(uint32(r)-c.first))
	return GlyphID(g), ok && g != 0
}

type cmapGroup struct {
	start, end, glyph uint32
}

// cmap12 covers formats 12 (segmented coverage) and 13 (many-to-one).
type cmap12 struct {
	groups   []cmapGroup
	constant bool
}

func parseCmap12(b []byte, constant bool) (cmapSubtable, error) {
	r := newReader(b)
	r.skip(12) // format, reserved, length, language
	n := r.u32()
	if !r.ok() || uint64(n)*12 > uint64(len(b)) {
		return nil, malformed("cmap", "format 12 group count %d does not fit", n)
	}
	groups := make([]cmapGroup, n)
	var prevEnd uint32
	for i := range groups {
		g := cmapGroup{start: r.u32(), end: r.u32(), glyph: r.u32()}
		if !r.ok() {
			return nil, malformed("cmap", "format 12 truncated at group %d", i)
		}
		if g.start > g.end || (i > 0 && g.start <= prevEnd) {
			return nil, malformed("cmap", "format 12 group %d out of order", i)
		}
		prevEnd = g.end
		groups[i] = g
	}
	return &cmap12{groups: groups, constant: constant}, nil
}

func (c *cmap12) lookup(r rune) (GlyphID, bool) {
	if r < 0 {
		return 0, false
	}
	cp := uint32(r)
	i := sort.Search(len(c.groups), func(i int) bool { return c.groups[i].end >= cp })
	if i == len(c.groups) || c.groups[i].start > cp {
		return 0, false
	}
	g := c.groups[i].glyph
	if !c.constant {
		g += cp - c.groups[i].start
	}
	if g == 0 || g > 0xFFFF {
		return 0, false
	}
	return GlyphID(g), true
}
