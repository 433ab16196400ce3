package font

import (
	"encoding/binary"
	"sort"
)

// buf appends big-endian values.
type buf []byte

func (b buf) u8(v uint8) buf   { return append(b, v) }
func (b buf) u16(v uint16) buf { return binary.BigEndian.AppendUint16(b, v) }
func (b buf) i16(v int16) buf  { return b.u16(uint16(v)) }
func (b buf) u32(v uint32) buf { return binary.BigEndian.AppendUint32(b, v) }

func (b buf) u16s(vs ...uint16) buf {
	for _, v := range vs {
		b = b.u16(v)
	}
	return b
}

type testTable struct {
	tag  string
	data []byte
}

// sfntBuilder assembles a font file from raw tables.
type sfntBuilder struct {
	version uint32
	tables  []testTable
}

func (s *sfntBuilder) set(tag string, data []byte) *sfntBuilder {
	for i := range s.tables {
		if s.tables[i].tag == tag {
			s.tables[i].data = data
			return s
		}
	}
	s.tables = append(s.tables, testTable{tag, data})
	return s
}

func (s *sfntBuilder) drop(tags ...string) *sfntBuilder {
	keep := s.tables[:0]
	for _, t := range s.tables {
		dropped := false
		for _, tag := range tags {
			dropped = dropped || t.tag == tag
		}
		if !dropped {
			keep = append(keep, t)
		}
	}
	s.tables = keep
	return s
}

func (s *sfntBuilder) bytes() []byte { return s.bytesAt(0) }

// bytesAt lays the font out as if it started at base within a larger file.
func (s *sfntBuilder) bytesAt(base int) []byte {
	tables := append([]testTable(nil), s.tables...)
	sort.SliceStable(tables, func(i, j int) bool { return tables[i].tag < tables[j].tag })

	var head buf
	head = head.u32(s.version).u16(uint16(len(tables))).u16s(0, 0, 0)
	off := base + 12 + 16*len(tables)
	var body buf
	for _, t := range tables {
		head = append(head, t.tag...)
		head = head.u32(0).u32(uint32(off + len(body))).u32(uint32(len(t.data)))
		body = append(body, t.data...)
		for len(body)%4 != 0 {
			body = append(body, 0)
		}
	}
	return append(head, body...)
}

func testHead(upem uint16, longLoca bool) []byte {
	var b buf
	b = b.u32(0x00010000).u32(0).u32(0).u32(headMagic)
	b = b.u16(0).u16(upem)
	b = append(b, make([]byte, 16)...) // created, modified
	b = b.i16(0).i16(-200).i16(1000).i16(900) // bbox
	b = b.u16(0).u16(8).i16(2)
	format := int16(0)
	if longLoca {
		format = 1
	}
	return b.i16(format).i16(0)
}

func testHhea(asc, desc, gap int16, numHMetrics uint16) []byte {
	var b buf
	b = b.u32(0x00010000).i16(asc).i16(desc).i16(gap)
	b = b.u16(600)
	b = b.i16(0).i16(0).i16(0) // min bearings, xMaxExtent
	b = b.i16(1).i16(0)        // caret slope
	b = append(b, make([]byte, 12)...)
	return b.u16(numHMetrics)
}

func testMaxp(numGlyphs uint16) []byte {
	return buf(nil).u32(0x00005000).u16(numGlyphs)
}

// testCmap4 builds a format 4 cmap mapping each rune in m.
func testCmap4(m map[rune]GlyphID) []byte {
	runes := make([]rune, 0, len(m))
	for r := range m {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	segCount := len(runes) + 1

	var sub buf
	sub = sub.u16(4).u16(uint16(16 + 8*segCount)).u16(0)
	sub = sub.u16(uint16(2 * segCount)).u16s(0, 0, 0)
	for _, r := range runes {
		sub = sub.u16(uint16(r))
	}
	sub = sub.u16(0xFFFF).u16(0)
	for _, r := range runes {
		sub = sub.u16(uint16(r))
	}
	sub = sub.u16(0xFFFF)
	for _, r := range runes {
		sub = sub.u16(uint16(m[r]) - uint16(r))
	}
	sub = sub.u16(1)
	for i := 0; i < segCount; i++ {
		sub = sub.u16(0)
	}

	var b buf
	b = b.u16(0).u16(1)
	b = b.u16(3).u16(1).u32(12)
	return append(b, sub...)
}

// testSquare is a one-contour glyph with four on-curve points.
func testSquare(x0, y0, x1, y1 int16) []byte {
	var b buf
	b = b.i16(1).i16(x0).i16(y0).i16(x1).i16(y1)
	b = b.u16(3).u16(0)
	b = b.u8(flagOnCurve).u8(flagOnCurve).u8(flagOnCurve).u8(flagOnCurve)
	b = b.i16(x0).i16(x1 - x0).i16(0).i16(x0 - x1)
	b = b.i16(y0).i16(0).i16(y1 - y0).i16(0)
	return b
}

type testComponent struct {
	glyph  GlyphID
	dx, dy int16
	flags  uint16
}

func testComposite(comps ...testComponent) []byte {
	var b buf
	b = b.i16(-1).i16(0).i16(0).i16(0).i16(0)
	for i, c := range comps {
		flags := c.flags | compArgsAreWords | compArgsAreXY
		if i+1 < len(comps) {
			flags |= compMoreComponents
		}
		b = b.u16(flags).u16(uint16(c.glyph)).i16(c.dx).i16(c.dy)
	}
	return b
}

// testGlyf lays out glyphs and returns glyf plus long-format loca.
func testGlyf(glyphs [][]byte) (glyf, loca []byte) {
	var g, l buf
	for _, data := range glyphs {
		l = l.u32(uint32(len(g)))
		g = append(g, data...)
		for len(g)%4 != 0 {
			g = append(g, 0)
		}
	}
	l = l.u32(uint32(len(g)))
	return g, l
}

func testKern(pairs ...[3]int) []byte {
	var b buf
	b = b.u16(0).u16(1)
	b = b.u16(0).u16(uint16(14 + 6*len(pairs))).u16(0x0001)
	b = b.u16(uint16(len(pairs))).u16s(0, 0, 0)
	for _, p := range pairs {
		b = b.u16(uint16(p[0])).u16(uint16(p[1])).i16(int16(p[2]))
	}
	return b
}

func testPost(underlinePos, underlineThickness int16, fixedPitch bool) []byte {
	var b buf
	angle := int32(-12 << 16)
	b = b.u32(0x00030000).u32(uint32(angle))
	b = b.i16(underlinePos).i16(underlineThickness)
	fp := uint32(0)
	if fixedPitch {
		fp = 1
	}
	b = b.u32(fp)
	return append(b, make([]byte, 16)...)
}

func testName(family string) []byte {
	var str buf
	for _, r := range family {
		str = str.u16(uint16(r))
	}
	var b buf
	b = b.u16(0).u16(1).u16(6 + 12)
	b = b.u16(3).u16(1).u16(0x0409).u16(nameFamily).u16(uint16(len(str))).u16(0)
	return append(b, str...)
}

// Glyph ids of the synthetic test font.
const (
	testGlyphA      GlyphID = 5
	testGlyphCycleA GlyphID = 6
	testGlyphCycleB GlyphID = 7
	testGlyphShift  GlyphID = 8
	testNumGlyphs           = 9
)

// newTestFont returns a builder for a 1000 unit font where 'A' maps to
// glyph 5, a 400x700 square with four on-curve points.
func newTestFont() *sfntBuilder {
	glyphs := make([][]byte, testNumGlyphs)
	glyphs[testGlyphA] = testSquare(100, 0, 500, 700)
	glyphs[testGlyphCycleA] = testComposite(testComponent{glyph: testGlyphCycleB})
	glyphs[testGlyphCycleB] = testComposite(testComponent{glyph: testGlyphCycleA})
	glyphs[testGlyphShift] = testComposite(testComponent{glyph: testGlyphA, dx: 10, dy: 20, flags: compUseMyMetrics})
	glyf, loca := testGlyf(glyphs)

	var hmtx buf
	for i := 0; i < testNumGlyphs; i++ {
		adv := uint16(600)
		if GlyphID(i) == testGlyphA {
			adv = 550
		}
		hmtx = hmtx.u16(adv).i16(100)
	}

	s := &sfntBuilder{version: versionTrueType}
	s.set("head", testHead(1000, true))
	s.set("hhea", testHhea(800, -200, 90, testNumGlyphs))
	s.set("maxp", testMaxp(testNumGlyphs))
	s.set("hmtx", hmtx)
	s.set("cmap", testCmap4(map[rune]GlyphID{'A': testGlyphA}))
	s.set("glyf", glyf)
	s.set("loca", loca)
	s.set("kern", testKern([3]int{int(testGlyphA), int(testGlyphA), -50}))
	s.set("name", testName("Test Sans"))
	s.set("post", testPost(-100, 50, false))
	return s
}
