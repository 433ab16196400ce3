package font

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nullpops/awt/geom"
)

func mustOpen(t *testing.T, data []byte) *Font {
	t.Helper()
	f, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return f
}

func TestOutlineFourPointGlyph(t *testing.T) {
	f := mustOpen(t, newTestFont().bytes())

	gid := f.GlyphIndex('A')
	if gid != testGlyphA {
		t.Fatalf("GlyphIndex('A') = %d, want %d", gid, testGlyphA)
	}
	o, err := f.Outline(gid)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	want := []geom.PathElement{
		geom.MoveTo{Point: geom.Pt(100, 0)},
		geom.LineTo{Point: geom.Pt(500, 0)},
		geom.LineTo{Point: geom.Pt(500, 700)},
		geom.LineTo{Point: geom.Pt(100, 700)},
		geom.Close{},
	}
	if diff := cmp.Diff(want, o.Path.Elements()); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
	if o.Advance != 550 || o.LSB != 100 {
		t.Errorf("advance, lsb = %v, %v; want 550, 100", o.Advance, o.LSB)
	}
	if want := geom.NewRect(geom.Pt(100, 0), geom.Pt(500, 700)); o.Bounds != want {
		t.Errorf("Bounds = %v, want %v", o.Bounds, want)
	}
}

func TestGlyphIndexUnmapped(t *testing.T) {
	f := mustOpen(t, newTestFont().bytes())
	for _, r := range []rune{'B', 0, 0xFFFF, 0x1F600, -1} {
		if got := f.GlyphIndex(r); got != MissingGlyph {
			t.Errorf("GlyphIndex(%U) = %d, want MissingGlyph", r, got)
		}
	}
}

func TestMetricsLinear(t *testing.T) {
	f := mustOpen(t, newTestFont().bytes())

	m := f.Metrics(10)
	approx := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	approx("Ascent", m.Ascent, 8)
	approx("Descent", m.Descent, 2)
	approx("LineGap", m.LineGap, 0.9)

	for _, size := range []float64{1, 7.5, 12, 96} {
		got := f.Metrics(size)
		approx("Ascent", got.Ascent, m.Ascent*size/10)
		approx("Descent", got.Descent, m.Descent*size/10)
		approx("LineGap", got.LineGap, m.LineGap*size/10)
	}
}

func TestMetricsUseTypo(t *testing.T) {
	os2 := make(buf, 96)
	copy(os2, buf(nil).u16(4))
	copy(os2[62:], buf(nil).u16(fsSelectionUseTypoMetrics))
	copy(os2[68:], buf(nil).i16(700).i16(-300).i16(0))
	copy(os2[86:], buf(nil).i16(480).i16(660))
	f := mustOpen(t, newTestFont().set("OS/2", os2).bytes())

	m := f.Metrics(1000)
	if m.Ascent != 700 || m.Descent != 300 || m.LineGap != 0 {
		t.Errorf("Metrics = %+v, want typo metrics 700/300/0", m)
	}
	if got := f.XHeight(1000); got != 480 {
		t.Errorf("XHeight = %v, want 480", got)
	}
	if got := f.CapHeight(1000); got != 660 {
		t.Errorf("CapHeight = %v, want 660", got)
	}
}

func TestOpenMissingTables(t *testing.T) {
	tests := []struct {
		name    string
		version uint32
		drop    []string
		want    string
	}{
		{"outlines", versionTrueType, []string{"glyf", "loca"}, "glyf,loca"},
		{"loca only", versionTrueType, []string{"loca"}, "loca"},
		{"head and cmap", versionTrueType, []string{"head", "cmap"}, "head,cmap"},
		{"cff", versionCFF, []string{"glyf", "loca"}, "CFF "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestFont().drop(tt.drop...)
			b.version = tt.version
			_, err := Open(b.bytes())
			var mf *MalformedFontError
			if !errors.As(err, &mf) {
				t.Fatalf("Open error = %v, want *MalformedFontError", err)
			}
			if mf.Table != tt.want {
				t.Errorf("Table = %q, want %q", mf.Table, tt.want)
			}
			if !errors.Is(err, ErrMalformedFont) {
				t.Errorf("errors.Is(err, ErrMalformedFont) = false")
			}
		})
	}
}

func TestOpenBadDirectory(t *testing.T) {
	good := newTestFont().bytes()

	dup := newTestFont()
	dup.tables = append(dup.tables, testTable{"kern", testKern()})

	badVersion := newTestFont()
	badVersion.version = 0x12345678

	tests := []struct {
		name  string
		data  []byte
		table string
	}{
		{"header only", good[:10], ""},
		{"truncated records", good[:20], ""},
		{"table past end", good[:len(good)-4], "post"},
		{"duplicate tag", dup.bytes(), "kern"},
		{"version", badVersion.bytes(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.data)
			var mf *MalformedFontError
			if !errors.As(err, &mf) {
				t.Fatalf("Open error = %v, want *MalformedFontError", err)
			}
			if mf.Table != tt.table {
				t.Errorf("Table = %q, want %q", mf.Table, tt.table)
			}
		})
	}

	for _, data := range [][]byte{nil, {}} {
		_, err := Open(data)
		if !errors.Is(err, ErrEmptyFontData) || !errors.Is(err, ErrMalformedFont) {
			t.Errorf("Open(%v) = %v, want malformed empty font data", data, err)
		}
		if _, err := NumFonts(data); !errors.Is(err, ErrMalformedFont) {
			t.Errorf("NumFonts(%v) = %v, want ErrMalformedFont", data, err)
		}
	}
}

func TestOpenCorruptTable(t *testing.T) {
	head := testHead(1000, true)
	head[12] = 0 // magic

	tests := []struct {
		name  string
		b     *sfntBuilder
		table string
	}{
		{"head magic", newTestFont().set("head", head), "head"},
		{"head upem", newTestFont().set("head", testHead(1, true)), "head"},
		{"maxp empty", newTestFont().set("maxp", testMaxp(0)), "maxp"},
		{"hmtx short", newTestFont().set("hmtx", make([]byte, 8)), "hmtx"},
		{"kern version", newTestFont().set("kern", buf(nil).u16(7)), "kern"},
		{"loca short", newTestFont().set("loca", make([]byte, 4)), "loca"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.b.bytes())
			var mf *MalformedFontError
			if !errors.As(err, &mf) {
				t.Fatalf("Open error = %v, want *MalformedFontError", err)
			}
			if mf.Table != tt.table {
				t.Errorf("Table = %q, want %q", mf.Table, tt.table)
			}
		})
	}
}

func TestOutlineCompositeCycle(t *testing.T) {
	f := mustOpen(t, newTestFont().bytes())

	_, err := f.Outline(testGlyphCycleA)
	var mf *MalformedFontError
	if !errors.As(err, &mf) {
		t.Fatalf("Outline error = %v, want *MalformedFontError", err)
	}
	if mf.Table != "glyf" {
		t.Errorf("Table = %q, want glyf", mf.Table)
	}

	// A failed decode is not cached as a success.
	if _, err := f.Outline(testGlyphCycleA); err == nil {
		t.Error("second Outline succeeded")
	}
}

func TestOutlineCompositeDepth(t *testing.T) {
	// Glyph i+1 wraps glyph i, so the last glyph nests past the limit.
	n := MaxComponentDepth + 3
	glyphs := make([][]byte, n)
	glyphs[1] = testSquare(0, 0, 10, 10)
	for i := 2; i < n; i++ {
		glyphs[i] = testComposite(testComponent{glyph: GlyphID(i - 1)})
	}
	glyf, loca := testGlyf(glyphs)
	var hmtx buf
	for i := 0; i < n; i++ {
		hmtx = hmtx.u16(500).i16(0)
	}
	b := newTestFont().
		set("maxp", testMaxp(uint16(n))).
		set("hhea", testHhea(800, -200, 0, uint16(n))).
		set("hmtx", hmtx).
		set("glyf", glyf).
		set("loca", loca).
		set("kern", testKern())
	f := mustOpen(t, b.bytes())

	if _, err := f.Outline(GlyphID(MaxComponentDepth + 1)); err != nil {
		t.Errorf("Outline at depth %d: %v", MaxComponentDepth, err)
	}
	if _, err := f.Outline(GlyphID(n - 1)); !errors.Is(err, ErrMalformedFont) {
		t.Errorf("Outline past depth limit = %v, want ErrMalformedFont", err)
	}
}

func TestOutlineCompositeOffset(t *testing.T) {
	f := mustOpen(t, newTestFont().bytes())

	o, err := f.Outline(testGlyphShift)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if want := geom.NewRect(geom.Pt(110, 20), geom.Pt(510, 720)); o.Bounds != want {
		t.Errorf("Bounds = %v, want %v", o.Bounds, want)
	}
	// USE_MY_METRICS takes the component's advance.
	if o.Advance != 550 {
		t.Errorf("Advance = %v, want 550", o.Advance)
	}
}

func TestOutlineErrors(t *testing.T) {
	f := mustOpen(t, newTestFont().bytes())
	if _, err := f.Outline(testNumGlyphs); !errors.Is(err, ErrGlyphOutOfRange) {
		t.Errorf("Outline(out of range) = %v, want ErrGlyphOutOfRange", err)
	}

	o, err := f.Outline(1)
	if err != nil {
		t.Fatalf("Outline(empty glyph): %v", err)
	}
	if !o.Path.IsEmpty() {
		t.Errorf("empty glyph has %d elements", o.Path.Len())
	}
}

func TestOutlineReturnsCopy(t *testing.T) {
	f := mustOpen(t, newTestFont().bytes())
	a, err := f.Outline(testGlyphA)
	if err != nil {
		t.Fatal(err)
	}
	a.Path.LineTo(9999, 9999)

	b, err := f.Outline(testGlyphA)
	if err != nil {
		t.Fatal(err)
	}
	if b.Path.Len() != 5 {
		t.Errorf("cached outline modified: %d elements", b.Path.Len())
	}
}

func TestOutlineConcurrent(t *testing.T) {
	f := mustOpen(t, newTestFont().bytes())
	want, err := f.Outline(testGlyphA)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.Outline(testGlyphA)
			if err != nil {
				errs <- err.Error()
				return
			}
			if diff := cmp.Diff(want.Path.Elements(), got.Path.Elements()); diff != "" {
				errs <- diff
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestKerning(t *testing.T) {
	f := mustOpen(t, newTestFont().bytes())

	if got := f.Kerning(testGlyphA, testGlyphA, 1000); got != -50 {
		t.Errorf("Kerning(A, A) = %v, want -50", got)
	}
	if got := f.Kerning(testGlyphA, testGlyphShift, 1000); got != 0 {
		t.Errorf("Kerning(A, shift) = %v, want 0", got)
	}
	if got := f.Kerning(testGlyphA, testGlyphA, 20); got != -1 {
		t.Errorf("Kerning at 20pt = %v, want -1", got)
	}

	noKern := mustOpen(t, newTestFont().drop("kern").bytes())
	if got := noKern.Kerning(testGlyphA, testGlyphA, 1000); got != 0 {
		t.Errorf("Kerning without table = %v, want 0", got)
	}
}

func TestKernAppleHeader(t *testing.T) {
	var b buf
	b = b.u32(0x00010000).u32(1)
	b = b.u32(uint32(8 + 8 + 6)).u16(0).u16(0)
	b = b.u16(1).u16s(0, 0, 0)
	b = b.u16(uint16(testGlyphA)).u16(uint16(testGlyphShift)).i16(25)

	f := mustOpen(t, newTestFont().set("kern", b).bytes())
	if got := f.Kerning(testGlyphA, testGlyphShift, 1000); got != 25 {
		t.Errorf("Kerning = %v, want 25", got)
	}
}

func TestFontInfo(t *testing.T) {
	f := mustOpen(t, newTestFont().bytes())

	if got := f.FamilyName(); got != "Test Sans" {
		t.Errorf("FamilyName = %q", got)
	}
	if f.UnitsPerEm() != 1000 || f.NumGlyphs() != testNumGlyphs {
		t.Errorf("UnitsPerEm, NumGlyphs = %d, %d", f.UnitsPerEm(), f.NumGlyphs())
	}
	if got := f.ItalicAngle(); got != -12 {
		t.Errorf("ItalicAngle = %v, want -12", got)
	}
	if f.IsFixedPitch() {
		t.Error("IsFixedPitch = true")
	}
	if got := f.UnderlinePosition(1000); got != 100 {
		t.Errorf("UnderlinePosition = %v, want 100", got)
	}
	if got := f.UnderlineThickness(1000); got != 50 {
		t.Errorf("UnderlineThickness = %v, want 50", got)
	}
	if got := f.GlyphAdvance(testNumGlyphs, 12); got != 0 {
		t.Errorf("GlyphAdvance(out of range) = %v", got)
	}
}

func TestOpenCollection(t *testing.T) {
	const base = 16
	var ttc buf
	ttc = ttc.u32(tagCollection).u32(0x00010000).u32(1).u32(base)
	ttc = append(ttc, newTestFont().bytesAt(base)...)

	if n, err := NumFonts(ttc); err != nil || n != 1 {
		t.Fatalf("NumFonts = %d, %v; want 1", n, err)
	}
	f, err := OpenCollection(ttc, 0)
	if err != nil {
		t.Fatalf("OpenCollection: %v", err)
	}
	if f.GlyphIndex('A') != testGlyphA {
		t.Error("collection font lost its cmap")
	}
	if _, err := OpenCollection(ttc, 1); err == nil {
		t.Error("OpenCollection(1) succeeded")
	}
}

func TestOpenReader(t *testing.T) {
	f, err := OpenReader(bytes.NewReader(newTestFont().bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	if f.GlyphIndex('A') != testGlyphA {
		t.Error("GlyphIndex('A') wrong after OpenReader")
	}
}

func TestFaceMetrics(t *testing.T) {
	fc := NewFace(mustOpen(t, newTestFont().bytes()), 1000)

	if fc.Ascent() != 800 || fc.Descent() != 200 || fc.Leading() != 90 {
		t.Errorf("Ascent/Descent/Leading = %v/%v/%v", fc.Ascent(), fc.Descent(), fc.Leading())
	}
	if fc.Height() != 1090 {
		t.Errorf("Height = %v, want 1090", fc.Height())
	}
	if got := fc.CharWidth('A'); got != 550 {
		t.Errorf("CharWidth('A') = %v, want 550", got)
	}
	if got := fc.CharWidth('?'); got != 600 {
		t.Errorf("CharWidth('?') = %v, want missing glyph advance 600", got)
	}
	// 550 + 550 - 50 kerning.
	if got := fc.StringWidth("AA"); got != 1050 {
		t.Errorf("StringWidth(AA) = %v, want 1050", got)
	}
	if got := fc.StringWidth(""); got != 0 {
		t.Errorf("StringWidth(\"\") = %v", got)
	}
}

func TestFaceGlyphOutline(t *testing.T) {
	fc := NewFace(mustOpen(t, newTestFont().bytes()), 10)

	o, err := fc.GlyphOutline(testGlyphA)
	if err != nil {
		t.Fatal(err)
	}
	// Device space is y-down: the glyph sits above the baseline.
	b := o.Path.Bounds()
	if math.Abs(b.Min.Y+7) > 1e-9 || math.Abs(b.Max.Y) > 1e-9 {
		t.Errorf("device bounds = %v, want y in [-7, 0]", b)
	}
	if math.Abs(o.Advance-5.5) > 1e-9 {
		t.Errorf("Advance = %v, want 5.5", o.Advance)
	}
}

func TestLayout(t *testing.T) {
	fc := NewFace(mustOpen(t, newTestFont().bytes()), 1000)

	run := fc.Layout("AxA")
	want := []GlyphID{testGlyphA, MissingGlyph, testGlyphA}
	if diff := cmp.Diff(want, run.Glyphs); diff != "" {
		t.Errorf("glyphs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{550, 600, 550}, run.Advances()); diff != "" {
		t.Errorf("advances mismatch (-want +got):\n%s", diff)
	}

	run = fc.Layout("AA")
	if diff := cmp.Diff([]float64{500, 550}, run.Advances()); diff != "" {
		t.Errorf("kerned advances mismatch (-want +got):\n%s", diff)
	}

	// A right-to-left paragraph puts the embedded Latin letter first.
	run = fc.Layout("\u05d0A")
	if diff := cmp.Diff([]GlyphID{testGlyphA, MissingGlyph}, run.Glyphs); diff != "" {
		t.Errorf("rtl glyphs mismatch (-want +got):\n%s", diff)
	}
}

func TestVisualOrder(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ltr", "abc", "abc"},
		{"rtl", "אבג", "גבא"},
		{"rtl then number", "אב 12", "12 בא"},
		{"rtl then latin", "אב abc", "abc בא"},
		{"ltr with embedded rtl", "ab אב cd", "ab בא cd"},
		{"number after rtl in ltr", "abc אב 12", "abc 12 בא"},
		{"decimal after rtl in ltr", "abc אב 1.5", "abc 1.5 בא"},
		{"decimal in rtl", "אב 1.5", "1.5 בא"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(visualOrder(tt.in)); got != tt.want {
				t.Errorf("visualOrder(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReorderLevels(t *testing.T) {
	runes := []rune("abcdef")
	reorderLevels(runes, []uint8{0, 1, 1, 2, 2, 0})
	if got, want := string(runes), "adecbf"; got != want {
		t.Errorf("reorderLevels = %q, want %q", got, want)
	}
}
