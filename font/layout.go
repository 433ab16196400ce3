package font

import (
	"math"
	"slices"

	"golang.org/x/text/unicode/bidi"
)

// GlyphRun is a sequence of glyphs in visual order, ready to draw.
type GlyphRun struct {
	Face   *Face
	Glyphs []GlyphID
}

// Layout maps text to glyphs. Mixed-direction text is reordered into
// visual order; right-to-left runs are reversed.
func (fc *Face) Layout(text string) GlyphRun {
	runes := visualOrder(text)
	run := GlyphRun{Face: fc, Glyphs: make([]GlyphID, len(runes))}
	for i, r := range runes {
		run.Glyphs[i] = fc.Font.GlyphIndex(r)
	}
	return run
}

// visualOrder returns the runes of text in display order. The bidi
// package resolves directions but reports only the parity of each run, so
// embedding levels are rebuilt from the paragraph direction and the
// resolved numbers before the runs are reversed level by level.
func visualOrder(text string) []rune {
	runes := []rune(text)
	if len(runes) == 0 {
		return runes
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return runes
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return runes
	}
	levels := embeddingLevels(runes, &ordering)
	if levels == nil {
		return runes
	}
	reorderLevels(runes, levels)
	return runes
}

// embeddingLevels assigns each rune the level of its run. Right-to-left
// runs sit at the odd level above the paragraph, left-to-right runs inside
// a right-to-left paragraph at level 2. It returns nil when the runs do
// not tile the text.
func embeddingLevels(runes []rune, o *bidi.Ordering) []uint8 {
	base := paragraphLevel(runes)
	levels := make([]uint8, len(runes))
	covered := 0
	for i := 0; i < o.NumRuns(); i++ {
		run := o.Run(i)
		start, end := run.Pos()
		if start < 0 || end >= len(runes) || start > end {
			return nil
		}
		lvl := base
		if run.Direction() == bidi.RightToLeft {
			lvl = base | 1
		} else if base == 1 {
			lvl = 2
		}
		for j := start; j <= end; j++ {
			levels[j] = lvl
		}
		covered += end - start + 1
	}
	if covered != len(runes) {
		return nil
	}
	if base == 0 {
		raiseNumbers(runes, levels)
	}
	return levels
}

// paragraphLevel is 1 when the first strong character is right-to-left.
func paragraphLevel(runes []rune) uint8 {
	for _, r := range runes {
		switch bidiClass(r) {
		case bidi.L:
			return 0
		case bidi.R, bidi.AL:
			return 1
		}
	}
	return 0
}

// raiseNumbers lifts numbers in a left-to-right paragraph to level 2.
// Arabic digits always rise; European digits rise when the last strong
// character before them is right-to-left. A single separator between two
// raised digits, and terminators touching them, rise with them.
func raiseNumbers(runes []rune, levels []uint8) {
	rtl := false
	for i, r := range runes {
		switch bidiClass(r) {
		case bidi.L:
			rtl = false
		case bidi.R, bidi.AL:
			rtl = true
		case bidi.AN:
			if levels[i] == 0 {
				levels[i] = 2
			}
		case bidi.EN:
			if rtl && levels[i] == 0 {
				levels[i] = 2
			}
		}
	}
	for i, r := range runes {
		if levels[i] != 0 || i == 0 || i+1 == len(runes) {
			continue
		}
		switch bidiClass(r) {
		case bidi.ES, bidi.CS:
			if levels[i-1] == 2 && levels[i+1] == 2 {
				levels[i] = 2
			}
		}
	}
	for i := 1; i < len(runes); i++ {
		if levels[i] == 0 && levels[i-1] == 2 && bidiClass(runes[i]) == bidi.ET {
			levels[i] = 2
		}
	}
	for i := len(runes) - 2; i >= 0; i-- {
		if levels[i] == 0 && levels[i+1] == 2 && bidiClass(runes[i]) == bidi.ET {
			levels[i] = 2
		}
	}
}

func bidiClass(r rune) bidi.Class {
	props, _ := bidi.LookupRune(r)
	return props.Class()
}

// reorderLevels reverses, from the highest level down to the lowest odd
// level, every maximal sequence at that level or above.
func reorderLevels(runes []rune, levels []uint8) {
	var highest uint8
	lowestOdd := uint8(math.MaxUint8)
	for _, l := range levels {
		highest = max(highest, l)
		if l%2 == 1 {
			lowestOdd = min(lowestOdd, l)
		}
	}
	for lvl := highest; lvl >= lowestOdd && lvl > 0; lvl-- {
		for i := 0; i < len(levels); {
			if levels[i] < lvl {
				i++
				continue
			}
			j := i
			for j < len(levels) && levels[j] >= lvl {
				j++
			}
			slices.Reverse(runes[i:j])
			slices.Reverse(levels[i:j])
			i = j
		}
	}
}

// Advances returns each glyph's advance plus its kerning with the next
// glyph, in device units.
func (r GlyphRun) Advances() []float64 {
	if r.Face == nil {
		return nil
	}
	f, size := r.Face.Font, r.Face.Size
	out := make([]float64, len(r.Glyphs))
	for i, g := range r.Glyphs {
		out[i] = f.GlyphAdvance(g, size)
		if i+1 < len(r.Glyphs) {
			out[i] += f.Kerning(g, r.Glyphs[i+1], size)
		}
	}
	return out
}

// Width returns the sum of Advances.
func (r GlyphRun) Width() float64 {
	var w float64
	for _, a := range r.Advances() {
		w += a
	}
	return w
}
