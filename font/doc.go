// Package font parses sfnt font files (TrueType and CFF-flavored OpenType,
// including .ttc collections) directly from their bytes.
//
// A Font is opened once and is then immutable. It answers metric queries,
// maps runes to glyph ids through the cmap table, decodes glyph outlines
// from glyf or CFF data into geom paths, and looks up pair kerning from
// the kern table. Outlines are decoded lazily and cached per glyph.
//
// Font units follow the file: y grows upward. GlyphMatrix converts an
// outline to a y-down device space at a given point size.
//
// Face pairs a Font with a point size and provides the legacy FontMetrics
// view: ascent, descent, leading, string width and glyph layout.
package font
