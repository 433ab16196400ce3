// Package stroke converts a stroked path into the filled outline that
// covers the same pixels.
//
// A Style describes the pen the way the legacy BasicStroke does: width,
// end caps, line joins, miter limit and an optional dash pattern. ToFill
// flattens each subpath, splits it into dashes, and expands every piece
// into a polygon built from two offset rails:
//
//  1. the left rail runs forward along the centerline
//  2. the end cap connects it to the right rail
//  3. the right rail runs backward
//  4. the start cap closes the outline
//
// Closed subpaths produce two rings instead, joined at the start point.
// The result uses the NonZero winding rule, so self-overlap at sharp inner
// corners still fills once.
package stroke
