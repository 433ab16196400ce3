// Package geom is the geometry kernel: points, rectangles, affine matrices,
// mutable paths built from line and Bezier segments, curve flattening,
// point containment, and Area, an immutable region with boolean operations.
//
// Coordinates are float64 in an arbitrary user space. Paths do not carry a
// transform; Transform returns a new Path with every control point mapped.
//
// Path values are not safe for concurrent mutation. Area values are
// immutable and may be shared between goroutines.
package geom
