// Package awt is a rendering bridge for code written against a desktop
// 2D graphics API: affine transforms, paths and areas, strokes, fonts,
// paints and Porter-Duff composites.
//
// # Overview
//
// The host only has to fill device-space polygons. Everything above that,
// state stacks, clipping, stroking, text layout and paint resolution, is
// done here and handed to the host one FillOp at a time.
//
// # Quick Start
//
//	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
//	g := awt.NewGraphics(raster.New(img))
//	if err := g.Begin(); err != nil {
//		return err
//	}
//	defer g.End()
//
//	g.SetPaint(awt.Red)
//	g.FillOval(28, 28, 200, 200)
//
// # Sessions
//
// A Graphics is Idle until Begin. Save and Restore bracket state changes;
// an unmatched Restore fails the session until End. Drawing outside a
// session reports *StateError.
//
// # Packages
//
//   - geom: points, matrices, paths, areas and boolean ops
//   - font: sfnt parsing, metrics, outlines and layout
//   - stroke: stroke to fill conversion
//   - raster: a reference host on golang.org/x/image/vector
//   - recording: a host that captures FillOps for replay
//
// # Coordinate System
//
// Device space has its origin at the top-left with y growing down. Glyph
// outlines are converted from y-up font units by font.GlyphMatrix.
package awt
