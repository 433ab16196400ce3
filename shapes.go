package awt

import "github.com/nullpops/awt/geom"

// DrawLine strokes the segment from (x1, y1) to (x2, y2).
func (g *Graphics) DrawLine(x1, y1, x2, y2 float64) error {
	return g.DrawPath(geom.NewLine(x1, y1, x2, y2))
}

// DrawRect strokes the outline of a rectangle.
func (g *Graphics) DrawRect(x, y, w, h float64) error {
	return g.DrawPath(geom.NewRectangle(x, y, w, h))
}

// FillRect fills a rectangle.
func (g *Graphics) FillRect(x, y, w, h float64) error {
	return g.FillPath(geom.NewRectangle(x, y, w, h))
}

// DrawRoundRect strokes a rectangle with corner radii rx and ry.
func (g *Graphics) DrawRoundRect(x, y, w, h, rx, ry float64) error {
	p := geom.NewPath()
	p.RoundedRectangle(x, y, w, h, rx, ry)
	return g.DrawPath(p)
}

// FillRoundRect fills a rectangle with corner radii rx and ry.
func (g *Graphics) FillRoundRect(x, y, w, h, rx, ry float64) error {
	p := geom.NewPath()
	p.RoundedRectangle(x, y, w, h, rx, ry)
	return g.FillPath(p)
}

// DrawOval strokes the ellipse inscribed in the rectangle.
func (g *Graphics) DrawOval(x, y, w, h float64) error {
	return g.DrawPath(geom.NewEllipse(x, y, w, h))
}

// FillOval fills the ellipse inscribed in the rectangle.
func (g *Graphics) FillOval(x, y, w, h float64) error {
	return g.FillPath(geom.NewEllipse(x, y, w, h))
}

// DrawArc strokes an open elliptical arc. Angles are in degrees,
// counter-clockwise from three o'clock.
func (g *Graphics) DrawArc(x, y, w, h, startDeg, extentDeg float64) error {
	p := geom.NewPath()
	p.ArcShape(x, y, w, h, startDeg, extentDeg, geom.ArcOpen)
	return g.DrawPath(p)
}

// FillArc fills the pie slice of an elliptical arc.
func (g *Graphics) FillArc(x, y, w, h, startDeg, extentDeg float64) error {
	p := geom.NewPath()
	p.ArcShape(x, y, w, h, startDeg, extentDeg, geom.ArcPie)
	return g.FillPath(p)
}

// DrawPolygon strokes the closed polygon through pts.
func (g *Graphics) DrawPolygon(pts []geom.Point) error {
	p := geom.NewPath()
	p.Polygon(pts)
	return g.DrawPath(p)
}

// FillPolygon fills the closed polygon through pts with the even-odd
// rule, as the legacy fillPolygon does.
func (g *Graphics) FillPolygon(pts []geom.Point) error {
	p := geom.NewPathRule(geom.EvenOdd)
	p.Polygon(pts)
	return g.FillPath(p)
}
