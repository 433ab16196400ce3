// Package raster is a reference host for awt. It fills device-space
// polygons into an *image.RGBA using golang.org/x/image/vector for
// coverage and Porter-Duff compositing on premultiplied pixels.
//
// Usage:
//
//	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
//	g := awt.NewGraphics(raster.New(img, raster.WithBackground(color.White)))
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/nullpops/awt"
	"github.com/nullpops/awt/geom"
	"github.com/nullpops/awt/internal/blend"
	"github.com/nullpops/awt/recording"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// ErrNilImage is returned by Fill on a host built around a nil image.
var ErrNilImage = errors.New("raster: nil destination image")

func init() {
	recording.Register("raster", func(width, height int) (awt.Rasterizer, image.Image) {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		return New(img), img
	})
}

// Option configures a Host.
type Option func(*Host)

// WithBackground paints every pixel of the destination with c before the
// first fill.
func WithBackground(c color.Color) Option {
	return func(h *Host) {
		if h.dst != nil {
			draw.Draw(h.dst, h.dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
}

// Host rasterizes awt fills into an RGBA image. It is not safe for
// concurrent use.
type Host struct {
	dst   *image.RGBA
	z     *vector.Rasterizer
	fills int
}

// New returns a host drawing into dst.
func New(dst *image.RGBA, opts ...Option) *Host {
	h := &Host{dst: dst}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Image returns the destination image.
func (h *Host) Image() *image.RGBA { return h.dst }

// Fills returns the number of fills that touched at least one pixel.
func (h *Host) Fills() int { return h.fills }

// Fill implements awt.Rasterizer.
func (h *Host) Fill(op *awt.FillOp) error {
	if h.dst == nil {
		return ErrNilImage
	}
	r := pixelRect(op.Visible()).Intersect(h.dst.Bounds())
	if r.Empty() {
		return nil
	}

	polys := op.Polygons
	if op.Rule == geom.EvenOdd {
		var err error
		if polys, err = evenOddPolygons(polys); err != nil {
			return fmt.Errorf("raster: even-odd fill: %w", err)
		}
	}
	mask := h.coverage(polys, r, op.Antialias)
	if op.Clip != nil {
		clip := h.coverage(op.Clip.Polygons(), r, op.Antialias)
		for i, c := range clip.Pix {
			mask.Pix[i] = uint8((uint16(mask.Pix[i])*uint16(c) + 127) / 255)
		}
	}

	fn := blend.FuncFor(blend.Mode(op.Composite.Rule))
	alpha := uint8(math.Round(op.Composite.Alpha * 255))
	solid, isSolid := op.Paint.Solid()
	var src color.RGBA
	if isSolid {
		src = premultiplied(solid)
	}

	touched := false
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := mask.Pix[(y-r.Min.Y)*mask.Stride:]
		for x := r.Min.X; x < r.Max.X; x++ {
			cov := row[x-r.Min.X]
			if cov == 0 {
				continue
			}
			if !isSolid {
				src = premultiplied(op.Paint.ColorAt(float64(x)+0.5, float64(y)+0.5))
			}
			h.dst.SetRGBA(x, y, blend.Composite(fn, src, h.dst.RGBAAt(x, y), alpha, cov))
			touched = true
		}
	}
	if touched {
		h.fills++
	}
	return nil
}

// coverage rasterizes rings into an alpha mask covering r. Without
// antialiasing, pixels at least half covered are fully on.
func (h *Host) coverage(polys [][]geom.Point, r image.Rectangle, antialias bool) *image.Alpha {
	w, ht := r.Dx(), r.Dy()
	if h.z == nil {
		h.z = vector.NewRasterizer(w, ht)
	} else {
		h.z.Reset(w, ht)
	}
	h.z.DrawOp = draw.Src

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, ring := range polys {
		if len(ring) < 3 {
			continue
		}
		h.z.MoveTo(float32(ring[0].X-ox), float32(ring[0].Y-oy))
		for _, p := range ring[1:] {
			h.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		h.z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, ht))
	h.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	if !antialias {
		for i, c := range mask.Pix {
			if c >= 128 {
				mask.Pix[i] = 255
			} else {
				mask.Pix[i] = 0
			}
		}
	}
	return mask
}

// evenOddPolygons resolves rings under the even-odd rule into disjoint
// trapezoids that any winding rule fills the same way.
func evenOddPolygons(polys [][]geom.Point) ([][]geom.Point, error) {
	p := geom.NewPathRule(geom.EvenOdd)
	for _, ring := range polys {
		if len(ring) < 3 {
			continue
		}
		p.MoveTo(ring[0].X, ring[0].Y)
		for _, pt := range ring[1:] {
			p.LineTo(pt.X, pt.Y)
		}
		p.Close()
	}
	a, err := geom.NewArea(p).Canonical()
	if err != nil {
		return nil, err
	}
	return a.Polygons(), nil
}

// pixelRect returns the smallest pixel rectangle enclosing r.
func pixelRect(r geom.Rect) image.Rectangle {
	if r.IsEmpty() || !r.Min.IsFinite() || !r.Max.IsFinite() {
		return image.Rectangle{}
	}
	const limit = 1 << 24
	clampi := func(v float64) int {
		return int(math.Max(-limit, math.Min(limit, v)))
	}
	return image.Rect(
		clampi(math.Floor(r.Min.X)), clampi(math.Floor(r.Min.Y)),
		clampi(math.Ceil(r.Max.X)), clampi(math.Ceil(r.Max.Y)),
	)
}

func premultiplied(c awt.Color) color.RGBA {
	r, g, b, a := c.Premultiplied()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
