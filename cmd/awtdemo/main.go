// Command awtdemo renders a sample scene with the awt library to a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/nullpops/awt"
	"github.com/nullpops/awt/font"
	"github.com/nullpops/awt/geom"
	"github.com/nullpops/awt/raster"
	"github.com/nullpops/awt/recording"
	"github.com/nullpops/awt/stroke"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
)

type config struct {
	width, height int
	scale         int
	text          string
	record        bool
}

func main() {
	var (
		width   = flag.Int("width", 640, "image width")
		height  = flag.Int("height", 400, "image height")
		output  = flag.String("output", "demo.png", "output file")
		text    = flag.String("text", "Hello, AWT", "caption drawn with Go Regular")
		scale   = flag.Int("scale", 1, "supersampling factor, downscaled with Catmull-Rom")
		record  = flag.Bool("record", false, "record the scene and render it by playback")
		verbose = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		awt.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	img, err := render(config{width: *width, height: *height, scale: *scale, text: *text, record: *record})
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

// render draws the scene at cfg.scale times the output size and scales the
// result down.
func render(cfg config) (image.Image, error) {
	if cfg.width <= 0 || cfg.height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", cfg.width, cfg.height)
	}
	if cfg.scale < 1 {
		cfg.scale = 1
	}
	f, err := font.Open(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := font.NewFace(f, 28)

	w, h := cfg.width*cfg.scale, cfg.height*cfg.scale
	var (
		host awt.Rasterizer
		rec  *recording.Recorder
		img  *image.RGBA
	)
	if cfg.record {
		rec = recording.NewRecorder()
		host = rec
	} else {
		img = image.NewRGBA(image.Rect(0, 0, w, h))
		host = raster.New(img)
	}

	g := awt.NewGraphics(host, awt.WithFont(face))
	if err := g.Begin(); err != nil {
		return nil, err
	}
	if err := g.Scale(float64(cfg.scale), float64(cfg.scale)); err != nil {
		return nil, err
	}
	for _, step := range []func(*awt.Graphics, config) error{
		drawBackground,
		drawShapes,
		drawStrokes,
		drawRotated,
		drawCaption,
	} {
		if err := step(g, cfg); err != nil {
			return nil, err
		}
	}
	if err := g.End(); err != nil {
		return nil, err
	}

	var out image.Image = img
	if cfg.record {
		r := rec.FinishRecording()
		if out, err = r.Render("raster", w, h); err != nil {
			return nil, err
		}
	}
	if cfg.scale == 1 {
		return out, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, cfg.width, cfg.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), out, out.Bounds(), draw.Src, nil)
	return dst, nil
}

func drawBackground(g *awt.Graphics, cfg config) error {
	w, h := float64(cfg.width), float64(cfg.height)
	bg := awt.NewGradientPaint(0, 0, awt.RGB(0.1, 0.2, 0.4), 0, h, awt.RGB(0.5, 0.5, 0.6))
	if err := g.SetPaint(bg); err != nil {
		return err
	}
	return g.FillRect(0, 0, w, h)
}

func drawShapes(g *awt.Graphics, _ config) error {
	if err := g.Save(); err != nil {
		return err
	}
	c, err := awt.NewComposite(awt.SrcOver, 0.8)
	if err != nil {
		return err
	}
	if err := g.SetComposite(c); err != nil {
		return err
	}
	circles := []struct {
		x, y float64
		c    awt.Color
	}{
		{90, 90, awt.RGB(1, 0.3, 0.3)},
		{140, 90, awt.RGB(0.3, 1, 0.3)},
		{115, 140, awt.RGB(0.3, 0.3, 1)},
	}
	for _, ci := range circles {
		if err := g.SetPaint(ci.c); err != nil {
			return err
		}
		if err := g.FillOval(ci.x-60, ci.y-60, 120, 120); err != nil {
			return err
		}
	}
	if err := g.Restore(); err != nil {
		return err
	}

	glow := awt.NewRadialGradientPaint(350, 110, 70,
		awt.ColorStop{Offset: 0, Color: awt.Hex("#fff3b0")},
		awt.ColorStop{Offset: 0.6, Color: awt.Orange},
		awt.ColorStop{Offset: 1, Color: awt.Orange.WithAlpha(0)},
	)
	if err := g.SetPaint(glow); err != nil {
		return err
	}
	if err := g.FillRoundRect(280, 40, 140, 140, 30, 30); err != nil {
		return err
	}

	star := make([]geom.Point, 0, 10)
	for i := 0; i < 10; i++ {
		r := 50.0
		if i%2 == 1 {
			r = 22
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		star = append(star, geom.Pt(530+r*math.Cos(a), 110+r*math.Sin(a)))
	}
	if err := g.SetPaint(awt.Yellow); err != nil {
		return err
	}
	return g.FillPolygon(star)
}

func drawStrokes(g *awt.Graphics, _ config) error {
	wave := geom.NewPath()
	wave.MoveTo(40, 260)
	wave.CubicTo(90, 210, 140, 310, 190, 260)
	wave.CubicTo(240, 230, 290, 290, 340, 260)

	styles := []struct {
		dy    float64
		paint awt.Color
		style stroke.Style
	}{
		{0, awt.White, stroke.DefaultStyle().WithWidth(6).WithCap(stroke.CapRound).WithJoin(stroke.JoinRound)},
		{40, awt.Pink, stroke.DefaultStyle().WithWidth(4).WithCap(stroke.CapButt).WithDash(0, 12, 6)},
	}
	for _, s := range styles {
		if err := g.Save(); err != nil {
			return err
		}
		if err := g.Translate(0, s.dy); err != nil {
			return err
		}
		if err := g.SetPaint(s.paint); err != nil {
			return err
		}
		if err := g.SetStroke(s.style); err != nil {
			return err
		}
		if err := g.DrawPath(wave); err != nil {
			return err
		}
		if err := g.Restore(); err != nil {
			return err
		}
	}
	return nil
}

func drawRotated(g *awt.Graphics, _ config) error {
	if err := g.Save(); err != nil {
		return err
	}
	if err := g.ClipRect(400, 200, 200, 130); err != nil {
		return err
	}
	for i := 0; i < 8; i++ {
		if err := g.Save(); err != nil {
			return err
		}
		if err := g.Translate(500, 265); err != nil {
			return err
		}
		if err := g.Rotate(float64(i) * math.Pi / 8); err != nil {
			return err
		}
		if err := g.SetPaint(awt.HSB(float64(i)/8, 0.7, 0.9).WithAlpha(0.6)); err != nil {
			return err
		}
		if err := g.DrawRect(-45, -45, 90, 90); err != nil {
			return err
		}
		if err := g.Restore(); err != nil {
			return err
		}
	}
	return g.Restore()
}

func drawCaption(g *awt.Graphics, cfg config) error {
	if cfg.text == "" {
		return nil
	}
	if err := g.SetPaint(awt.White); err != nil {
		return err
	}
	return g.DrawString(cfg.text, 40, float64(cfg.height)-30)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
