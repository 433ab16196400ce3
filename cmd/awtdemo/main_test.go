package main

import (
	"bytes"
	"image"
	"path/filepath"
	"testing"
)

func TestRenderRecordedMatchesDirect(t *testing.T) {
	cfg := config{width: 160, height: 100, scale: 1, text: "Hi"}
	direct, err := render(cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	cfg.record = true
	replayed, err := render(cfg)
	if err != nil {
		t.Fatalf("render recorded: %v", err)
	}

	a, b := direct.(*image.RGBA), replayed.(*image.RGBA)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("recorded playback differs from direct rendering")
	}
	if got := a.RGBAAt(0, 0).A; got != 255 {
		t.Errorf("background alpha = %d, want 255", got)
	}
}

func TestRenderSupersampled(t *testing.T) {
	img, err := render(config{width: 64, height: 40, scale: 2})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 64, 40) {
		t.Errorf("bounds = %v, want 64x40", got)
	}
}

func TestRenderInvalidSize(t *testing.T) {
	if _, err := render(config{width: 0, height: 10}); err == nil {
		t.Error("render accepted a zero width")
	}
}

func TestSavePNG(t *testing.T) {
	img, err := render(config{width: 16, height: 16})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := savePNG(filepath.Join(t.TempDir(), "out.png"), img); err != nil {
		t.Errorf("savePNG: %v", err)
	}
}
