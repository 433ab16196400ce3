package awt

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"0f08", color.NRGBA{0, 255, 0, 136}},
		{"#336699", color.NRGBA{0x33, 0x66, 0x99, 255}},
		{"33669980", color.NRGBA{0x33, 0x66, 0x99, 0x80}},
		{"#12", color.NRGBA{0, 0, 0, 255}},
		{"zzzzzz", color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in).NRGBA(); got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromColorRoundTrip(t *testing.T) {
	in := color.NRGBA{10, 20, 30, 128}
	if got := FromColor(in).NRGBA(); got != in {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}

func TestPremultiplied(t *testing.T) {
	r, g, b, a := RGBA(1, 0.5, 0, 0.5).Premultiplied()
	if r != 128 || g != 64 || b != 0 || a != 128 {
		t.Errorf("Premultiplied = %d %d %d %d", r, g, b, a)
	}
	// Out of range components clamp.
	r, _, _, a = RGBA(2, 0, 0, -1).Premultiplied()
	if r != 0 || a != 0 {
		t.Errorf("clamped = %d, %d", r, a)
	}
}

func TestHSB(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    color.NRGBA
	}{
		{0, 1, 1, color.NRGBA{255, 0, 0, 255}},
		{1.0 / 3, 1, 1, color.NRGBA{0, 255, 0, 255}},
		{2.0 / 3, 1, 1, color.NRGBA{0, 0, 255, 255}},
		{0.5, 0, 0.5, color.NRGBA{128, 128, 128, 255}},
		{1.5, 1, 1, color.NRGBA{0, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := HSB(tt.h, tt.s, tt.v).NRGBA(); got != tt.want {
			t.Errorf("HSB(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
		}
	}
}
