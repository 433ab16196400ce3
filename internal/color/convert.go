// Package color converts between sRGB and linear RGB components.
//
// Gradients that interpolate in linear RGB convert each stop to linear
// space, blend there, and convert back.
package color

import "math"

// SRGBToLinear converts an sRGB component to linear.
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
// Input and output are in range [0,1].
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB.
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
// Input and output are in range [0,1].
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// LerpLinear interpolates two sRGB triples in linear space and returns
// the result in sRGB.
func LerpLinear(a, b [3]float64, t float64) [3]float64 {
	var out [3]float64
	for i := range out {
		la, lb := SRGBToLinear(a[i]), SRGBToLinear(b[i])
		out[i] = LinearToSRGB(la + (lb-la)*t)
	}
	return out
}
