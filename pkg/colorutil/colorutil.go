// Package colorutil provides shared color utilities for overlay rendering.
package colorutil

import (
	"image/color"
	"math"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Orange  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Purple  = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Pink    = color.RGBA{R: 255, G: 105, B: 180, A: 255}
)

// HSVToRGB converts HSV (H in degrees 0-360, S and V in 0-1) to an opaque
// RGBA color.
func HSVToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(math.Mod(h, 360)+360, 360)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// Vivid returns a fully saturated, full-brightness color at the given hue.
// Markers drawn in vivid colors stay visible over grayscale radiographs.
func Vivid(hue float64) color.RGBA {
	return HSVToRGB(hue, 1, 1)
}
