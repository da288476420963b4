package common

import "image/color"

// RateColor blends from red at min to green at max.
func RateColor(min, max, rate float64) color.RGBA {
	t := InverseLerp(min, max, rate)
	return color.RGBA{
		R: uint8(Lerp(255, 0, t)),
		G: uint8(Lerp(0, 255, t)),
		A: 0xc0,
	}
}
