package record

import (
	"image/color"
	"image/color/palette"
)

// Ramp builds an n-entry palette interpolating from a to b
// A curve stroked in one color over a flat background only produces blends of the two
func Ramp(a, b color.Color, n int) color.Palette {
	n = min(max(n, 2), 256)
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	pal := make(color.Palette, n)
	for i := range pal {
		t := float64(i) / float64(n-1)
		pal[i] = color.RGBA{
			R: lerp8(ar, br, t),
			G: lerp8(ag, bg, t),
			B: lerp8(ab, bb, t),
			A: 255,
		}
	}
	return pal
}

func lerp8(a, b uint32, t float64) uint8 {
	return uint8((float64(a>>8) + t*(float64(b>>8)-float64(a>>8))) + 0.5)
}

func fallbackPalette() color.Palette {
	return palette.WebSafe
}
