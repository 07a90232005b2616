package render

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit color shared by the canvas, terminal and HUD
type RGB struct {
	R, G, B uint8
}

// RGBFrom converts a constant triplet
func RGBFrom(c [3]uint8) RGB {
	return RGB{c[0], c[1], c[2]}
}

// ParseColor reads a #rrggbb hex color
func ParseColor(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// NRGBA returns the color with straight alpha in [0,1]
func (c RGB) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: clamp(alpha*255 + 0.5)}
}

// Tcell converts to a terminal truecolor
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// FromColor drops alpha from any color.Color, un-premultiplying first
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{n.R, n.G, n.B}
}

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}
