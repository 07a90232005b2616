package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/lixenwraith/spirograph/vmath"
)

// minLinePx keeps small previews legible when the logical line width scales below a pixel
const minLinePx = 1.0

// Canvas rasterizes curve points computed in a side x side logical space
// onto a size x size pixel image, origin at the center
type Canvas struct {
	ctx     *gg.Context
	size    int
	side    float64
	palette Palette
}

// NewCanvas creates a canvas; size is pixels, side is the logical square dimension
func NewCanvas(size int, side float64, palette Palette) *Canvas {
	if size < 1 {
		size = 1
	}
	c := &Canvas{
		ctx:     gg.NewContext(size, size),
		size:    size,
		side:    side,
		palette: palette,
	}
	c.Clear()
	return c
}

// Size returns the pixel dimension
func (c *Canvas) Size() int {
	return c.size
}

// Clear fills the canvas with the background color
func (c *Canvas) Clear() {
	c.ctx.SetColor(c.palette.Background.NRGBA(1))
	c.ctx.Clear()
}

// Draw clears the canvas and strokes points as one open polyline
// Non-finite points break the line instead of reaching the rasterizer
func (c *Canvas) Draw(points []vmath.Point) {
	c.Clear()

	k := float64(c.size) / c.side
	c.ctx.Push()
	c.ctx.Translate(float64(c.size)/2, float64(c.size)/2)
	c.ctx.Scale(k, k)

	penDown := false
	for _, p := range points {
		if !finite(p) {
			penDown = false
			continue
		}
		if penDown {
			c.ctx.LineTo(p.X, p.Y)
		} else {
			c.ctx.MoveTo(p.X, p.Y)
			penDown = true
		}
	}
	c.ctx.Pop()

	c.ctx.SetLineWidth(math.Max(c.palette.LineWidth*k, minLinePx))
	c.ctx.SetColor(c.palette.Stroke.NRGBA(c.palette.StrokeAlpha))
	c.ctx.Stroke()
}

// Image returns the backing image; it is overwritten by the next Draw
func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

func finite(p vmath.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
