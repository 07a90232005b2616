package render

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spirograph/constants"
)

// halfBlock shows the top pixel as foreground and the bottom pixel as background
const halfBlock = '▀'

// Presenter composes the preview image and HUD onto a tcell screen
// Each cell carries two vertically stacked pixels
type Presenter struct {
	screen     tcell.Screen
	buf        *CellBuffer
	background RGB
	HUDEnabled bool
}

// NewPresenter sizes a buffer to the screen
func NewPresenter(screen tcell.Screen, background RGB, hud bool) *Presenter {
	w, h := screen.Size()
	return &Presenter{
		screen:     screen,
		buf:        NewCellBuffer(w, h, background),
		background: background,
		HUDEnabled: hud,
	}
}

// Resize follows a terminal resize
func (p *Presenter) Resize(width, height int) {
	p.buf.Resize(width, height)
}

// Buffer exposes the composed cells of the last frame
func (p *Presenter) Buffer() *CellBuffer {
	return p.buf
}

// Width is the screen width in cells
func (p *Presenter) Width() int {
	w, _ := p.buf.Size()
	return w
}

// PreviewSize is the pixel dimension of the square preview that fits the screen
func (p *Presenter) PreviewSize() int {
	w, h := p.buf.Size()
	rows := h
	if p.HUDEnabled {
		rows -= constants.HUDReservedRows
	}
	size := min(w, 2*rows)
	size -= size % 2
	return max(size, 2)
}

// previewOrigin returns the top-left cell of a preview of size pixels
func (p *Presenter) previewOrigin(size int) (x, y int) {
	w, h := p.buf.Size()
	top := 0
	rows := h
	if p.HUDEnabled {
		top = constants.FrameCounterRow + 1
		rows -= constants.HUDReservedRows
	}
	return max((w-size)/2, 0), top + max((rows-size/2)/2, 0)
}

// Present draws img and the HUD, then flushes to the screen
func (p *Presenter) Present(img image.Image, hud HUD) {
	p.buf.Clear()
	p.drawPreview(img)
	if p.HUDEnabled {
		p.drawHUD(hud)
	}
	p.buf.Flush(p.screen)
}

func (p *Presenter) drawPreview(img image.Image) {
	b := img.Bounds()
	ox, oy := p.previewOrigin(b.Dx())
	for py := 0; py+1 < b.Dy(); py += 2 {
		for px := 0; px < b.Dx(); px++ {
			top := FromColor(img.At(b.Min.X+px, b.Min.Y+py))
			bottom := FromColor(img.At(b.Min.X+px, b.Min.Y+py+1))
			p.buf.Set(ox+px, oy+py/2, halfBlock, top, bottom)
		}
	}
}

func (p *Presenter) drawHUD(hud HUD) {
	w, h := p.buf.Size()

	for x := 0; x < hud.BarWidth; x++ {
		p.buf.Set(x, constants.ProgressBarRow, ' ', hud.Color, hud.Color)
	}
	indicator := RGBFrom(constants.HUDIndicatorColor)
	for x := hud.IndicatorX; x < hud.IndicatorX+hud.IndicatorWidth && x < w; x++ {
		p.buf.Set(x, constants.ProgressBarRow, ' ', indicator, indicator)
	}

	p.buf.Text(constants.HUDTextInset, constants.FrameCounterRow, hud.Counter, hud.Color)
	p.buf.Text(constants.HUDTextInset, h-1, hud.Message, hud.Color)
}
