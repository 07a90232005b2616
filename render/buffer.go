package render

import "github.com/gdamore/tcell/v2"

// Cell is one terminal cell of the composed frame
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// CellBuffer is a compositor backed by a Cell array, flushed to a tcell screen
type CellBuffer struct {
	cells  []Cell
	width  int
	height int
	bg     RGB
}

// NewCellBuffer creates a buffer with the specified dimensions
func NewCellBuffer(width, height int, bg RGB) *CellBuffer {
	b := &CellBuffer{bg: bg}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *CellBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns the buffer dimensions in cells
func (b *CellBuffer) Size() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to empty using exponential copy
func (b *CellBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: b.bg, Bg: b.bg}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// inBounds returns true if in screen bounds
func (b *CellBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a cell, out of bounds writes are dropped
func (b *CellBuffer) Set(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Fg: fg, Bg: bg}
}

// Get returns the cell at x, y; out of bounds returns the zero cell
func (b *CellBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Text writes s left to right from x, keeping each cell's background
func (b *CellBuffer) Text(x, y int, s string, fg RGB) {
	for _, r := range s {
		if b.inBounds(x, y) {
			c := &b.cells[y*b.width+x]
			c.Rune = r
			c.Fg = fg
		}
		x++
	}
}

// Flush writes the buffer to screen and shows it
func (b *CellBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			style := tcell.StyleDefault.Foreground(c.Fg.Tcell()).Background(c.Bg.Tcell())
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	screen.Show()
}
