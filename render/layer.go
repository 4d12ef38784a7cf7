package render

import (
	"math"

	"github.com/lixenwraith/cursorfx/vmath"
)

// Cell is one terminal cell of a layer with independent glyph and background coverage
type Cell struct {
	Rune    rune
	Fg      RGB
	FgAlpha float64
	Bg      RGB
	BgAlpha float64
}

func (c Cell) empty() bool {
	return c.FgAlpha <= 0 && c.BgAlpha <= 0
}

// Layer is a Canvas backed by a grid of terminal cells
// Each cell covers cellW x cellH virtual pixels; shapes smaller than a cell
// become glyphs, larger discs also tint cell backgrounds
type Layer struct {
	name    string
	cols    int
	rows    int
	cellW   float64
	cellH   float64
	cells   []Cell
	visible bool
}

// NewLayer creates a visible layer of cols x rows cells
func NewLayer(name string, cols, rows int, cellW, cellH float64) *Layer {
	l := &Layer{
		name:    name,
		cellW:   cellW,
		cellH:   cellH,
		visible: true,
	}
	l.Resize(cols, rows)
	return l
}

// Name returns the layer name
func (l *Layer) Name() string { return l.name }

// Size returns the layer extent in virtual pixels
func (l *Layer) Size() (float64, float64) {
	return float64(l.cols) * l.cellW, float64(l.rows) * l.cellH
}

// Grid returns the layer extent in cells
func (l *Layer) Grid() (cols, rows int) { return l.cols, l.rows }

// CellSize returns the pixel dimensions of one cell
func (l *Layer) CellSize() (w, h float64) { return l.cellW, l.cellH }

// Resize adjusts dimensions, reallocates only if capacity insufficient, and clears
func (l *Layer) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	size := cols * rows
	if cap(l.cells) < size {
		l.cells = make([]Cell, size)
	} else {
		l.cells = l.cells[:size]
	}
	l.cols = cols
	l.rows = rows
	l.Clear()
}

// Clear resets all cells to transparent
func (l *Layer) Clear() {
	clear(l.cells)
}

// Visible reports whether the compositor draws this layer
func (l *Layer) Visible() bool { return l.visible }

// SetVisible toggles compositing of the layer
func (l *Layer) SetVisible(v bool) { l.visible = v }

// Cell returns the cell at col,row
func (l *Layer) Cell(col, row int) (Cell, bool) {
	if !l.inBounds(col, row) {
		return Cell{}, false
	}
	return l.cells[row*l.cols+col], true
}

// Occupied returns the number of non-transparent cells
func (l *Layer) Occupied() int {
	n := 0
	for i := range l.cells {
		if !l.cells[i].empty() {
			n++
		}
	}
	return n
}

func (l *Layer) inBounds(col, row int) bool {
	return col >= 0 && col < l.cols && row >= 0 && row < l.rows
}

// toCell maps a pixel coordinate to its cell
func (l *Layer) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / l.cellW)), int(math.Floor(y / l.cellH))
}

// over composites src onto dst with straight alpha (source-over)
func over(dst RGB, dstA float64, src RGB, srcA float64) (RGB, float64) {
	outA := srcA + dstA*(1-srcA)
	if outA <= 0 {
		return dst, 0
	}
	return Blend(dst, src, srcA/outA), outA
}

func (l *Layer) blendFg(col, row int, r rune, c RGB, a float64) {
	if !l.inBounds(col, row) {
		return
	}
	cell := &l.cells[row*l.cols+col]
	cell.Fg, cell.FgAlpha = over(cell.Fg, cell.FgAlpha, c, a)
	cell.Rune = r
}

func (l *Layer) blendBg(col, row int, c RGB, a float64) {
	if !l.inBounds(col, row) {
		return
	}
	cell := &l.cells[row*l.cols+col]
	cell.Bg, cell.BgAlpha = over(cell.Bg, cell.BgAlpha, c, a)
}

// discGlyph picks a glyph whose visual weight matches the radius relative to a cell
func (l *Layer) discGlyph(r float64) rune {
	unit := math.Min(l.cellW, l.cellH) / 2
	switch {
	case r < unit*0.3:
		return '·'
	case r < unit*0.6:
		return '•'
	case r < unit:
		return '●'
	default:
		return '█'
	}
}

// FillCircle draws a disc; the center cell always receives a glyph and cells
// whose centers fall inside the disc receive background tint
func (l *Layer) FillCircle(x, y, r float64, c RGBA) {
	a := vmath.Clamp01(c.A)
	if a == 0 || !vmath.IsFinite(x) || !vmath.IsFinite(y) || !vmath.IsFinite(r) || r < 0 {
		return
	}

	cc, cr := l.toCell(x, y)
	l.blendFg(cc, cr, l.discGlyph(r), c.RGB, a)

	if r < math.Min(l.cellW, l.cellH)/2 {
		return
	}

	minC, minR := l.toCell(x-r, y-r)
	maxC, maxR := l.toCell(x+r, y+r)
	r2 := r * r
	for row := max(minR, 0); row <= min(maxR, l.rows-1); row++ {
		py := (float64(row) + 0.5) * l.cellH
		for col := max(minC, 0); col <= min(maxC, l.cols-1); col++ {
			px := (float64(col) + 0.5) * l.cellW
			dx, dy := px-x, py-y
			if dx*dx+dy*dy <= r2 {
				l.blendBg(col, row, c.RGB, a)
			}
		}
	}
}

// lineGlyph picks a box-drawing glyph matching the pixel-space slope
func lineGlyph(dx, dy float64) rune {
	if dx == 0 && dy == 0 {
		return '·'
	}
	angle := math.Atan2(dy, dx)
	if angle < 0 {
		angle += math.Pi
	}
	switch {
	case angle < math.Pi/8 || angle >= 7*math.Pi/8:
		return '─'
	case angle < 3*math.Pi/8:
		return '╲'
	case angle < 5*math.Pi/8:
		return '│'
	default:
		return '╱'
	}
}

// StrokeLine walks the cells between the endpoints (Bresenham) and draws slope
// glyphs into cells that do not already hold a glyph
func (l *Layer) StrokeLine(x0, y0, x1, y1 float64, c RGBA) {
	a := vmath.Clamp01(c.A)
	if a == 0 || !vmath.IsFinite(x0) || !vmath.IsFinite(y0) || !vmath.IsFinite(x1) || !vmath.IsFinite(y1) {
		return
	}

	glyph := lineGlyph(x1-x0, y1-y0)
	c0, r0 := l.toCell(x0, y0)
	c1, r1 := l.toCell(x1, y1)

	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc := 1
	if c0 > c1 {
		sc = -1
	}
	sr := 1
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr

	col, row := c0, r0
	for {
		if l.inBounds(col, row) {
			cell := &l.cells[row*l.cols+col]
			if cell.FgAlpha == 0 || cell.Rune == glyph {
				l.blendFg(col, row, glyph, c.RGB, a)
			}
		}
		if col == c1 && row == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			col += sc
		}
		if e2 <= dc {
			e += dc
			row += sr
		}
	}
}

// DrawText writes a string starting at a cell, clipped to the layer
func (l *Layer) DrawText(col, row int, text string, fg, bg RGBA) {
	for _, r := range text {
		if l.inBounds(col, row) {
			if bg.A > 0 {
				l.blendBg(col, row, bg.RGB, vmath.Clamp01(bg.A))
			}
			l.blendFg(col, row, r, fg.RGB, vmath.Clamp01(fg.A))
		}
		col++
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
