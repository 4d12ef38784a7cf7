package render

import (
	"github.com/gdamore/tcell/v2"
)

type layerEntry struct {
	layer    *Layer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Compositor stacks layers over a background and flushes them to a tcell screen
type Compositor struct {
	screen     tcell.Screen
	background RGB
	cellW      float64
	cellH      float64
	cols       int
	rows       int
	layers     []layerEntry
	regCount   int
}

// NewCompositor creates a compositor sized to the screen
func NewCompositor(screen tcell.Screen, background RGB, cellW, cellH float64) *Compositor {
	cols, rows := screen.Size()
	return &Compositor{
		screen:     screen,
		background: background,
		cellW:      cellW,
		cellH:      cellH,
		cols:       cols,
		rows:       rows,
		layers:     make([]layerEntry, 0, 8),
	}
}

// NewLayer creates a layer sized to the compositor and registers it at priority
func (c *Compositor) NewLayer(name string, priority RenderPriority) *Layer {
	l := NewLayer(name, c.cols, c.rows, c.cellW, c.cellH)
	c.Register(l, priority)
	return l
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (c *Compositor) Register(l *Layer, priority RenderPriority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    c.regCount,
	}
	c.regCount++

	pos := len(c.layers)
	for i, e := range c.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	c.layers = append(c.layers, layerEntry{})
	copy(c.layers[pos+1:], c.layers[pos:])
	c.layers[pos] = entry
}

// SetBackground changes the base color beneath all layers
func (c *Compositor) SetBackground(bg RGB) {
	c.background = bg
}

// Grid returns the compositor size in cells
func (c *Compositor) Grid() (cols, rows int) {
	return c.cols, c.rows
}

// CellSize returns the pixel size of one cell
func (c *Compositor) CellSize() (w, h float64) {
	return c.cellW, c.cellH
}

// Resize resizes and clears every registered layer
func (c *Compositor) Resize(cols, rows int) {
	c.cols, c.rows = cols, rows
	for _, e := range c.layers {
		e.layer.Resize(cols, rows)
	}
	c.screen.Sync()
}

// Compose returns the final glyph and colors of a cell
func (c *Compositor) Compose(col, row int) (rune, RGB, RGB) {
	bg := c.background
	r := ' '
	var glyph RGB
	var glyphAlpha float64
	for _, e := range c.layers {
		if !e.layer.visible {
			continue
		}
		cell, ok := e.layer.Cell(col, row)
		if !ok {
			continue
		}
		if cell.BgAlpha > 0 {
			bg = Blend(bg, cell.Bg, cell.BgAlpha)
		}
		if cell.Rune != 0 && cell.FgAlpha > 0 {
			r = cell.Rune
			glyph, glyphAlpha = cell.Fg, cell.FgAlpha
		}
	}
	// Glyph blends against the final background, including tints from higher layers
	if glyphAlpha == 0 {
		return r, bg, bg
	}
	return r, Blend(bg, glyph, glyphAlpha), bg
}

// Flush composes every cell to the screen and shows it
func (c *Compositor) Flush() {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			r, fg, bg := c.Compose(col, row)
			style := tcell.StyleDefault.Foreground(ToTcell(fg)).Background(ToTcell(bg))
			c.screen.SetContent(col, row, r, nil, style)
		}
	}
	c.screen.Show()
}
