package render

import (
	"math"
	"testing"
)

func newTestLayer() *Layer {
	// 10x5 cells of 8x16 px: 80x80 px canvas
	return NewLayer("test", 10, 5, 8, 16)
}

func TestLayerSize(t *testing.T) {
	l := newTestLayer()
	w, h := l.Size()
	if w != 80 || h != 80 {
		t.Errorf("Size = %vx%v, want 80x80", w, h)
	}
}

func TestFillCircleSmallIsGlyph(t *testing.T) {
	l := newTestLayer()
	l.FillCircle(20, 40, 2, Opaque(RGB{255, 0, 0}))

	cell, ok := l.Cell(2, 2)
	if !ok {
		t.Fatal("cell out of bounds")
	}
	if cell.Rune == 0 || cell.FgAlpha != 1 || cell.Fg != (RGB{255, 0, 0}) {
		t.Errorf("unexpected cell %+v", cell)
	}
	if cell.BgAlpha != 0 {
		t.Error("small disc should not tint background")
	}
	if l.Occupied() != 1 {
		t.Errorf("Occupied = %d, want 1", l.Occupied())
	}
}

func TestFillCircleLargeTintsBackground(t *testing.T) {
	l := newTestLayer()
	l.FillCircle(40, 40, 20, RGBA{RGB: RGB{0, 0, 255}, A: 0.5})

	center, _ := l.Cell(5, 2)
	if center.BgAlpha != 0.5 {
		t.Errorf("center BgAlpha = %v, want 0.5", center.BgAlpha)
	}
	if l.Occupied() < 3 {
		t.Errorf("large disc should cover several cells, got %d", l.Occupied())
	}
}

func TestAlphaClampedAtDrawTime(t *testing.T) {
	l := newTestLayer()

	l.StrokeLine(0, 0, 70, 70, RGBA{RGB: RGB{200, 220, 255}, A: -0.3})
	if l.Occupied() != 0 {
		t.Errorf("negative alpha line drew %d cells", l.Occupied())
	}

	l.StrokeLine(0, 0, 70, 0, RGBA{RGB: RGB{200, 220, 255}, A: 4})
	cell, _ := l.Cell(0, 0)
	if cell.FgAlpha != 1 {
		t.Errorf("alpha > 1 not clamped: %v", cell.FgAlpha)
	}
}

func TestNonFiniteShapesDropped(t *testing.T) {
	l := newTestLayer()
	nan := math.NaN()
	inf := math.Inf(1)

	l.FillCircle(nan, 10, 3, Opaque(RGBWhite))
	l.FillCircle(10, inf, 3, Opaque(RGBWhite))
	l.FillCircle(10, 10, nan, Opaque(RGBWhite))
	l.StrokeLine(0, 0, inf, 10, Opaque(RGBWhite))
	l.StrokeLine(nan, 0, 10, 10, Opaque(RGBWhite))

	if l.Occupied() != 0 {
		t.Errorf("non-finite shapes drew %d cells", l.Occupied())
	}
}

func TestStrokeLineCoversEndpoints(t *testing.T) {
	l := newTestLayer()
	l.StrokeLine(4, 8, 76, 72, Opaque(RGBWhite))

	start, _ := l.Cell(0, 0)
	end, _ := l.Cell(9, 4)
	if start.Rune == 0 || end.Rune == 0 {
		t.Errorf("line endpoints missing: start=%+v end=%+v", start, end)
	}
}

func TestStrokeLineKeepsParticleGlyph(t *testing.T) {
	l := newTestLayer()
	l.FillCircle(4, 8, 2, Opaque(RGB{255, 0, 0}))
	before, _ := l.Cell(0, 0)

	l.StrokeLine(4, 8, 76, 8, Opaque(RGBWhite))
	after, _ := l.Cell(0, 0)
	if after.Rune != before.Rune {
		t.Errorf("line overwrote particle glyph %q with %q", before.Rune, after.Rune)
	}
}

func TestLineGlyphSlopes(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{10, 0, '─'},
		{-10, 0, '─'},
		{0, 10, '│'},
		{10, 10, '╲'},
		{10, -10, '╱'},
		{0, 0, '·'},
	}
	for _, tt := range tests {
		if got := lineGlyph(tt.dx, tt.dy); got != tt.want {
			t.Errorf("lineGlyph(%v,%v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestResizeClears(t *testing.T) {
	l := newTestLayer()
	l.FillCircle(20, 20, 2, Opaque(RGBWhite))
	l.Resize(20, 10)

	if l.Occupied() != 0 {
		t.Error("Resize did not clear layer")
	}
	if cols, rows := l.Grid(); cols != 20 || rows != 10 {
		t.Errorf("Grid = %dx%d", cols, rows)
	}
}

func TestDrawTextClips(t *testing.T) {
	l := newTestLayer()
	l.DrawText(7, 0, "hello", Opaque(RGBWhite), RGBA{})
	if l.Occupied() != 3 {
		t.Errorf("expected 3 visible glyphs after clipping, got %d", l.Occupied())
	}
}
