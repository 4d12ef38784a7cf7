package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a color with straight (non-premultiplied) alpha
// A is stored unclamped; layers clamp it to [0,1] when drawing, the way a
// canvas context clamps globalAlpha
type RGBA struct {
	RGB
	A float64
}

// WithAlpha returns the color with alpha replaced
func (c RGBA) WithAlpha(a float64) RGBA {
	return RGBA{RGB: c.RGB, A: a}
}

// Opaque wraps an RGB at alpha 1
func Opaque(c RGB) RGBA {
	return RGBA{RGB: c, A: 1}
}

// HSL converts hue (degrees, any range), saturation and lightness in [0,1] to RGB
func HSL(hue, saturation, lightness float64) RGB {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorful.Hsl(hue, saturation, lightness).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// HSLA is HSL with an alpha channel
func HSLA(hue, saturation, lightness, alpha float64) RGBA {
	return RGBA{RGB: HSL(hue, saturation, lightness), A: alpha}
}

// ParseHex parses "#rrggbb" into RGB
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Hex formats the color as "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ToTcell converts RGB to tcell.Color
func ToTcell(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
