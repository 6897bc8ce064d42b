package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

var (
	White = Color{1, 1, 1}
	Black = Color{}
	Cyan  = Color{0, 1, 1}
)

// Hex builds a Color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// HSL returns the color with hue h, saturation s and lightness l, each in
// [0, 1]. Hue wraps.
func HSL(h, s, l float64) Color {
	h = h - math.Floor(h)
	c := colorful.Hsl(h*360, clamp01(s), clamp01(l))
	return Color{R: c.R, G: c.G, B: c.B}
}

// SetHSL replaces c with the given hue, saturation and lightness.
func (c *Color) SetHSL(h, s, l float64) *Color {
	*c = HSL(h, s, l)
	return c
}

// Hex returns the color as 0xRRGGBB.
func (c Color) Hex() uint32 {
	r, g, b := c.Colorful().Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Colorful converts to a go-colorful color.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Scale multiplies every component by f.
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f}
}

// Mul multiplies component-wise.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Add sums component-wise.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Lerp blends from c toward o by t in [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// Clamped limits every component to [0, 1].
func (c Color) Clamped() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
