package render

import (
	"math"

	"github.com/olivier-w/climp3d/internal/scene"
)

// MaxPixelRatio caps the framebuffer density.
const MaxPixelRatio = 2

// Surface is the drawing target. Width and Height are logical pixels; the
// framebuffer holds round(Width*PixelRatio) x round(Height*PixelRatio) RGB
// pixels.
type Surface struct {
	Width      int
	Height     int
	PixelRatio float64

	fbW, fbH int
	pix      []uint8
}

// NewSurface allocates a surface of the given logical size.
func NewSurface(width, height int, ratio float64) *Surface {
	s := &Surface{}
	s.PixelRatio = clampRatio(ratio)
	s.SetSize(width, height)
	return s
}

// SetSize resizes the logical canvas and reallocates the framebuffer.
func (s *Surface) SetSize(width, height int) {
	s.Width = max(width, 0)
	s.Height = max(height, 0)
	s.realloc()
}

// SetPixelRatio sets the density, capped at MaxPixelRatio.
func (s *Surface) SetPixelRatio(ratio float64) {
	s.PixelRatio = clampRatio(ratio)
	s.realloc()
}

func clampRatio(r float64) float64 {
	if r <= 0 || math.IsNaN(r) {
		return 1
	}
	return math.Min(r, MaxPixelRatio)
}

func (s *Surface) realloc() {
	s.fbW = int(math.Round(float64(s.Width) * s.PixelRatio))
	s.fbH = int(math.Round(float64(s.Height) * s.PixelRatio))
	n := s.fbW * s.fbH * 3
	if cap(s.pix) >= n {
		s.pix = s.pix[:n]
	} else {
		s.pix = make([]uint8, n)
	}
}

// FramebufferSize returns the backing resolution in pixels.
func (s *Surface) FramebufferSize() (int, int) { return s.fbW, s.fbH }

// Clear fills the framebuffer with c.
func (s *Surface) Clear(c scene.Color) {
	r, g, b := c.Colorful().Clamped().RGB255()
	for i := 0; i+2 < len(s.pix); i += 3 {
		s.pix[i], s.pix[i+1], s.pix[i+2] = r, g, b
	}
}

// At returns the framebuffer pixel at (x, y), black when out of range.
func (s *Surface) At(x, y int) (uint8, uint8, uint8) {
	if x < 0 || y < 0 || x >= s.fbW || y >= s.fbH {
		return 0, 0, 0
	}
	off := (y*s.fbW + x) * 3
	return s.pix[off], s.pix[off+1], s.pix[off+2]
}

// Blend composites c over the pixel at (x, y) with the given opacity.
func (s *Surface) Blend(x, y int, c scene.Color, alpha float64) {
	if x < 0 || y < 0 || x >= s.fbW || y >= s.fbH {
		return
	}
	off := (y*s.fbW + x) * 3
	c = c.Clamped()
	s.pix[off] = mix(s.pix[off], c.R, alpha)
	s.pix[off+1] = mix(s.pix[off+1], c.G, alpha)
	s.pix[off+2] = mix(s.pix[off+2], c.B, alpha)
}

// Set writes an opaque pixel.
func (s *Surface) Set(x, y int, c scene.Color) { s.Blend(x, y, c, 1) }

func mix(dst uint8, src, alpha float64) uint8 {
	v := float64(dst)*(1-alpha) + src*255*alpha
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
