package render

import (
	"math"

	"github.com/olivier-w/climp3d/internal/scene"
)

// vertex is a point in framebuffer space with its color.
type vertex struct {
	x, y  float64
	color scene.Color
}

// drawLine rasterizes a color-interpolated segment, clipped to the
// framebuffer.
func drawLine(s *Surface, a, b vertex) {
	a, b, ok := clipToRect(a, b, 0, 0, float64(s.fbW-1), float64(s.fbH-1))
	if !ok {
		return
	}

	x0, y0 := int(math.Round(a.x)), int(math.Round(a.y))
	x1, y1 := int(math.Round(b.x)), int(math.Round(b.y))

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	steps := max(dx, -dy)

	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		s.Set(x0, y0, a.color.Lerp(b.color, t))

		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipToRect clips segment ab to [minX, maxX] x [minY, maxY] (Liang-Barsky),
// interpolating colors at the new endpoints.
func clipToRect(a, b vertex, minX, minY, maxX, maxY float64) (vertex, vertex, bool) {
	if maxX < minX || maxY < minY {
		return a, b, false
	}
	dx, dy := b.x-a.x, b.y-a.y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, a.x - minX},
		{dx, maxX - a.x},
		{-dy, a.y - minY},
		{dy, maxY - a.y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}

	return lerpVertex(a, b, t0), lerpVertex(a, b, t1), true
}

func lerpVertex(a, b vertex, t float64) vertex {
	return vertex{
		x:     a.x + (b.x-a.x)*t,
		y:     a.y + (b.y-a.y)*t,
		color: a.color.Lerp(b.color, t),
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
