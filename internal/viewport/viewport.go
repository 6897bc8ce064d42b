// Package viewport keeps the camera projection and the drawing surface in
// step with the terminal size.
package viewport

import (
	"math"

	"golang.org/x/term"

	"github.com/olivier-w/climp3d/internal/render"
	"github.com/olivier-w/climp3d/internal/scene"
)

const (
	fallbackCols = 80
	fallbackRows = 24
)

// Manager applies size changes to a camera and a surface.
type Manager struct {
	camera  *scene.Camera
	surface *render.Surface
	density float64
}

// New returns a Manager. density is the requested pixel ratio; the surface
// uses min(density, 2).
func New(camera *scene.Camera, surface *render.Surface, density float64) *Manager {
	return &Manager{camera: camera, surface: surface, density: density}
}

// Resize sets the camera aspect to width/height, recomputes the projection
// and resizes the surface. A zero width or height is ignored and reported
// as false.
func (m *Manager) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	m.camera.Aspect = float32(width) / float32(height)
	m.camera.UpdateProjectionMatrix()
	m.surface.SetPixelRatio(math.Min(m.density, render.MaxPixelRatio))
	m.surface.SetSize(width, height)
	return true
}

// SetDensity changes the requested pixel ratio; it applies on the next
// Resize.
func (m *Manager) SetDensity(d float64) { m.density = d }

// Density returns the requested pixel ratio.
func (m *Manager) Density() float64 { return m.density }

// CellsToPixels converts a terminal area to logical pixels. Each cell holds
// two vertically stacked half-block pixels; reserved rows are excluded.
func CellsToPixels(cols, rows, reserved int) (int, int) {
	rows -= reserved
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return cols, rows * 2
}

// TerminalSize reports the size of the terminal on fd, falling back to
// 80x24 when it cannot be determined.
func TerminalSize(fd int) (cols, rows int) {
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return fallbackCols, fallbackRows
	}
	return cols, rows
}
