package scene

import "github.com/go-gl/mathgl/mgl32"

const (
	WaveSegments    = 128
	WaveWidth       = 15
	WaveHeightScale = 3.0
	WaveOffsetY     = -4
)

// WaveBars is a row of vertical line segments. Vertex 2i is the bottom of
// bar i and vertex 2i+1 its top.
type WaveBars struct {
	Object3D
	Positions []mgl32.Vec3
	Colors    []Color

	// PositionsDirty and ColorsDirty flag buffers that changed since the
	// last render.
	PositionsDirty bool
	ColorsDirty    bool
}

// NewWaveBars lays segments bars evenly across width, all flat and cyan.
func NewWaveBars(segments int, width float32) *WaveBars {
	w := &WaveBars{
		Object3D:  NewObject3D(),
		Positions: make([]mgl32.Vec3, segments*2),
		Colors:    make([]Color, segments*2),
	}
	w.Position = mgl32.Vec3{0, WaveOffsetY, 0}
	for i := 0; i < segments; i++ {
		var x float32
		if segments > 1 {
			x = (float32(i)/float32(segments-1) - 0.5) * width
		}
		w.Positions[2*i] = mgl32.Vec3{x, 0, 0}
		w.Positions[2*i+1] = mgl32.Vec3{x, 0, 0}
		w.Colors[2*i] = Cyan
		w.Colors[2*i+1] = Cyan
	}
	return w
}

// Segments returns the number of bars.
func (w *WaveBars) Segments() int { return len(w.Positions) / 2 }

// SetBar sets the top of bar i to height and paints both its vertices.
func (w *WaveBars) SetBar(i int, height float32, c Color) {
	w.Positions[2*i+1][1] = height
	w.Colors[2*i] = c
	w.Colors[2*i+1] = c
}

// Height returns the current top of bar i.
func (w *WaveBars) Height(i int) float32 { return w.Positions[2*i+1].Y() }

// MarkDirty flags both vertex buffers for upload.
func (w *WaveBars) MarkDirty() {
	w.PositionsDirty = true
	w.ColorsDirty = true
}

// ClearDirty is called by the renderer once the buffers are consumed.
func (w *WaveBars) ClearDirty() {
	w.PositionsDirty = false
	w.ColorsDirty = false
}
