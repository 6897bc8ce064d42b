// Package render draws a scene into an RGB framebuffer with a small software
// rasterizer and encodes that framebuffer for a terminal.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/olivier-w/climp3d/internal/scene"
)

// clipVertex is a vertex in homogeneous clip space.
type clipVertex struct {
	pos   mgl32.Vec4
	color scene.Color
}

// Renderer draws the particles, then the icosahedron wireframe, then the
// wave bars, each over the previous.
type Renderer struct {
	// scratch buffers reused across frames
	icoColors []scene.Color
	icoClip   []mgl32.Vec4
}

// NewRenderer returns a Renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render draws s as seen from cam onto surf.
func (r *Renderer) Render(s *scene.Scene, cam *scene.Camera, surf *Surface) {
	surf.Clear(s.Background)
	if surf.fbW == 0 || surf.fbH == 0 {
		return
	}
	viewProj := cam.Projection().Mul4(cam.View())

	r.drawParticles(s.Particles, viewProj, surf)
	r.drawIcosahedron(s, viewProj, surf)
	r.drawWave(s.Wave, viewProj, surf)
}

func (r *Renderer) drawParticles(p *scene.ParticleCloud, viewProj mgl32.Mat4, surf *Surface) {
	mvp := viewProj.Mul4(p.Matrix())
	for _, pos := range p.Positions {
		clip := mvp.Mul4x1(pos.Vec4(1))
		if !insideFrustum(clip) {
			continue
		}
		x, y := toScreen(clip, surf)
		surf.Blend(int(x), int(y), p.Color, p.Opacity)
	}
}

func (r *Renderer) drawIcosahedron(s *scene.Scene, viewProj mgl32.Mat4, surf *Surface) {
	ico := s.Icosahedron
	model := ico.Matrix()
	mvp := viewProj.Mul4(model)
	normalMat := model.Mat3().Inv().Transpose()

	if cap(r.icoColors) < len(ico.Vertices) {
		r.icoColors = make([]scene.Color, len(ico.Vertices))
		r.icoClip = make([]mgl32.Vec4, len(ico.Vertices))
	}
	colors := r.icoColors[:len(ico.Vertices)]
	clips := r.icoClip[:len(ico.Vertices)]

	for i, v := range ico.Vertices {
		world := model.Mul4x1(v.Vec4(1)).Vec3()
		normal := normalMat.Mul3x1(ico.VertexNormal(i)).Normalize()
		colors[i] = shade(ico.Material, normal, world, s.Ambient, s.Point)
		clips[i] = mvp.Mul4x1(v.Vec4(1))
	}

	for _, e := range ico.Edges {
		drawClipLine(surf,
			clipVertex{pos: clips[e[0]], color: colors[e[0]]},
			clipVertex{pos: clips[e[1]], color: colors[e[1]]},
		)
	}
}

func (r *Renderer) drawWave(w *scene.WaveBars, viewProj mgl32.Mat4, surf *Surface) {
	mvp := viewProj.Mul4(w.Matrix())
	for i := 0; i+1 < len(w.Positions); i += 2 {
		drawClipLine(surf,
			clipVertex{pos: mvp.Mul4x1(w.Positions[i].Vec4(1)), color: w.Colors[i]},
			clipVertex{pos: mvp.Mul4x1(w.Positions[i+1].Vec4(1)), color: w.Colors[i+1]},
		)
	}
	w.ClearDirty()
}

// shade applies ambient plus Lambert diffuse lighting from a point light.
// Metalness darkens the diffuse term the way a metallic surface reflects
// less diffuse light.
func shade(m scene.Material, normal, world mgl32.Vec3, amb scene.AmbientLight, pt scene.PointLight) scene.Color {
	light := amb.Color.Scale(amb.Intensity)

	toLight := pt.Position.Sub(world)
	if toLight.Len() > 0 {
		ndotl := float64(normal.Dot(toLight.Normalize()))
		if ndotl > 0 {
			diffuse := ndotl * pt.Intensity * (1 - 0.5*m.Metalness)
			light = light.Add(pt.Color.Scale(diffuse))
		}
	}
	return m.Color.Mul(light).Add(m.Emissive).Clamped()
}

// drawClipLine clips a segment against the near plane and draws it.
func drawClipLine(surf *Surface, a, b clipVertex) {
	da := float64(a.pos.Z() + a.pos.W())
	db := float64(b.pos.Z() + b.pos.W())
	if da < 0 && db < 0 {
		return
	}
	if da < 0 || db < 0 {
		t := da / (da - db)
		mid := clipVertex{
			pos:   a.pos.Add(b.pos.Sub(a.pos).Mul(float32(t))),
			color: a.color.Lerp(b.color, t),
		}
		if da < 0 {
			a = mid
		} else {
			b = mid
		}
	}
	if a.pos.W() <= 0 || b.pos.W() <= 0 {
		return
	}

	ax, ay := toScreen(a.pos, surf)
	bx, by := toScreen(b.pos, surf)
	drawLine(surf, vertex{x: ax, y: ay, color: a.color}, vertex{x: bx, y: by, color: b.color})
}

func insideFrustum(c mgl32.Vec4) bool {
	w := c.W()
	if w <= 0 {
		return false
	}
	return abs32(c.X()) <= w && abs32(c.Y()) <= w && c.Z() >= -w && c.Z() <= w
}

// toScreen maps clip coordinates to framebuffer pixels, y down.
func toScreen(c mgl32.Vec4, surf *Surface) (float64, float64) {
	w := float64(c.W())
	nx := float64(c.X()) / w
	ny := float64(c.Y()) / w
	return (nx + 1) / 2 * float64(surf.fbW), (1 - ny) / 2 * float64(surf.fbH)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
