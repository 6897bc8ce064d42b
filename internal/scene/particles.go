package scene

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultParticles = 7000
	ParticleSpread   = 25
	ParticleOpacity  = 0.7
	ParticleSize     = 0.015
)

// ParticleCloud is a fixed set of points scattered uniformly in a cube.
type ParticleCloud struct {
	Object3D
	Positions []mgl32.Vec3
	Color     Color
	Opacity   float64
	Size      float32
}

// NewParticleCloud scatters n points in [-spread/2, spread/2] on each axis.
func NewParticleCloud(n int, spread float32, rng *rand.Rand) *ParticleCloud {
	if n < 0 {
		n = 0
	}
	p := &ParticleCloud{
		Object3D:  NewObject3D(),
		Positions: make([]mgl32.Vec3, n),
		Color:     White,
		Opacity:   ParticleOpacity,
		Size:      ParticleSize,
	}
	for i := range p.Positions {
		p.Positions[i] = mgl32.Vec3{
			(rng.Float32() - 0.5) * spread,
			(rng.Float32() - 0.5) * spread,
			(rng.Float32() - 0.5) * spread,
		}
	}
	return p
}
