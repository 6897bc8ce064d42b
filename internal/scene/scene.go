// Package scene holds the 3D objects drawn by the visualizer: a perspective
// camera, two lights, a wireframe icosahedron, a particle field and a row of
// wave bars.
package scene

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is built once at startup and mutated in place every frame.
type Scene struct {
	Camera      *Camera
	Ambient     AmbientLight
	Point       PointLight
	Icosahedron *Icosahedron
	Particles   *ParticleCloud
	Wave        *WaveBars
	Background  Color
}

// New builds the scene for a viewport with the given aspect ratio. rng seeds
// the particle positions.
func New(aspect float32, particles int, rng *rand.Rand) *Scene {
	return &Scene{
		Camera:      NewCamera(aspect),
		Ambient:     AmbientLight{Color: White, Intensity: 0.5},
		Point:       PointLight{Color: White, Intensity: 1, Position: mgl32.Vec3{5, 5, 5}},
		Icosahedron: NewIcosahedron(IcosahedronRadius, IcosahedronDetail),
		Particles:   NewParticleCloud(particles, ParticleSpread, rng),
		Wave:        NewWaveBars(WaveSegments, WaveWidth),
		Background:  Black,
	}
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
