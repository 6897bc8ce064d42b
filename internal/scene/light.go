package scene

import "github.com/go-gl/mathgl/mgl32"

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     Color
	Intensity float64
}

// PointLight radiates from a position.
type PointLight struct {
	Color     Color
	Intensity float64
	Position  mgl32.Vec3
}
