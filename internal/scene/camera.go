package scene

import "github.com/go-gl/mathgl/mgl32"

const (
	CameraFOV  = 75
	CameraNear = 0.1
	CameraFar  = 1000
)

// Camera is a perspective camera. Aspect changes take effect after
// UpdateProjectionMatrix.
type Camera struct {
	Object3D
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32

	projection mgl32.Mat4
}

// NewCamera returns the default camera looking down -Z from z = 5.
func NewCamera(aspect float32) *Camera {
	c := &Camera{
		Object3D: NewObject3D(),
		FOV:      CameraFOV,
		Aspect:   aspect,
		Near:     CameraNear,
		Far:      CameraFar,
	}
	c.Position = mgl32.Vec3{0, 0, 5}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the projection from FOV, Aspect, Near
// and Far.
func (c *Camera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Projection returns the last computed projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// View returns the world-to-camera transform.
func (c *Camera) View() mgl32.Mat4 { return c.Matrix().Inv() }
