package scene

import "github.com/go-gl/mathgl/mgl32"

// Object3D is a position, an XYZ Euler rotation in radians and a scale.
type Object3D struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// NewObject3D returns an identity transform.
func NewObject3D() Object3D {
	return Object3D{Scale: mgl32.Vec3{1, 1, 1}}
}

// SetScalar applies the same scale on every axis.
func (o *Object3D) SetScalar(s float32) {
	o.Scale = mgl32.Vec3{s, s, s}
}

// Matrix returns the local-to-world transform T * Rx * Ry * Rz * S.
func (o *Object3D) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	r := mgl32.HomogRotate3DX(o.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z()))
	s := mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	return t.Mul4(r).Mul4(s)
}
