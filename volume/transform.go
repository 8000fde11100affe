package volume

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform represents a placement in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// rotation returns the normalized rotation, the zero quaternion counts as identity
func (t Transform) rotation() mgl64.Quat {
	if t.Rotation.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return t.Rotation.Normalize()
}

// scale returns the per axis scale, a zero scale vector counts as unit scale
func (t Transform) scale() mgl64.Vec3 {
	if t.Scale == (mgl64.Vec3{}) {
		return mgl64.Vec3{1, 1, 1}
	}
	return t.Scale
}

// InverseTransformPositionNoScale moves a world point into the local frame,
// removing translation and rotation but not scale
func (t Transform) InverseTransformPositionNoScale(point mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Conjugate().Rotate(point.Sub(t.Position))
}

// TransformPositionNoScale moves a local point into world space with
// rotation and translation only
func (t Transform) TransformPositionNoScale(point mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Rotate(point).Add(t.Position)
}

// ScaledExtents applies the transform scale to local half extents.
// Negative scale components mirror the box and are taken as magnitudes.
func (t Transform) ScaledExtents(halfExtents mgl64.Vec3) mgl64.Vec3 {
	s := t.scale()
	return mgl64.Vec3{
		math.Abs(halfExtents.X() * s.X()),
		math.Abs(halfExtents.Y() * s.Y()),
		math.Abs(halfExtents.Z() * s.Z()),
	}
}
