package volume

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

// BrushBoxVertexCount is the number of brush points of a box shaped volume
const BrushBoxVertexCount = 8

// Box represents an oriented box volume shape.
// HalfExtents are authored in local units, the transform scale is applied on top.
type Box struct {
	HalfExtents mgl64.Vec3
}

// ComputeAABB calculates the world axis-aligned bounding box of the box
// expanded by the blend radius
func (b Box) ComputeAABB(transform Transform, blendRadius float64) AABB {
	e := transform.ScaledExtents(b.HalfExtents)
	r := math.Max(blendRadius, 0)
	hx, hy, hz := e.X()+r, e.Y()+r, e.Z()+r

	corners := [8]mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}

	worldCorner := transform.TransformPositionNoScale(corners[0])
	min := worldCorner
	max := worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = transform.TransformPositionNoScale(corners[i])

		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])

		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	return AABB{Min: min, Max: max}
}

// Distance returns the shortest distance from a world point to the surface of
// the unexpanded box, clipped to zero inside the box.
func (b Box) Distance(transform Transform, point mgl64.Vec3) (float64, error) {
	e := transform.ScaledExtents(b.HalfExtents)
	s, err := sdf.Box3D(v3.Vec{X: 2 * e.X(), Y: 2 * e.Y(), Z: 2 * e.Z()}, 0)
	if err != nil {
		return BigNumber, err
	}

	local := transform.InverseTransformPositionNoScale(point)
	d := s.Evaluate(v3.Vec{X: local.X(), Y: local.Y(), Z: local.Z()})

	return math.Max(d, 0), nil
}
