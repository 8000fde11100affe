// Package volume holds the geometry of post process volumes: oriented boxes
// with a rounded blend margin, the containment test of an observer point and
// the wireframe used to visualize a volume boundary.
//
// Extents follow the host convention: half extents are authored in local
// units and the transform scale is applied on top of them, while positions
// only go through translation and rotation. The blend radius is therefore
// always measured in world units, whatever the volume scale is.
package volume

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BigNumber is the distance reported when no finite distance exists, e.g. for
// infinite volumes or degenerate boxes.
const BigNumber = 3.4e+38

// PointInBlendedBox tests whether point lies within the box given by transform
// and halfExtents expanded outward by blendRadius. The expansion is rounded at
// edges and corners: the point is inside when its distance to the box is not
// greater than blendRadius. The returned distance is the distance to the
// unexpanded box surface, zero for points inside the box.
func PointInBlendedBox(point mgl64.Vec3, transform Transform, halfExtents mgl64.Vec3, blendRadius float64) (bool, float64) {
	distance, err := Box{HalfExtents: halfExtents}.Distance(transform, point)
	if err != nil || math.IsNaN(distance) {
		return false, BigNumber
	}

	return distance <= math.Max(blendRadius, 0), distance
}

// PointInVolume is PointInBlendedBox for a descriptor. Infinite volumes
// contain every point and report BigNumber as distance.
func PointInVolume(point mgl64.Vec3, d Descriptor) (bool, float64) {
	if d.Infinite {
		return true, BigNumber
	}
	return PointInBlendedBox(point, d.Transform, d.HalfExtents, d.BlendRadius)
}
