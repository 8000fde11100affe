package volume

import "github.com/go-gl/mathgl/mgl64"

// DefaultHalfExtents are the half extents of an unscaled host brush box
var DefaultHalfExtents = mgl64.Vec3{100, 100, 100}

// Descriptor is the host independent description of one volume. It is
// either infinite, covering all of space, or a bounded box; the box fields are
// ignored for infinite volumes.
type Descriptor struct {
	Name        string
	Enabled     bool
	Infinite    bool
	Priority    float64
	BlendRadius float64

	Transform   Transform
	HalfExtents mgl64.Vec3

	// BrushVertexCount is the number of points of the authored brush, zero when
	// the host does not report it
	BrushVertexCount int
}

// IsBox reports whether the authored brush can be treated as a box
func (d Descriptor) IsBox() bool {
	return d.BrushVertexCount == 0 || d.BrushVertexCount == BrushBoxVertexCount
}

// Bounds returns the world bounds of the blend-expanded volume.
// The second value is false for infinite volumes.
func (d Descriptor) Bounds() (AABB, bool) {
	if d.Infinite {
		return AABB{}, false
	}
	return Box{HalfExtents: d.HalfExtents}.ComputeAABB(d.Transform, d.BlendRadius), true
}
