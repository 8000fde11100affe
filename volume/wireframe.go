package volume

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultSegmentsPerCorner is the number of arc segments per rounded corner
const DefaultSegmentsPerCorner = 4

// Loop is a closed polyline, the last point connects back to the first one
type Loop []mgl64.Vec3

// Segment is a straight line between two world points
type Segment struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
}

// Wireframe is the outline of a blend-expanded box: for each axis, two belts
// running around the box in the planes of the two faces normal to that axis.
type Wireframe struct {
	Loops []Loop
}

// Segments flattens all loops into line segments, closing every loop
func (w Wireframe) Segments() []Segment {
	n := 0
	for _, loop := range w.Loops {
		n += len(loop)
	}

	segments := make([]Segment, 0, n)
	for _, loop := range w.Loops {
		last := len(loop) - 1
		for i := 0; i < last; i++ {
			segments = append(segments, Segment{Start: loop[i], End: loop[i+1]})
		}
		if last > 0 {
			segments = append(segments, Segment{Start: loop[last], End: loop[0]})
		}
	}

	return segments
}

// BuildBlendedBoxWireframe constructs the boundary of the box expanded by
// blendRadius, with quarter circle edges of radius blendRadius.
// Belt points are computed in the local frame with the transform scale
// applied to the half extents, then moved to world space using rotation and
// translation only so that non uniform scale does not distort the arcs.
func BuildBlendedBoxWireframe(transform Transform, halfExtents mgl64.Vec3, blendRadius float64, segmentsPerCorner int) Wireframe {
	if segmentsPerCorner <= 0 {
		segmentsPerCorner = DefaultSegmentsPerCorner
	}
	e := transform.ScaledExtents(halfExtents)
	r := math.Max(blendRadius, 0)
	table := newArcTable(segmentsPerCorner)

	wireframe := Wireframe{Loops: make([]Loop, 0, 6)}
	for axis := 0; axis < 3; axis++ {
		// the belt lies in the plane of the two remaining axes
		u, v := (axis+1)%3, (axis+2)%3
		if u > v {
			u, v = v, u
		}
		belt := roundedRect(e[u], e[v], r, table)

		for _, side := range [2]float64{1, -1} {
			loop := make(Loop, len(belt))
			for i, p := range belt {
				var local mgl64.Vec3
				local[axis] = side * e[axis]
				local[u] = p[0]
				local[v] = p[1]
				loop[i] = transform.TransformPositionNoScale(local)
			}
			wireframe.Loops = append(wireframe.Loops, loop)
		}
	}

	return wireframe
}

// arcTable caches cosine and sine of the equal angular steps over a quarter circle
type arcTable struct {
	cos []float64
	sin []float64
}

func newArcTable(segments int) arcTable {
	step := (math.Pi / 2) / float64(segments)
	t := arcTable{
		cos: make([]float64, segments+1),
		sin: make([]float64, segments+1),
	}
	for i := 0; i <= segments; i++ {
		t.sin[i], t.cos[i] = math.Sincos(float64(i) * step)
	}
	// exact end points so that arcs meet the straight edges
	t.cos[segments], t.sin[segments] = 0, 1

	return t
}

// roundedRect returns the outline of the rectangle with half sizes a and b
// expanded by r, counter clockwise, starting at the bottom of the (+a, -b) corner.
// Each corner contributes one arc of len(table.cos) points.
func roundedRect(a, b, r float64, table arcTable) [][2]float64 {
	corners := [4][2]float64{{a, -b}, {a, b}, {-a, b}, {-a, -b}}
	points := make([][2]float64, 0, 4*len(table.cos))

	for k, c := range corners {
		for i := range table.cos {
			// rotate (cos, sin) by (k-1) quarter turns, exactly
			x, y := table.cos[i], table.sin[i]
			switch k {
			case 0:
				x, y = y, -x
			case 2:
				x, y = -y, x
			case 3:
				x, y = -x, -y
			}
			points = append(points, [2]float64{c[0] + r*x, c[1] + r*y})
		}
	}

	return points
}
