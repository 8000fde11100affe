package volume

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBlendedBoxWireframe_Counts(t *testing.T) {
	tests := []struct {
		name     string
		segments int
		points   int
	}{
		{name: "default", segments: 0, points: 20},
		{name: "four per corner", segments: 4, points: 20},
		{name: "one per corner", segments: 1, points: 8},
		{name: "eight per corner", segments: 8, points: 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := BuildBlendedBoxWireframe(NewTransform(), DefaultHalfExtents, 20, tt.segments)
			require.Len(t, w.Loops, 6)
			for _, loop := range w.Loops {
				assert.Len(t, loop, tt.points)
			}
			assert.Len(t, w.Segments(), 6*tt.points)
		})
	}
}

func TestBuildBlendedBoxWireframe_PointsOnBlendedSurface(t *testing.T) {
	transform := Transform{
		Position: mgl64.Vec3{-300, 40, 12},
		Rotation: mgl64.QuatRotate(0.4, mgl64.Vec3{0, 1, 1}.Normalize()),
		Scale:    mgl64.Vec3{1.5, 0.5, 2},
	}
	extents := mgl64.Vec3{100, 100, 100}
	radius := 25.0

	w := BuildBlendedBoxWireframe(transform, extents, radius, 4)
	for i, loop := range w.Loops {
		for _, p := range loop {
			contains, distance := PointInBlendedBox(p, transform, extents, radius+1e-6)
			assert.True(t, contains, "loop %d point %v", i, p)
			assert.InDelta(t, radius, distance, 1e-6, "loop %d point %v", i, p)
		}
	}
}

func TestBuildBlendedBoxWireframe_BeltsOnFaces(t *testing.T) {
	extents := mgl64.Vec3{100, 50, 25}
	w := BuildBlendedBoxWireframe(NewTransform(), extents, 10, 4)

	// loops come in mirrored pairs per axis: +X, -X, +Y, -Y, +Z, -Z
	for axis := 0; axis < 3; axis++ {
		for side, sign := range [2]float64{1, -1} {
			loop := w.Loops[2*axis+side]
			for _, p := range loop {
				assert.InDelta(t, sign*extents[axis], p[axis], 1e-9)
			}
		}
	}
}

func TestBuildBlendedBoxWireframe_ArcTable(t *testing.T) {
	w := BuildBlendedBoxWireframe(NewTransform(), mgl64.Vec3{100, 100, 100}, 20, 4)
	loop := w.Loops[0]

	// first corner of the +X belt starts straight below the edge and ends beside it
	assert.True(t, vec3Equal(loop[0], mgl64.Vec3{100, 100, -120}, 1e-9), "got %v", loop[0])
	assert.True(t, vec3Equal(loop[4], mgl64.Vec3{100, 120, -100}, 1e-9), "got %v", loop[4])

	// the middle arc point sits at 45 degrees
	f := 20 * math.Sin(math.Pi/4)
	assert.True(t, vec3Equal(loop[2], mgl64.Vec3{100, 100 + f, -100 - f}, 1e-9), "got %v", loop[2])
}

func TestBuildBlendedBoxWireframe_ZeroRadius(t *testing.T) {
	w := BuildBlendedBoxWireframe(NewTransform(), mgl64.Vec3{1, 1, 1}, 0, 4)

	for _, loop := range w.Loops {
		for _, p := range loop {
			for axis := 0; axis < 3; axis++ {
				assert.InDelta(t, 1, math.Abs(p[axis]), 1e-12)
			}
		}
	}
}

func TestWireframeSegments_ClosesLoops(t *testing.T) {
	w := Wireframe{Loops: []Loop{{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}}}
	segments := w.Segments()

	require.Len(t, segments, 3)
	assert.Equal(t, mgl64.Vec3{1, 1, 0}, segments[2].Start)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, segments[2].End)
}
