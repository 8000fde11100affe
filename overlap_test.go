package switcher

import (
	"fmt"
	"testing"

	"github.com/akmonengine/switcher/volume"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestSnapshot_AmbiguousOverlaps(t *testing.T) {
	snapshot := rebuild(t,
		infiniteVolume("Global", 1),
		boxVolume("A", 1, true, mgl64.Vec3{0, 0, 0}),
		boxVolume("B", 1, true, mgl64.Vec3{150, 0, 0}),
		boxVolume("C", 2, true, mgl64.Vec3{-150, 0, 0}),
		boxVolume("Off", 1, false, mgl64.Vec3{0, 0, 0}),
		boxVolume("Far", 1, true, mgl64.Vec3{5000, 0, 0}),
	)

	assert.Equal(t, []Overlap{{A: "A", B: "B", Priority: 1}}, snapshot.AmbiguousOverlaps())
}

func TestSnapshot_AmbiguousOverlapsBlendRadius(t *testing.T) {
	a := boxVolume("A", 0, true, mgl64.Vec3{0, 0, 0})
	b := boxVolume("B", 0, true, mgl64.Vec3{220, 0, 0})
	assert.Empty(t, rebuild(t, a, b).AmbiguousOverlaps())

	a.BlendRadius = 10
	b.BlendRadius = 10
	assert.Len(t, rebuild(t, a, b).AmbiguousOverlaps(), 1, "blend margins touch")
}

func TestSnapshot_AmbiguousOverlapsDuplicates(t *testing.T) {
	snapshot := rebuild(t,
		boxVolume("A", 1, true, mgl64.Vec3{0, 0, 0}),
		boxVolume("B", 1, true, mgl64.Vec3{0, 0, 0}),
		boxVolume("A", 1, true, mgl64.Vec3{1000, 0, 0}),
	)

	assert.Empty(t, snapshot.AmbiguousOverlaps(), "the shadowed A is ignored")
	assert.Empty(t, emptySnapshot().AmbiguousOverlaps())
}

func TestSnapshot_AmbiguousOverlapsWithoutObserver(t *testing.T) {
	snapshot, err := NewRegistry(discardLogger()).Rebuild([]volume.Descriptor{
		boxVolume("A", 1, true, mgl64.Vec3{0, 0, 0}),
		boxVolume("B", 1, true, mgl64.Vec3{150, 0, 0}),
	}, nil)
	assert.ErrorIs(t, err, ErrNoObserver)
	assert.Equal(t, []Overlap{{A: "A", B: "B", Priority: 1}}, snapshot.AmbiguousOverlaps())
}

func TestSnapshot_AmbiguousOverlapsLargeVolume(t *testing.T) {
	descriptors := []volume.Descriptor{}
	for i := range 200 {
		descriptors = append(descriptors, boxVolume(fmt.Sprintf("Room%d", i), float64(i+1), true, mgl64.Vec3{float64(i) * 300, 0, 0}))
	}
	world := boxVolume("World", 7, true, mgl64.Vec3{})
	world.HalfExtents = mgl64.Vec3{1e5, 1e5, 1e5}
	descriptors = append(descriptors, world)

	overlaps := rebuild(t, descriptors...).AmbiguousOverlaps()
	assert.Equal(t, []Overlap{{A: "Room6", B: "World", Priority: 7}}, overlaps)
}
