package switcher

import "github.com/akmonengine/switcher/volume"

// Overlap is two enabled bounded volumes of equal priority whose blended
// bounds intersect. Where both contain the observer only host order decides
// which one is blended last.
type Overlap struct {
	A, B     string
	Priority float64
}

// AmbiguousOverlaps returns the equal priority overlaps among the enabled
// bounded volumes of the snapshot, in host order. Bounds are axis aligned so
// rotated volumes may be reported without their boxes actually touching.
func (s *Snapshot) AmbiguousOverlaps() []Overlap {
	var (
		candidates []volume.Descriptor
		bounds     []volume.AABB
	)
	for _, d := range s.distinct() {
		if !d.Enabled {
			continue
		}
		if b, ok := d.Bounds(); ok {
			candidates = append(candidates, d)
			bounds = append(bounds, b)
		}
	}
	if len(bounds) < 2 {
		return nil
	}

	var overlaps []Overlap
	for _, pair := range volume.NewGridFor(bounds).FindOverlaps(bounds) {
		a, b := candidates[pair.A], candidates[pair.B]
		if a.Priority == b.Priority {
			overlaps = append(overlaps, Overlap{A: a.Name, B: b.Name, Priority: a.Priority})
		}
	}
	return overlaps
}
