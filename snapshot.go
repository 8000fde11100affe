package switcher

import (
	"slices"
	"sort"

	"github.com/akmonengine/switcher/volume"
	"github.com/go-gl/mathgl/mgl64"
)

// Status is the state of one volume relative to the observer
type Status struct {
	Enabled  bool
	Infinite bool
	Priority float64
	// Inside is true when the observer lies within the blended boundary,
	// always true for infinite volumes
	Inside bool
	// Distance to the unexpanded box surface, volume.BigNumber for infinite volumes
	Distance float64
	// Order is the position of the volume in the host list
	Order int
}

// Snapshot is the immutable result of evaluating all volumes against one
// observer position. It is never modified once published.
type Snapshot struct {
	statuses    map[string]Status
	volumes     []volume.Descriptor
	maxPriority float64
	effective   string
	observer    mgl64.Vec3
	hasObserver bool
}

func emptySnapshot() *Snapshot {
	return &Snapshot{statuses: map[string]Status{}}
}

// Len returns the number of distinct volumes
func (s *Snapshot) Len() int {
	return len(s.statuses)
}

// Status returns the status of the named volume
func (s *Snapshot) Status(name string) (Status, bool) {
	status, ok := s.statuses[name]
	return status, ok
}

// Inside reports whether the observer is inside the named volume
func (s *Snapshot) Inside(name string) bool {
	return s.statuses[name].Inside
}

// MaxPriority is the highest priority over every volume, enabled or not.
// It is 0 for an empty snapshot.
func (s *Snapshot) MaxPriority() float64 {
	return s.maxPriority
}

// Effective returns the name of the highest priority enabled volume containing
// the observer. Among equal priorities the one later in host order wins, as it
// is blended last. The second value is false when no volume applies.
func (s *Snapshot) Effective() (string, bool) {
	return s.effective, s.effective != ""
}

// Observer returns the position the snapshot was computed for
func (s *Snapshot) Observer() (mgl64.Vec3, bool) {
	return s.observer, s.hasObserver
}

// Volumes returns a copy of the descriptors the snapshot was built from, in
// host order. They are kept even when the snapshot has no observer.
func (s *Snapshot) Volumes() []volume.Descriptor {
	return slices.Clone(s.volumes)
}

// distinct returns the descriptors in host order without those shadowed by a
// later descriptor of the same name
func (s *Snapshot) distinct() []volume.Descriptor {
	last := make(map[string]int, len(s.volumes))
	for i, d := range s.volumes {
		last[d.Name] = i
	}

	descriptors := make([]volume.Descriptor, 0, len(last))
	for i, d := range s.volumes {
		if last[d.Name] == i {
			descriptors = append(descriptors, d)
		}
	}
	return descriptors
}

// Names returns the volume names by ascending priority, then host order
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.statuses))
	for name := range s.statuses {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := s.statuses[names[i]], s.statuses[names[j]]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Order < b.Order
	})

	return names
}
