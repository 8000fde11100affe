package switcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/akmonengine/switcher/volume"
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

// Registry keeps the snapshot of the known volumes and recomputes containment
// and priorities against the observer. A rebuild replaces the snapshot as a
// whole, readers holding the previous one keep a consistent view.
type Registry struct {
	// Workers splits containment tests, the rebuild still returns only once
	// every volume has been evaluated
	Workers int

	snapshot *Snapshot
	logger   *slog.Logger
}

// NewRegistry creates a registry with an empty snapshot
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		Workers:  DEFAULT_WORKERS,
		snapshot: emptySnapshot(),
		logger:   logger,
	}
}

type containmentJob struct {
	descriptor volume.Descriptor
	inside     bool
	distance   float64
}

// Rebuild evaluates every descriptor against observer and publishes the new
// snapshot. Duplicate names keep the last descriptor in host order. Without an
// observer the snapshot holds no status, only the descriptors so that volumes
// can still be drawn, and ErrNoObserver is returned.
func (r *Registry) Rebuild(descriptors []volume.Descriptor, observer *mgl64.Vec3) (*Snapshot, error) {
	if observer == nil {
		r.snapshot = emptySnapshot()
		r.snapshot.volumes = slices.Clone(descriptors)
		return r.snapshot, ErrNoObserver
	}

	jobs := make([]*containmentJob, len(descriptors))
	for i, d := range descriptors {
		jobs[i] = &containmentJob{descriptor: d}
	}
	point := *observer
	task(max(DEFAULT_WORKERS, r.Workers), jobs, func(job *containmentJob) {
		job.inside, job.distance = volume.PointInVolume(point, job.descriptor)
	})

	snapshot := &Snapshot{
		statuses:    make(map[string]Status, len(descriptors)),
		volumes:     slices.Clone(descriptors),
		observer:    point,
		hasObserver: true,
	}

	for i, job := range jobs {
		d := job.descriptor

		// the host list is expected in ascending priority but this is not trusted
		if i == 0 || d.Priority > snapshot.maxPriority {
			snapshot.maxPriority = d.Priority
		}

		snapshot.statuses[d.Name] = Status{
			Enabled:  d.Enabled,
			Infinite: d.Infinite,
			Priority: d.Priority,
			Inside:   job.inside,
			Distance: job.distance,
			Order:    i,
		}
	}
	snapshot.effective = resolveEffective(snapshot.statuses)

	r.snapshot = snapshot
	return snapshot, nil
}

// resolveEffective picks the highest priority enabled volume containing the
// observer, the later one in host order on ties
func resolveEffective(statuses map[string]Status) string {
	effective := ""
	var best Status
	for name, status := range statuses {
		if !status.Enabled || !status.Inside {
			continue
		}
		if effective == "" || status.Priority > best.Priority ||
			(status.Priority == best.Priority && status.Order > best.Order) {
			effective, best = name, status
		}
	}
	return effective
}

// Snapshot returns the last published snapshot
func (r *Registry) Snapshot() *Snapshot {
	return r.snapshot
}

// MaxPriority returns the maximum priority of the last rebuild, 0 when empty
func (r *Registry) MaxPriority() float64 {
	return r.snapshot.MaxPriority()
}

// IsInside reports whether the observer was inside the named volume at the last rebuild
func (r *Registry) IsInside(name string) bool {
	return r.snapshot.Inside(name)
}

// DisableAll sets the enabled flag of every host volume to false. This writes
// to host owned volumes. The previous enabled state is not recorded, so
// volumes cannot be restored to it later.
func (r *Registry) DisableAll(source VolumeSource) error {
	if source == nil {
		return errors.New("disable volumes: no volume source")
	}

	var errs []error
	for _, d := range source.Volumes() {
		if err := source.SetEnabled(d.Name, false); err != nil {
			r.logger.Warn("cannot disable volume", "volume", d.Name, "err", err)
			errs = append(errs, fmt.Errorf("disable %s: %w", d.Name, err))
		}
	}

	return errors.Join(errs...)
}

// LogSnapshot writes one debug line per volume of the last snapshot
func (r *Registry) LogSnapshot(level slog.Level) {
	s := r.snapshot
	for _, name := range s.Names() {
		status := s.statuses[name]
		r.logger.Log(context.Background(), level, "volume",
			"volume", name,
			"enabled", status.Enabled,
			"infinite", status.Infinite,
			"priority", status.Priority,
			"inside", status.Inside,
		)
	}
}
