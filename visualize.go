package switcher

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akmonengine/switcher/config"
	"github.com/akmonengine/switcher/volume"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// SmallNumber is the priority below which the maximum priority counts as zero
const SmallNumber = 1e-8

// ColorMode selects how volume wireframes are colored
type ColorMode uint8

const (
	ColorModeFixed ColorMode = iota
	ColorModePriority
)

// ParseColorMode parses a configured color mode
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", config.ColorModeFixed:
		return ColorModeFixed, nil
	case config.ColorModePriority:
		return ColorModePriority, nil
	default:
		return ColorModeFixed, fmt.Errorf("unknown color mode %q", s)
	}
}

// Line is one debug line segment
type Line struct {
	Start     mgl64.Vec3
	End       mgl64.Vec3
	Color     colorful.Color
	Lifetime  float64
	Thickness float64
}

// Emitter draws the boundaries of bounded volumes into a LineSink
type Emitter struct {
	// Color is used by ColorModeFixed
	Color             colorful.Color
	SegmentsPerCorner int

	sink   LineSink
	ramp   ColorRamp
	logger *slog.Logger
}

// NewEmitter creates an emitter. ramp may be nil when only fixed colors are used.
func NewEmitter(sink LineSink, ramp ColorRamp, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		Color:             colorful.Color{R: 0, G: 1, B: 0},
		SegmentsPerCorner: volume.DefaultSegmentsPerCorner,
		sink:              sink,
		ramp:              ramp,
		logger:            logger,
	}
}

// RelativePriority returns priority / maxPriority clamped to [0,1], or 1 when
// maxPriority is effectively zero
func RelativePriority(priority, maxPriority float64) float64 {
	if maxPriority < SmallNumber {
		return 1
	}
	return min(max(priority/maxPriority, 0), 1)
}

// EmitAll submits the wireframe of every bounded volume of snapshot, one batch
// per volume, whether or not the snapshot has an observer. A volume shadowed
// by a later one of the same name is not drawn. Volumes whose brush is not a
// box are skipped with a diagnostic.
// Coloring by priority without a ramp aborts the pass with ErrMissingColorRamp.
// It returns the number of volumes drawn.
func (e *Emitter) EmitAll(snapshot *Snapshot, mode ColorMode, thickness, lifetime float64) (int, error) {
	if e.sink == nil || snapshot == nil {
		return 0, nil
	}
	if mode == ColorModePriority && e.ramp == nil {
		e.logger.Error("skipping volume visualization", "err", ErrMissingColorRamp)
		return 0, ErrMissingColorRamp
	}

	volumes := snapshot.distinct()
	maxPriority := snapshot.maxPriority
	if _, ok := snapshot.Observer(); !ok {
		maxPriority = highestPriority(snapshot.volumes)
	}

	var errs []error
	drawn := 0
	for _, d := range volumes {
		if d.Infinite {
			continue
		}
		if !d.IsBox() {
			err := fmt.Errorf("%w: %s has %d brush points", ErrUnsupportedShape, d.Name, d.BrushVertexCount)
			e.logger.Warn("skipping volume visualization", "volume", d.Name, "err", err)
			errs = append(errs, err)
			continue
		}

		color := e.Color
		if mode == ColorModePriority {
			color = e.ramp.At(RelativePriority(d.Priority, maxPriority))
		}

		e.sink.DrawLines(e.lines(d, color, thickness, lifetime))
		drawn++
	}

	return drawn, errors.Join(errs...)
}

func highestPriority(volumes []volume.Descriptor) float64 {
	if len(volumes) == 0 {
		return 0
	}
	highest := volumes[0].Priority
	for _, d := range volumes[1:] {
		highest = max(highest, d.Priority)
	}
	return highest
}

func (e *Emitter) lines(d volume.Descriptor, color colorful.Color, thickness, lifetime float64) []Line {
	segments := volume.BuildBlendedBoxWireframe(d.Transform, d.HalfExtents, d.BlendRadius, e.SegmentsPerCorner).Segments()

	lines := make([]Line, len(segments))
	for i, s := range segments {
		lines[i] = Line{
			Start:     s.Start,
			End:       s.End,
			Color:     color,
			Lifetime:  lifetime,
			Thickness: thickness,
		}
	}

	return lines
}
