package switcher

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// GradientRamp is a ColorRamp interpolating evenly spaced color stops in Lab space
type GradientRamp struct {
	stops []colorful.Color
}

// NewGradientRamp creates a ramp from hex color stops
func NewGradientRamp(stops ...string) (*GradientRamp, error) {
	if len(stops) == 0 {
		return nil, errors.New("gradient ramp needs at least one stop")
	}

	ramp := &GradientRamp{stops: make([]colorful.Color, len(stops))}
	for i, stop := range stops {
		c, err := colorful.Hex(stop)
		if err != nil {
			return nil, fmt.Errorf("ramp stop %d: %w", i, err)
		}
		ramp.stops[i] = c
	}

	return ramp, nil
}

// At returns the color at t, clamped to [0,1]
func (g *GradientRamp) At(t float64) colorful.Color {
	if len(g.stops) == 1 || math.IsNaN(t) {
		return g.stops[0]
	}
	t = min(max(t, 0), 1)

	pos := t * float64(len(g.stops)-1)
	i := int(math.Floor(pos))
	if i >= len(g.stops)-1 {
		return g.stops[len(g.stops)-1]
	}

	return g.stops[i].BlendLab(g.stops[i+1], pos-float64(i)).Clamped()
}
