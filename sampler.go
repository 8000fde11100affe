package switcher

// Sampler throttles a periodic rate report. With a zero interval it reports
// every tick, otherwise it accumulates time and frames until the interval is
// reached, reports frames per second and restarts from zero. The remainder
// past the interval is dropped.
type Sampler struct {
	Interval float64
	OnReport func(value float64)

	frames      int
	accumulated float64
}

// NewSampler creates a sampler reporting to onReport every interval seconds
func NewSampler(interval float64, onReport func(value float64)) *Sampler {
	return &Sampler{Interval: max(interval, 0), OnReport: onReport}
}

// Tick advances the sampler by dt seconds. It returns the reported value and
// true when a report was emitted.
func (s *Sampler) Tick(dt float64) (float64, bool) {
	if dt <= 0 {
		return 0, false
	}

	if s.Interval <= 0 {
		return s.report(1 / dt), true
	}

	s.frames++
	s.accumulated += dt
	if s.accumulated < s.Interval {
		return 0, false
	}

	rate := float64(s.frames) / s.accumulated
	s.frames = 0
	s.accumulated = 0

	return s.report(rate), true
}

func (s *Sampler) report(value float64) float64 {
	if s.OnReport != nil {
		s.OnReport(value)
	}
	return value
}
