package switcher

import "errors"

// Conditions reported by the switcher. None of them is fatal: callers log
// them and carry on with empty, stale or partial results.
var (
	// ErrNoObserver is returned when no observer position can be resolved
	ErrNoObserver = errors.New("no observer attached")
	// ErrViewUnavailable is returned when the host cannot compute a view;
	// the last resolved settings are returned alongside
	ErrViewUnavailable = errors.New("view settings unavailable")
	// ErrUnsupportedShape is returned for volumes whose brush is not a box
	ErrUnsupportedShape = errors.New("volume is not box shaped")
	// ErrMissingColorRamp is returned when coloring by priority without a ramp
	ErrMissingColorRamp = errors.New("no color ramp for priority coloring")
)
