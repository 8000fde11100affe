package switcher

import (
	"github.com/akmonengine/switcher/volume"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// VolumeSource supplies the volumes of the scene
type VolumeSource interface {
	// Volumes returns the volume descriptors, in host order
	Volumes() []volume.Descriptor
	// SetEnabled writes the enabled flag back onto the host volume
	SetEnabled(name string, enabled bool) error
}

// ObserverSource supplies the world position of the tracked camera.
// The second value is false while no camera is attached.
type ObserverSource interface {
	ObserverPosition() (mgl64.Vec3, bool)
}

// ViewSettings is the camera/view subsystem of the host
type ViewSettings interface {
	// EffectiveSettings computes the settings in effect for the current view,
	// after blending every contributing volume and the camera overrides
	EffectiveSettings() (Settings, error)
	// SetOverride sets whether the camera value of category is honored
	SetOverride(category Category, enabled bool)
	// SetMethod sets the camera value of category
	SetMethod(category Category, method Method)
}

// LineSink receives batches of debug lines
type LineSink interface {
	DrawLines(lines []Line)
}

// ColorRamp maps a normalized value in [0,1] to a color
type ColorRamp interface {
	At(t float64) colorful.Color
}

// Console executes renderer console commands
type Console interface {
	Exec(command string) error
}

// Hosts groups the host collaborators. Any of them may be nil, the
// corresponding features then degrade as documented on each operation.
type Hosts struct {
	Volumes  VolumeSource
	Observer ObserverSource
	View     ViewSettings
	Lines    LineSink
	Ramp     ColorRamp
	Console  Console
}
