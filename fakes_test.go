package switcher

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/akmonengine/switcher/volume"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func boxVolume(name string, priority float64, enabled bool, position mgl64.Vec3) volume.Descriptor {
	return volume.Descriptor{
		Name:        name,
		Enabled:     enabled,
		Priority:    priority,
		Transform:   volume.Transform{Position: position},
		HalfExtents: mgl64.Vec3{100, 100, 100},
	}
}

func infiniteVolume(name string, priority float64) volume.Descriptor {
	return volume.Descriptor{Name: name, Enabled: true, Infinite: true, Priority: priority}
}

// fakeVolumes is an in memory VolumeSource
type fakeVolumes struct {
	volumes []volume.Descriptor
	failing map[string]bool
}

func (f *fakeVolumes) Volumes() []volume.Descriptor {
	return append([]volume.Descriptor(nil), f.volumes...)
}

func (f *fakeVolumes) SetEnabled(name string, enabled bool) error {
	if f.failing[name] {
		return fmt.Errorf("volume %s is locked", name)
	}
	for i := range f.volumes {
		if f.volumes[i].Name == name {
			f.volumes[i].Enabled = enabled
		}
	}
	return nil
}

// fakeObserver is an ObserverSource that can be detached
type fakeObserver struct {
	position mgl64.Vec3
	attached bool
}

func (f *fakeObserver) ObserverPosition() (mgl64.Vec3, bool) {
	return f.position, f.attached
}

// fakeView records every write and resolves settings from base plus overrides
type fakeView struct {
	base        Settings
	unavailable bool
	overrides   map[Category]bool
	methods     map[Category]Method
	queries     int
}

func newFakeView(base Settings) *fakeView {
	return &fakeView{
		base:      base,
		overrides: make(map[Category]bool),
		methods:   make(map[Category]Method),
	}
}

func (f *fakeView) EffectiveSettings() (Settings, error) {
	f.queries++
	if f.unavailable {
		return Settings{}, errors.New("no camera")
	}
	settings := f.base
	for _, category := range Categories {
		if f.overrides[category] {
			settings = settings.With(category, f.methods[category])
		}
	}
	return settings, nil
}

func (f *fakeView) SetOverride(category Category, enabled bool) {
	f.overrides[category] = enabled
}

func (f *fakeView) SetMethod(category Category, method Method) {
	f.methods[category] = method
}

// fakeSink keeps every batch
type fakeSink struct {
	batches [][]Line
}

func (f *fakeSink) DrawLines(lines []Line) {
	f.batches = append(f.batches, lines)
}

// fakeRamp records the values it is sampled at and returns gray levels
type fakeRamp struct {
	values []float64
}

func (f *fakeRamp) At(t float64) colorful.Color {
	f.values = append(f.values, t)
	return colorful.Color{R: t, G: t, B: t}
}

// fakeConsole records commands
type fakeConsole struct {
	commands []string
	err      error
}

func (f *fakeConsole) Exec(command string) error {
	f.commands = append(f.commands, command)
	return f.err
}
