// Package switcher decides, for an observer moving through a scene, which
// post process volumes contain it and which rendering overrides apply.
//
// A Switcher is driven by a periodic Tick from the host plus on demand calls
// from user actions. Every tick first rebuilds the volume snapshot, then
// applies the queued actions, then draws the volume boundaries and finally
// emits the periodic report, so that visualization never lags behind the
// containment state of the same tick.
package switcher

import (
	"fmt"
	"log/slog"

	"github.com/akmonengine/switcher/config"
	"github.com/akmonengine/switcher/volume"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Action is a user request bound to an input
type Action uint8

const (
	ActionToggleOverrides Action = iota
	ActionCycleGlobalIllumination
	ActionCycleReflection
	ActionToggleHardwareRayTracing
	ActionDisableAllVolumes
)

// Switcher tracks one observer
type Switcher struct {
	Registry  *Registry
	Overrides *OverrideController
	Emitter   *Emitter
	Sampler   *Sampler
	Events    Events

	config  config.Config
	hosts   Hosts
	logger  *slog.Logger
	mode    ColorMode
	pending []Action

	hardwareRayTracing bool
}

// New creates a switcher from the startup configuration and the host
// collaborators. onReport receives the frame rate every refresh interval.
// When hosts.Ramp is nil the configured ramp stops are used.
func New(cfg config.Config, hosts Hosts, logger *slog.Logger, onReport func(value float64)) (*Switcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	mode, err := ParseColorMode(cfg.Visualization.ColorMode)
	if err != nil {
		return nil, err
	}

	ramp := hosts.Ramp
	if ramp == nil && len(cfg.Visualization.Ramp) > 0 {
		gradient, err := NewGradientRamp(cfg.Visualization.Ramp...)
		if err != nil {
			return nil, fmt.Errorf("visualization ramp: %w", err)
		}
		ramp = gradient
	}

	registry := NewRegistry(logger.With("component", "registry"))
	registry.Workers = cfg.Workers

	emitter := NewEmitter(hosts.Lines, ramp, logger.With("component", "visualization"))
	emitter.SegmentsPerCorner = cfg.Visualization.SegmentsPerCorner
	if emitter.Color, err = parseColor(cfg.Visualization.Color); err != nil {
		return nil, err
	}

	return &Switcher{
		Registry:           registry,
		Overrides:          NewOverrideController(hosts.View, cfg.EnableAtStart, logger.With("component", "overrides")),
		Emitter:            emitter,
		Sampler:            NewSampler(cfg.RefreshInterval, onReport),
		Events:             NewEvents(),
		config:             cfg,
		hosts:              hosts,
		logger:             logger,
		mode:               mode,
		hardwareRayTracing: cfg.HardwareRayTracing,
	}, nil
}

// Attach initializes the switcher for its observer. It builds the first
// snapshot, logging every volume and any ambiguous overlap, writes the
// effective settings as initial override values and draws persistent
// boundaries when visualization is on.
func (s *Switcher) Attach() {
	if _, ok := s.observer(); !ok {
		s.logger.Error("observer required", "err", ErrNoObserver)
	}

	snapshot, _ := s.GetVolumeSnapshot(true)
	for _, o := range snapshot.AmbiguousOverlaps() {
		s.logger.Warn("volumes overlap with equal priority", "a", o.A, "b", o.B, "priority", o.Priority)
	}

	if err := s.Overrides.Attach(); err != nil {
		s.logger.Warn("override attach incomplete", "err", err)
	}

	if s.config.Visualization.Enabled && s.config.Visualization.Lifetime < 0 {
		s.visualize()
	}
}

// Tick advances the switcher by dt seconds
func (s *Switcher) Tick(dt float64) {
	s.refresh()

	for _, action := range s.pending {
		s.apply(action)
	}
	s.pending = s.pending[:0]

	if s.config.Visualization.Enabled && s.config.Visualization.Lifetime >= 0 {
		s.visualize()
	}

	s.Events.flush()
	s.Sampler.Tick(dt)
}

// Request queues an action to be applied during the next tick
func (s *Switcher) Request(action Action) {
	s.pending = append(s.pending, action)
}

// ToggleOverridesEnabled flips the override enabled state and returns it
func (s *Switcher) ToggleOverridesEnabled() bool {
	return s.Overrides.ToggleOverridesEnabled()
}

// IsOverrideEnabled reports whether overrides are enabled
func (s *Switcher) IsOverrideEnabled() bool {
	return s.Overrides.IsOverrideEnabled()
}

// CycleTechnique advances the method of category, see OverrideController.CycleTechnique
func (s *Switcher) CycleTechnique(category Category) Method {
	return s.Overrides.CycleTechnique(category)
}

// GetVolumeSnapshot rebuilds the snapshot from the host volumes and returns
// it with its maximum priority. With debugLog every volume is logged.
func (s *Switcher) GetVolumeSnapshot(debugLog bool) (*Snapshot, float64) {
	snapshot := s.refresh()
	if debugLog {
		s.Registry.LogSnapshot(slog.LevelInfo)
	}
	return snapshot, snapshot.MaxPriority()
}

// IsObserverInside tests the named host volume against the current observer
// position. It is false without observer or when no such volume exists.
func (s *Switcher) IsObserverInside(name string) bool {
	point, ok := s.observer()
	if !ok || s.hosts.Volumes == nil {
		return false
	}

	found, inside := false, false
	for _, d := range s.hosts.Volumes.Volumes() {
		if d.Name == name {
			found = true
			inside, _ = volume.PointInVolume(point, d)
		}
	}
	if !found {
		s.logger.Debug("unknown volume", "volume", name)
	}
	return inside
}

// DisableAllVolumes disables every host volume. Prior enabled states are not
// kept, see Registry.DisableAll.
func (s *Switcher) DisableAllVolumes() {
	if err := s.Registry.DisableAll(s.hosts.Volumes); err != nil {
		s.logger.Warn("disable volumes", "err", err)
	}
}

// HardwareRayTracing reports the current hardware ray tracing setting
func (s *Switcher) HardwareRayTracing() bool {
	return s.hardwareRayTracing
}

// ToggleHardwareRayTracing flips hardware ray tracing through the renderer
// console and returns the new value
func (s *Switcher) ToggleHardwareRayTracing() bool {
	s.hardwareRayTracing = !s.hardwareRayTracing

	value := 0
	if s.hardwareRayTracing {
		value = 1
	}
	if s.hosts.Console == nil {
		s.logger.Warn("no console, hardware ray tracing only toggled locally")
		return s.hardwareRayTracing
	}
	if err := s.hosts.Console.Exec(fmt.Sprintf("r.Lumen.HardwareRayTracing %d", value)); err != nil {
		s.logger.Error("console command failed", "err", err)
	}

	return s.hardwareRayTracing
}

func (s *Switcher) observer() (mgl64.Vec3, bool) {
	if s.hosts.Observer == nil {
		return mgl64.Vec3{}, false
	}
	return s.hosts.Observer.ObserverPosition()
}

// refresh rebuilds the snapshot and records the containment events
func (s *Switcher) refresh() *Snapshot {
	var observer *mgl64.Vec3
	if point, ok := s.observer(); ok {
		observer = &point
	}

	var descriptors []volume.Descriptor
	if s.hosts.Volumes != nil {
		descriptors = s.hosts.Volumes.Volumes()
	}

	snapshot, err := s.Registry.Rebuild(descriptors, observer)
	if err != nil {
		s.logger.Debug("empty volume snapshot", "err", err)
	}
	s.Events.recordSnapshot(snapshot)

	return snapshot
}

func (s *Switcher) visualize() {
	v := s.config.Visualization
	if _, err := s.Emitter.EmitAll(s.Registry.Snapshot(), s.mode, v.Thickness, v.Lifetime); err != nil {
		s.logger.Debug("visualization incomplete", "err", err)
	}
}

func (s *Switcher) apply(action Action) {
	switch action {
	case ActionToggleOverrides:
		s.ToggleOverridesEnabled()
	case ActionCycleGlobalIllumination:
		s.CycleTechnique(CategoryGlobalIllumination)
	case ActionCycleReflection:
		s.CycleTechnique(CategoryReflection)
	case ActionToggleHardwareRayTracing:
		s.ToggleHardwareRayTracing()
	case ActionDisableAllVolumes:
		s.DisableAllVolumes()
	default:
		s.logger.Warn("unknown action", "action", action)
	}
}

func parseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("visualization color: %w", err)
	}
	return c, nil
}
