// Package host implements the host collaborators of the switcher on top of a
// YAML scene file, for tools and tests running outside of an engine.
package host

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/akmonengine/switcher"
	"github.com/akmonengine/switcher/volume"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrUnknownVolume is returned when writing to a volume that does not exist
var ErrUnknownVolume = errors.New("unknown volume")

type sceneFile struct {
	Camera   *cameraFile  `yaml:"camera"`
	Defaults settingsFile `yaml:"defaults"`
	Volumes  []volumeFile `yaml:"volumes"`
	// ViewUnavailable simulates a host that cannot compute a view
	ViewUnavailable bool `yaml:"view_unavailable"`
}

type cameraFile struct {
	Position []float64   `yaml:"position"`
	Path     [][]float64 `yaml:"path"`
	Speed    float64     `yaml:"speed"`
}

type settingsFile struct {
	GlobalIllumination string `yaml:"global_illumination"`
	Reflection         string `yaml:"reflection"`
}

type volumeFile struct {
	Name        string       `yaml:"name"`
	Enabled     *bool        `yaml:"enabled"`
	Infinite    bool         `yaml:"infinite"`
	Priority    float64      `yaml:"priority"`
	BlendRadius float64      `yaml:"blend_radius"`
	Position    []float64    `yaml:"position"`
	Rotation    []float64    `yaml:"rotation"`
	Scale       []float64    `yaml:"scale"`
	HalfExtents []float64    `yaml:"half_extents"`
	BrushPoints int          `yaml:"brush_points"`
	Settings    settingsFile `yaml:"settings"`
}

// sceneVolume is a host volume with the settings it contributes
type sceneVolume struct {
	descriptor volume.Descriptor
	settings   partialSettings
}

type partialSettings struct {
	globalIllumination *switcher.Method
	reflection         *switcher.Method
}

// Scene is a file backed host world. It serves as volume source, observer
// source, view and console of a switcher. A Scene is not safe for concurrent use.
type Scene struct {
	path string

	volumes  []sceneVolume
	defaults switcher.Settings

	hasCamera bool
	camera    mgl64.Vec3
	waypoints []mgl64.Vec3
	speed     float64
	traveled  float64

	viewUnavailable bool

	// camera override values, kept across reloads
	overrides map[switcher.Category]bool
	methods   map[switcher.Category]switcher.Method

	hardwareRayTracing bool
	commands           []string
}

// LoadScene reads a scene file
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	scene, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	scene.path = path

	return scene, nil
}

// ParseScene decodes a YAML scene
func ParseScene(data []byte) (*Scene, error) {
	scene := &Scene{
		overrides: make(map[switcher.Category]bool),
		methods:   make(map[switcher.Category]switcher.Method),
	}
	if err := scene.decode(data); err != nil {
		return nil, err
	}
	return scene, nil
}

// Reload rereads the scene file. Camera override values and console state survive.
func (s *Scene) Reload() error {
	if s.path == "" {
		return errors.New("scene has no file")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	return s.decode(data)
}

// Path returns the file the scene was loaded from
func (s *Scene) Path() string {
	return s.path
}

func (s *Scene) decode(data []byte) error {
	var file sceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decode scene: %w", err)
	}

	defaults, err := file.Defaults.full()
	if err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	volumes := make([]sceneVolume, 0, len(file.Volumes))
	for i, vf := range file.Volumes {
		v, err := vf.sceneVolume()
		if err != nil {
			return fmt.Errorf("volume %d: %w", i, err)
		}
		volumes = append(volumes, v)
	}

	s.volumes = volumes
	s.defaults = defaults
	s.viewUnavailable = file.ViewUnavailable
	s.hasCamera = file.Camera != nil
	s.waypoints, s.speed, s.traveled = nil, 0, 0

	if file.Camera != nil {
		if s.camera, err = vec3(file.Camera.Position, mgl64.Vec3{}); err != nil {
			return fmt.Errorf("camera position: %w", err)
		}
		for i, p := range file.Camera.Path {
			waypoint, err := vec3(p, mgl64.Vec3{})
			if err != nil {
				return fmt.Errorf("camera path %d: %w", i, err)
			}
			s.waypoints = append(s.waypoints, waypoint)
		}
		s.speed = file.Camera.Speed
		if len(s.waypoints) > 0 {
			s.camera = s.waypoints[0]
		}
	}

	return nil
}

func (vf volumeFile) sceneVolume() (sceneVolume, error) {
	name := vf.Name
	if name == "" {
		name = "Volume-" + uuid.New().String()[:8]
	}

	position, err := vec3(vf.Position, mgl64.Vec3{})
	if err != nil {
		return sceneVolume{}, fmt.Errorf("position: %w", err)
	}
	angles, err := vec3(vf.Rotation, mgl64.Vec3{})
	if err != nil {
		return sceneVolume{}, fmt.Errorf("rotation: %w", err)
	}
	scale, err := vec3(vf.Scale, mgl64.Vec3{1, 1, 1})
	if err != nil {
		return sceneVolume{}, fmt.Errorf("scale: %w", err)
	}
	extents, err := vec3(vf.HalfExtents, volume.DefaultHalfExtents)
	if err != nil {
		return sceneVolume{}, fmt.Errorf("half extents: %w", err)
	}
	if vf.BlendRadius < 0 {
		return sceneVolume{}, fmt.Errorf("negative blend radius %v", vf.BlendRadius)
	}

	settings, err := vf.Settings.partial()
	if err != nil {
		return sceneVolume{}, fmt.Errorf("settings: %w", err)
	}

	enabled := true
	if vf.Enabled != nil {
		enabled = *vf.Enabled
	}

	return sceneVolume{
		descriptor: volume.Descriptor{
			Name:        name,
			Enabled:     enabled,
			Infinite:    vf.Infinite,
			Priority:    vf.Priority,
			BlendRadius: vf.BlendRadius,
			Transform: volume.Transform{
				Position: position,
				// rotation is yaw, pitch, roll in degrees
				Rotation: mgl64.AnglesToQuat(
					mgl64.DegToRad(angles.X()),
					mgl64.DegToRad(angles.Y()),
					mgl64.DegToRad(angles.Z()),
					mgl64.ZYX,
				),
				Scale: scale,
			},
			HalfExtents:      extents,
			BrushVertexCount: vf.BrushPoints,
		},
		settings: settings,
	}, nil
}

func (sf settingsFile) partial() (partialSettings, error) {
	var p partialSettings
	if sf.GlobalIllumination != "" {
		m, err := switcher.ParseMethod(sf.GlobalIllumination)
		if err != nil {
			return p, err
		}
		p.globalIllumination = &m
	}
	if sf.Reflection != "" {
		m, err := switcher.ParseMethod(sf.Reflection)
		if err != nil {
			return p, err
		}
		p.reflection = &m
	}
	return p, nil
}

// full resolves settings with unset methods defaulting to lumen
func (sf settingsFile) full() (switcher.Settings, error) {
	p, err := sf.partial()
	if err != nil {
		return switcher.Settings{}, err
	}
	settings := switcher.Settings{GlobalIllumination: switcher.MethodLumen, Reflection: switcher.MethodLumen}
	return p.apply(settings), nil
}

func (p partialSettings) apply(s switcher.Settings) switcher.Settings {
	if p.globalIllumination != nil {
		s.GlobalIllumination = *p.globalIllumination
	}
	if p.reflection != nil {
		s.Reflection = *p.reflection
	}
	return s
}

func vec3(values []float64, fallback mgl64.Vec3) (mgl64.Vec3, error) {
	switch len(values) {
	case 0:
		return fallback, nil
	case 3:
		return mgl64.Vec3{values[0], values[1], values[2]}, nil
	default:
		return mgl64.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
}

// Volumes returns the volume descriptors in ascending priority, the order
// the host blends them in
func (s *Scene) Volumes() []volume.Descriptor {
	ordered := s.blendOrder()
	descriptors := make([]volume.Descriptor, len(ordered))
	for i, v := range ordered {
		descriptors[i] = v.descriptor
	}
	return descriptors
}

func sortVolumes(volumes []sceneVolume) {
	sort.SliceStable(volumes, func(i, j int) bool {
		return volumes[i].descriptor.Priority < volumes[j].descriptor.Priority
	})
}

// SetEnabled sets the enabled flag of every volume with that name
func (s *Scene) SetEnabled(name string, enabled bool) error {
	found := false
	for i := range s.volumes {
		if s.volumes[i].descriptor.Name == name {
			s.volumes[i].descriptor.Enabled = enabled
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownVolume, name)
	}
	return nil
}

// ObserverPosition returns the camera position, false when the scene has no camera
func (s *Scene) ObserverPosition() (mgl64.Vec3, bool) {
	return s.camera, s.hasCamera
}

// MoveCamera places the camera, attaching one if the scene had none
func (s *Scene) MoveCamera(position mgl64.Vec3) {
	s.camera = position
	s.hasCamera = true
}

// DetachCamera removes the camera
func (s *Scene) DetachCamera() {
	s.hasCamera = false
}

// Advance moves the camera along its path at its speed for dt seconds and
// reports whether the camera moved. The path is walked back and forth.
func (s *Scene) Advance(dt float64) bool {
	if !s.hasCamera || len(s.waypoints) < 2 || s.speed <= 0 || dt <= 0 {
		return false
	}

	length := 0.0
	for i := 1; i < len(s.waypoints); i++ {
		length += s.waypoints[i].Sub(s.waypoints[i-1]).Len()
	}
	if length == 0 {
		return false
	}

	s.traveled += s.speed * dt
	d := math.Mod(s.traveled, 2*length)
	if d > length {
		d = 2*length - d
	}

	for i := 1; i < len(s.waypoints); i++ {
		segment := s.waypoints[i].Sub(s.waypoints[i-1])
		l := segment.Len()
		if d <= l || i == len(s.waypoints)-1 {
			if l > 0 {
				s.camera = s.waypoints[i-1].Add(segment.Mul(min(d/l, 1)))
			}
			return true
		}
		d -= l
	}

	return true
}
