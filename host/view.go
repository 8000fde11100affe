package host

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akmonengine/switcher"
	"github.com/akmonengine/switcher/volume"
)

// HardwareRayTracingCommand is the console variable toggling hardware ray tracing
const HardwareRayTracingCommand = "r.Lumen.HardwareRayTracing"

// EffectiveSettings blends the scene defaults, then every enabled volume
// containing the camera by ascending priority, then the camera values whose
// override flag is set.
func (s *Scene) EffectiveSettings() (switcher.Settings, error) {
	if s.viewUnavailable || !s.hasCamera {
		return switcher.Settings{}, switcher.ErrViewUnavailable
	}

	settings := s.defaults
	for _, v := range s.blendOrder() {
		if !v.descriptor.Enabled {
			continue
		}
		if inside, _ := volume.PointInVolume(s.camera, v.descriptor); inside {
			settings = v.settings.apply(settings)
		}
	}

	for _, category := range switcher.Categories {
		if s.overrides[category] {
			settings = settings.With(category, s.methods[category])
		}
	}

	return settings, nil
}

// blendOrder returns the volumes by ascending priority, host order on ties
func (s *Scene) blendOrder() []sceneVolume {
	ordered := make([]sceneVolume, len(s.volumes))
	copy(ordered, s.volumes)
	sortVolumes(ordered)
	return ordered
}

// SetOverride sets the camera override flag of category
func (s *Scene) SetOverride(category switcher.Category, enabled bool) {
	s.overrides[category] = enabled
}

// SetMethod sets the camera value of category
func (s *Scene) SetMethod(category switcher.Category, method switcher.Method) {
	s.methods[category] = method
}

// CameraOverride returns the camera value of category and whether it is honored
func (s *Scene) CameraOverride(category switcher.Category) (switcher.Method, bool) {
	return s.methods[category], s.overrides[category]
}

// SetViewUnavailable makes EffectiveSettings fail as a host without view would
func (s *Scene) SetViewUnavailable(unavailable bool) {
	s.viewUnavailable = unavailable
}

// Exec runs a console command. Only the hardware ray tracing variable is known.
func (s *Scene) Exec(command string) error {
	fields := strings.Fields(command)
	if len(fields) != 2 || fields[0] != HardwareRayTracingCommand {
		return fmt.Errorf("unknown console command %q", command)
	}

	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("console command %q: %w", command, err)
	}

	s.hardwareRayTracing = value != 0
	s.commands = append(s.commands, command)
	return nil
}

// HardwareRayTracing reports the value last set through the console
func (s *Scene) HardwareRayTracing() bool {
	return s.hardwareRayTracing
}

// Commands returns the console commands executed so far
func (s *Scene) Commands() []string {
	return append([]string(nil), s.commands...)
}
