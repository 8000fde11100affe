package switcher

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Method is a rendering technique selectable for a category
type Method uint8

const (
	MethodNone Method = iota
	MethodLumen
	MethodScreenSpace
)

var methodNames = [...]string{"none", "lumen", "screen_space"}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("method(%d)", m)
}

// Next advances m through the cycle None, Lumen, ScreenSpace. Methods outside
// the cycle are returned unchanged.
func (m Method) Next() Method {
	switch m {
	case MethodNone:
		return MethodLumen
	case MethodLumen:
		return MethodScreenSpace
	case MethodScreenSpace:
		return MethodNone
	default:
		return m
	}
}

// ParseMethod parses the name of a method as printed by String
func ParseMethod(s string) (Method, error) {
	for i, name := range methodNames {
		if strings.EqualFold(s, name) {
			return Method(i), nil
		}
	}
	return MethodNone, fmt.Errorf("unknown method %q", s)
}

// Category is a rendering setting that can be overridden
type Category uint8

const (
	CategoryGlobalIllumination Category = iota
	CategoryReflection
)

// Categories lists every overridable category
var Categories = [...]Category{CategoryGlobalIllumination, CategoryReflection}

func (c Category) String() string {
	switch c {
	case CategoryGlobalIllumination:
		return "global_illumination"
	case CategoryReflection:
		return "reflection"
	default:
		return fmt.Sprintf("category(%d)", c)
	}
}

// Settings are the methods in effect for the observer's view
type Settings struct {
	GlobalIllumination Method
	Reflection         Method
}

// Method returns the method of category
func (s Settings) Method(category Category) Method {
	if category == CategoryReflection {
		return s.Reflection
	}
	return s.GlobalIllumination
}

// With returns a copy of s with the method of category replaced
func (s Settings) With(category Category, method Method) Settings {
	if category == CategoryReflection {
		s.Reflection = method
	} else {
		s.GlobalIllumination = method
	}
	return s
}

// OverrideState is the override enabled flag and the selected method per
// category. Selections are kept while overrides are disabled.
type OverrideState struct {
	Enabled  bool
	Settings Settings
}

// OverrideController owns the override state of one observer and drives the
// camera override values of the host view.
type OverrideController struct {
	view   ViewSettings
	state  OverrideState
	logger *slog.Logger

	// last successfully resolved effective settings
	lastKnown Settings
	resolved  bool
}

// NewOverrideController creates a controller whose override enabled state
// starts at enabledAtStart, read once from the startup configuration.
// A nil view makes every view operation a no-op.
func NewOverrideController(view ViewSettings, enabledAtStart bool, logger *slog.Logger) *OverrideController {
	if logger == nil {
		logger = slog.Default()
	}
	return &OverrideController{
		view:   view,
		state:  OverrideState{Enabled: enabledAtStart},
		logger: logger,
	}
}

// Attach samples the effective settings and writes them as the camera values,
// with the override flags set to the enabled state. The baseline is whatever
// the view reported at this point. When the view has never been resolved only
// the flags are written, the camera values are left to the host.
func (c *OverrideController) Attach() error {
	if c.view == nil {
		return ErrNoObserver
	}

	current, err := c.QueryEffectiveSettings()
	for _, category := range Categories {
		c.view.SetOverride(category, c.state.Enabled)
	}
	if err != nil && !c.resolved {
		return err
	}

	for _, category := range Categories {
		c.view.SetMethod(category, current.Method(category))
	}
	c.state.Settings = current

	return err
}

// State returns a copy of the override state
func (c *OverrideController) State() OverrideState {
	return c.state
}

// IsOverrideEnabled reports whether overrides are enabled
func (c *OverrideController) IsOverrideEnabled() bool {
	return c.state.Enabled
}

// ToggleOverridesEnabled flips the enabled state and propagates it onto the
// override flag of every category. Camera values are left as they are, when
// disabled the renderer simply stops honoring them.
func (c *OverrideController) ToggleOverridesEnabled() bool {
	c.state.Enabled = !c.state.Enabled
	if c.view != nil {
		for _, category := range Categories {
			c.view.SetOverride(category, c.state.Enabled)
		}
	}

	c.logger.Info("override toggled", "enabled", c.state.Enabled)
	return c.state.Enabled
}

// CycleTechnique advances the method of category from the method currently in
// effect for the view, not from the locally stored one, and writes it with
// both override flags set. It is a silent no-op while overrides are disabled.
// It returns the selected method of category.
func (c *OverrideController) CycleTechnique(category Category) Method {
	if !c.state.Enabled {
		return c.state.Settings.Method(category)
	}
	if c.view == nil {
		c.logger.Warn("cannot cycle technique", "category", category, "err", ErrNoObserver)
		return c.state.Settings.Method(category)
	}

	current, err := c.QueryEffectiveSettings()
	if err != nil {
		c.logger.Warn("cycling from last known settings", "category", category, "err", err)
	}

	from := current.Method(category)
	next := from.Next()
	if next == from {
		c.logger.Warn("method not part of the cycle", "category", category, "method", from)
	}

	for _, category := range Categories {
		c.view.SetOverride(category, true)
	}
	c.view.SetMethod(category, next)
	c.state.Settings = c.state.Settings.With(category, next)

	c.logger.Info("technique cycled", "category", category, "from", from, "to", next)
	return next
}

// QueryEffectiveSettings resolves the settings in effect for the view. When
// the host cannot compute a view the last resolved settings are returned along
// with ErrViewUnavailable.
func (c *OverrideController) QueryEffectiveSettings() (Settings, error) {
	if c.view == nil {
		return c.lastKnown, ErrNoObserver
	}

	settings, err := c.view.EffectiveSettings()
	if err != nil {
		if !errors.Is(err, ErrViewUnavailable) {
			err = fmt.Errorf("%w: %w", ErrViewUnavailable, err)
		}
		c.logger.Warn("no valid view", "err", err)
		return c.lastKnown, err
	}

	c.lastKnown = settings
	c.resolved = true
	return settings, nil
}
