package bearing

import (
	"time"

	"go.viam.com/compass/utils"
)

// Defaults for a needle refreshed every 20ms.
const (
	DefaultMaxStepDegrees     = 1.0
	DefaultFarEasingInput     = 0.4
	DefaultNearEasingInput    = 0.3
	DefaultEasingFactor       = 1.0
	DefaultSnapEpsilonDegrees = 1e-3
	DefaultTickInterval       = 20 * time.Millisecond
)

// Config tunes a Smoother. Zero fields take the defaults above.
type Config struct {
	InitialBearing float64 `json:"initial_bearing,omitempty"`
	// MaxStepDegrees picks the easing input: remaining distances above it use FarEasingInput.
	// It only caps the actual step when ClampStep is set.
	MaxStepDegrees     float64 `json:"max_step_degrees,omitempty"`
	FarEasingInput     float64 `json:"far_easing_input,omitempty"`
	NearEasingInput    float64 `json:"near_easing_input,omitempty"`
	EasingFactor       float64 `json:"easing_factor,omitempty"`
	SnapEpsilonDegrees float64 `json:"snap_epsilon_degrees,omitempty"`
	ClampStep          bool    `json:"clamp_step,omitempty"`
	TickIntervalMs     int     `json:"tick_interval_ms,omitempty"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() *Config {
	return &Config{
		MaxStepDegrees:     DefaultMaxStepDegrees,
		FarEasingInput:     DefaultFarEasingInput,
		NearEasingInput:    DefaultNearEasingInput,
		EasingFactor:       DefaultEasingFactor,
		SnapEpsilonDegrees: DefaultSnapEpsilonDegrees,
		TickIntervalMs:     int(DefaultTickInterval / time.Millisecond),
	}
}

// withDefaults returns a copy of cfg with zero fields replaced by defaults. A nil cfg is the
// default config.
func (cfg *Config) withDefaults() Config {
	if cfg == nil {
		return *DefaultConfig()
	}
	out := *cfg
	def := DefaultConfig()
	if out.MaxStepDegrees == 0 {
		out.MaxStepDegrees = def.MaxStepDegrees
	}
	if out.FarEasingInput == 0 {
		out.FarEasingInput = def.FarEasingInput
	}
	if out.NearEasingInput == 0 {
		out.NearEasingInput = def.NearEasingInput
	}
	if out.EasingFactor == 0 {
		out.EasingFactor = def.EasingFactor
	}
	if out.SnapEpsilonDegrees == 0 {
		out.SnapEpsilonDegrees = def.SnapEpsilonDegrees
	}
	if out.TickIntervalMs == 0 {
		out.TickIntervalMs = def.TickIntervalMs
	}
	return out
}

// TickInterval is the animator period.
func (cfg *Config) TickInterval() time.Duration {
	return time.Duration(cfg.withDefaults().TickIntervalMs) * time.Millisecond
}

// Validate ensures all parts of the config are valid. Both easing inputs must stay inside
// (0, 1) so every tick covers a fraction of the remaining distance and never overshoots.
func (cfg *Config) Validate(path string) error {
	c := cfg.withDefaults()
	if !utils.IsFinite(c.InitialBearing) {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("initial_bearing", c.InitialBearing, "finite"))
	}
	if !utils.IsFinite(c.MaxStepDegrees) || c.MaxStepDegrees < 0 {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("max_step_degrees", c.MaxStepDegrees, "positive"))
	}
	if !(c.FarEasingInput > 0 && c.FarEasingInput < 1) {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("far_easing_input", c.FarEasingInput, "in (0, 1)"))
	}
	if !(c.NearEasingInput > 0 && c.NearEasingInput < 1) {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("near_easing_input", c.NearEasingInput, "in (0, 1)"))
	}
	if !utils.IsFinite(c.EasingFactor) || c.EasingFactor < 0 {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("easing_factor", c.EasingFactor, "positive"))
	}
	if !utils.IsFinite(c.SnapEpsilonDegrees) || c.SnapEpsilonDegrees < 0 {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("snap_epsilon_degrees", c.SnapEpsilonDegrees, "positive"))
	}
	if c.TickIntervalMs < 0 {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("tick_interval_ms", c.TickIntervalMs, "positive"))
	}
	return nil
}
