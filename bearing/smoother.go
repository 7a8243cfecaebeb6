package bearing

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"go.viam.com/compass/logging"
	"go.viam.com/compass/utils"
)

// ErrNonFiniteBearing is returned by SetTarget and Reset for NaN or infinite input.
var ErrNonFiniteBearing = errors.New("bearing must be finite")

// Smoother chases a target bearing one Tick at a time along the shortest arc, covering a
// fixed fraction of the remaining distance per tick so the needle slows as it closes in.
//
// SetTarget may be called from any goroutine; the target is a single atomic cell and the
// latest write wins. Tick must only be called from one goroutine at a time.
type Smoother struct {
	cfg    Config
	logger logging.Logger

	farFraction  float64
	nearFraction float64

	current *atomic.Float64
	target  *atomic.Float64
	running *atomic.Bool
}

// NewSmoother returns a stopped Smoother resting at cfg.InitialBearing. A nil cfg uses
// DefaultConfig. Callers are expected to have validated cfg.
func NewSmoother(cfg *Config, logger logging.Logger) *Smoother {
	c := cfg.withDefaults()
	initial := utils.ModAngDeg(c.InitialBearing)
	if !utils.IsFinite(initial) {
		initial = 0
	}
	return &Smoother{
		cfg:          c,
		logger:       logger,
		farFraction:  accelerate(c.FarEasingInput, c.EasingFactor),
		nearFraction: accelerate(c.NearEasingInput, c.EasingFactor),
		current:      atomic.NewFloat64(initial),
		target:       atomic.NewFloat64(initial),
		running:      atomic.NewBool(false),
	}
}

// accelerate is an accelerate-style easing curve: x^(2*factor), so x² for factor 1.
func accelerate(x, factor float64) float64 {
	if factor == 1 {
		return x * x
	}
	return math.Pow(x, 2*factor)
}

// SetTarget stores a new target, wrapped into [0, 360). Nothing moves until the next Tick.
func (s *Smoother) SetTarget(degrees float64) error {
	if !utils.IsFinite(degrees) {
		s.logger.Debugw("ignoring non-finite target", "degrees", degrees)
		return errors.Wrapf(ErrNonFiniteBearing, "cannot set target to %v", degrees)
	}
	s.target.Store(utils.ModAngDeg(degrees))
	return nil
}

// Reset jumps both current and target to the given bearing.
func (s *Smoother) Reset(degrees float64) error {
	if !utils.IsFinite(degrees) {
		return errors.Wrapf(ErrNonFiniteBearing, "cannot reset to %v", degrees)
	}
	b := utils.ModAngDeg(degrees)
	s.target.Store(b)
	s.current.Store(b)
	return nil
}

// Current returns the smoothed bearing.
func (s *Smoother) Current() float64 {
	return s.current.Load()
}

// Target returns the latest target bearing.
func (s *Smoother) Target() float64 {
	return s.target.Load()
}

// Start marks the smoother as running. It gates the host scheduler, not Tick.
func (s *Smoother) Start() {
	if !s.running.Swap(true) {
		s.logger.Debug("smoother started")
	}
}

// Stop marks the smoother as stopped. A tick already in progress completes.
func (s *Smoother) Stop() {
	if s.running.Swap(false) {
		s.logger.Debug("smoother stopped")
	}
}

// Running reports whether the host should keep calling Tick.
func (s *Smoother) Running() bool {
	return s.running.Load()
}

// Tick advances current toward target and reports whether it moved.
//
// The easing input is FarEasingInput while the remaining distance exceeds MaxStepDegrees and
// NearEasingInput otherwise; with the defaults that moves 16% then 9% of the remaining
// distance. MaxStepDegrees does not limit the step unless ClampStep is set. Once the remainder
// is within SnapEpsilonDegrees, current lands exactly on target.
func (s *Smoother) Tick() (float64, bool) {
	current := s.current.Load()
	target := s.target.Load()
	if current == target {
		return current, false
	}

	delta := utils.ShortestDeltaDeg(current, target)
	fraction := s.nearFraction
	if math.Abs(delta) > s.cfg.MaxStepDegrees {
		fraction = s.farFraction
	}

	step := delta * fraction
	if s.cfg.ClampStep && math.Abs(step) > s.cfg.MaxStepDegrees {
		step = math.Copysign(s.cfg.MaxStepDegrees, delta)
	}

	next := utils.ModAngDeg(current + step)
	// A step below float resolution would leave current stuck a hair away from target.
	if next == current || utils.AngleDiffDeg(next, target) <= s.cfg.SnapEpsilonDegrees {
		next = target
	}
	s.current.Store(next)
	return next, true
}
