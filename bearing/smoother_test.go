package bearing

import (
	"errors"
	"math"
	"sync"
	"testing"

	"go.viam.com/test"

	"go.viam.com/compass/logging"
	"go.viam.com/compass/utils"
)

// tickUntilSettled ticks until the smoother reports no motion and returns the tick count,
// failing if it takes more than maxTicks.
func tickUntilSettled(t *testing.T, s *Smoother, maxTicks int) int {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if _, moved := s.Tick(); !moved {
			return i
		}
	}
	t.Fatalf("smoother did not settle within %d ticks: current=%v target=%v", maxTicks, s.Current(), s.Target())
	return maxTicks
}

func TestSmootherInitialState(t *testing.T) {
	s := NewSmoother(nil, logging.NewTestLogger(t))
	test.That(t, s.Current(), test.ShouldEqual, 0.0)
	test.That(t, s.Target(), test.ShouldEqual, 0.0)
	test.That(t, s.Running(), test.ShouldBeFalse)

	current, moved := s.Tick()
	test.That(t, moved, test.ShouldBeFalse)
	test.That(t, current, test.ShouldEqual, 0.0)

	s = NewSmoother(&Config{InitialBearing: -90}, logging.NewTestLogger(t))
	test.That(t, s.Current(), test.ShouldEqual, 270.0)
	test.That(t, s.Target(), test.ShouldEqual, 270.0)
}

func TestSmootherSetTarget(t *testing.T) {
	logger, observed := logging.NewObservedTestLogger(t)
	s := NewSmoother(nil, logger)

	test.That(t, s.SetTarget(-90), test.ShouldBeNil)
	test.That(t, s.Target(), test.ShouldEqual, 270.0)
	test.That(t, s.SetTarget(725), test.ShouldBeNil)
	test.That(t, s.Target(), test.ShouldAlmostEqual, 5)
	// Nothing moves until the next tick.
	test.That(t, s.Current(), test.ShouldEqual, 0.0)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := s.SetTarget(bad)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, errors.Is(err, ErrNonFiniteBearing), test.ShouldBeTrue)
		test.That(t, s.Target(), test.ShouldAlmostEqual, 5)
	}
	test.That(t, observed.FilterMessage("ignoring non-finite target").Len(), test.ShouldEqual, 3)

	err := s.Reset(math.NaN())
	test.That(t, errors.Is(err, ErrNonFiniteBearing), test.ShouldBeTrue)
	test.That(t, s.Reset(400), test.ShouldBeNil)
	test.That(t, s.Current(), test.ShouldAlmostEqual, 40)
	test.That(t, s.Target(), test.ShouldAlmostEqual, 40)
}

func TestSmootherLastWriteWins(t *testing.T) {
	s := NewSmoother(nil, logging.NewTestLogger(t))
	test.That(t, s.SetTarget(10), test.ShouldBeNil)
	test.That(t, s.SetTarget(200), test.ShouldBeNil)

	// The shortest way from 0 to 200 is 160 degrees counterclockwise.
	current, moved := s.Tick()
	test.That(t, moved, test.ShouldBeTrue)
	test.That(t, current, test.ShouldAlmostEqual, 360-160*0.16)
}

func TestSmootherEasingFractions(t *testing.T) {
	s := NewSmoother(nil, logging.NewTestLogger(t))

	// Farther than MaxStepDegrees: 0.4² of the remaining distance.
	test.That(t, s.SetTarget(100), test.ShouldBeNil)
	current, _ := s.Tick()
	test.That(t, current, test.ShouldAlmostEqual, 16)

	// Within MaxStepDegrees: 0.3² of the remaining distance.
	test.That(t, s.Reset(0), test.ShouldBeNil)
	test.That(t, s.SetTarget(0.5), test.ShouldBeNil)
	current, _ = s.Tick()
	test.That(t, current, test.ShouldAlmostEqual, 0.045)

	// A steeper curve.
	s = NewSmoother(&Config{EasingFactor: 2}, logging.NewTestLogger(t))
	test.That(t, s.SetTarget(100), test.ShouldBeNil)
	current, _ = s.Tick()
	test.That(t, current, test.ShouldAlmostEqual, 100*math.Pow(0.4, 4))
}

// MaxStepDegrees only selects the easing input by default, so a single step can be far larger
// than it. ClampStep makes it a hard limit.
func TestSmootherMaxStep(t *testing.T) {
	s := NewSmoother(nil, logging.NewTestLogger(t))
	test.That(t, s.SetTarget(100), test.ShouldBeNil)
	current, _ := s.Tick()
	test.That(t, current, test.ShouldBeGreaterThan, DefaultMaxStepDegrees)

	s = NewSmoother(&Config{ClampStep: true}, logging.NewTestLogger(t))
	test.That(t, s.SetTarget(100), test.ShouldBeNil)
	current, _ = s.Tick()
	test.That(t, current, test.ShouldAlmostEqual, 1)

	test.That(t, s.SetTarget(300), test.ShouldBeNil)
	prev := s.Current()
	for i := 0; i < 50; i++ {
		current, _ = s.Tick()
		test.That(t, math.Abs(utils.ShortestDeltaDeg(prev, current)), test.ShouldBeLessThanOrEqualTo, 1+1e-9)
		prev = current
	}

	// Clamped motion is linear until the remaining distance drops below the clamp.
	s = NewSmoother(&Config{ClampStep: true}, logging.NewTestLogger(t))
	test.That(t, s.SetTarget(179), test.ShouldBeNil)
	ticks := tickUntilSettled(t, s, 1000)
	test.That(t, ticks, test.ShouldBeGreaterThan, 150)
	test.That(t, s.Current(), test.ShouldEqual, 179.0)
}

func TestSmootherConvergence(t *testing.T) {
	s := NewSmoother(nil, logging.NewTestLogger(t))
	test.That(t, s.SetTarget(179), test.ShouldBeNil)

	remaining := math.Abs(utils.ShortestDeltaDeg(s.Current(), s.Target()))
	for i := 0; i < 200; i++ {
		_, moved := s.Tick()
		if !moved {
			break
		}
		next := math.Abs(utils.ShortestDeltaDeg(s.Current(), s.Target()))
		test.That(t, next, test.ShouldBeLessThan, remaining)
		remaining = next
	}
	test.That(t, s.Current(), test.ShouldEqual, 179.0)

	for target := 0.0; target < 360; target += 7.3 {
		test.That(t, s.Reset(0), test.ShouldBeNil)
		test.That(t, s.SetTarget(target), test.ShouldBeNil)
		tickUntilSettled(t, s, 200)
		test.That(t, s.Current(), test.ShouldEqual, s.Target())
	}
}

func TestSmootherSnapsAcrossNorth(t *testing.T) {
	s := NewSmoother(nil, logging.NewTestLogger(t))
	test.That(t, s.Reset(359.9995), test.ShouldBeNil)
	test.That(t, s.SetTarget(0), test.ShouldBeNil)

	current, moved := s.Tick()
	test.That(t, moved, test.ShouldBeTrue)
	test.That(t, current, test.ShouldEqual, 0.0)

	test.That(t, s.Reset(0.0005), test.ShouldBeNil)
	test.That(t, s.SetTarget(359.9999), test.ShouldBeNil)
	current, _ = s.Tick()
	test.That(t, current, test.ShouldEqual, 359.9999)
}

func TestSmootherNoOvershoot(t *testing.T) {
	s := NewSmoother(nil, logging.NewTestLogger(t))
	test.That(t, s.SetTarget(90), test.ShouldBeNil)
	for i := 0; i < 200; i++ {
		current, _ := s.Tick()
		test.That(t, current, test.ShouldBeGreaterThanOrEqualTo, 0)
		test.That(t, current, test.ShouldBeLessThanOrEqualTo, 90)
	}
}

func TestSmootherWrapsShortWay(t *testing.T) {
	s := NewSmoother(&Config{InitialBearing: 350}, logging.NewTestLogger(t))
	test.That(t, s.SetTarget(10), test.ShouldBeNil)

	prev := s.Current()
	wrapped := false
	for i := 0; i < 200; i++ {
		current, moved := s.Tick()
		if !moved {
			break
		}
		// Always clockwise, never through 180.
		test.That(t, utils.ShortestDeltaDeg(prev, current), test.ShouldBeGreaterThan, 0)
		test.That(t, current >= 350 || current <= 10, test.ShouldBeTrue)
		if current < prev {
			wrapped = true
		}
		prev = current
	}
	test.That(t, wrapped, test.ShouldBeTrue)
	test.That(t, s.Current(), test.ShouldEqual, 10.0)
}

func TestSmootherStartStop(t *testing.T) {
	s := NewSmoother(nil, logging.NewTestLogger(t))
	s.Start()
	test.That(t, s.Running(), test.ShouldBeTrue)
	s.Start()
	test.That(t, s.Running(), test.ShouldBeTrue)
	s.Stop()
	test.That(t, s.Running(), test.ShouldBeFalse)

	// Tick is not gated by the running flag.
	test.That(t, s.SetTarget(45), test.ShouldBeNil)
	_, moved := s.Tick()
	test.That(t, moved, test.ShouldBeTrue)
}

func TestSmootherConcurrentTargets(t *testing.T) {
	s := NewSmoother(nil, logging.NewTestLogger(t))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = s.SetTarget(float64(i) * 13.7)
		}
	}()
	for i := 0; i < 1000; i++ {
		current, _ := s.Tick()
		test.That(t, current, test.ShouldBeGreaterThanOrEqualTo, 0)
		test.That(t, current, test.ShouldBeLessThan, 360)
	}
	wg.Wait()
}
