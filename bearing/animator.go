package bearing

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"go.viam.com/compass/logging"
	"go.viam.com/compass/utils"
)

// Frame is everything a renderer needs after one tick.
type Frame struct {
	Current float64
	Target  float64
	Moved   bool
	Readout Readout
}

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithReadoutBearing maps the smoother target to the bearing shown in the readout. By default
// the target itself is shown.
func WithReadoutBearing(f func(target float64) float64) AnimatorOption {
	return func(a *Animator) {
		a.readoutBearing = f
	}
}

// HeadingFromNeedle is the readout mapping for a smoother that animates needle rotation,
// which turns opposite to the heading.
func HeadingFromNeedle(target float64) float64 {
	return utils.ModAngDeg(-target)
}

// Animator ticks a Smoother on a fixed period while it is running and hands each Frame to a
// render callback. A late tick is simply one step fewer; nothing catches up.
type Animator struct {
	smoother       *Smoother
	clock          clock.Clock
	interval       time.Duration
	render         func(Frame)
	readoutBearing func(float64) float64
	logger         logging.Logger
	workers        *utils.StoppableWorkers
}

// NewAnimator starts the tick loop. The smoother still has to be started before frames are
// produced. Close stops the loop.
func NewAnimator(
	smoother *Smoother,
	clk clock.Clock,
	interval time.Duration,
	render func(Frame),
	logger logging.Logger,
	opts ...AnimatorOption,
) *Animator {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	a := &Animator{
		smoother:       smoother,
		clock:          clk,
		interval:       interval,
		render:         render,
		readoutBearing: func(target float64) float64 { return target },
		logger:         logger,
		workers:        utils.NewStoppableWorkers(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.workers.AddTicker(clk, interval, a.tick)
	return a
}

func (a *Animator) tick(context.Context) {
	if !a.smoother.Running() {
		return
	}
	frame := a.Step()
	if a.render != nil {
		a.render(frame)
	}
}

// Step runs one tick synchronously. The readout is rebuilt even when the needle did not move,
// since the target may have changed.
func (a *Animator) Step() Frame {
	current, moved := a.smoother.Tick()
	target := a.smoother.Target()
	return Frame{
		Current: current,
		Target:  target,
		Moved:   moved,
		Readout: NewReadout(a.readoutBearing(target)),
	}
}

// Close stops the tick loop and waits for it to exit.
func (a *Animator) Close() error {
	a.workers.Stop()
	a.logger.Debug("animator closed")
	return nil
}
