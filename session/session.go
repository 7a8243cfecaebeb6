// Package session drives a compass screen: it polls a movement sensor, animates the needle
// toward the reported heading and formats the current position for a Renderer.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	geo "github.com/kellydunn/golang-geo"
	"github.com/pkg/errors"

	"go.viam.com/compass/bearing"
	"go.viam.com/compass/components/movementsensor"
	"go.viam.com/compass/location"
	"go.viam.com/compass/logging"
	"go.viam.com/compass/utils"
)

// View is one rendered needle state.
type View struct {
	// NeedleRotation is how far the compass card is turned, opposite to the heading.
	NeedleRotation float64
	Moved          bool
	Readout        bearing.Readout
	// Labels are the active direction glyphs in display order.
	Labels []bearing.Direction
}

// A Renderer displays what a Session produces. Calls come from the session's goroutines.
type Renderer interface {
	RenderView(View)
	RenderLocation(text string)
}

// Session ties a MovementSensor to a needle animation and a location readout. It starts
// paused; call Resume to begin.
type Session struct {
	cfg       Config
	sensor    movementsensor.MovementSensor
	props     movementsensor.Properties
	renderer  Renderer
	clock     clock.Clock
	logger    logging.Logger
	smoother  *bearing.Smoother
	animator  *bearing.Animator
	formatter *location.Formatter
	chinese   bool

	headingErrs  *movementsensor.LastError
	positionErrs *movementsensor.LastError
	// positionMu serializes position polls so the compare and update of lastPosition is atomic.
	positionMu   sync.Mutex
	lastPosition *movementsensor.LastPosition

	workers *utils.StoppableWorkers
}

// New builds a session and starts its background workers. A nil cfg uses the defaults.
func New(
	ctx context.Context,
	cfg *Config,
	sensor movementsensor.MovementSensor,
	renderer Renderer,
	clk clock.Clock,
	logger logging.Logger,
) (*Session, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate("session"); err != nil {
		return nil, err
	}
	props, err := sensor.Properties(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get movement sensor properties")
	}

	tag := cfg.languageTag()
	s := &Session{
		cfg:          *cfg,
		sensor:       sensor,
		props:        *props,
		renderer:     renderer,
		clock:        clk,
		logger:       logger,
		smoother:     bearing.NewSmoother(cfg.Smoother, logger.Sublogger("smoother")),
		formatter:    location.NewFormatter(tag),
		chinese:      location.IsChinese(tag),
		headingErrs:  movementsensor.NewLastError(10, 5),
		positionErrs: movementsensor.NewLastError(3, 3),
		lastPosition: movementsensor.NewLastPosition(),
		workers:      utils.NewStoppableWorkers(),
	}
	s.animator = bearing.NewAnimator(s.smoother, clk, cfg.Smoother.TickInterval(), s.renderFrame,
		logger.Sublogger("animator"), bearing.WithReadoutBearing(bearing.HeadingFromNeedle))

	switch {
	case props.CompassHeadingSupported:
		s.startPolling(cfg.sensorPollInterval(), s.pollHeading)
	case props.PositionSupported:
		logger.Infow("no compass on movement sensor; following course over ground",
			"min_distance_meters", cfg.minDistanceMeters())
	default:
		logger.Warn("movement sensor reports neither heading nor position")
	}

	if props.PositionSupported {
		s.startPolling(cfg.locationPollInterval(), s.pollPosition)
	} else {
		renderer.RenderLocation(s.formatter.Unavailable())
	}
	return s, nil
}

// Smoother exposes the underlying needle smoother.
func (s *Session) Smoother() *bearing.Smoother {
	return s.smoother
}

// Resume starts animating and polling, and shows the last known position right away. Resuming
// a running session does nothing.
func (s *Session) Resume(ctx context.Context) {
	if s.smoother.Running() {
		return
	}
	if s.props.PositionSupported {
		s.pollPosition(ctx)
	}
	s.smoother.Start()
}

// Pause stops animating and polling. The needle keeps its place.
func (s *Session) Pause() {
	s.smoother.Stop()
}

// Close stops all background work. The sensor is left open; it belongs to the caller.
func (s *Session) Close(ctx context.Context) error {
	s.smoother.Stop()
	s.workers.Stop()
	return s.animator.Close()
}

// startPolling runs poll on every interval while the needle is animating.
func (s *Session) startPolling(interval time.Duration, poll func(context.Context)) {
	s.workers.AddTicker(s.clock, interval, func(ctx context.Context) {
		if s.smoother.Running() {
			poll(ctx)
		}
	})
}

func (s *Session) pollHeading(ctx context.Context) {
	heading, err := s.sensor.CompassHeading(ctx, nil)
	s.headingErrs.Set(err)
	if err != nil {
		if lastErr := s.headingErrs.Get(); lastErr != nil {
			s.logger.Warnw("compass heading keeps failing", "error", lastErr)
		}
		return
	}
	s.setHeading(heading)
}

// setHeading points the needle for a device heading. The card turns the other way.
func (s *Session) setHeading(heading float64) {
	if err := s.smoother.SetTarget(-heading); err != nil {
		s.logger.Debugw("dropping heading", "error", err)
	}
}

func (s *Session) pollPosition(ctx context.Context) {
	s.positionMu.Lock()
	defer s.positionMu.Unlock()

	p, _, err := s.sensor.Position(ctx, nil)
	s.positionErrs.Set(err)
	if err != nil {
		if lastErr := s.positionErrs.Get(); lastErr != nil {
			s.logger.Warnw("position keeps failing", "error", lastErr)
			s.renderer.RenderLocation(s.formatter.Unavailable())
		}
		return
	}

	last := s.lastPosition.GetLastPosition()
	if p == nil || s.lastPosition.IsPositionNaN(p) || s.lastPosition.IsZeroPosition(p) {
		if last == nil {
			s.renderer.RenderLocation(s.formatter.Point(nil))
		}
		return
	}
	if last != nil && (s.lastPosition.ArePointsEqual(last, p) || distanceMeters(last, p) < s.cfg.minDistanceMeters()) {
		return
	}

	if last != nil && !s.props.CompassHeadingSupported {
		_, heading, _ := movementsensor.GetHeading(last, p, s.cfg.YawOffset)
		s.setHeading(heading)
	}
	s.lastPosition.SetLastPosition(p)
	s.renderer.RenderLocation(s.formatter.Point(p))
}

func (s *Session) renderFrame(frame bearing.Frame) {
	s.renderer.RenderView(View{
		NeedleRotation: frame.Current,
		Moved:          frame.Moved,
		Readout:        frame.Readout,
		Labels:         frame.Readout.Directions.Ordered(s.chinese),
	})
}

func distanceMeters(p1, p2 *geo.Point) float64 {
	return p1.GreatCircleDistance(p2) * 1000
}
