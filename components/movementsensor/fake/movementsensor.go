// Package fake is a fake MovementSensor for testing and demos.
package fake

import (
	"context"
	"sync"

	geo "github.com/kellydunn/golang-geo"

	"go.viam.com/compass/components/movementsensor"
	"go.viam.com/compass/logging"
	"go.viam.com/compass/utils"
)

// Config describes the readings a fake sensor starts with.
type Config struct {
	Heading float64 `json:"heading"`
	// RotationPerRead turns the heading by this many degrees after every CompassHeading call.
	RotationPerRead float64 `json:"rotation_per_read,omitempty"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Altitude        float64 `json:"altitude,omitempty"`
	NoCompass       bool    `json:"no_compass,omitempty"`
	NoPosition      bool    `json:"no_position,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	for field, v := range map[string]float64{
		"heading":           cfg.Heading,
		"rotation_per_read": cfg.RotationPerRead,
		"latitude":          cfg.Latitude,
		"longitude":         cfg.Longitude,
	} {
		if !utils.IsFinite(v) {
			return utils.NewConfigValidationError(path, utils.NewOutOfRangeError(field, v, "finite"))
		}
	}
	if cfg.Latitude < -90 || cfg.Latitude > 90 {
		return utils.NewConfigValidationError(path, utils.NewOutOfRangeError("latitude", cfg.Latitude, "in [-90, 90]"))
	}
	if cfg.Longitude < -180 || cfg.Longitude > 180 {
		return utils.NewConfigValidationError(path, utils.NewOutOfRangeError("longitude", cfg.Longitude, "in [-180, 180]"))
	}
	return nil
}

// MovementSensor is a fake whose readings can be changed at any time.
type MovementSensor struct {
	mu              sync.Mutex
	heading         float64
	rotationPerRead float64
	position        *geo.Point
	altitude        float64
	props           movementsensor.Properties
	headingErr      error
	positionErr     error
	headingReads    int
	positionReads   int
	logger          logging.Logger
}

// NewMovementSensor returns a fake sensor. A nil cfg faces north at (0, 0).
func NewMovementSensor(cfg *Config, logger logging.Logger) *MovementSensor {
	if cfg == nil {
		cfg = &Config{}
	}
	return &MovementSensor{
		heading:         cfg.Heading,
		rotationPerRead: cfg.RotationPerRead,
		position:        geo.NewPoint(cfg.Latitude, cfg.Longitude),
		altitude:        cfg.Altitude,
		props: movementsensor.Properties{
			CompassHeadingSupported: !cfg.NoCompass,
			PositionSupported:       !cfg.NoPosition,
		},
		logger: logger,
	}
}

// SetHeading replaces the raw heading reading.
func (f *MovementSensor) SetHeading(heading float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heading = heading
}

// SetPosition replaces the position reading. A nil point reads as "no fix yet".
func (f *MovementSensor) SetPosition(p *geo.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = p
}

// SetErrors makes the next reads fail. Pass nil to clear.
func (f *MovementSensor) SetErrors(headingErr, positionErr error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headingErr = headingErr
	f.positionErr = positionErr
}

// HeadingReads returns how many times CompassHeading has been called.
func (f *MovementSensor) HeadingReads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headingReads
}

// PositionReads returns how many times Position has been called.
func (f *MovementSensor) PositionReads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.positionReads
}

// Position returns the configured fix.
func (f *MovementSensor) Position(ctx context.Context, extra map[string]interface{}) (*geo.Point, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.props.PositionSupported {
		return nil, 0, movementsensor.ErrMethodUnimplementedPosition
	}
	f.positionReads++
	if f.positionErr != nil {
		return nil, 0, f.positionErr
	}
	return f.position, f.altitude, nil
}

// CompassHeading returns the raw heading as-is, then applies RotationPerRead.
func (f *MovementSensor) CompassHeading(ctx context.Context, extra map[string]interface{}) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.props.CompassHeadingSupported {
		return 0, movementsensor.ErrMethodUnimplementedCompassHeading
	}
	f.headingReads++
	if f.headingErr != nil {
		return 0, f.headingErr
	}
	heading := f.heading
	f.heading += f.rotationPerRead
	return heading, nil
}

// Properties reports what was enabled in the config.
func (f *MovementSensor) Properties(ctx context.Context, extra map[string]interface{}) (*movementsensor.Properties, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	props := f.props
	return &props, nil
}

// Close is a no-op.
func (f *MovementSensor) Close(ctx context.Context) error {
	f.logger.Debug("closing fake movement sensor")
	return nil
}
