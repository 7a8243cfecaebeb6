// Package movementsensor defines the heading and position source a compass session reads from.
package movementsensor

import (
	"context"

	geo "github.com/kellydunn/golang-geo"
)

// Properties tells you what a MovementSensor supports.
type Properties struct {
	PositionSupported       bool
	CompassHeadingSupported bool
}

// A MovementSensor reports where the device is and which way it faces.
type MovementSensor interface {
	Position(ctx context.Context, extra map[string]interface{}) (*geo.Point, float64, error) // (lat, long), altitude (m)
	CompassHeading(ctx context.Context, extra map[string]interface{}) (float64, error)    // [0->360)
	Properties(ctx context.Context, extra map[string]interface{}) (*Properties, error)
	Close(ctx context.Context) error
}
