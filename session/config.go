package session

import (
	"time"

	"golang.org/x/text/language"

	"go.viam.com/compass/bearing"
	"go.viam.com/compass/utils"
)

const (
	defaultSensorPollIntervalMs   = 20
	defaultLocationPollIntervalMs = 2000
	defaultMinDistanceMeters      = 10
)

// Config describes a compass session.
type Config struct {
	Smoother *bearing.Config `json:"smoother,omitempty"`
	// Language is a BCP 47 tag selecting hemisphere labels and glyph order.
	Language               string  `json:"language,omitempty"`
	SensorPollIntervalMs   int     `json:"sensor_poll_interval_ms,omitempty"`
	LocationPollIntervalMs int     `json:"location_poll_interval_ms,omitempty"`
	MinDistanceMeters      float64 `json:"min_distance_meters,omitempty"`
	// YawOffset is applied to the course heading used when the sensor has no compass.
	YawOffset float64 `json:"yaw_offset,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if err := cfg.Smoother.Validate(path + ".smoother"); err != nil {
		return err
	}
	if cfg.Language != "" {
		if _, err := language.Parse(cfg.Language); err != nil {
			return utils.NewConfigValidationError(path, err)
		}
	}
	if cfg.SensorPollIntervalMs < 0 {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("sensor_poll_interval_ms", cfg.SensorPollIntervalMs, "positive"))
	}
	if cfg.LocationPollIntervalMs < 0 {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("location_poll_interval_ms", cfg.LocationPollIntervalMs, "positive"))
	}
	if !utils.IsFinite(cfg.MinDistanceMeters) || cfg.MinDistanceMeters < 0 {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("min_distance_meters", cfg.MinDistanceMeters, "positive"))
	}
	if !utils.IsFinite(cfg.YawOffset) {
		return utils.NewConfigValidationError(path, utils.NewOutOfRangeError("yaw_offset", cfg.YawOffset, "finite"))
	}
	return nil
}

func (cfg *Config) languageTag() language.Tag {
	if cfg.Language == "" {
		return language.English
	}
	return language.Make(cfg.Language)
}

func (cfg *Config) sensorPollInterval() time.Duration {
	if cfg.SensorPollIntervalMs == 0 {
		return defaultSensorPollIntervalMs * time.Millisecond
	}
	return time.Duration(cfg.SensorPollIntervalMs) * time.Millisecond
}

func (cfg *Config) locationPollInterval() time.Duration {
	if cfg.LocationPollIntervalMs == 0 {
		return defaultLocationPollIntervalMs * time.Millisecond
	}
	return time.Duration(cfg.LocationPollIntervalMs) * time.Millisecond
}

func (cfg *Config) minDistanceMeters() float64 {
	if cfg.MinDistanceMeters == 0 {
		return defaultMinDistanceMeters
	}
	return cfg.MinDistanceMeters
}
