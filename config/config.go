// Package config reads the compass JSON configuration.
package config

import (
	"go.viam.com/compass/components/movementsensor/fake"
	"go.viam.com/compass/logging"
	"go.viam.com/compass/session"
)

// Config is the whole compass configuration file.
type Config struct {
	ConfigFilePath string `json:"-"`

	Session session.Config `json:"session"`
	// FakeSensor configures the simulated movement sensor used when no hardware is attached.
	FakeSensor *fake.Config `json:"fake_sensor,omitempty"`
	// LogLevel overrides the default info level.
	LogLevel *logging.Level `json:"log_level,omitempty"`
}

// Ensure ensures all parts of the config are valid.
func (c *Config) Ensure() error {
	if err := c.Session.Validate("session"); err != nil {
		return err
	}
	if c.FakeSensor != nil {
		if err := c.FakeSensor.Validate("fake_sensor"); err != nil {
			return err
		}
	}
	return nil
}
