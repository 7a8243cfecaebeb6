package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/compass/logging"
)

func TestFromReader(t *testing.T) {
	logger := logging.NewTestLogger(t)
	cfg, err := FromReader(context.Background(), "inline", strings.NewReader(`{
		"session": {
			"language": "zh",
			"min_distance_meters": 25,
			"smoother": {"max_step_degrees": 2, "clamp_step": true}
		},
		"fake_sensor": {"heading": 90, "latitude": 40.7, "longitude": -73.98},
		"log_level": "debug"
	}`), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, "inline")
	test.That(t, cfg.Session.Language, test.ShouldEqual, "zh")
	test.That(t, cfg.Session.MinDistanceMeters, test.ShouldEqual, 25.0)
	test.That(t, cfg.Session.Smoother.MaxStepDegrees, test.ShouldEqual, 2.0)
	test.That(t, cfg.Session.Smoother.ClampStep, test.ShouldBeTrue)
	test.That(t, cfg.FakeSensor.Heading, test.ShouldEqual, 90.0)
	test.That(t, *cfg.LogLevel, test.ShouldEqual, logging.DEBUG)
}

func TestFromReaderErrors(t *testing.T) {
	logger := logging.NewTestLogger(t)

	_, err := FromReader(context.Background(), "", strings.NewReader(`{"session": `), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode Config")

	_, err = FromReader(context.Background(), "", strings.NewReader(`{"unknown": 1}`), logger)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = FromReader(context.Background(), "",
		strings.NewReader(`{"session": {"smoother": {"far_easing_input": 1.2}}}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "far_easing_input")

	_, err = FromReader(context.Background(), "", strings.NewReader(`{"fake_sensor": {"latitude": 100}}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "fake_sensor")

	_, err = FromReader(context.Background(), "", strings.NewReader(`{"log_level": "loud"}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestReadExpandsEnvironment(t *testing.T) {
	t.Setenv("COMPASS_TEST_HEADING", "270")
	path := filepath.Join(t.TempDir(), "compass.json")
	err := os.WriteFile(path, []byte(`{"fake_sensor": {"heading": ${COMPASS_TEST_HEADING}}}`), 0o600)
	test.That(t, err, test.ShouldBeNil)

	cfg, err := Read(context.Background(), path, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.FakeSensor.Heading, test.ShouldEqual, 270.0)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, path)

	_, err = Read(context.Background(), filepath.Join(t.TempDir(), "missing.json"), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}
