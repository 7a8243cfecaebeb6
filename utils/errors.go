package utils

import (
	"github.com/pkg/errors"
)

// NewConfigValidationError returns an error specifying that a config at the given path failed
// validation.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewOutOfRangeError is used when a numeric config value falls outside of its allowed range.
func NewOutOfRangeError(field string, value interface{}, allowed string) error {
	return errors.Errorf("%q must be %s, got %v", field, allowed, value)
}

