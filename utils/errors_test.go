package utils

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestConfigValidationErrors(t *testing.T) {
	base := errors.New("boom")
	err := NewConfigValidationError("smoother", base)
	test.That(t, err.Error(), test.ShouldEqual, `error validating "smoother": boom`)
	test.That(t, errors.Is(err, base), test.ShouldBeTrue)

	err = NewOutOfRangeError("far_easing_input", 1.5, "in (0, 1)")
	test.That(t, err.Error(), test.ShouldEqual, `"far_easing_input" must be in (0, 1), got 1.5`)
}
