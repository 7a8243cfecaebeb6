package movementsensor

import (
	"errors"
	"math"
	"testing"

	geo "github.com/kellydunn/golang-geo"
	"go.viam.com/test"
)

var (
	testPos  = geo.NewPoint(65.35996, -17.03663)
	testPos2 = geo.NewPoint(8.46696, -17.03663)
	zeroPos  = geo.NewPoint(0, 0)
	nanPos   = geo.NewPoint(math.NaN(), math.NaN())
)

func TestGetHeading(t *testing.T) {
	// due north, antennas mounted 90 degrees off
	bearing, heading, standardBearing := GetHeading(testPos2, testPos, 90)
	test.That(t, bearing, test.ShouldAlmostEqual, 0)
	test.That(t, heading, test.ShouldAlmostEqual, 270)
	test.That(t, standardBearing, test.ShouldAlmostEqual, 0)

	// due south
	bearing, heading, standardBearing = GetHeading(testPos, testPos2, 90)
	test.That(t, bearing, test.ShouldAlmostEqual, 180)
	test.That(t, heading, test.ShouldAlmostEqual, 90)
	test.That(t, standardBearing, test.ShouldAlmostEqual, 180)

	bearing, heading, standardBearing = GetHeading(testPos, testPos2, 270)
	test.That(t, bearing, test.ShouldAlmostEqual, 180)
	test.That(t, heading, test.ShouldAlmostEqual, 270)
	test.That(t, standardBearing, test.ShouldAlmostEqual, 180)

	from := geo.NewPoint(8.46696, -17.03663)
	to := geo.NewPoint(56.74367734077241, 29.369620000000015)

	bearing, heading, standardBearing = GetHeading(from, to, 90)
	test.That(t, bearing, test.ShouldAlmostEqual, 27.2412, 1e-3)
	test.That(t, heading, test.ShouldAlmostEqual, 297.24126, 1e-3)
	test.That(t, standardBearing, test.ShouldAlmostEqual, 27.24126, 1e-3)

	bearing, heading, standardBearing = GetHeading(to, from, 90)
	test.That(t, bearing, test.ShouldAlmostEqual, 235.6498, 1e-3)
	test.That(t, heading, test.ShouldAlmostEqual, 145.6498, 1e-3)
	test.That(t, standardBearing, test.ShouldAlmostEqual, -124.3501, 1e-3)

	bearing, heading, _ = GetHeading(to, from, 270)
	test.That(t, bearing, test.ShouldAlmostEqual, 235.6498, 1e-3)
	test.That(t, heading, test.ShouldAlmostEqual, 325.6498, 1e-3)
}

func TestNoErrors(t *testing.T) {
	le := NewLastError(1, 1)
	test.That(t, le.Get(), test.ShouldBeNil)
}

func TestOneError(t *testing.T) {
	le := NewLastError(1, 1)

	le.Set(errors.New("it's a test error"))
	test.That(t, le.Get(), test.ShouldNotBeNil)
	// We got the error, so it shouldn't be in here any more.
	test.That(t, le.Get(), test.ShouldBeNil)
}

func TestTwoErrors(t *testing.T) {
	le := NewLastError(1, 1)

	le.Set(errors.New("first"))
	le.Set(errors.New("second"))

	err := le.Get()
	test.That(t, err.Error(), test.ShouldEqual, "second")
}

func TestSuppressRareErrors(t *testing.T) {
	le := NewLastError(2, 2) // Only report if 2 of the last 2 are non-nil errors

	test.That(t, le.Get(), test.ShouldBeNil)
	le.Set(nil)
	test.That(t, le.Get(), test.ShouldBeNil)
	le.Set(errors.New("one"))
	test.That(t, le.Get(), test.ShouldBeNil)
	le.Set(nil)
	test.That(t, le.Get(), test.ShouldBeNil)
	le.Set(errors.New("two"))
	test.That(t, le.Get(), test.ShouldBeNil)
	le.Set(errors.New("three")) // Two errors in a row!

	err := le.Get()
	test.That(t, err.Error(), test.ShouldEqual, "three")
	// and now that we've returned an error, the history is cleared out again.
	test.That(t, le.Get(), test.ShouldBeNil)
}

func TestLastPosition(t *testing.T) {
	lp := NewLastPosition()
	test.That(t, lp.GetLastPosition(), test.ShouldBeNil)
	lp.SetLastPosition(testPos)
	test.That(t, lp.GetLastPosition(), test.ShouldEqual, testPos)

	lp.SetLastPosition(testPos2)
	test.That(t, lp.GetLastPosition(), test.ShouldEqual, testPos2)
}

func TestPositionLogic(t *testing.T) {
	lp := NewLastPosition()

	test.That(t, lp.ArePointsEqual(testPos, testPos), test.ShouldBeTrue)
	test.That(t, lp.ArePointsEqual(testPos, geo.NewPoint(testPos.Lat(), testPos.Lng())), test.ShouldBeTrue)
	test.That(t, lp.ArePointsEqual(testPos, testPos2), test.ShouldBeFalse)
	test.That(t, lp.ArePointsEqual(nil, testPos2), test.ShouldBeFalse)
	test.That(t, lp.ArePointsEqual(nil, nil), test.ShouldBeTrue)

	test.That(t, lp.IsZeroPosition(zeroPos), test.ShouldBeTrue)
	test.That(t, lp.IsZeroPosition(testPos), test.ShouldBeFalse)

	test.That(t, lp.IsPositionNaN(nanPos), test.ShouldBeTrue)
	test.That(t, lp.IsPositionNaN(testPos2), test.ShouldBeFalse)
}
