package movementsensor

import (
	"errors"
	"math"
	"sync"

	geo "github.com/kellydunn/golang-geo"

	"go.viam.com/compass/utils"
)

// GetHeading calculates bearing and absolute heading angles given 2 MovementSensor coordinates
// 0 degrees indicate North, 90 degrees indicate East and so on.
func GetHeading(gps1, gps2 *geo.Point, yawOffset float64) (float64, float64, float64) {
	// convert latitude and longitude readings from degrees to radians
	gps1Lat := utils.DegToRad(gps1.Lat())
	gps1Long := utils.DegToRad(gps1.Lng())
	gps2Lat := utils.DegToRad(gps2.Lat())
	gps2Long := utils.DegToRad(gps2.Lng())

	// calculate bearing from gps1 to gps 2
	dLon := gps2Long - gps1Long
	y := math.Sin(dLon) * math.Cos(gps2Lat)
	x := math.Cos(gps1Lat)*math.Sin(gps2Lat) - math.Sin(gps1Lat)*math.Cos(gps2Lat)*math.Cos(dLon)
	brng := utils.ModAngDeg(utils.RadToDeg(math.Atan2(y, x)))

	// standard bearing is in (-180, 180]
	standardBearing := brng
	if brng > 180 {
		standardBearing = -(360 - brng)
	}

	// e.g if the antennas are mounted on the left and right sides of the device, the yaw offset
	// would be roughly 90 degrees
	heading := utils.ModAngDeg(brng - yawOffset)

	return brng, heading, standardBearing
}

var (
	// ErrMethodUnimplementedPosition returns error if the Position method is unimplemented.
	ErrMethodUnimplementedPosition = errors.New("Position Unimplemented")
	// ErrMethodUnimplementedCompassHeading returns error if the CompassHeading method is unimplemented.
	ErrMethodUnimplementedCompassHeading = errors.New("CompassHeading Unimplemented")
)

// LastError is an object that stores recent errors. If there have been sufficiently many recent
// errors, you can retrieve the most recent one.
type LastError struct {
	// These values are immutable
	size      int // The length of errs, below
	threshold int // How many items in errs must be non-nil for us to give back errors when asked

	// These values are mutable
	mu    sync.Mutex
	errs  []error // A list of recent errors, oldest to newest
	count int     // How many items in errs are non-nil
}

// NewLastError creates a LastError object which will let you retrieve the most recent error if at
// least `threshold` of the most recent `size` items put into it are non-nil.
func NewLastError(size, threshold int) *LastError {
	return &LastError{size: size, errs: make([]error, size), threshold: threshold}
}

// Set stores an error to be retrieved later.
func (le *LastError) Set(err error) {
	le.mu.Lock()
	defer le.mu.Unlock()

	// Remove the oldest error, and add the newest one.
	if le.errs[0] != nil {
		le.count--
	}
	if err != nil {
		le.count++
	}
	le.errs = append(le.errs[1:], err)
}

// Get returns the most-recently-stored non-nil error if we've had enough recent errors. If we're
// going to return a non-nil error, we also wipe out all other data so we don't return the same
// error again next time.
func (le *LastError) Get() error {
	le.mu.Lock()
	defer le.mu.Unlock()

	if le.count < le.threshold {
		// Keep our data, in case we're close to the threshold and will return an error next time.
		return nil
	}

	var errToReturn error
	for i := len(le.errs) - 1; i >= 0; i-- {
		if le.errs[i] != nil {
			errToReturn = le.errs[i]
			break
		}
	}

	le.errs = make([]error, le.size)
	le.count = 0
	return errToReturn
}

// LastPosition remembers the most recent usable fix.
type LastPosition struct {
	mu           sync.Mutex
	lastposition *geo.Point
}

// NewLastPosition creates a LastPosition with no fix.
func NewLastPosition() *LastPosition {
	return &LastPosition{}
}

// GetLastPosition returns the last fix, or nil if there has been none.
func (lp *LastPosition) GetLastPosition() *geo.Point {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.lastposition
}

// SetLastPosition records a fix.
func (lp *LastPosition) SetLastPosition(position *geo.Point) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.lastposition = position
}

// ArePointsEqual reports whether two fixes are at exactly the same place.
func (lp *LastPosition) ArePointsEqual(p1, p2 *geo.Point) bool {
	if p1 == nil || p2 == nil {
		return p1 == p2
	}
	return p1.Lat() == p2.Lat() && p1.Lng() == p2.Lng()
}

// IsZeroPosition reports whether a fix is at (0, 0), which receivers emit before locking on.
func (lp *LastPosition) IsZeroPosition(p *geo.Point) bool {
	return p.Lat() == 0 && p.Lng() == 0
}

// IsPositionNaN reports whether either coordinate of a fix is NaN.
func (lp *LastPosition) IsPositionNaN(p *geo.Point) bool {
	return math.IsNaN(p.Lat()) || math.IsNaN(p.Lng())
}
