// Package location renders latitude and longitude as degrees, minutes and seconds.
package location

import (
	"fmt"
	"math"

	"go.viam.com/compass/utils"
)

// secondsTolerance absorbs representation error so that a value rebuilt from a DMS triple
// formats back to the same triple instead of losing a second to truncation.
const secondsTolerance = 1e-6

// DMS is an unsigned angle split into whole degrees, minutes and seconds.
type DMS struct {
	Degrees int
	Minutes int
	Seconds int
}

// FormatDMS truncates decimal degrees into a DMS triple. The sign is dropped, so callers pick
// the hemisphere first. NaN, infinities and magnitudes too large for whole degrees to fit an
// int32 produce the zero DMS.
func FormatDMS(decimalDegrees float64) DMS {
	if !utils.IsFinite(decimalDegrees) {
		return DMS{}
	}
	x := math.Abs(decimalDegrees)
	if x > math.MaxInt32 {
		return DMS{}
	}
	deg := math.Floor(x)
	totalSeconds := int(math.Floor((x-deg)*3600 + secondsTolerance))
	if totalSeconds > 3599 {
		totalSeconds = 3599
	}
	return DMS{
		Degrees: int(deg),
		Minutes: totalSeconds / 60,
		Seconds: totalSeconds % 60,
	}
}

// Decimal converts the triple back to decimal degrees.
func (d DMS) Decimal() float64 {
	return float64(d.Degrees) + float64(d.Minutes)/60 + float64(d.Seconds)/3600
}

func (d DMS) String() string {
	return fmt.Sprintf("%d°%d'%d\"", d.Degrees, d.Minutes, d.Seconds)
}
