package bearing

import (
	"fmt"

	"go.viam.com/compass/utils"
)

// Readout is what a host renders beside the needle for one bearing. It is recomputed on every
// tick and never stored by the smoother.
type Readout struct {
	Bearing    float64
	Directions Directions
	// Digits of the whole degrees without leading zeros, e.g. [3 0 5] or [7].
	Digits []int
}

// NewReadout derives the readout for a bearing, normalizing it first.
func NewReadout(bearing float64) Readout {
	b := utils.ModAngDeg(bearing)
	r := Readout{Bearing: b, Directions: ClassifyOctant(b)}
	if utils.IsFinite(b) {
		r.Digits = DegreeDigits(int(b))
	}
	return r
}

// DegreeDigits splits whole degrees into display digits. Once a leading digit has been shown
// the following zeros are kept, so 105 is [1 0 5] while 5 is just [5].
func DegreeDigits(degrees int) []int {
	if degrees < 0 {
		degrees = -degrees
	}
	digits := make([]int, 0, 3)
	shown := false
	if degrees >= 100 {
		digits = append(digits, degrees/100)
		degrees %= 100
		shown = true
	}
	if degrees >= 10 || shown {
		digits = append(digits, degrees/10)
		degrees %= 10
	}
	return append(digits, degrees)
}

func (r Readout) String() string {
	degrees := 0
	for _, d := range r.Digits {
		degrees = degrees*10 + d
	}
	if r.Directions == 0 {
		return fmt.Sprintf("%d°", degrees)
	}
	return fmt.Sprintf("%s %d°", r.Directions, degrees)
}
