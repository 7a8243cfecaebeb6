package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ModAngDeg wraps any finite angle into [0, 360). Unlike a (deg+720)%360 shortcut it holds for
// negative inputs of any magnitude. A NaN or infinite input returns NaN.
func ModAngDeg(ang float64) float64 {
	ang = math.Mod(ang, 360)
	if ang < 0 {
		ang += 360
		// A tiny negative remainder rounds up to exactly 360.
		if ang == 360 {
			ang = 0
		}
	}
	return ang
}

// AngleDiffDeg returns the closest difference from the two given
// angles. The arguments are commutative.
func AngleDiffDeg(a1, a2 float64) float64 {
	return float64(180) - math.Abs(math.Abs(a1-a2)-float64(180))
}

// ShortestDeltaDeg returns the signed rotation in (-180, 180] that takes from onto to, such
// that ModAngDeg(from+delta) == ModAngDeg(to). Positive is clockwise.
func ShortestDeltaDeg(from, to float64) float64 {
	delta := ModAngDeg(to) - ModAngDeg(from)
	if delta > 180 {
		delta -= 360
	} else if delta <= -180 {
		delta += 360
	}
	return delta
}
