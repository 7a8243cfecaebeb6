// Package bearing smooths a compass needle toward a sensor heading and derives the
// direction readout shown next to it.
package bearing

import (
	"strings"

	"go.viam.com/compass/utils"
)

// Direction is one of the four cardinal labels a readout can light up.
type Direction uint8

// The cardinal directions. Each is a single bit so a set of them fits in Directions.
const (
	North Direction = 1 << iota
	East
	South
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return "?"
	}
}

// Directions is a set of active cardinal labels.
type Directions uint8

// Has reports whether d is in the set.
func (dirs Directions) Has(d Direction) bool {
	return dirs&Directions(d) != 0
}

var (
	// north/south first, e.g. "NE".
	defaultOrder = []Direction{South, North, East, West}
	// east/west first, e.g. 东北.
	chineseOrder = []Direction{East, West, South, North}
)

// Ordered lists the active directions in display order. Chinese readouts put east/west
// before north/south; every other locale does the opposite.
func (dirs Directions) Ordered(chinese bool) []Direction {
	order := defaultOrder
	if chinese {
		order = chineseOrder
	}
	var out []Direction
	for _, d := range order {
		if dirs.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (dirs Directions) String() string {
	var sb strings.Builder
	for _, d := range dirs.Ordered(false) {
		sb.WriteString(d.String())
	}
	return sb.String()
}

// ClassifyOctant returns the labels active for a bearing. Bands are open intervals, so a
// bearing sitting exactly on 22.5, 67.5, 112.5, ... leaves that band's label off:
//
//	E (22.5, 157.5)    W (202.5, 337.5)
//	S (112.5, 247.5)   N [0, 67.5) or (292.5, 360)
//
// East and west never show together, nor do north and south. A NaN bearing yields an
// empty set.
func ClassifyOctant(bearing float64) Directions {
	b := utils.ModAngDeg(bearing)

	var dirs Directions
	if b > 22.5 && b < 157.5 {
		dirs |= Directions(East)
	} else if b > 202.5 && b < 337.5 {
		dirs |= Directions(West)
	}

	if b > 112.5 && b < 247.5 {
		dirs |= Directions(South)
	} else if b < 67.5 || b > 292.5 {
		dirs |= Directions(North)
	}
	return dirs
}
