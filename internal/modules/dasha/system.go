package dasha

import (
	"fmt"
	"math"
	"time"
)

const (
	// NakshatraCount is the number of lunar mansions dividing the zodiac.
	NakshatraCount = 27

	// NakshatraSpanDeg is the angular span of one nakshatra:
	// 13 degrees 20 minutes.
	NakshatraSpanDeg = 13.333333

	// DaysPerYear converts dasha years to elapsed days. The whole engine
	// treats a year as a fixed-length span; real calendar leap placement is
	// deliberately ignored so that period arithmetic stays proportional.
	DaysPerYear = 365.25
)

// System parametrizes the dasha engine. The same builder and locator logic
// serves every system; only the lord sequence, the per-lord year table, the
// cycle length those years sum to, and the nakshatra-to-starting-lord mapping
// differ.
type System struct {
	// Name is the lowercase identifier used in APIs ("vimshottari", "yogini").
	Name string

	// Sequence is the fixed cyclic order of lords.
	Sequence []string

	// Years maps each lord to its full maha dasha duration in dasha years.
	// The values sum to CycleYears.
	Years map[string]float64

	// CycleYears is the total length of one full cycle (120 for Vimshottari,
	// 36 for Yogini). Sub-period fractions are taken against this.
	CycleYears float64

	// HorizonYears is the minimum span the maha dasha list must cover.
	// Both systems cover a 120-year lifetime; the Yogini cycle simply
	// repeats to fill it.
	HorizonYears float64

	// Planets maps a lord to its ruling planet. Nil when lords are planets
	// themselves (Vimshottari); set for Yogini where lords are yogini names.
	Planets map[string]string

	// startingLord maps a 0-based nakshatra index to the first maha lord.
	startingLord func(nakshatraIndex int) string
}

// planetFor returns the ruling planet for a lord.
func (s System) planetFor(lord string) string {
	if s.Planets == nil {
		return lord
	}
	return s.Planets[lord]
}

// NormalizeLongitude reduces a degree value into [0, 360). The engine itself
// only clamps defensively; callers handing over raw degrees use this first.
func NormalizeLongitude(degrees float64) float64 {
	normalized := math.Mod(degrees, 360.0)
	if normalized < 0 {
		normalized += 360.0
	}
	return normalized
}

// NakshatraIndex returns the 0-based lunar mansion occupied by a longitude.
// Exactly 360.0 (and any float noise above it) clamps to the final mansion
// rather than failing; boundary values are expected.
func NakshatraIndex(longitude float64) int {
	idx := int(longitude / NakshatraSpanDeg)
	if idx >= NakshatraCount {
		idx = NakshatraCount - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Balance determines the first maha dasha lord and the remaining duration of
// that dasha at birth. The Moon's position within its nakshatra decides how
// much remains: at the very start of the mansion nearly the full period is
// left, at the end almost none.
//
// This is a total function: every longitude in [0, 360) yields a valid
// result, and 0 < balance <= Years[lord] always holds.
func (s System) Balance(moonLongitude float64) (lord string, balanceYears float64) {
	idx := NakshatraIndex(moonLongitude)
	lord = s.startingLord(idx)

	// How far through the nakshatra has the Moon traveled?
	offset := math.Mod(moonLongitude, NakshatraSpanDeg)
	remaining := 1.0 - offset/NakshatraSpanDeg

	return lord, s.Years[lord] * remaining
}

// rotateFrom returns the full lord sequence reordered to begin at the given
// lord, preserving cyclic order. An unknown lord indicates an inconsistency
// between the system's constant tables - a programming error, not a condition
// any valid input can trigger - and fails tree construction fast.
func (s System) rotateFrom(lord string) ([]string, error) {
	for i, l := range s.Sequence {
		if l == lord {
			rotated := make([]string, 0, len(s.Sequence))
			rotated = append(rotated, s.Sequence[i:]...)
			rotated = append(rotated, s.Sequence[:i]...)
			return rotated, nil
		}
	}
	return nil, fmt.Errorf("unknown %s dasha lord %q: must be one of %v", s.Name, lord, s.Sequence)
}

// yearsToDuration converts fractional dasha years to elapsed time using the
// fixed-length year convention.
func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * DaysPerYear * 24 * float64(time.Hour))
}
