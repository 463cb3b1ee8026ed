package dasha

import "fmt"

// lifetimeHorizonYears is the minimum span every maha dasha list covers,
// regardless of the system's own cycle length.
const lifetimeHorizonYears = 120

// vimshottariSequence is the fixed Vimshottari dasha order.
var vimshottariSequence = []string{
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
}

// vimshottariYears are the maha dasha durations per lord. They sum to 120.
var vimshottariYears = map[string]float64{
	"Ketu":    7,
	"Venus":   20,
	"Sun":     6,
	"Moon":    10,
	"Mars":    7,
	"Rahu":    18,
	"Jupiter": 16,
	"Saturn":  19,
	"Mercury": 17,
}

// nakshatraLords maps each of the 27 nakshatras (0-based) to its Vimshottari
// lord. The nine lords repeat in sequence across the mansions, with the
// traditional Saturn substitution at Jyeshtha (index 23).
var nakshatraLords = [NakshatraCount]string{
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu",
	"Jupiter", "Saturn", "Mercury", "Ketu", "Venus", "Sun",
	"Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Saturn",
	"Jupiter", "Saturn", "Mercury",
}

// yoginiSequence is the fixed Yogini dasha order. Durations ascend 1..8,
// summing to the 36-year Yogini cycle.
var yoginiSequence = []string{
	"Mangala", "Pingala", "Dhanya", "Bhramari", "Bhadrika", "Ulka", "Siddha", "Sankata",
}

var yoginiYears = map[string]float64{
	"Mangala":  1,
	"Pingala":  2,
	"Dhanya":   3,
	"Bhramari": 4,
	"Bhadrika": 5,
	"Ulka":     6,
	"Siddha":   7,
	"Sankata":  8,
}

// yoginiPlanets maps each yogini to its ruling planet.
var yoginiPlanets = map[string]string{
	"Mangala":  "Moon",
	"Pingala":  "Sun",
	"Dhanya":   "Jupiter",
	"Bhramari": "Mars",
	"Bhadrika": "Mercury",
	"Ulka":     "Saturn",
	"Siddha":   "Venus",
	"Sankata":  "Rahu",
}

// Vimshottari returns the nine-lord, 120-year dasha system. The starting lord
// is the Vimshottari ruler of the Moon's nakshatra.
func Vimshottari() System {
	return System{
		Name:         "vimshottari",
		Sequence:     vimshottariSequence,
		Years:        vimshottariYears,
		CycleYears:   120,
		HorizonYears: lifetimeHorizonYears,
		startingLord: func(nakshatraIndex int) string {
			return nakshatraLords[nakshatraIndex]
		},
	}
}

// Yogini returns the eight-yogini, 36-year dasha system. The starting yogini
// follows the traditional formula (nakshatra_number + 3) mod 8, where
// nakshatra_number is 1-based. The 36-year cycle repeats to cover the same
// 120-year horizon as Vimshottari.
func Yogini() System {
	return System{
		Name:         "yogini",
		Sequence:     yoginiSequence,
		Years:        yoginiYears,
		CycleYears:   36,
		HorizonYears: lifetimeHorizonYears,
		Planets:      yoginiPlanets,
		startingLord: func(nakshatraIndex int) string {
			return yoginiSequence[YoginiStartingIndex(nakshatraIndex+1)]
		},
	}
}

// YoginiStartingIndex determines the starting yogini (0-7) from a 1-based
// birth nakshatra number: (nakshatra_number + 3) mod 8.
func YoginiStartingIndex(nakshatraNumber int) int {
	return (nakshatraNumber + 3) % 8
}

// ByName resolves a dasha system from its API identifier.
func ByName(name string) (System, error) {
	switch name {
	case "vimshottari":
		return Vimshottari(), nil
	case "yogini":
		return Yogini(), nil
	default:
		return System{}, fmt.Errorf("unknown dasha system %q (supported: vimshottari, yogini)", name)
	}
}
