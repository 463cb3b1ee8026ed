package dasha

import (
	"fmt"
	"time"
)

// MajorPeriods computes the maha dasha list covering at least the system's
// horizon. The first period begins at birth and lasts only the balance years
// determined by the Moon's longitude; subsequent periods carry their lords'
// full tabulated durations, cycling through the sequence (wrapping as needed)
// until the accumulated span reaches the horizon. The final period always
// runs past the horizon boundary when the boundary falls mid-period.
func (s System) MajorPeriods(moonLongitude float64, birth time.Time) ([]Period, error) {
	startingLord, balanceYears := s.Balance(moonLongitude)
	sequence, err := s.rotateFrom(startingLord)
	if err != nil {
		return nil, fmt.Errorf("building %s maha dashas: %w", s.Name, err)
	}

	var periods []Period
	current := birth

	// First maha dasha: only the balance portion
	end := current.Add(yearsToDuration(balanceYears))
	periods = append(periods, Period{
		Level:  LevelMaha,
		Lord:   startingLord,
		Planet: s.planetFor(startingLord),
		Start:  current,
		End:    end,
	})
	current = end

	// Subsequent full dashas: walk the rotated sequence from index 1,
	// wrapping until balance + full periods cover the horizon.
	totalYears := balanceYears
	for i := 1; totalYears < s.HorizonYears; i++ {
		lord := sequence[i%len(sequence)]
		years := s.Years[lord]
		end = current.Add(yearsToDuration(years))

		periods = append(periods, Period{
			Level:  LevelMaha,
			Lord:   lord,
			Planet: s.planetFor(lord),
			Start:  current,
			End:    end,
		})

		current = end
		totalYears += years
	}

	return periods, nil
}

// subdivide splits a parent period into one child per sequence lord, starting
// from the parent's own lord. Each child's share of the parent span is its
// lord's years divided by the full cycle; the fractions sum to exactly 1 by
// construction, so no closing correction is applied - the last child's end
// meets the parent's end up to floating-point rounding.
func (s System) subdivide(parent Period, level Level) ([]Period, error) {
	sequence, err := s.rotateFrom(parent.Lord)
	if err != nil {
		return nil, fmt.Errorf("subdividing %s period: %w", s.Name, err)
	}

	parentSpan := parent.End.Sub(parent.Start)

	children := make([]Period, 0, len(sequence))
	current := parent.Start

	for _, lord := range sequence {
		fraction := s.Years[lord] / s.CycleYears
		end := current.Add(time.Duration(float64(parentSpan) * fraction))

		children = append(children, Period{
			Level:  level,
			Lord:   lord,
			Planet: s.planetFor(lord),
			Start:  current,
			End:    end,
		})

		current = end
	}

	return children, nil
}

// BuildTree computes the complete three-level dasha hierarchy: all maha
// dashas, each populated with its antar dashas, each antar with its
// pratyantar dashas. The returned tree is immutable once built; lookups
// only read it.
func (s System) BuildTree(moonLongitude float64, birth time.Time) ([]Period, error) {
	mahas, err := s.MajorPeriods(moonLongitude, birth)
	if err != nil {
		return nil, err
	}

	for i := range mahas {
		antars, err := s.subdivide(mahas[i], LevelAntar)
		if err != nil {
			return nil, err
		}
		for j := range antars {
			pratyantars, err := s.subdivide(antars[j], LevelPratyantar)
			if err != nil {
				return nil, err
			}
			antars[j].Children = pratyantars
		}
		mahas[i].Children = antars
	}

	return mahas, nil
}
