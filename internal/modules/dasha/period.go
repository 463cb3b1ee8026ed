// Package dasha implements planetary period (dasha) timelines.
//
// A dasha system assigns a ruling influence to every moment of a life by
// cycling through a fixed sequence of lords. The Moon's nakshatra at birth
// determines the starting lord and how much of its first period remains.
// Three nested levels are computed: maha (major period), antar (sub-period)
// and pratyantar (sub-sub-period).
//
// Two systems are provided as parametrizations of the same engine: the
// nine-lord Vimshottari system (120-year cycle) and the eight-yogini Yogini
// system (36-year cycle).
package dasha

import "time"

// Level identifies the depth of a period within the hierarchy.
type Level string

const (
	// LevelMaha is a major period.
	LevelMaha Level = "maha"
	// LevelAntar is a sub-period within a maha dasha.
	LevelAntar Level = "antar"
	// LevelPratyantar is a sub-sub-period within an antar dasha.
	LevelPratyantar Level = "pratyantar"
)

// Period is a single span of a dasha timeline. A Period exclusively owns its
// Children; the full hierarchy for one chart is built once and never mutated,
// so it is safe to share across readers.
type Period struct {
	Level  Level     `json:"level" msgpack:"level"`
	Lord   string    `json:"lord" msgpack:"lord"`
	Planet string    `json:"planet" msgpack:"planet"` // Ruling planet; equals Lord except in Yogini, where Lord is a yogini name
	Start  time.Time `json:"start" msgpack:"start"`
	End    time.Time `json:"end" msgpack:"end"`

	Children []Period `json:"children,omitempty" msgpack:"children,omitempty"`
}

// Contains reports whether the instant falls inside the period.
// Intervals are half-open: start <= at < end.
func (p *Period) Contains(at time.Time) bool {
	return !at.Before(p.Start) && at.Before(p.End)
}

// Duration returns the elapsed span of the period.
func (p *Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Active holds the periods in effect at a queried instant, one per level.
// A nil entry means no period at that level covers the instant - either the
// query falls outside the built horizon or that level was never expanded.
// Absence is the normal out-of-range outcome, not an error.
type Active struct {
	Maha       *Period `json:"maha,omitempty"`
	Antar      *Period `json:"antar,omitempty"`
	Pratyantar *Period `json:"pratyantar,omitempty"`
}
