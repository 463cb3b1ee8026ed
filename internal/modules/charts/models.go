package charts

import "time"

// Chart holds the caller-resolved inputs for dasha computation. The Moon
// longitude is sidereal (already ayanamsha-corrected) and the birth instant
// is already timezone-resolved to UTC; this service performs no astronomical
// or timezone computation itself.
type Chart struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	BirthUTC      time.Time `json:"birth_utc"`
	MoonLongitude float64   `json:"moon_longitude"` // Sidereal, degrees in [0, 360)
	CreatedAt     time.Time `json:"created_at"`
}
