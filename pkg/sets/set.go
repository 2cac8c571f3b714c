// Package sets parses the shorthand notation used to log performed sets.
//
// Strength text such as "60kgx5x3 70kgx(5+4) 10x2" and endurance text such as
// "5km@5.5min/km+400m" expand into ordered slices of StrengthSet and
// EnduranceSet. Each set renders back to its canonical shorthand via String.
package sets

import (
	"strconv"
)

const (
	// Kg and Lbs are the only weight units the strength grammar accepts.
	Kg  = "kg"
	Lbs = "lbs"

	// DefaultDistanceUnit applies when a distance has no unit letters.
	DefaultDistanceUnit = "m"
	// DefaultSpeedUnit applies when a pace is absent or has no unit.
	DefaultSpeedUnit = "min/km"
)

// Set is one performed set. It is implemented only by StrengthSet and
// EnduranceSet; callers switch on the concrete type.
type Set interface {
	String() string
	isSet()
}

// StrengthSet is one weight/rep pair. Bodyweight sets have Value 0 and Unit kg.
type StrengthSet struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Reps  int     `json:"reps"`
}

func (StrengthSet) isSet() {}

// String renders the canonical shorthand, e.g. "60kgx8".
func (s StrengthSet) String() string {
	return formatNumber(s.Value) + s.Unit + "x" + strconv.Itoa(s.Reps)
}

// EnduranceSet is one distance with an optional pace. Speed is 0 when no pace
// was logged.
type EnduranceSet struct {
	Distance     float64 `json:"distance"`
	DistanceUnit string  `json:"distance_unit"`
	Speed        float64 `json:"speed"`
	SpeedUnit    string  `json:"speed_unit"`
}

func (EnduranceSet) isSet() {}

// String renders the canonical shorthand, e.g. "100m@5min/km" or "100m".
func (s EnduranceSet) String() string {
	out := formatNumber(s.Distance) + s.DistanceUnit
	if s.Speed != 0 {
		out += "@" + formatNumber(s.Speed) + s.SpeedUnit
	}
	return out
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
