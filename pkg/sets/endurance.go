package sets

import (
	"regexp"
	"strings"
)

const enduranceGrammar = "distance-cardio"

var (
	distancePattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)([A-Za-z]*)$`)
	speedPattern    = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)([A-Za-z/]*)$`)
)

// ParseEndurance expands distance shorthand such as "5km@5.5min/km+400m".
// Tokens are separated by '+' (or a space); '@' introduces an optional pace.
func ParseEndurance(texts ...string) ([]EnduranceSet, error) {
	var out []EnduranceSet
	for _, text := range texts {
		for _, token := range strings.Split(normalize(text), "+") {
			if token == "" {
				continue
			}
			set, err := parseEnduranceToken(token)
			if err != nil {
				return nil, err
			}
			out = append(out, set)
		}
	}
	return out, nil
}

func parseEnduranceToken(token string) (EnduranceSet, error) {
	parts := strings.Split(token, "@")
	if len(parts) > 2 {
		return EnduranceSet{}, invalidf(enduranceGrammar, token, "more than one '@'")
	}

	m := distancePattern.FindStringSubmatch(parts[0])
	if m == nil {
		return EnduranceSet{}, invalidf(enduranceGrammar, token, "distance %q does not match NUMBER[unit]", parts[0])
	}
	distance, err := parseMagnitude(enduranceGrammar, token, m[1])
	if err != nil {
		return EnduranceSet{}, err
	}
	set := EnduranceSet{
		Distance:     distance,
		DistanceUnit: m[2],
		SpeedUnit:    DefaultSpeedUnit,
	}
	if set.DistanceUnit == "" {
		set.DistanceUnit = DefaultDistanceUnit
	}

	if len(parts) == 2 {
		m := speedPattern.FindStringSubmatch(parts[1])
		if m == nil {
			return EnduranceSet{}, invalidf(enduranceGrammar, token, "pace %q does not match NUMBER[unit]", parts[1])
		}
		speed, err := parseMagnitude(enduranceGrammar, token, m[1])
		if err != nil {
			return EnduranceSet{}, err
		}
		set.Speed = speed
		if m[2] != "" {
			set.SpeedUnit = m[2]
		}
	}
	return set, nil
}
