package sets

import (
	"regexp"
	"strconv"
	"strings"
)

const strengthGrammar = "strength"

// Upper bounds for a single token. A set count expands into that many rows.
const (
	MaxReps     = 10000
	MaxSetCount = 1000
)

var (
	// 100kg, 100kgx5, 100kgx5x3
	weightRepsPattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)(kg|lbs)(?:x([0-9]+)(?:x([0-9]+))?)?$`)
	// 100kgx(5+4+3)
	weightRepListPattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)(kg|lbs)x\(([0-9]+(?:\+[0-9]+)*)\)$`)
	// 12, 12x3
	bodyweightPattern = regexp.MustCompile(`^([0-9]+)(?:x([0-9]+))?$`)
)

// ParseStrength expands strength shorthand into sets, in the order written.
// Each text is normalized (spaces separate groups, newlines are dropped) and
// split on '+' outside parentheses.
func ParseStrength(texts ...string) ([]StrengthSet, error) {
	var out []StrengthSet
	for _, text := range texts {
		tokens, err := splitStrength(normalize(text))
		if err != nil {
			return nil, err
		}
		for _, token := range tokens {
			parsed, err := parseStrengthToken(token)
			if err != nil {
				return nil, err
			}
			out = append(out, parsed...)
		}
	}
	return out, nil
}

// splitStrength splits on '+' at parenthesis depth 0. A token closing a group
// is emitted as soon as the group closes.
func splitStrength(text string) ([]string, error) {
	var tokens []string
	depth, start := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, invalidf(strengthGrammar, text, "unbalanced ')' at offset %d", i)
			}
			if depth == 0 {
				tokens = append(tokens, text[start:i+1])
				start = i + 1
			}
		case '+':
			if depth == 0 {
				tokens = append(tokens, text[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, invalidf(strengthGrammar, text, "unclosed '('")
	}
	tokens = append(tokens, text[start:])

	kept := tokens[:0]
	for _, t := range tokens {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return kept, nil
}

func parseStrengthToken(token string) ([]StrengthSet, error) {
	if m := weightRepsPattern.FindStringSubmatch(token); m != nil {
		weight, err := parseMagnitude(strengthGrammar, token, m[1])
		if err != nil {
			return nil, err
		}
		reps, err := parseCount(token, m[3], "reps", MaxReps)
		if err != nil {
			return nil, err
		}
		count, err := parseCount(token, m[4], "set count", MaxSetCount)
		if err != nil {
			return nil, err
		}
		return repeat(StrengthSet{Value: weight, Unit: m[2], Reps: reps}, count), nil
	}

	if m := weightRepListPattern.FindStringSubmatch(token); m != nil {
		weight, err := parseMagnitude(strengthGrammar, token, m[1])
		if err != nil {
			return nil, err
		}
		var out []StrengthSet
		for _, r := range strings.Split(m[3], "+") {
			reps, err := parseCount(token, r, "reps", MaxReps)
			if err != nil {
				return nil, err
			}
			out = append(out, StrengthSet{Value: weight, Unit: m[2], Reps: reps})
		}
		return out, nil
	}

	if m := bodyweightPattern.FindStringSubmatch(token); m != nil {
		reps, err := parseCount(token, m[1], "reps", MaxReps)
		if err != nil {
			return nil, err
		}
		count, err := parseCount(token, m[2], "set count", MaxSetCount)
		if err != nil {
			return nil, err
		}
		return repeat(StrengthSet{Value: 0, Unit: Kg, Reps: reps}, count), nil
	}

	return nil, invalidf(strengthGrammar, token,
		"want WEIGHT(kg|lbs)[xREPS[xSETS]], WEIGHT(kg|lbs)x(REPS+...) or REPS[xSETS]")
}

// parseCount parses a reps or set-count field in [1, limit]. An empty field
// means 1.
func parseCount(token, field, what string, limit int) (int, error) {
	if field == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, invalidf(strengthGrammar, token, "%s %q is not an integer", what, field)
	}
	if n < 1 {
		return 0, invalidf(strengthGrammar, token, "%s must be at least 1", what)
	}
	if n > limit {
		return 0, invalidf(strengthGrammar, token, "%s %d exceeds %d", what, n, limit)
	}
	return n, nil
}

func parseMagnitude(grammar, token, field string) (float64, error) {
	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, invalidf(grammar, token, "magnitude %q is not a number", field)
	}
	return f, nil
}

func repeat(s StrengthSet, n int) []StrengthSet {
	out := make([]StrengthSet, n)
	for i := range out {
		out[i] = s
	}
	return out
}
