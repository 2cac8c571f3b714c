package sets

import (
	"fmt"
	"strings"
)

var normalizer = strings.NewReplacer(" ", "+", "\n", "", "\r", "")

// normalize turns spaces into group separators and drops line breaks, so a
// YAML block scalar can spread one exercise over several lines.
func normalize(text string) string {
	return normalizer.Replace(text)
}

// Parse expands texts with the grammar belonging to kind.
func Parse(kind Kind, texts ...string) ([]Set, error) {
	switch kind {
	case Strength:
		parsed, err := ParseStrength(texts...)
		if err != nil {
			return nil, err
		}
		out := make([]Set, len(parsed))
		for i, s := range parsed {
			out[i] = s
		}
		return out, nil
	case DistanceCardio:
		parsed, err := ParseEndurance(texts...)
		if err != nil {
			return nil, err
		}
		out := make([]Set, len(parsed))
		for i, s := range parsed {
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}
