package sets

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned by ParseKind for an unrecognised exercise type.
var ErrUnknownKind = errors.New("unknown exercise type")

// Kind is the exercise type declared in the catalogue. It selects which
// shorthand grammar applies to the exercise's workout text.
type Kind int

const (
	// Strength exercises are logged as weight/rep sets.
	Strength Kind = iota + 1
	// DistanceCardio exercises are logged as distance/pace sets.
	DistanceCardio
)

// Kinds lists every valid Kind in declaration order.
var Kinds = []Kind{Strength, DistanceCardio}

// ParseKind converts the catalogue spelling of a type into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "strength":
		return Strength, nil
	case "distance-cardio":
		return DistanceCardio, nil
	default:
		return 0, fmt.Errorf("%w: %q (want one of strength, distance-cardio)", ErrUnknownKind, s)
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k == Strength || k == DistanceCardio
}

func (k Kind) String() string {
	switch k {
	case Strength:
		return "strength"
	case DistanceCardio:
		return "distance-cardio"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
