package sets

import (
	"errors"
	"fmt"
)

// ErrInvalidNotation is the kind wrapped by every ParseError.
var ErrInvalidNotation = errors.New("invalid set notation")

// ParseError reports a shorthand token that could not be turned into sets.
//
// Grammar names the grammar that rejected the token ("strength" or
// "distance-cardio"), Token is the normalized token text and Reason says what
// was wrong with it.
type ParseError struct {
	Grammar string
	Token   string
	Reason  string
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s token %q: %s", ErrInvalidNotation.Error(), e.Grammar, e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrInvalidNotation }

func invalidf(grammar, token, format string, args ...any) error {
	return &ParseError{Grammar: grammar, Token: token, Reason: fmt.Sprintf(format, args...)}
}
