package journal

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load error kinds. Every *LoadError unwraps to exactly one of these.
var (
	ErrStructural      = errors.New("structural error")
	ErrSchemaViolation = errors.New("schema violation")
	ErrTypeViolation   = errors.New("type violation")
	ErrReference       = errors.New("reference error")
	ErrUnit            = errors.New("unit error")
	ErrShape           = errors.New("shape error")
	ErrParse           = errors.New("parse error")
)

// LoadError describes the first problem found in a journal document.
//
// Path is the dotted document path of the offending value (for example
// "journal.2024-03-01.measurements.weight"), Line its 1-based line in the
// source when known. Listing, when set, is an indented excerpt of the
// offending YAML. Err is the underlying cause, if any.
type LoadError struct {
	Kind    error
	Path    string
	Line    int
	Msg     string
	Listing string
	Err     error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Listing != "" {
		b.WriteString("\n")
		b.WriteString(e.Listing)
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func loadErrorf(kind error, node *yaml.Node, path, format string, args ...any) *LoadError {
	e := &LoadError{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
	if node != nil {
		e.Line = node.Line
	}
	return e
}
