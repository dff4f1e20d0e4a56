package vcd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Diagnostic kinds. They are never returned from Parse; they classify the
// problems the parser recovers from locally.
var (
	// ErrMalformedDirective marks a declaration or timestamp whose fields
	// could not be interpreted (non-numeric width, missing tokens, ...).
	ErrMalformedDirective = errors.New("malformed directive")
	// ErrUnknownIdentifier marks a value change for an undeclared identifier.
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrUnrecognizedLine marks a body line that is not a value change.
	ErrUnrecognizedLine = errors.New("unrecognized line")
)

// IOError reports that the trace source could not be opened or read. It is
// fatal to the load that produced it only.
type IOError struct {
	Path string
	Err  error
}

// Error returns the failing path (when known) and the underlying cause.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("vcd: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("vcd: %v", e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports an unexpected internal failure while interpreting the
// source. Malformed input never produces one.
type ParseError struct {
	Line int
	Err  error
}

// Error returns the line at which the failure happened and its cause.
func (e *ParseError) Error() string {
	return fmt.Sprintf("vcd: line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Diagnostic describes one recovered problem.
type Diagnostic struct {
	Line int
	Kind error
	Text string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %v: %s", d.Line, d.Kind, d.Text)
}
