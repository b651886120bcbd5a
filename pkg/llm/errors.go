// Package llm provides the in-process representation of a chat model
// response: the generations a provider returned, the metadata describing the
// call, and the advisor context passed between response-processing stages.
package llm

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every construction error in this package.
var ErrInvalidArgument = errors.New("llm: invalid argument")

// ValidationError describes a rejected constructor argument.
type ValidationError struct {
	Field  string // The argument that was rejected
	Reason string // Human-readable explanation
	Err    error  // Wrapped sentinel, usually ErrInvalidArgument
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s (%v)", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalidArgument(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason, Err: ErrInvalidArgument}
}
