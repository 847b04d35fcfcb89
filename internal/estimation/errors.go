package estimation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a physical parameter outside its valid domain.
	ErrInvalidInput = errors.New("estimation: invalid input")
	// ErrDegenerateResult indicates a computed field is NaN or infinite.
	ErrDegenerateResult = errors.New("estimation: degenerate result")
	// ErrUnsupportedModel indicates a model variant with no registered solver.
	ErrUnsupportedModel = errors.New("estimation: unsupported model")
)

// InputError names the offending parameter of a rejected Input.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// DegenerateError names the first non-finite field found in a computation.
type DegenerateError struct {
	Model Model
	Field string
	Value float64
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("%s: %s %s is %v", ErrDegenerateResult, e.Model, e.Field, e.Value)
}

func (e *DegenerateError) Unwrap() error { return ErrDegenerateResult }
