package dynamo

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState      = errors.New("dynamo: state is not finite")
	ErrDimensionMismatch = errors.New("dynamo: state length does not fit the system")
)

// StepError records which body diverged and when.
type StepError struct {
	Body    string
	Time    float64
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s at t=%.4f: %v", e.Body, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
