package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSignChange indicates the bracket endpoints share a sign.
	ErrNoSignChange = errors.New("solver: bracket endpoints do not change sign")

	// ErrNotConverged indicates the iteration budget ran out.
	ErrNotConverged = errors.New("solver: did not converge within iteration limit")

	// ErrSingularDerivative indicates |f'(x)| fell below the derivative floor.
	ErrSingularDerivative = errors.New("solver: derivative too close to zero")

	// ErrStagnated indicates successive Newton iterates stopped moving.
	ErrStagnated = errors.New("solver: iterates stagnated")
)

type Method string

const (
	MethodChord  Method = "chord"
	MethodNewton Method = "newton"
)

// Failure wraps a solver error with the run that produced it.
type Failure struct {
	Method     Method
	Start      float64
	Iterations int
	Wrapped    error
}

func (e *Failure) Error() string {
	return fmt.Sprintf("%s from x=%g after %d iterations: %v", e.Method, e.Start, e.Iterations, e.Wrapped)
}

func (e *Failure) Unwrap() error {
	return e.Wrapped
}
