package roots

import (
	"errors"
	"fmt"

	"github.com/san-kum/rootlab/internal/scan"
)

var (
	// ErrInvalidNumber indicates a or b could not be parsed as a real number.
	ErrInvalidNumber = errors.New("parameters must be numbers")

	// ErrInvalidParameter indicates a ≤ 0 when a positive a is required.
	ErrInvalidParameter = errors.New("parameter 'a' must be positive")
)

// NoRootError reports that no root was found on the search domain.
// Brackets counts the sign changes found before every solver run failed.
type NoRootError struct {
	Domain   scan.Domain
	Brackets int
}

func (e *NoRootError) Error() string {
	return fmt.Sprintf("no roots found on interval [%.2f, %.2f]", e.Domain.Min, e.Domain.Max)
}
