package equation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrDomain indicates f or f' is undefined at the requested point.
var ErrDomain = errors.New("equation: point outside function domain")

// Params are the coefficients a and b of the equation.
type Params struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

// F evaluates √(a·x) − cos(b·x).
func F(x, a, b float64) (float64, error) {
	if a == 0 {
		return finite(-math.Cos(b * x))
	}
	ax := a * x
	if ax < 0 || math.IsNaN(ax) {
		return 0, ErrDomain
	}
	return finite(math.Sqrt(ax) - math.Cos(b*x))
}

// DF evaluates a/(2·√(a·x)) + b·sin(b·x). The boundary a·x = 0 is excluded
// because of the 1/√ singularity.
func DF(x, a, b float64) (float64, error) {
	if a == 0 {
		return finite(b * math.Sin(b*x))
	}
	ax := a * x
	if ax <= 0 || math.IsNaN(ax) {
		return 0, ErrDomain
	}
	return finite(a/(2*math.Sqrt(ax)) + b*math.Sin(b*x))
}

func (p Params) F(x float64) (float64, error)  { return F(x, p.A, p.B) }
func (p Params) DF(x float64) (float64, error) { return DF(x, p.A, p.B) }

// Defined reports whether f has a value at x.
func (p Params) Defined(x float64) bool {
	_, err := p.F(x)
	return err == nil
}

// Describe renders the equation with its coefficients filled in.
func (p Params) Describe() string {
	return fmt.Sprintf("f(x) = √(%sx) - cos(%sx)", formatCoef(p.A), formatCoef(p.B))
}

func (p Params) String() string {
	return fmt.Sprintf("a=%s b=%s", formatCoef(p.A), formatCoef(p.B))
}

func formatCoef(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrDomain
	}
	return v, nil
}
