package roots

import (
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/rootlab/internal/equation"
)

// ParseParams reads a and b as typed by a user. A decimal comma is
// accepted in place of the point.
func ParseParams(a, b string) (equation.Params, error) {
	av, err := parseNumber(a)
	if err != nil {
		return equation.Params{}, err
	}
	bv, err := parseNumber(b)
	if err != nil {
		return equation.Params{}, err
	}
	return equation.Params{A: av, B: bv}, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidNumber
	}
	return v, nil
}
