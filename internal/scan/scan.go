// Package scan samples f over a bounded domain and brackets sign changes.
package scan

import (
	"math"

	"github.com/san-kum/rootlab/internal/equation"
)

const (
	DefaultIntervals     = 1000
	DefaultZoomIntervals = 500
	DefaultMaxX          = 100.0
	DefaultSpan          = 10.0
)

// Domain is a closed search interval [Min, Max].
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (d Domain) Width() float64 { return d.Max - d.Min }

func (d Domain) Contains(x float64) bool { return x >= d.Min && x <= d.Max }

// Policy bounds the search domain: the half-width is min(Span·π/|b|, MaxX).
type Policy struct {
	Span float64
	MaxX float64
}

func DefaultPolicy() Policy {
	return Policy{Span: DefaultSpan, MaxX: DefaultMaxX}
}

// SearchDomain picks the interval to scan for p. Negative a restricts f to
// x ≤ 0, so the interval is mirrored. a = 0 is defined everywhere and keeps
// the positive interval.
func SearchDomain(p equation.Params, pol Policy) Domain {
	maxX := pol.MaxX
	if p.B != 0 {
		maxX = math.Min(pol.Span*math.Pi/math.Abs(p.B), pol.MaxX)
	}
	if p.A < 0 {
		return Domain{Min: -maxX, Max: 0}
	}
	return Domain{Min: 0, Max: maxX}
}

// Sample is one grid point. Valid is false where f is undefined.
type Sample struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Valid bool    `json:"valid"`
}

// Grid is the ordered sampling of f over Domain with N intervals.
type Grid struct {
	Domain  Domain   `json:"domain"`
	N       int      `json:"n"`
	Samples []Sample `json:"samples"`
}

// Points returns the valid samples as parallel slices.
func (g Grid) Points() (xs, ys []float64) {
	xs = make([]float64, 0, len(g.Samples))
	ys = make([]float64, 0, len(g.Samples))
	for _, s := range g.Samples {
		if s.Valid {
			xs = append(xs, s.X)
			ys = append(ys, s.Y)
		}
	}
	return xs, ys
}

// Bracket is a pair of adjacent valid samples with f(Lo)·f(Hi) ≤ 0.
type Bracket struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Mid is the root estimate used to seed Newton's method.
func (b Bracket) Mid() float64 { return (b.Lo + b.Hi) / 2 }

// Evaluate samples f at Min + i·(Max−Min)/n for i = 0..n.
func Evaluate(p equation.Params, d Domain, n int) Grid {
	if n < 1 {
		n = 1
	}
	step := d.Width() / float64(n)
	samples := make([]Sample, n+1)
	for i := range samples {
		x := d.Min + float64(i)*step
		y, err := p.F(x)
		samples[i] = Sample{X: x, Y: y, Valid: err == nil}
	}
	return Grid{Domain: d, N: n, Samples: samples}
}

// Brackets pairs consecutive valid samples whose values do not share a sign.
// Undefined samples are skipped and never count as a sign change.
func (g Grid) Brackets() []Bracket {
	var out []Bracket
	prev := -1
	for i, s := range g.Samples {
		if !s.Valid {
			continue
		}
		if prev >= 0 && g.Samples[prev].Y*s.Y <= 0 {
			out = append(out, Bracket{Lo: g.Samples[prev].X, Hi: s.X})
		}
		prev = i
	}
	return out
}

// Scan samples f over d and returns the grid and its brackets.
func Scan(p equation.Params, d Domain, n int) (Grid, []Bracket) {
	g := Evaluate(p, d, n)
	return g, g.Brackets()
}

// Estimates returns the midpoints of brs in order.
func Estimates(brs []Bracket) []float64 {
	out := make([]float64, len(brs))
	for i, b := range brs {
		out[i] = b.Mid()
	}
	return out
}

// ZoomDomain frames roots with padding on either side, clipped to within.
// It returns false when there is nothing to frame.
func ZoomDomain(roots []float64, within Domain, padding float64) (Domain, bool) {
	if len(roots) == 0 {
		return Domain{}, false
	}
	lo, hi := roots[0], roots[0]
	for _, r := range roots[1:] {
		lo = math.Min(lo, r)
		hi = math.Max(hi, r)
	}
	d := Domain{
		Min: math.Max(within.Min, lo-padding),
		Max: math.Min(within.Max, hi+padding),
	}
	if d.Max <= d.Min {
		return Domain{}, false
	}
	return d, true
}
