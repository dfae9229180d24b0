package solver

import (
	"math"

	"github.com/san-kum/rootlab/internal/equation"
)

const (
	DefaultTolerance       = 0.001
	DefaultMaxIterations   = 1000
	DefaultStartFloor      = 1e-10
	DefaultDerivativeFloor = 1e-15
	DefaultStagnationTol   = 1e-15
)

type Options struct {
	// Tolerance bounds both |f(x)| and the step size at convergence.
	Tolerance     float64
	MaxIterations int
	// StartFloor keeps Newton's first iterate off the domain boundary x = 0.
	StartFloor      float64
	DerivativeFloor float64
	StagnationTol   float64
}

func DefaultOptions() Options {
	return Options{
		Tolerance:       DefaultTolerance,
		MaxIterations:   DefaultMaxIterations,
		StartFloor:      DefaultStartFloor,
		DerivativeFloor: DefaultDerivativeFloor,
		StagnationTol:   DefaultStagnationTol,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.MaxIterations < 1 {
		o.MaxIterations = d.MaxIterations
	}
	if o.StartFloor <= 0 {
		o.StartFloor = d.StartFloor
	}
	if o.DerivativeFloor <= 0 {
		o.DerivativeFloor = d.DerivativeFloor
	}
	if o.StagnationTol <= 0 {
		o.StagnationTol = d.StagnationTol
	}
	return o
}

// Result is a converged root and the number of steps taken to reach it.
type Result struct {
	Root       float64
	Iterations int
}

// Chord refines the bracket [x0, x1] by regula falsi. It converges when
// |f(c)| < tol and |c − c_prev| < tol; when the budget runs out the last c
// is still accepted if |f(c)| < tol.
func Chord(p equation.Params, x0, x1 float64, opts Options) (Result, error) {
	opts = opts.withDefaults()
	fail := func(iter int, err error) (Result, error) {
		return Result{Iterations: iter}, &Failure{Method: MethodChord, Start: x0, Iterations: iter, Wrapped: err}
	}

	lo, hi := x0, x1
	flo, err := p.F(lo)
	if err != nil {
		return fail(0, err)
	}
	fhi, err := p.F(hi)
	if err != nil {
		return fail(0, err)
	}
	if flo*fhi > 0 {
		return fail(0, ErrNoSignChange)
	}

	var c, fc float64
	prev := math.MaxFloat64
	for it := 1; it <= opts.MaxIterations; it++ {
		den := fhi - flo
		if den == 0 {
			// Only reachable with f(lo) = f(hi) = 0.
			return Result{Root: lo, Iterations: it}, nil
		}
		c = (lo*fhi - hi*flo) / den
		fc, err = p.F(c)
		if err != nil {
			return fail(it, err)
		}

		if math.Abs(fc) < opts.Tolerance && math.Abs(c-prev) < opts.Tolerance {
			return Result{Root: c, Iterations: it}, nil
		}

		if flo*fc < 0 {
			hi, fhi = c, fc
		} else {
			lo, flo = c, fc
		}
		prev = c
	}

	if math.Abs(fc) < opts.Tolerance {
		return Result{Root: c, Iterations: opts.MaxIterations}, nil
	}
	return fail(opts.MaxIterations, ErrNotConverged)
}

// ClampStart moves x0 strictly inside the domain of f' for the sign of a.
func ClampStart(x0 float64, p equation.Params, floor float64) float64 {
	switch {
	case p.A > 0:
		return math.Max(x0, floor)
	case p.A < 0:
		return math.Min(x0, -floor)
	default:
		return x0
	}
}

// Newton runs Newton–Raphson from x0. It converges when both the step and
// |f(x)| before the step are below tol, and gives up when f or f' is
// undefined, f' is near zero, or the iterates stop moving.
func Newton(p equation.Params, x0 float64, opts Options) (Result, error) {
	opts = opts.withDefaults()
	fail := func(iter int, err error) (Result, error) {
		return Result{Iterations: iter}, &Failure{Method: MethodNewton, Start: x0, Iterations: iter, Wrapped: err}
	}

	x := ClampStart(x0, p, opts.StartFloor)
	prev := math.MaxFloat64
	for it := 1; it <= opts.MaxIterations; it++ {
		fx, err := p.F(x)
		if err != nil {
			return fail(it-1, err)
		}
		dfx, err := p.DF(x)
		if err != nil {
			return fail(it-1, err)
		}
		if math.Abs(dfx) < opts.DerivativeFloor {
			return fail(it-1, ErrSingularDerivative)
		}

		delta := fx / dfx
		x -= delta

		if math.Abs(delta) < opts.Tolerance && math.Abs(fx) < opts.Tolerance {
			if !p.Defined(x) {
				return fail(it, equation.ErrDomain)
			}
			return Result{Root: x, Iterations: it}, nil
		}
		if math.Abs(x-prev) < opts.StagnationTol {
			return fail(it, ErrStagnated)
		}
		prev = x
	}

	if fx, err := p.F(x); err == nil && math.Abs(fx) < opts.Tolerance {
		return Result{Root: x, Iterations: opts.MaxIterations}, nil
	}
	return fail(opts.MaxIterations, ErrNotConverged)
}
