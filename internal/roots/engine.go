package roots

import (
	"fmt"

	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/scan"
	"github.com/san-kum/rootlab/internal/solver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Engine struct {
	cfg     config.SolverConfig
	log     *zap.Logger
	workers int
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithWorkers solves up to n brackets concurrently. n ≤ 1 is serial.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func NewEngine(cfg config.SolverConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg.WithDefaults(),
		log:     zap.NewNop(),
		workers: cfg.Workers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Config() config.SolverConfig { return e.cfg }

// Compute parses raw a and b and runs the pipeline.
func (e *Engine) Compute(a, b string) (*Result, error) {
	p, err := ParseParams(a, b)
	if err != nil {
		e.log.Debug("rejected input", zap.String("a", a), zap.String("b", b))
		return nil, err
	}
	return e.Solve(p)
}

func (e *Engine) Solve(p equation.Params) (*Result, error) {
	if e.cfg.RequirePositiveA && p.A <= 0 {
		return nil, ErrInvalidParameter
	}

	dom, grid, brs := e.Scan(p)

	if len(brs) == 0 {
		return nil, &NoRootError{Domain: dom}
	}

	chord, newton := e.solveAll(p, brs)
	res := Aggregate(p, brs, chord, newton, e.cfg.ClusterTolerance)
	res.Domain = dom
	res.Grid = grid

	if len(res.AllRoots) == 0 {
		return nil, &NoRootError{Domain: dom, Brackets: len(brs)}
	}
	if p.A == 0 {
		res.Warning = fmt.Sprintf("a = 0: f(x) = -cos(bx) has infinitely many roots; only roots in [%.2f, %.2f] are reported", dom.Min, dom.Max)
	}

	e.log.Info("roots computed",
		zap.Stringer("params", p),
		zap.Int("chord", len(res.ChordRoots)),
		zap.Int("newton", len(res.NewtonRoots)),
		zap.Int("distinct", len(res.AllRoots)))
	return res, nil
}

// Domain is the search interval the engine scans for p.
func (e *Engine) Domain(p equation.Params) scan.Domain {
	return scan.SearchDomain(p, scan.Policy{Span: e.cfg.Span, MaxX: e.cfg.MaxX})
}

// Scan samples f over the search domain for p and returns the brackets
// without refining them.
func (e *Engine) Scan(p equation.Params) (scan.Domain, scan.Grid, []scan.Bracket) {
	dom := e.Domain(p)
	grid, brs := scan.Scan(p, dom, e.cfg.Samples)
	e.log.Debug("scanned search domain",
		zap.Stringer("params", p),
		zap.Float64("min", dom.Min),
		zap.Float64("max", dom.Max),
		zap.Int("brackets", len(brs)))
	return dom, grid, brs
}

// Zoom samples f around the found roots for a close-up chart.
func (e *Engine) Zoom(res *Result) (scan.Grid, bool) {
	d, ok := scan.ZoomDomain(res.AllRoots, res.Domain, e.cfg.ZoomPadding)
	if !ok {
		return scan.Grid{}, false
	}
	return scan.Evaluate(res.Params, d, e.cfg.ZoomSamples), true
}

func (e *Engine) options() solver.Options {
	return solver.Options{
		Tolerance:       e.cfg.Tolerance,
		MaxIterations:   e.cfg.MaxIterations,
		StartFloor:      e.cfg.NewtonFloor,
		DerivativeFloor: e.cfg.DerivativeFloor,
		StagnationTol:   e.cfg.StagnationTol,
	}
}

func (e *Engine) solveAll(p equation.Params, brs []scan.Bracket) (chord, newton []Outcome) {
	chord = make([]Outcome, len(brs))
	newton = make([]Outcome, len(brs))
	opts := e.options()

	solve := func(i int) {
		br := brs[i]
		r, err := solver.Chord(p, br.Lo, br.Hi, opts)
		chord[i] = Outcome{Result: r, Err: err}
		r, err = solver.Newton(p, br.Mid(), opts)
		newton[i] = Outcome{Result: r, Err: err}
	}

	if e.workers <= 1 || len(brs) < 2 {
		for i := range brs {
			solve(i)
		}
	} else {
		// Each goroutine writes only its own index.
		var g errgroup.Group
		g.SetLimit(e.workers)
		for i := range brs {
			g.Go(func() error {
				solve(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i := range brs {
		if err := chord[i].Err; err != nil {
			e.log.Debug("bracket dropped", zap.Int("bracket", i), zap.String("method", string(solver.MethodChord)), zap.Error(err))
		}
		if err := newton[i].Err; err != nil {
			e.log.Debug("bracket dropped", zap.Int("bracket", i), zap.String("method", string(solver.MethodNewton)), zap.Error(err))
		}
	}
	return chord, newton
}
