package roots

import (
	"math"
	"sort"

	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/scan"
	"github.com/san-kum/rootlab/internal/solver"
)

// Outcome is one solver run for one bracket. Err is nil on success.
type Outcome struct {
	solver.Result
	Err error
}

func (o Outcome) OK() bool { return o.Err == nil }

// Pair compares the chord and Newton roots that came from the same bracket.
type Pair struct {
	Index      int     `json:"index"`
	Chord      float64 `json:"chord"`
	Newton     float64 `json:"newton"`
	Difference float64 `json:"difference"`
	TooClose   bool    `json:"too_close"`
}

// Result is everything one pipeline run produced.
type Result struct {
	Params   equation.Params `json:"params"`
	Domain   scan.Domain     `json:"domain"`
	Brackets []scan.Bracket  `json:"brackets"`

	ChordRoots       []float64      `json:"chord_roots"`
	ChordIterations  []int          `json:"chord_iterations"`
	ChordIntervals   []scan.Bracket `json:"chord_intervals"`
	ChordResiduals   []float64      `json:"chord_residuals"`
	NewtonRoots      []float64      `json:"newton_roots"`
	NewtonIterations []int          `json:"newton_iterations"`
	NewtonInitials   []float64      `json:"newton_initials"`
	NewtonResiduals  []float64      `json:"newton_residuals"`

	AllRoots        []float64 `json:"all_roots"`
	RootsTooClose   []bool    `json:"roots_too_close"`
	RootDifferences []float64 `json:"root_differences"`
	Pairs           []Pair    `json:"pairs"`

	Warning string `json:"warning,omitempty"`

	// Grid is the coarse sampling the brackets came from, kept for charts.
	Grid scan.Grid `json:"-"`
}

// Aggregate merges per-bracket outcomes into a Result. chord[i] and
// newton[i] must come from brs[i]. tol is used for both the too-close flag
// and clustering.
func Aggregate(p equation.Params, brs []scan.Bracket, chord, newton []Outcome, tol float64) *Result {
	res := &Result{
		Params:           p,
		Brackets:         brs,
		ChordRoots:       []float64{},
		ChordIterations:  []int{},
		ChordIntervals:   []scan.Bracket{},
		ChordResiduals:   []float64{},
		NewtonRoots:      []float64{},
		NewtonIterations: []int{},
		NewtonInitials:   []float64{},
		NewtonResiduals:  []float64{},
		RootsTooClose:    []bool{},
		RootDifferences:  []float64{},
		Pairs:            []Pair{},
	}

	for i, br := range brs {
		c, n := chord[i], newton[i]
		if c.OK() {
			res.ChordRoots = append(res.ChordRoots, c.Root)
			res.ChordIterations = append(res.ChordIterations, c.Iterations)
			res.ChordIntervals = append(res.ChordIntervals, br)
			res.ChordResiduals = append(res.ChordResiduals, residual(p, c.Root))

			if n.OK() {
				diff := math.Abs(c.Root - n.Root)
				pair := Pair{Index: i, Chord: c.Root, Newton: n.Root, Difference: diff, TooClose: diff < tol}
				res.Pairs = append(res.Pairs, pair)
				res.RootDifferences = append(res.RootDifferences, diff)
				res.RootsTooClose = append(res.RootsTooClose, pair.TooClose)
			}
		}
		if n.OK() {
			res.NewtonRoots = append(res.NewtonRoots, n.Root)
			res.NewtonIterations = append(res.NewtonIterations, n.Iterations)
			res.NewtonInitials = append(res.NewtonInitials, br.Mid())
			res.NewtonResiduals = append(res.NewtonResiduals, residual(p, n.Root))
		}
	}

	pool := make([]float64, 0, len(res.ChordRoots)+len(res.NewtonRoots))
	pool = append(pool, res.ChordRoots...)
	pool = append(pool, res.NewtonRoots...)
	res.AllRoots = Cluster(pool, tol)
	return res
}

// Groups sorts values and splits them into runs where every member lies
// within tol of the run's first member.
func Groups(values []float64, tol float64) [][]float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var out [][]float64
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i]-sorted[start] <= tol {
			continue
		}
		out = append(out, sorted[start:i:i])
		start = i
	}
	return out
}

// Cluster collapses each of Groups(values, tol) into its mean.
func Cluster(values []float64, tol float64) []float64 {
	out := []float64{}
	for _, g := range Groups(values, tol) {
		out = append(out, mean(g))
	}
	return out
}

func mean(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// residual is f at an accepted root; solvers only accept points inside the
// domain, so the error is always nil here.
func residual(p equation.Params, x float64) float64 {
	fx, _ := p.F(x)
	return fx
}
