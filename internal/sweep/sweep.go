// Package sweep runs the root engine over a grid of (a, b) values.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/roots"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Axis is an inclusive, evenly spaced range of one coefficient.
type Axis struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

// Values lists the axis points. One step yields Min only.
func (ax Axis) Values() []float64 {
	if ax.Steps <= 1 {
		return []float64{ax.Min}
	}
	out := make([]float64, ax.Steps)
	step := (ax.Max - ax.Min) / float64(ax.Steps-1)
	for i := range out {
		out[i] = ax.Min + float64(i)*step
	}
	out[len(out)-1] = ax.Max
	return out
}

// Sweep defines a parameter grid, loadable from YAML.
type Sweep struct {
	Name string `yaml:"name"`
	A    Axis   `yaml:"a"`
	B    Axis   `yaml:"b"`
}

func Load(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sw Sweep
	if err := yaml.Unmarshal(data, &sw); err != nil {
		return nil, err
	}
	if err := sw.Validate(); err != nil {
		return nil, err
	}
	return &sw, nil
}

func (sw Sweep) Validate() error {
	if sw.A.Steps < 1 || sw.B.Steps < 1 {
		return fmt.Errorf("sweep: steps must be at least 1, got a=%d b=%d", sw.A.Steps, sw.B.Steps)
	}
	for _, ax := range []Axis{sw.A, sw.B} {
		// a single step evaluates Min only, so Max is ignored
		if ax.Steps > 1 && ax.Max < ax.Min {
			return errors.New("sweep: axis max below min")
		}
	}
	return nil
}

// Point is the outcome at one grid node. Err is set only for failures other
// than finding no roots.
type Point struct {
	Params   equation.Params `json:"params"`
	Roots    []float64       `json:"roots"`
	Brackets int             `json:"brackets"`
	Warning  string          `json:"warning,omitempty"`
	Err      string          `json:"error,omitempty"`
}

func (p Point) Count() int { return len(p.Roots) }

// Run solves every grid node, up to workers at a time, and returns points in
// row-major order (a outer, b inner).
func Run(ctx context.Context, engine *roots.Engine, sw Sweep, workers int) ([]Point, error) {
	if err := sw.Validate(); err != nil {
		return nil, err
	}
	as, bs := sw.A.Values(), sw.B.Values()
	points := make([]Point, len(as)*len(bs))

	g, ctx := errgroup.WithContext(ctx)
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, a := range as {
		for j, b := range bs {
			idx := i*len(bs) + j
			p := equation.Params{A: a, B: b}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				points[idx] = solvePoint(engine, p)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func solvePoint(engine *roots.Engine, p equation.Params) Point {
	pt := Point{Params: p, Roots: []float64{}}
	res, err := engine.Solve(p)
	if err != nil {
		var noRoot *roots.NoRootError
		if errors.As(err, &noRoot) {
			pt.Brackets = noRoot.Brackets
		} else {
			pt.Err = err.Error()
		}
		return pt
	}
	pt.Roots = res.AllRoots
	pt.Brackets = len(res.Brackets)
	pt.Warning = res.Warning
	return pt
}

// Densest returns the point with the most roots, first in grid order on
// ties. ok is false when points is empty.
func Densest(points []Point) (best Point, ok bool) {
	for i, p := range points {
		if i == 0 || p.Count() > best.Count() {
			best = p
		}
	}
	return best, len(points) > 0
}

// Counts returns the root count of every point in order.
func Counts(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = float64(p.Count())
	}
	return out
}
