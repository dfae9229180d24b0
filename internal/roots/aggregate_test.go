package roots

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/scan"
	"github.com/san-kum/rootlab/internal/solver"
)

func TestCluster(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{"empty", nil, []float64{}},
		{"single", []float64{1.5}, []float64{1.5}},
		{"merges within tolerance", []float64{1.0004, 1.0}, []float64{1.0002}},
		{"separates beyond tolerance", []float64{2.0, 1.0}, []float64{1.0, 2.0}},
		{"three way merge", []float64{1.0005, 1.0, 1.0009}, []float64{1.00046666666666667}},
		// Every member is compared with the run's first element, not its neighbour.
		{"first member anchors", []float64{0, 0.0008, 0.0016}, []float64{0.0004, 0.0016}},
	}

	for _, tt := range tests {
		got := Cluster(tt.values, 0.001)
		if diff := cmp.Diff(tt.want, got, cmp.Comparer(approx)); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestCluster_DoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Cluster(in, 0.001)
	if diff := cmp.Diff([]float64{3, 1, 2}, in); diff != "" {
		t.Errorf("input was reordered (-want +got):\n%s", diff)
	}
}

func TestGroups_Partition(t *testing.T) {
	const tol = 0.001
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		pool := make([]float64, 40)
		for i := range pool {
			pool[i] = rng.Float64() * 0.05
		}
		groups := Groups(pool, tol)

		var flat []float64
		for gi, g := range groups {
			if len(g) == 0 {
				t.Fatalf("trial %d: empty group %d", trial, gi)
			}
			for _, v := range g {
				if v-g[0] > tol {
					t.Errorf("trial %d: %f is beyond tolerance of group head %f", trial, v, g[0])
				}
			}
			if gi > 0 && g[0]-groups[gi-1][0] <= tol {
				t.Errorf("trial %d: group %d head %f should have joined group head %f", trial, gi, g[0], groups[gi-1][0])
			}
			flat = append(flat, g...)
		}

		sorted := append([]float64(nil), pool...)
		sort.Float64s(sorted)
		if diff := cmp.Diff(sorted, flat); diff != "" {
			t.Errorf("trial %d: groups do not partition the pool (-want +got):\n%s", trial, diff)
		}
		if n := len(Cluster(pool, tol)); n != len(groups) {
			t.Errorf("trial %d: expected %d cluster means, got %d", trial, len(groups), n)
		}
	}
}

// Estimates of well-separated roots that agree within tolerance must end up
// in one cluster per root.
func TestCluster_JoinsAgreeingEstimates(t *testing.T) {
	const tol = 0.001
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 50; trial++ {
		var pool []float64
		var truth []float64
		for k := 0; k < 8; k++ {
			r := float64(k)*0.01 + rng.Float64()*0.001
			truth = append(truth, r)
			for j := 0; j < 2+rng.Intn(3); j++ {
				pool = append(pool, r+(rng.Float64()-0.5)*tol/2)
			}
		}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		got := Cluster(pool, tol)
		if len(got) != len(truth) {
			t.Fatalf("trial %d: expected %d clusters, got %d", trial, len(truth), len(got))
		}
		for i := range truth {
			if math.Abs(got[i]-truth[i]) > tol/4 {
				t.Errorf("trial %d: cluster %d at %f, expected near %f", trial, i, got[i], truth[i])
			}
		}
	}
}

func TestAggregate_PairsByBracket(t *testing.T) {
	p := equation.Params{A: 1, B: 1}
	brs := []scan.Bracket{{Lo: 0, Hi: 1}, {Lo: 1, Hi: 2}, {Lo: 2, Hi: 3}}
	fail := errors.New("boom")

	chord := []Outcome{
		{Result: solver.Result{Root: 0.6417, Iterations: 5}},
		{Err: fail},
		{Result: solver.Result{Root: 2.5, Iterations: 7}},
	}
	newton := []Outcome{
		{Result: solver.Result{Root: 0.6418, Iterations: 3}},
		{Result: solver.Result{Root: 1.5, Iterations: 2}},
		{Err: fail},
	}

	res := Aggregate(p, brs, chord, newton, 0.001)

	if diff := cmp.Diff([]float64{0.6417, 2.5}, res.ChordRoots); diff != "" {
		t.Errorf("chord roots (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5, 7}, res.ChordIterations); diff != "" {
		t.Errorf("chord iterations (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]scan.Bracket{{Lo: 0, Hi: 1}, {Lo: 2, Hi: 3}}, res.ChordIntervals); diff != "" {
		t.Errorf("chord intervals (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.6418, 1.5}, res.NewtonRoots); diff != "" {
		t.Errorf("newton roots (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.5, 1.5}, res.NewtonInitials); diff != "" {
		t.Errorf("newton initials (-want +got):\n%s", diff)
	}

	// Only bracket 0 succeeded for both methods.
	if len(res.Pairs) != 1 || res.Pairs[0].Index != 0 {
		t.Fatalf("expected one pair for bracket 0, got %+v", res.Pairs)
	}
	if !approx(res.RootDifferences[0], 0.0001) || !res.RootsTooClose[0] {
		t.Errorf("unexpected pair diagnostics %+v", res.Pairs[0])
	}

	if diff := cmp.Diff([]float64{0.64175, 1.5, 2.5}, res.AllRoots, cmp.Comparer(approx)); diff != "" {
		t.Errorf("all roots (-want +got):\n%s", diff)
	}
	if len(res.ChordResiduals) != 2 || len(res.NewtonResiduals) != 2 {
		t.Errorf("expected residuals per success, got %d and %d", len(res.ChordResiduals), len(res.NewtonResiduals))
	}
}

func TestAggregate_NoSuccess(t *testing.T) {
	fail := Outcome{Err: solver.ErrNotConverged}
	res := Aggregate(equation.Params{A: 1, B: 1}, []scan.Bracket{{Lo: 0, Hi: 1}}, []Outcome{fail}, []Outcome{fail}, 0.001)
	if len(res.AllRoots) != 0 || len(res.Pairs) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
