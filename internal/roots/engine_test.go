package roots

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/equation"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		a, b    string
		want    equation.Params
		wantErr bool
	}{
		{"1.0", "1.0", equation.Params{A: 1, B: 1}, false},
		{"0,5", " 2,5 ", equation.Params{A: 0.5, B: 2.5}, false},
		{"-3", "1e2", equation.Params{A: -3, B: 100}, false},
		{"abc", "1.0", equation.Params{}, true},
		{"1.0", "", equation.Params{}, true},
		{"NaN", "1", equation.Params{}, true},
		{"1", "Inf", equation.Params{}, true},
		{"1,2,3", "1", equation.Params{}, true},
	}

	for _, tt := range tests {
		got, err := ParseParams(tt.a, tt.b)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidNumber) {
				t.Errorf("(%q, %q): expected ErrInvalidNumber, got %v", tt.a, tt.b, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("(%q, %q): unexpected error %v", tt.a, tt.b, err)
			continue
		}
		if got != tt.want {
			t.Errorf("(%q, %q): expected %+v, got %+v", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestCompute_InvalidNumberMessage(t *testing.T) {
	res, err := NewEngine(config.DefaultSolver()).Compute("abc", "1.0")
	if res != nil {
		t.Errorf("expected no result, got %+v", res)
	}
	if err == nil || err.Error() != "parameters must be numbers" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestSolve_RequirePositiveA(t *testing.T) {
	cfg := config.DefaultSolver()
	cfg.RequirePositiveA = true
	e := NewEngine(cfg)

	for _, a := range []float64{0, -1} {
		if _, err := e.Solve(equation.Params{A: a, B: 1}); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("a=%v: expected ErrInvalidParameter, got %v", a, err)
		}
	}
	if _, err := e.Solve(equation.Params{A: 1, B: 1}); err != nil {
		t.Errorf("a=1: unexpected error %v", err)
	}
}

func TestSolve_NoRoot(t *testing.T) {
	_, err := NewEngine(config.DefaultSolver()).Solve(equation.Params{A: 0, B: 0})
	var nr *NoRootError
	if !errors.As(err, &nr) {
		t.Fatalf("expected NoRootError, got %v", err)
	}
	if nr.Domain.Min != 0 || nr.Domain.Max != 100 {
		t.Errorf("unexpected domain %+v", nr.Domain)
	}
	if err.Error() != "no roots found on interval [0.00, 100.00]" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestSolve_ParallelMatchesSerial(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	p := equation.Params{A: 0, B: 3}
	serial, err := NewEngine(config.DefaultSolver()).Solve(p)
	if err != nil {
		t.Fatalf("serial solve failed: %v", err)
	}
	parallel, err := NewEngine(config.DefaultSolver(), WithWorkers(4)).Solve(p)
	if err != nil {
		t.Fatalf("parallel solve failed: %v", err)
	}

	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("parallel result differs (-serial +parallel):\n%s", diff)
	}
}

func TestSolve_ConcurrentCalls(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	e := NewEngine(config.DefaultSolver(), WithWorkers(2))
	params := []equation.Params{{A: 1, B: 1}, {A: -1, B: 1}, {A: 0, B: 1}, {A: 0.05, B: 0.5}}
	want := make([]*Result, len(params))
	for i, p := range params {
		r, err := e.Solve(p)
		if err != nil {
			t.Fatalf("%v: %v", p, err)
		}
		want[i] = r
	}

	got := make([]*Result, len(params))
	done := make(chan struct{})
	for i, p := range params {
		go func() {
			defer func() { done <- struct{}{} }()
			got[i], _ = e.Solve(p)
		}()
	}
	for range params {
		<-done
	}

	for i := range params {
		if diff := cmp.Diff(want[i], got[i]); diff != "" {
			t.Errorf("%v: concurrent result differs:\n%s", params[i], diff)
		}
	}
}

func TestSolve_LogsDroppedBrackets(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cfg := config.DefaultSolver()
	cfg.MaxIterations = 1
	cfg.Tolerance = 1e-12
	e := NewEngine(cfg, WithLogger(zap.New(core)))

	_, err := e.Solve(equation.Params{A: 1, B: 1})
	var nr *NoRootError
	if !errors.As(err, &nr) {
		t.Fatalf("expected NoRootError when every run fails, got %v", err)
	}
	if nr.Brackets != 1 {
		t.Errorf("expected 1 bracket on the error, got %d", nr.Brackets)
	}
	if n := logs.FilterMessage("bracket dropped").Len(); n != 2 {
		t.Errorf("expected 2 dropped-bracket logs, got %d", n)
	}
}

func TestZoom(t *testing.T) {
	e := NewEngine(config.DefaultSolver())
	res, err := e.Solve(equation.Params{A: 1, B: 1})
	if err != nil {
		t.Fatal(err)
	}
	g, ok := e.Zoom(res)
	if !ok {
		t.Fatal("expected zoom grid")
	}
	if len(g.Samples) != config.DefaultZoomSamples+1 {
		t.Errorf("expected %d samples, got %d", config.DefaultZoomSamples+1, len(g.Samples))
	}
	root := res.AllRoots[0]
	if math.Abs(g.Domain.Min-(root-0.1)) > 1e-9 || math.Abs(g.Domain.Max-(root+0.1)) > 1e-9 {
		t.Errorf("unexpected zoom domain %+v around %f", g.Domain, root)
	}
}
