package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSamples          = 1000
	DefaultZoomSamples      = 500
	DefaultTolerance        = 0.001
	DefaultMaxIterations    = 1000
	DefaultMaxX             = 100.0
	DefaultSpan             = 10.0
	DefaultNewtonFloor      = 1e-10
	DefaultDerivativeFloor  = 1e-15
	DefaultStagnationTol    = 1e-15
	DefaultClusterTolerance = 0.001
	DefaultZoomPadding      = 0.1
	DefaultWorkers          = 1
	DefaultPlotWidth        = 80
	DefaultPlotHeight       = 12
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	A      float64      `yaml:"a"`
	B      float64      `yaml:"b"`
	Solver SolverConfig `yaml:"solver"`
	Output OutputConfig `yaml:"output"`
}

// SolverConfig is the search-domain and convergence policy handed to the engine.
type SolverConfig struct {
	Samples          int     `yaml:"samples"`
	ZoomSamples      int     `yaml:"zoom_samples"`
	Tolerance        float64 `yaml:"tolerance"`
	MaxIterations    int     `yaml:"max_iterations"`
	MaxX             float64 `yaml:"max_x"`
	Span             float64 `yaml:"span"`
	NewtonFloor      float64 `yaml:"newton_floor"`
	DerivativeFloor  float64 `yaml:"derivative_floor"`
	StagnationTol    float64 `yaml:"stagnation_tol"`
	ClusterTolerance float64 `yaml:"cluster_tolerance"`
	ZoomPadding      float64 `yaml:"zoom_padding"`
	Workers          int     `yaml:"workers"`
	RequirePositiveA bool    `yaml:"require_positive_a"`
}

type OutputConfig struct {
	Plot       bool `yaml:"plot"`
	PlotWidth  int  `yaml:"plot_width"`
	PlotHeight int  `yaml:"plot_height"`
}

func DefaultSolver() SolverConfig {
	return SolverConfig{
		Samples:          DefaultSamples,
		ZoomSamples:      DefaultZoomSamples,
		Tolerance:        DefaultTolerance,
		MaxIterations:    DefaultMaxIterations,
		MaxX:             DefaultMaxX,
		Span:             DefaultSpan,
		NewtonFloor:      DefaultNewtonFloor,
		DerivativeFloor:  DefaultDerivativeFloor,
		StagnationTol:    DefaultStagnationTol,
		ClusterTolerance: DefaultClusterTolerance,
		ZoomPadding:      DefaultZoomPadding,
		Workers:          DefaultWorkers,
	}
}

func DefaultConfig() *Config {
	return &Config{
		A:      1.0,
		B:      1.0,
		Solver: DefaultSolver(),
		Output: OutputConfig{
			Plot:       true,
			PlotWidth:  DefaultPlotWidth,
			PlotHeight: DefaultPlotHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s SolverConfig) Validate() error {
	switch {
	case s.Samples < 1:
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidConfig, s.Samples)
	case s.ZoomSamples < 1:
		return fmt.Errorf("%w: zoom_samples must be positive, got %d", ErrInvalidConfig, s.ZoomSamples)
	case s.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidConfig, s.Tolerance)
	case s.MaxIterations < 1:
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalidConfig, s.MaxIterations)
	case s.MaxX <= 0:
		return fmt.Errorf("%w: max_x must be positive, got %g", ErrInvalidConfig, s.MaxX)
	case s.Span <= 0:
		return fmt.Errorf("%w: span must be positive, got %g", ErrInvalidConfig, s.Span)
	case s.ClusterTolerance < 0:
		return fmt.Errorf("%w: cluster_tolerance must not be negative, got %g", ErrInvalidConfig, s.ClusterTolerance)
	case s.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, s.Workers)
	}
	return nil
}

// WithDefaults fills zero-valued fields from DefaultSolver.
func (s SolverConfig) WithDefaults() SolverConfig {
	d := DefaultSolver()
	if s.Samples == 0 {
		s.Samples = d.Samples
	}
	if s.ZoomSamples == 0 {
		s.ZoomSamples = d.ZoomSamples
	}
	if s.Tolerance == 0 {
		s.Tolerance = d.Tolerance
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = d.MaxIterations
	}
	if s.MaxX == 0 {
		s.MaxX = d.MaxX
	}
	if s.Span == 0 {
		s.Span = d.Span
	}
	if s.NewtonFloor == 0 {
		s.NewtonFloor = d.NewtonFloor
	}
	if s.DerivativeFloor == 0 {
		s.DerivativeFloor = d.DerivativeFloor
	}
	if s.StagnationTol == 0 {
		s.StagnationTol = d.StagnationTol
	}
	if s.ClusterTolerance == 0 {
		s.ClusterTolerance = d.ClusterTolerance
	}
	if s.ZoomPadding == 0 {
		s.ZoomPadding = d.ZoomPadding
	}
	return s
}
