package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/roots"
	"github.com/san-kum/rootlab/internal/scan"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Params    equation.Params `json:"params"`
	Equation  string          `json:"equation"`
	Domain    scan.Domain     `json:"domain"`
	Samples   int             `json:"samples"`
	AllRoots  []float64       `json:"all_roots"`
	Warning   string          `json:"warning,omitempty"`
	Result    *roots.Result   `json:"result"`
}

// NewRunID returns roots_<unix>_<first 8 hex digits of a random uuid>.
func NewRunID(now time.Time) string {
	return fmt.Sprintf("roots_%d_%s", now.Unix(), uuid.NewString()[:8])
}

// Save writes res under a fresh run directory and returns its id.
func (s *Store) Save(res *roots.Result) (string, error) {
	if res == nil {
		return "", errors.New("storage: nil result")
	}
	now := time.Now()
	runID := NewRunID(now)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Params:    res.Params,
		Equation:  res.Params.Describe(),
		Domain:    res.Domain,
		Samples:   res.Grid.N,
		AllRoots:  res.AllRoots,
		Warning:   res.Warning,
		Result:    res,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), res.Grid.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, samples []scan.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, sm := range samples {
		if !sm.Valid {
			continue
		}
		row := []string{
			strconv.FormatFloat(sm.X, 'g', -1, 64),
			strconv.FormatFloat(sm.Y, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[len(runs)-1], nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads back the valid coarse samples of a run.
func (s *Store) LoadSamples(runID string) ([]scan.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]scan.Sample, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < 2 {
			continue
		}
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		samples = append(samples, scan.Sample{X: x, Y: y, Valid: true})
	}
	return samples, nil
}

// LoadResult restores the stored result together with its chart samples.
func (s *Store) LoadResult(runID string) (*RunMetadata, *roots.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	if meta.Result == nil {
		return nil, nil, fmt.Errorf("storage: run %s has no result", runID)
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	res := meta.Result
	res.Grid = scan.Grid{Domain: meta.Domain, N: meta.Samples, Samples: samples}
	return meta, res, nil
}
