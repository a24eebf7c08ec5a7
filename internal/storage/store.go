// Package storage keeps recorded runs on disk, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	traceFile    = "trace.json"
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

type RunMetadata struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Kind      frame.Kind         `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Steps     int                `json:"steps"`
	Input     algo.Input         `json:"input"`
	Metrics   map[string]float64 `json:"metrics"`
	Error     string             `json:"error,omitempty"`
}

// Save writes the metadata, the per-frame CSV and the full JSON trace, and
// returns the new run id.
func (s *Store) Save(t *trace.Trace, seed int64) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", t.Algorithm, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Algorithm: t.Algorithm,
		Kind:      t.Kind,
		Timestamp: now,
		Seed:      seed,
		Steps:     t.Steps,
		Input:     t.Input,
		Metrics:   t.Metrics,
		Error:     t.Error,
	}

	if err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, framesFile), func(w io.Writer) error {
		return trace.WriteCSV(w, t)
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, traceFile), func(w io.Writer) error {
		return trace.WriteJSON(w, t)
	}); err != nil {
		return "", err
	}
	return runID, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
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

	slices.SortFunc(runs, func(a, b RunMetadata) int { return a.Timestamp.Compare(b.Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := s.read(runID, metadataFile)
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*trace.Trace, error) {
	data, err := s.read(runID, traceFile)
	if err != nil {
		return nil, err
	}
	var t trace.Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &t, nil
}

// LoadSeries reads the counter columns back out of frames.csv, keyed by
// counter name.
func (s *Store) LoadSeries(runID string) (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return map[string][]float64{}, nil
	}

	index := make(map[string]int)
	for i, name := range records[0] {
		index[name] = i
	}

	series := make(map[string][]float64, len(metrics.Columns))
	for _, name := range metrics.Columns {
		col, ok := index[name]
		if !ok {
			continue
		}
		values := make([]float64, 0, len(records)-1)
		for _, record := range records[1:] {
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				continue
			}
			values = append(values, v)
		}
		series[name] = values
	}
	return series, nil
}

func (s *Store) read(runID, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	return data, nil
}
