// Package storage keeps finished runs on disk, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
	configFile   = "config.yaml"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID            string             `json:"id"`
	Experiment    string             `json:"experiment"`
	Timestamp     time.Time          `json:"timestamp"`
	Dt            float64            `json:"dt"`
	Duration      float64            `json:"duration"`
	MaxDt         float64            `json:"max_dt"`
	Gravity       float64            `json:"gravity"`
	AirResistance float64            `json:"air_resistance"`
	Fingerprint   string             `json:"fingerprint"`
	Params        map[string]float64 `json:"params"`
	Columns       []string           `json:"columns"`
	Steps         int                `json:"steps"`
	Finished      bool               `json:"finished"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Fingerprint hashes the physical setup of cfg. Two configs that only
// differ in logging share a fingerprint.
func Fingerprint(cfg *config.Config) (string, error) {
	cp := cfg.Clone()
	cp.Log = config.LogConfig{}
	data, err := yaml.Marshal(cp)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}

func newRunID(experiment string) string {
	return fmt.Sprintf("%s_%s", experiment, uuid.NewString()[:8])
}

// Save writes metadata, samples and the config that produced them. A run
// that fails to write is removed rather than left half written.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (id string, err error) {
	fp, err := Fingerprint(cfg)
	if err != nil {
		return "", err
	}

	runID := newRunID(result.Experiment)
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta := RunMetadata{
		ID:            runID,
		Experiment:    result.Experiment,
		Timestamp:     s.now(),
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		MaxDt:         cfg.MaxDt,
		Gravity:       cfg.Env.Gravity,
		AirResistance: cfg.Env.AirResistance,
		Fingerprint:   fp,
		Params:        cfg.Params(),
		Columns:       result.Columns,
		Steps:         result.StepsTaken,
		Finished:      result.Finished,
		Metrics:       result.Metrics,
	}

	err = writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", fmt.Errorf("save %s metadata: %w", runID, err)
	}

	if err = config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", fmt.Errorf("save %s config: %w", runID, err)
	}

	err = writeFile(filepath.Join(runDir, samplesFile), func(w io.Writer) error {
		return WriteCSV(w, result)
	})
	if err != nil {
		return "", fmt.Errorf("save %s samples: %w", runID, err)
	}
	return runID, nil
}

// writeFile creates path, fills it with write and reports the close error.
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

// List returns every readable run, newest first.
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
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// FindByFingerprint lists the runs made from an identical setup.
func (s *Store) FindByFingerprint(fp string) ([]RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	out := make([]RunMetadata, 0)
	for _, r := range runs {
		if r.Fingerprint == fp {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadConfig returns the config a run was made with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

// LoadSamples rebuilds the result of a run from its CSV and metadata.
func (s *Store) LoadSamples(runID string) (*sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	result, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	result.Experiment = meta.Experiment
	result.Metrics = meta.Metrics
	result.StepsTaken = meta.Steps
	result.Finished = meta.Finished
	return result, nil
}

// WriteCSV writes a time column followed by the result's columns.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time"}, result.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range result.Samples {
		row := make([]string, 0, len(result.Samples[i])+1)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, val := range result.Samples[i] {
			row = append(row, strconv.FormatFloat(val, 'g', 10, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) (*sim.Result, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header")
	}

	result := &sim.Result{
		Columns: append([]string(nil), records[0][1:]...),
		Samples: make([]sim.Sample, 0, len(records)-1),
		Times:   make([]float64, 0, len(records)-1),
		Metrics: make(map[string]float64),
	}

	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		sample := make(sim.Sample, len(record)-1)
		for j := 1; j < len(record); j++ {
			sample[j-1], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %s: %w", i+1, result.Columns[j-1], err)
			}
		}
		result.Times = append(result.Times, t)
		result.Samples = append(result.Samples, sample)
	}
	return result, nil
}
