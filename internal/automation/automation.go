package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/experiment"
	"github.com/san-kum/mechlab/internal/metrics"
	"github.com/san-kum/mechlab/internal/sim"
	"github.com/san-kum/mechlab/internal/storage"
)

// Scenario is a scripted sequence of runs, e.g. one lesson's experiments.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from the defaults of Experiment, applies Preset, then
// overrides. Zero Dt or Duration keep the preset's value.
type ScenarioStep struct {
	Experiment string             `yaml:"experiment"`
	Preset     string             `yaml:"preset"`
	Duration   float64            `yaml:"duration"`
	Dt         float64            `yaml:"dt"`
	Params     map[string]float64 `yaml:"params"`
	Save       bool               `yaml:"save"`
}

// StepResult is the outcome of one scenario step. RunID is empty unless the
// step was saved.
type StepResult struct {
	Step   int
	Config *config.Config
	Result *sim.Result
	RunID  string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, errors.New("scenario has no steps")
	}
	return &scenario, nil
}

// Config builds the run config of a step.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Experiment, s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s for %s", s.Preset, s.Experiment)
		}
	}
	cfg.Experiment = s.Experiment
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// RunScenario executes the steps in order. Steps marked save go to st when
// it is non-nil. On failure the results of the earlier steps are returned
// with the error.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store, logger *zap.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("experiment", step.Experiment),
		)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp, err := registry.Build(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		s := sim.New(exp, sim.WithLogger(logger))
		for _, m := range metrics.Defaults(cfg.Experiment) {
			s.AddMetric(m)
		}
		result, err := s.Run(ctx, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, MaxDt: cfg.MaxDt})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Config: cfg, Result: result}
		if step.Save && st != nil {
			if sr.RunID, err = st.Save(cfg, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep varies one parameter of a base config over NumSteps evenly
// spaced values.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult pairs a parameter value with its run.
type SweepResult struct {
	ParamValue float64
	Result     *sim.Result
}

func (p ParameterSweep) Values() []float64 {
	if p.NumSteps <= 0 {
		return nil
	}
	values := make([]float64, p.NumSteps)
	for i := range values {
		values[i] = p.ParamMin
		if p.NumSteps > 1 {
			values[i] += (p.ParamMax - p.ParamMin) * float64(i) / float64(p.NumSteps-1)
		}
	}
	return values
}

// RunSweep runs every value of the sweep concurrently, at most workers at a
// time, each with the default metrics of the experiment.
func RunSweep(ctx context.Context, sweep ParameterSweep, base *config.Config, registry *experiment.Registry, workers int, logger *zap.Logger) ([]SweepResult, error) {
	values := sweep.Values()
	if len(values) == 0 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}

	jobs := make([]sim.Job, len(values))
	for i, v := range values {
		cfg := base.Clone()
		if err := cfg.SetParam(sweep.ParamName, v); err != nil {
			return nil, err
		}
		exp, err := registry.Build(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}
		jobs[i] = sim.Job{
			Label:      fmt.Sprintf("%s=%g", sweep.ParamName, v),
			Experiment: exp,
			Metrics:    metrics.Defaults(cfg.Experiment),
		}
	}

	simCfg := sim.Config{Dt: base.Dt, Duration: base.Duration, MaxDt: base.MaxDt}
	results, err := sim.RunAll(ctx, jobs, simCfg, workers, logger)
	if err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(values))
	for i, r := range results {
		out[i] = SweepResult{ParamValue: values[i], Result: r}
	}
	return out, nil
}
