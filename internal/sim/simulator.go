package sim

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/mechlab/internal/experiment"
)

type Simulator struct {
	exp       experiment.Experiment
	metrics   []Metric
	observers []Observer
	logger    *zap.Logger
}

type Option func(*Simulator)

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(exp experiment.Experiment, opts ...Option) *Simulator {
	s := &Simulator{
		exp:       exp,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Experiment() experiment.Experiment { return s.exp }

// Run steps the experiment from its current state for cfg.Duration seconds,
// or until it reports Done. The returned result holds every sample taken,
// including the initial one, even when an error stops the run early.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := stepCount(cfg)
	substeps, h := SplitStep(cfg.Dt, cfg.MaxDt)
	log := s.logger.With(zap.String("experiment", s.exp.Name()))
	if substeps > 1 {
		log.Debug("splitting step",
			zap.Float64("dt", cfg.Dt),
			zap.Float64("max_dt", cfg.MaxDt),
			zap.Int("substeps", substeps))
	}

	result := &Result{
		Experiment: s.exp.Name(),
		Columns:    s.exp.Columns(),
		Samples:    make([]Sample, 0, min(steps, preallocSteps)+1),
		Times:      make([]float64, 0, min(steps, preallocSteps)+1),
		Metrics:    make(map[string]float64),
		Substeps:   substeps,
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	x := Sample(s.exp.Sample())
	if !x.IsValid() {
		return result, SimError{Time: t, Step: 0, Message: "invalid initial sample (NaN/Inf)"}
	}
	s.record(result, x, t)

	for i := 0; i < steps && !s.exp.Done(); i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		for k := 0; k < substeps; k++ {
			s.exp.Step(h)
		}
		t += cfg.Dt
		result.StepsTaken++

		x = Sample(s.exp.Sample())
		if !x.IsValid() {
			s.finish(result)
			err := SimError{Time: t, Step: i + 1, Message: "invalid sample (NaN/Inf)"}
			log.Warn("run stopped", zap.Error(err))
			return result, err
		}
		s.record(result, x, t)
	}

	result.Finished = s.exp.Done()
	s.finish(result)
	log.Info("run complete",
		zap.Int("steps", result.StepsTaken),
		zap.Float64("t", t),
		zap.Bool("finished", result.Finished))
	return result, nil
}

func (s *Simulator) record(r *Result, x Sample, t float64) {
	for _, m := range s.metrics {
		m.Observe(s.exp, x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
	r.Samples = append(r.Samples, x.Clone())
	r.Times = append(r.Times, t)
}

func (s *Simulator) finish(r *Result) {
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

// MaxSteps bounds the number of outer steps of one run.
const MaxSteps = 10_000_000

const preallocSteps = 1 << 16

func stepCount(cfg Config) int {
	return int(math.Round(cfg.Duration / cfg.Dt))
}

func validateConfig(cfg Config) error {
	if !finite(cfg.Dt) || cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive and finite, got %f", cfg.Dt)
	}
	if !finite(cfg.Duration) || cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive and finite, got %f", cfg.Duration)
	}
	if !finite(cfg.MaxDt) || cfg.MaxDt < 0 {
		return fmt.Errorf("max dt must be finite and not negative, got %f", cfg.MaxDt)
	}
	if cfg.Duration/cfg.Dt > MaxSteps {
		return fmt.Errorf("duration %g at dt %g exceeds %d steps", cfg.Duration, cfg.Dt, MaxSteps)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// SplitStep returns how many equal substeps of size h make up dt so that
// h never exceeds maxDt.
func SplitStep(dt, maxDt float64) (int, float64) {
	if maxDt <= 0 || dt <= maxDt {
		return 1, dt
	}
	n := int(math.Ceil(dt / maxDt))
	return n, dt / float64(n)
}
