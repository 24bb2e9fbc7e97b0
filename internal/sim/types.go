package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/mechlab/internal/experiment"
)

// Sample is one row of experiment output, ordered like its Columns.
type Sample []float64

func (s Sample) Clone() Sample {
	c := make(Sample, len(s))
	copy(c, s)
	return c
}

func (s Sample) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Metric interface {
	Name() string
	Observe(exp experiment.Experiment, s Sample, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Sample, t float64)

func (f ObserverFunc) OnStep(s Sample, t float64) { f(s, t) }

type Config struct {
	Dt       float64
	Duration float64
	// MaxDt caps a single integration step; larger ticks are split into
	// equal substeps. Zero disables the cap.
	MaxDt float64
}

type Result struct {
	Experiment string
	Columns    []string
	Samples    []Sample
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Substeps   int
	// Finished is set when the experiment reported Done before the
	// configured duration ran out.
	Finished bool
}

// Column returns one column of the samples by name.
func (r *Result) Column(name string) ([]float64, bool) {
	idx := -1
	for i, c := range r.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s[idx]
	}
	return out, true
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
