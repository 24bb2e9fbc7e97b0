// Package optim searches experiment parameters for the best value of a
// run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/experiment"
	"github.com/san-kum/mechlab/internal/metrics"
	"github.com/san-kum/mechlab/internal/sim"
)

var ErrEmptyGrid = errors.New("optim: empty grid")

// GridSearch tries every combination of parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	Maximize   bool
	Workers    int
	Logger     *zap.Logger
}

// Candidate is one grid point and the metric value its run produced.
type Candidate struct {
	Params map[string]float64
	Value  float64
}

func (c Candidate) String() string {
	keys := make([]string, 0, len(c.Params))
	for k := range c.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, c.Params[k])
	}
	return strings.Join(parts, " ")
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("%w: %d params, %d ranges", ErrEmptyGrid, len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("%w: no values for %s", ErrEmptyGrid, params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// Points lists every combination in row-major order: the last parameter
// varies fastest.
func (g *GridSearch) Points() []map[string]float64 {
	points := make([]map[string]float64, 0)
	g.collect(0, map[string]float64{}, &points)
	return points
}

func (g *GridSearch) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val
		g.collect(depth+1, next, out)
	}
}

// Search runs base once per grid point, in parallel, and returns the
// candidate with the best metric plus every candidate in grid order. Runs
// whose metric is NaN never win.
func (g *GridSearch) Search(ctx context.Context, registry *experiment.Registry, base *config.Config, metricName string) (Candidate, []Candidate, error) {
	points := g.Points()
	jobs := make([]sim.Job, len(points))
	for i, p := range points {
		cfg := base.Clone()
		for name, v := range p {
			if err := cfg.SetParam(name, v); err != nil {
				return Candidate{}, nil, err
			}
		}
		exp, err := registry.Build(cfg)
		if err != nil {
			return Candidate{}, nil, fmt.Errorf("%s: %w", Candidate{Params: p}, err)
		}
		m, err := metrics.ByName(metricName)
		if err != nil {
			return Candidate{}, nil, err
		}
		jobs[i] = sim.Job{
			Label:      Candidate{Params: p}.String(),
			Experiment: exp,
			Metrics:    []sim.Metric{m},
		}
	}

	simCfg := sim.Config{Dt: base.Dt, Duration: base.Duration, MaxDt: base.MaxDt}
	results, err := sim.RunAll(ctx, jobs, simCfg, g.Workers, g.Logger)
	if err != nil {
		return Candidate{}, nil, err
	}

	all := make([]Candidate, len(points))
	best := -1
	for i, r := range results {
		all[i] = Candidate{Params: points[i], Value: r.Metrics[metricName]}
		v := all[i].Value
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || g.better(v, all[best].Value) {
			best = i
		}
	}
	if best < 0 {
		return Candidate{}, all, fmt.Errorf("optim: no run produced %s", metricName)
	}
	return all[best], all, nil
}

func (g *GridSearch) better(v, than float64) bool {
	if g.Maximize {
		return v > than
	}
	return v < than
}
