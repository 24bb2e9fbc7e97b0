package metrics

import (
	"math"

	"github.com/san-kum/mechlab/internal/experiment"
	"github.com/san-kum/mechlab/internal/sim"
)

// Peak tracks the largest absolute value of one sample column.
type Peak struct {
	column string
	index  int
	peak   float64
}

func NewPeak(column string) *Peak {
	return &Peak{column: column, index: -1}
}

func (p *Peak) Name() string { return "peak_" + p.column }

func (p *Peak) Observe(exp experiment.Experiment, x sim.Sample, _ float64) {
	if p.index < 0 {
		for i, c := range exp.Columns() {
			if c == p.column {
				p.index = i
				break
			}
		}
	}
	if p.index < 0 || p.index >= len(x) {
		return
	}
	p.peak = math.Max(p.peak, math.Abs(x[p.index]))
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() {
	p.index = -1
	p.peak = 0
}
