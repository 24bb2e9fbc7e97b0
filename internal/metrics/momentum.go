package metrics

import (
	"math"

	"github.com/san-kum/mechlab/internal/experiment"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/sim"
)

// MomentumDrift is the largest distance of total momentum from its first
// observed value, in kg·m/s.
type MomentumDrift struct {
	name     string
	initial  mechanics.Vec2
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(exp experiment.Experiment, _ sim.Sample, _ float64) {
	mc, ok := exp.(experiment.Momentous)
	if !ok {
		return
	}
	p := mc.Momentum()
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Len())
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = mechanics.Vec2{}
	m.maxDrift = 0
	m.samples = 0
}
