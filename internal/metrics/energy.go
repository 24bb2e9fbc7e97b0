package metrics

import (
	"math"

	"github.com/san-kum/mechlab/internal/experiment"
	"github.com/san-kum/mechlab/internal/sim"
)

// Energy averages the total energy over a run.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "mean_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(exp experiment.Experiment, _ sim.Sample, _ float64) {
	ec, ok := exp.(experiment.Energetic)
	if !ok {
		return
	}
	e.totalEnergy += ec.Energy()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative departure from the first observed
// energy. Experiments that do not report energy yield 0.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(exp experiment.Experiment, _ sim.Sample, _ float64) {
	ec, ok := exp.(experiment.Energetic)
	if !ok {
		return
	}

	energy := ec.Energy()

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
