package metrics

import (
	"fmt"
	"strings"

	"github.com/san-kum/mechlab/internal/sim"
)

// Defaults returns fresh metrics suited to the named experiment.
func Defaults(name string) []sim.Metric {
	switch name {
	case "projectile":
		return []sim.Metric{NewEnergyDrift(), NewPeak("y")}
	case "pendulum":
		return []sim.Metric{NewEnergyDrift(), NewEnergy(), NewPeak("theta")}
	case "collision":
		return []sim.Metric{NewEnergyDrift(), NewMomentumDrift()}
	case "spring":
		return []sim.Metric{NewEnergyDrift(), NewPeak("extension")}
	case "incline":
		return []sim.Metric{NewPeak("acceleration")}
	default:
		return []sim.Metric{NewEnergyDrift()}
	}
}

// ByName builds a fresh metric from the name it reports under. Any
// "peak_<column>" is accepted.
func ByName(name string) (sim.Metric, error) {
	switch name {
	case "energy_drift":
		return NewEnergyDrift(), nil
	case "mean_energy":
		return NewEnergy(), nil
	case "momentum_drift":
		return NewMomentumDrift(), nil
	}
	if column, ok := strings.CutPrefix(name, "peak_"); ok && column != "" {
		return NewPeak(column), nil
	}
	return nil, fmt.Errorf("unknown metric: %s", name)
}
