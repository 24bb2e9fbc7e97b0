package mechanics

import "fmt"

const (
	DefaultGravity       = 9.81 // m/s²
	DefaultAirResistance = 0.1  // 1/s, linear drag on bodies
)

// Env holds the engine-wide constants shared by every component built from it.
type Env struct {
	Gravity       float64
	AirResistance float64
}

func DefaultEnv() Env {
	return Env{
		Gravity:       DefaultGravity,
		AirResistance: DefaultAirResistance,
	}
}

func (e Env) Validate() error {
	if !isFinite(e.Gravity) || e.Gravity <= 0 {
		return fmt.Errorf("gravity %v: %w", e.Gravity, ErrParameterBounds)
	}
	if !isFinite(e.AirResistance) || e.AirResistance < 0 {
		return fmt.Errorf("air resistance %v: %w", e.AirResistance, ErrParameterBounds)
	}
	return nil
}
