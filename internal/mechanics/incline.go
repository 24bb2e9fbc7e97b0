package mechanics

import (
	"fmt"
	"math"
)

// Incline analyses a block resting on a ramp. Nothing is integrated.
//
// Static and kinetic friction are not distinguished: a negative
// Acceleration means the block does not slide, not that it decelerates.
type Incline struct {
	gravity  float64
	angle    float64 // radians
	mass     float64
	friction float64
}

func NewIncline(angleDeg, mass, friction float64) (*Incline, error) {
	return DefaultEnv().NewIncline(angleDeg, mass, friction)
}

func (e Env) NewIncline(angleDeg, mass, friction float64) (*Incline, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if !isFinite(angleDeg) || angleDeg < 0 || angleDeg > 90 {
		return nil, fmt.Errorf("incline angle %v: %w", angleDeg, ErrParameterBounds)
	}
	if !isFinite(mass) || mass <= 0 {
		return nil, fmt.Errorf("incline mass %v: %w", mass, ErrInvalidMass)
	}
	if !isFinite(friction) || friction < 0 {
		return nil, fmt.Errorf("friction coefficient %v: %w", friction, ErrParameterBounds)
	}
	return &Incline{
		gravity:  e.Gravity,
		angle:    radians(angleDeg),
		mass:     mass,
		friction: friction,
	}, nil
}

func (i *Incline) NormalForce() float64 {
	return i.mass * i.gravity * math.Cos(i.angle)
}

func (i *Incline) FrictionForce() float64 {
	return i.friction * i.NormalForce()
}

// ParallelForce is the gravity component along the slope.
func (i *Incline) ParallelForce() float64 {
	return i.mass * i.gravity * math.Sin(i.angle)
}

func (i *Incline) Acceleration() float64 {
	return (i.ParallelForce() - i.FrictionForce()) / i.mass
}

func (i *Incline) Slides() bool {
	return i.Acceleration() > 0
}

func (i *Incline) AngleDegrees() float64 { return degrees(i.angle) }
func (i *Incline) Mass() float64         { return i.mass }
func (i *Incline) Friction() float64     { return i.friction }
