package mechanics

import (
	"fmt"
	"math"
)

// DefaultPendulumDamping is the per-step multiplier applied to angular velocity.
const DefaultPendulumDamping = 0.995

// Pendulum integrates a simple pendulum's angle, measured from the downward
// vertical. The angle is not wrapped.
//
// Damping multiplies the angular velocity once per Update regardless of dt,
// so the decay per simulated second depends on how often Update is called.
type Pendulum struct {
	gravity             float64
	length              float64
	angle               float64
	angularVelocity     float64
	angularAcceleration float64
	damping             float64
}

// NewPendulum creates a pendulum at rest at angleDeg degrees.
func NewPendulum(length, angleDeg float64) (*Pendulum, error) {
	return DefaultEnv().NewPendulum(length, angleDeg)
}

func (e Env) NewPendulum(length, angleDeg float64) (*Pendulum, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if !isFinite(length) || length <= 0 {
		return nil, fmt.Errorf("pendulum length %v: %w", length, ErrInvalidLength)
	}
	if !isFinite(angleDeg) {
		return nil, fmt.Errorf("pendulum angle %v: %w", angleDeg, ErrParameterBounds)
	}
	return &Pendulum{
		gravity: e.Gravity,
		length:  length,
		angle:   radians(angleDeg),
		damping: DefaultPendulumDamping,
	}, nil
}

// SetDamping sets the per-step factor; 1 disables damping.
func (p *Pendulum) SetDamping(factor float64) error {
	if !isFinite(factor) || factor <= 0 || factor > 1 {
		return fmt.Errorf("pendulum damping %v: %w", factor, ErrParameterBounds)
	}
	p.damping = factor
	return nil
}

func (p *Pendulum) SetAngularVelocity(w float64) { p.angularVelocity = w }

func (p *Pendulum) Update(dt float64) {
	p.angularAcceleration = -(p.gravity / p.length) * math.Sin(p.angle)
	p.angularVelocity += p.angularAcceleration * dt
	p.angularVelocity *= p.damping
	p.angle += p.angularVelocity * dt
}

// BobPosition returns the bob location for a pivot in screen-style
// coordinates, where +Y points down.
func (p *Pendulum) BobPosition(pivot Vec2) Vec2 {
	return Vec2{
		X: pivot.X + p.length*math.Sin(p.angle),
		Y: pivot.Y + p.length*math.Cos(p.angle),
	}
}

// Period returns the small-angle period 2π√(L/g). It ignores amplitude.
func (p *Pendulum) Period() float64 {
	return 2 * math.Pi * math.Sqrt(p.length/p.gravity)
}

// Energy returns kinetic plus potential energy of a bob of the given mass,
// with zero potential at the bottom of the swing.
func (p *Pendulum) Energy(mass float64) float64 {
	v := p.length * p.angularVelocity
	return 0.5*mass*v*v + mass*p.gravity*p.length*(1-math.Cos(p.angle))
}

func (p *Pendulum) Length() float64              { return p.length }
func (p *Pendulum) Angle() float64               { return p.angle }
func (p *Pendulum) AngleDegrees() float64        { return degrees(p.angle) }
func (p *Pendulum) AngularVelocity() float64     { return p.angularVelocity }
func (p *Pendulum) AngularAcceleration() float64 { return p.angularAcceleration }
func (p *Pendulum) Damping() float64             { return p.damping }
