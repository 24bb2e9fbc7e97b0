package mechanics

import (
	"fmt"
	"math"
)

// Body is a point mass. Forces accumulate between steps and are consumed
// by Update, which clears the accumulator.
type Body struct {
	env             Env
	mass            float64
	position        Vec2
	velocity        Vec2
	acceleration    Vec2
	force           Vec2
	angle           float64
	angularVelocity float64
	fixed           bool
}

// NewBody creates a body at rest under the default environment.
func NewBody(mass float64, position Vec2) (*Body, error) {
	return DefaultEnv().NewBody(mass, position)
}

// NewBody creates a body at rest that integrates with e's gravity and drag.
func (e Env) NewBody(mass float64, position Vec2) (*Body, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if !isFinite(mass) || mass <= 0 {
		return nil, fmt.Errorf("body mass %v: %w", mass, ErrInvalidMass)
	}
	if !position.IsValid() {
		return nil, fmt.Errorf("body position %v: %w", position, ErrInvalidState)
	}
	return &Body{
		env:      e,
		mass:     mass,
		position: position,
	}, nil
}

// ApplyForce adds f (N) to the accumulator. Fixed bodies ignore forces.
func (b *Body) ApplyForce(f Vec2) {
	if b.fixed {
		return
	}
	b.force = b.force.Add(f)
}

// Update advances the body by dt seconds with semi-implicit Euler.
// Drag is a per-step velocity scale of (1 - AirResistance*dt), not a force.
func (b *Body) Update(dt float64) {
	if b.fixed {
		return
	}

	b.acceleration = b.force.Scale(1 / b.mass)
	b.velocity = b.velocity.Add(b.acceleration.Scale(dt))
	// Drag can stop a body within one step but never reverse it.
	b.velocity = b.velocity.Scale(math.Max(0, 1-b.env.AirResistance*dt))
	b.position = b.position.Add(b.velocity.Scale(dt))
	b.angle += b.angularVelocity * dt

	b.force = Vec2{}
}

func (b *Body) Mass() float64            { return b.mass }
func (b *Body) Position() Vec2           { return b.position }
func (b *Body) Velocity() Vec2           { return b.velocity }
func (b *Body) Acceleration() Vec2       { return b.acceleration }
func (b *Body) Force() Vec2              { return b.force }
func (b *Body) Angle() float64           { return b.angle }
func (b *Body) AngularVelocity() float64 { return b.angularVelocity }
func (b *Body) Fixed() bool              { return b.fixed }
func (b *Body) Env() Env                 { return b.env }

func (b *Body) SetPosition(p Vec2)           { b.position = p }
func (b *Body) SetVelocity(v Vec2)           { b.velocity = v }
func (b *Body) SetAngularVelocity(w float64) { b.angularVelocity = w }

// SetFixed pins or releases the body. Pinning drops any pending force.
func (b *Body) SetFixed(fixed bool) {
	b.fixed = fixed
	if fixed {
		b.force = Vec2{}
	}
}

// KineticEnergy returns ½mv² in joules.
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.mass * b.velocity.Dot(b.velocity)
}

// PotentialEnergy returns m·g·h with h measured from groundLevel.
func (b *Body) PotentialEnergy(groundLevel float64) float64 {
	return b.mass * b.env.Gravity * (b.position.Y - groundLevel)
}

func (b *Body) Momentum() Vec2 {
	return b.velocity.Scale(b.mass)
}
