package mechanics

import (
	"fmt"
	"math"
)

// Projectile is a drag-free launch in uniform gravity. It is immutable and
// every query is a closed-form function of time and the launch parameters.
// It deliberately ignores Env.AirResistance.
type Projectile struct {
	gravity float64
	speed   float64
	angle   float64 // radians from horizontal
	height  float64
}

// NewProjectile describes a launch at speed m/s, angleDeg above the
// horizontal, from height meters above the ground.
func NewProjectile(speed, angleDeg, height float64) (*Projectile, error) {
	return DefaultEnv().NewProjectile(speed, angleDeg, height)
}

func (e Env) NewProjectile(speed, angleDeg, height float64) (*Projectile, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if !isFinite(speed) || speed < 0 {
		return nil, fmt.Errorf("launch speed %v: %w", speed, ErrParameterBounds)
	}
	if !isFinite(angleDeg) {
		return nil, fmt.Errorf("launch angle %v: %w", angleDeg, ErrParameterBounds)
	}
	if !isFinite(height) || height < 0 {
		return nil, fmt.Errorf("launch height %v: %w", height, ErrParameterBounds)
	}
	return &Projectile{
		gravity: e.Gravity,
		speed:   speed,
		angle:   radians(angleDeg),
		height:  height,
	}, nil
}

func (p *Projectile) components() (vx, vy float64) {
	return p.speed * math.Cos(p.angle), p.speed * math.Sin(p.angle)
}

func (p *Projectile) MaxHeight() float64 {
	_, vy := p.components()
	return p.height + vy*vy/(2*p.gravity)
}

// TimeOfFlight solves h + vy·t - ½g·t² = 0 for the landing root.
// It returns 0 when the discriminant is negative.
func (p *Projectile) TimeOfFlight() float64 {
	_, vy := p.components()

	a := -0.5 * p.gravity
	b := vy
	c := p.height

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0
	}
	return (-b - math.Sqrt(disc)) / (2 * a)
}

func (p *Projectile) Range() float64 {
	vx, _ := p.components()
	return vx * p.TimeOfFlight()
}

func (p *Projectile) PositionAt(t float64) Vec2 {
	vx, vy := p.components()
	return Vec2{
		X: vx * t,
		Y: p.height + vy*t - 0.5*p.gravity*t*t,
	}
}

func (p *Projectile) VelocityAt(t float64) Vec2 {
	vx, vy := p.components()
	return Vec2{X: vx, Y: vy - p.gravity*t}
}

// Trajectory returns n+1 points evenly spaced in time from launch to
// landing. n < 1 yields only the launch point.
func (p *Projectile) Trajectory(n int) []Vec2 {
	if n < 1 {
		return []Vec2{p.PositionAt(0)}
	}

	tof := p.TimeOfFlight()
	dt := tof / float64(n)

	points := make([]Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		points = append(points, p.PositionAt(float64(i)*dt))
	}
	return points
}

func (p *Projectile) Speed() float64        { return p.speed }
func (p *Projectile) AngleDegrees() float64 { return degrees(p.angle) }
func (p *Projectile) Height() float64       { return p.height }
