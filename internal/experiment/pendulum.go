package experiment

import (
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
)

// bobMass is the nominal bob mass used for energy readings.
const bobMass = 1.0

type Pendulum struct {
	env      mechanics.Env
	cfg      config.PendulumConfig
	pendulum *mechanics.Pendulum
}

func NewPendulum(env mechanics.Env, cfg config.PendulumConfig) (*Pendulum, error) {
	p := &Pendulum{env: env, cfg: cfg}
	if err := p.Reset(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pendulum) Reset() error {
	pendulum, err := p.env.NewPendulum(p.cfg.Length, p.cfg.Angle)
	if err != nil {
		return err
	}
	if err := pendulum.SetDamping(p.cfg.Damping); err != nil {
		return err
	}
	p.pendulum = pendulum
	return nil
}

func (p *Pendulum) Name() string { return "pendulum" }

func (p *Pendulum) Columns() []string {
	return []string{"theta", "omega", "bob_x", "bob_y"}
}

func (p *Pendulum) Step(dt float64) {
	p.pendulum.Update(dt)
}

func (p *Pendulum) Sample() []float64 {
	bob := p.pendulum.BobPosition(p.Pivot())
	return []float64{p.pendulum.Angle(), p.pendulum.AngularVelocity(), bob.X, bob.Y}
}

func (p *Pendulum) Readings() []Reading {
	return []Reading{
		{"Length", p.pendulum.Length(), "m"},
		{"Period", p.pendulum.Period(), "s"},
		{"Angle", p.pendulum.AngleDegrees(), "°"},
		{"Angular Velocity", p.pendulum.AngularVelocity(), "rad/s"},
		{"Energy", p.Energy(), "J"},
	}
}

func (p *Pendulum) Done() bool { return false }

func (p *Pendulum) Energy() float64 {
	return p.pendulum.Energy(bobMass)
}

func (p *Pendulum) Pivot() mechanics.Vec2 {
	return mechanics.Vec2{X: p.cfg.PivotX, Y: p.cfg.PivotY}
}

func (p *Pendulum) Pendulum() *mechanics.Pendulum { return p.pendulum }
