package experiment

import (
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
)

// Projectile replays the closed-form launch against a clock.
type Projectile struct {
	env    mechanics.Env
	cfg    config.ProjectileConfig
	motion *mechanics.Projectile
	t      float64
}

func NewProjectile(env mechanics.Env, cfg config.ProjectileConfig) (*Projectile, error) {
	p := &Projectile{env: env, cfg: cfg}
	if err := p.Reset(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Projectile) Reset() error {
	motion, err := p.env.NewProjectile(p.cfg.Speed, p.cfg.Angle, p.cfg.Height)
	if err != nil {
		return err
	}
	p.motion = motion
	p.t = 0
	return nil
}

func (p *Projectile) Name() string { return "projectile" }

func (p *Projectile) Columns() []string {
	return []string{"x", "y", "vx", "vy"}
}

// Step advances the clock, stopping at the landing time.
func (p *Projectile) Step(dt float64) {
	tof := p.motion.TimeOfFlight()
	p.t += dt
	if p.t > tof {
		p.t = tof
	}
}

func (p *Projectile) Sample() []float64 {
	pos := p.motion.PositionAt(p.t)
	vel := p.motion.VelocityAt(p.t)
	return []float64{pos.X, pos.Y, vel.X, vel.Y}
}

func (p *Projectile) Readings() []Reading {
	pos := p.motion.PositionAt(p.t)
	return []Reading{
		{"Initial Velocity", p.motion.Speed(), "m/s"},
		{"Launch Angle", p.motion.AngleDegrees(), "°"},
		{"Launch Height", p.motion.Height(), "m"},
		{"Max Height", p.motion.MaxHeight(), "m"},
		{"Range", p.motion.Range(), "m"},
		{"Time of Flight", p.motion.TimeOfFlight(), "s"},
		{"Time", p.t, "s"},
		{"X", pos.X, "m"},
		{"Y", pos.Y, "m"},
		scoreReading(p.score()),
	}
}

func (p *Projectile) score() int {
	if p.Done() {
		return ScoreLanding
	}
	return 0
}

func (p *Projectile) Done() bool {
	return p.t >= p.motion.TimeOfFlight()
}

// Energy is per kilogram; the launch model has no mass.
func (p *Projectile) Energy() float64 {
	pos := p.motion.PositionAt(p.t)
	vel := p.motion.VelocityAt(p.t)
	return 0.5*vel.Dot(vel) + p.env.Gravity*pos.Y
}

func (p *Projectile) Motion() *mechanics.Projectile { return p.motion }
func (p *Projectile) Time() float64                 { return p.t }
