package experiment

import (
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
)

// Spring couples an anchor and a bob. Y points up, so gravity pulls -Y.
type Spring struct {
	env    mechanics.Env
	cfg    config.SpringConfig
	anchor *mechanics.Body
	bob    *mechanics.Body
	spring *mechanics.Spring
	t      float64
}

func NewSpring(env mechanics.Env, cfg config.SpringConfig) (*Spring, error) {
	s := &Spring{env: env, cfg: cfg}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Spring) Reset() error {
	anchor, err := newConfiguredBody(s.env, s.cfg.Anchor)
	if err != nil {
		return err
	}
	bob, err := newConfiguredBody(s.env, s.cfg.Bob)
	if err != nil {
		return err
	}
	spring, err := mechanics.NewSpring(anchor, bob, s.cfg.RestLength, s.cfg.Stiffness)
	if err != nil {
		return err
	}
	if err := spring.SetDamping(s.cfg.Damping); err != nil {
		return err
	}
	s.anchor, s.bob, s.spring = anchor, bob, spring
	s.t = 0
	return nil
}

func (s *Spring) Name() string { return "spring" }

func (s *Spring) Columns() []string {
	return []string{"x", "y", "vx", "vy", "extension"}
}

// Step updates the spring force first, then gravity, then integrates.
func (s *Spring) Step(dt float64) {
	s.spring.Update()
	if s.cfg.Gravity {
		s.bob.ApplyForce(mechanics.Vec2{Y: -s.bob.Mass() * s.env.Gravity})
	}
	s.anchor.Update(dt)
	s.bob.Update(dt)
	s.t += dt
}

func (s *Spring) Sample() []float64 {
	p, v := s.bob.Position(), s.bob.Velocity()
	return []float64{p.X, p.Y, v.X, v.Y, s.spring.Extension()}
}

func (s *Spring) Readings() []Reading {
	return []Reading{
		{"Spring Constant", s.spring.Stiffness(), "N/m"},
		{"Rest Length", s.spring.RestLength(), "m"},
		{"Length", s.spring.Length(), "m"},
		{"Extension", s.spring.Extension(), "m"},
		{"Spring Energy", s.spring.PotentialEnergy(), "J"},
		{"Total Energy", s.Energy(), "J"},
	}
}

func (s *Spring) Done() bool { return false }

// Energy sums kinetic, elastic and, with gravity on, gravitational energy
// measured from y=0.
func (s *Spring) Energy() float64 {
	e := s.anchor.KineticEnergy() + s.bob.KineticEnergy() + s.spring.PotentialEnergy()
	if s.cfg.Gravity {
		e += s.bob.PotentialEnergy(0)
	}
	return e
}

func (s *Spring) Anchor() *mechanics.Body   { return s.anchor }
func (s *Spring) Bob() *mechanics.Body      { return s.bob }
func (s *Spring) Spring() *mechanics.Spring { return s.spring }
