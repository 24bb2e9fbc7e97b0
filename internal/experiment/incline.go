package experiment

import (
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
)

// Incline is a static force analysis; stepping it changes nothing.
type Incline struct {
	env     mechanics.Env
	cfg     config.InclineConfig
	incline *mechanics.Incline
}

func NewIncline(env mechanics.Env, cfg config.InclineConfig) (*Incline, error) {
	i := &Incline{env: env, cfg: cfg}
	if err := i.Reset(); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *Incline) Reset() error {
	incline, err := i.env.NewIncline(i.cfg.Angle, i.cfg.Mass, i.cfg.Friction)
	if err != nil {
		return err
	}
	i.incline = incline
	return nil
}

func (i *Incline) Name() string { return "incline" }

func (i *Incline) Columns() []string {
	return []string{"normal", "friction", "parallel", "acceleration"}
}

func (i *Incline) Step(dt float64) {}

func (i *Incline) Sample() []float64 {
	return []float64{
		i.incline.NormalForce(),
		i.incline.FrictionForce(),
		i.incline.ParallelForce(),
		i.incline.Acceleration(),
	}
}

func (i *Incline) Readings() []Reading {
	return []Reading{
		{"Angle", i.incline.AngleDegrees(), "°"},
		{"Mass", i.incline.Mass(), "kg"},
		{"Friction Coefficient", i.incline.Friction(), ""},
		{"Normal Force", i.incline.NormalForce(), "N"},
		{"Friction Force", i.incline.FrictionForce(), "N"},
		{"Parallel Force", i.incline.ParallelForce(), "N"},
		{"Acceleration", i.incline.Acceleration(), "m/s²"},
		scoreReading(ScoreIncline),
	}
}

func (i *Incline) Done() bool { return true }

func (i *Incline) Incline() *mechanics.Incline { return i.incline }
