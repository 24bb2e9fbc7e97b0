package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/mechlab/internal/config"
)

type Builder func(cfg *config.Config) (Experiment, error)

type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns a registry holding the five lab experiments.
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	r.Register("projectile", func(cfg *config.Config) (Experiment, error) {
		return NewProjectile(cfg.MechanicsEnv(), cfg.Projectile)
	})
	r.Register("pendulum", func(cfg *config.Config) (Experiment, error) {
		return NewPendulum(cfg.MechanicsEnv(), cfg.Pendulum)
	})
	r.Register("collision", func(cfg *config.Config) (Experiment, error) {
		return NewCollision(cfg.MechanicsEnv(), cfg.Collision)
	})
	r.Register("spring", func(cfg *config.Config) (Experiment, error) {
		return NewSpring(cfg.MechanicsEnv(), cfg.Spring)
	})
	r.Register("incline", func(cfg *config.Config) (Experiment, error) {
		return NewIncline(cfg.MechanicsEnv(), cfg.Incline)
	})
	return r
}

func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
}

// Build validates the environment and constructs cfg.Experiment.
func (r *Registry) Build(cfg *config.Config) (Experiment, error) {
	b, ok := r.builders[cfg.Experiment]
	if !ok {
		return nil, fmt.Errorf("unknown experiment: %s", cfg.Experiment)
	}
	if err := cfg.MechanicsEnv().Validate(); err != nil {
		return nil, err
	}
	exp, err := b(cfg)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", cfg.Experiment, err)
	}
	return exp, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ Experiment = (*Incline)(nil)

var (
	_ Energetic = (*Projectile)(nil)
	_ Energetic = (*Pendulum)(nil)
	_ Energetic = (*Collision)(nil)
	_ Energetic = (*Spring)(nil)
	_ Momentous = (*Collision)(nil)
)
