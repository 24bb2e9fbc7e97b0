package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mechlab/internal/mechanics"
)

const (
	DefaultExperiment = "projectile"
	DefaultDt         = 0.016 // one 60 Hz animation tick
	DefaultDuration   = 10.0
	DefaultMaxDt      = 1.0 / 30
	DefaultLogLevel   = "info"

	// MaxSteps bounds duration/dt for one run.
	MaxSteps = 10_000_000
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Experiment string           `yaml:"experiment"`
	Dt         float64          `yaml:"dt"`
	Duration   float64          `yaml:"duration"`
	MaxDt      float64          `yaml:"max_dt"`
	Env        EnvConfig        `yaml:"env"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Pendulum   PendulumConfig   `yaml:"pendulum"`
	Collision  CollisionConfig  `yaml:"collision"`
	Spring     SpringConfig     `yaml:"spring"`
	Incline    InclineConfig    `yaml:"incline"`
	Log        LogConfig        `yaml:"log"`
}

type EnvConfig struct {
	Gravity       float64 `yaml:"gravity"`
	AirResistance float64 `yaml:"air_resistance"`
}

type ProjectileConfig struct {
	Speed  float64 `yaml:"speed"`
	Angle  float64 `yaml:"angle"`
	Height float64 `yaml:"height"`
}

// PendulumConfig.Damping is the per-step multiplier, in (0, 1]. A missing
// key keeps the default; an explicit 0 is rejected when the run is built.
type PendulumConfig struct {
	Length  float64 `yaml:"length"`
	Angle   float64 `yaml:"angle"`
	Damping float64 `yaml:"damping"`
	PivotX  float64 `yaml:"pivot_x"`
	PivotY  float64 `yaml:"pivot_y"`
}

type BodyConfig struct {
	Mass   float64 `yaml:"mass"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Radius float64 `yaml:"radius"`
	Fixed  bool    `yaml:"fixed"`
}

type CollisionConfig struct {
	Bodies []BodyConfig `yaml:"bodies"`
}

type SpringConfig struct {
	RestLength float64    `yaml:"rest_length"`
	Stiffness  float64    `yaml:"stiffness"`
	Damping    float64    `yaml:"damping"`
	Gravity    bool       `yaml:"gravity"`
	Anchor     BodyConfig `yaml:"anchor"`
	Bob        BodyConfig `yaml:"bob"`
}

type InclineConfig struct {
	Angle    float64 `yaml:"angle"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig mirrors the starting setups of the mechanics lab.
func DefaultConfig() *Config {
	return &Config{
		Experiment: DefaultExperiment,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		MaxDt:      DefaultMaxDt,
		Env: EnvConfig{
			Gravity:       mechanics.DefaultGravity,
			AirResistance: mechanics.DefaultAirResistance,
		},
		Projectile: ProjectileConfig{Speed: 20, Angle: 45, Height: 0},
		Pendulum: PendulumConfig{
			Length:  2.0,
			Angle:   30,
			Damping: mechanics.DefaultPendulumDamping,
			PivotX:  4,
			PivotY:  1,
		},
		Collision: CollisionConfig{
			Bodies: []BodyConfig{
				{Mass: 1.0, X: 2, Y: 3, VX: 0.5, Radius: 0.2},
				{Mass: 2.0, X: 6, Y: 3, VX: -0.3, Radius: 0.2},
			},
		},
		Spring: SpringConfig{
			RestLength: 1.0,
			Stiffness:  10,
			Damping:    mechanics.DefaultSpringDamping,
			Gravity:    true,
			Anchor:     BodyConfig{Mass: 1.0, X: 3, Y: 3, Radius: 0.1, Fixed: true},
			Bob:        BodyConfig{Mass: 0.5, X: 5, Y: 3, Radius: 0.15},
		},
		Incline: InclineConfig{Angle: 30, Mass: 5, Friction: 0.2},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto decodes the file at path over a copy of base. Keys missing from
// the file keep base's values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MechanicsEnv converts the env block into engine constants.
func (c *Config) MechanicsEnv() mechanics.Env {
	return mechanics.Env{
		Gravity:       c.Env.Gravity,
		AirResistance: c.Env.AirResistance,
	}
}

// Clone returns a deep copy, safe to mutate for parameter sweeps.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Collision.Bodies = append([]BodyConfig(nil), c.Collision.Bodies...)
	return &cp
}

// Validate checks the run settings and the block of the selected experiment.
// Physical validation of the block itself happens in the engine constructors.
func (c *Config) Validate() error {
	if !finite(c.Dt) || c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive and finite, got %f", ErrInvalidConfig, c.Dt)
	}
	if !finite(c.Duration) || c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive and finite, got %f", ErrInvalidConfig, c.Duration)
	}
	if !finite(c.MaxDt) || c.MaxDt < 0 {
		return fmt.Errorf("%w: max_dt must be finite and not negative, got %f", ErrInvalidConfig, c.MaxDt)
	}
	if c.Duration/c.Dt > MaxSteps {
		return fmt.Errorf("%w: duration %g at dt %g exceeds %d steps", ErrInvalidConfig, c.Duration, c.Dt, MaxSteps)
	}
	if err := c.MechanicsEnv().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	// The per-step drag factor 1-drag*h must stay positive.
	if h := c.stepSize(); c.Env.AirResistance*h >= 1 {
		return fmt.Errorf("%w: air_resistance %g too high for step %g", ErrInvalidConfig, c.Env.AirResistance, h)
	}
	if c.Experiment == "collision" && len(c.Collision.Bodies) < 2 {
		return fmt.Errorf("%w: collision needs at least two bodies", ErrInvalidConfig)
	}
	return nil
}

// stepSize bounds the integration step a run will take.
func (c *Config) stepSize() float64 {
	if c.MaxDt > 0 && c.MaxDt < c.Dt {
		return c.MaxDt
	}
	return c.Dt
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Params flattens the selected experiment's block for run metadata.
func (c *Config) Params() map[string]float64 {
	switch c.Experiment {
	case "projectile":
		return map[string]float64{
			"speed":  c.Projectile.Speed,
			"angle":  c.Projectile.Angle,
			"height": c.Projectile.Height,
		}
	case "pendulum":
		return map[string]float64{
			"length":  c.Pendulum.Length,
			"angle":   c.Pendulum.Angle,
			"damping": c.Pendulum.Damping,
		}
	case "collision":
		params := map[string]float64{"bodies": float64(len(c.Collision.Bodies))}
		for i, b := range c.Collision.Bodies {
			params[fmt.Sprintf("mass%d", i+1)] = b.Mass
			params[fmt.Sprintf("vx%d", i+1)] = b.VX
		}
		return params
	case "spring":
		return map[string]float64{
			"rest_length": c.Spring.RestLength,
			"stiffness":   c.Spring.Stiffness,
			"damping":     c.Spring.Damping,
			"mass":        c.Spring.Bob.Mass,
		}
	case "incline":
		return map[string]float64{
			"angle":    c.Incline.Angle,
			"mass":     c.Incline.Mass,
			"friction": c.Incline.Friction,
		}
	default:
		return map[string]float64{}
	}
}

// SetParam updates one parameter of the selected experiment by name, the
// same keys Params reports.
func (c *Config) SetParam(name string, value float64) error {
	switch c.Experiment + "." + name {
	case "projectile.speed":
		c.Projectile.Speed = value
	case "projectile.angle":
		c.Projectile.Angle = value
	case "projectile.height":
		c.Projectile.Height = value
	case "pendulum.length":
		c.Pendulum.Length = value
	case "pendulum.angle":
		c.Pendulum.Angle = value
	case "pendulum.damping":
		c.Pendulum.Damping = value
	case "spring.rest_length":
		c.Spring.RestLength = value
	case "spring.stiffness":
		c.Spring.Stiffness = value
	case "spring.damping":
		c.Spring.Damping = value
	case "spring.mass":
		c.Spring.Bob.Mass = value
	case "incline.angle":
		c.Incline.Angle = value
	case "incline.mass":
		c.Incline.Mass = value
	case "incline.friction":
		c.Incline.Friction = value
	default:
		if c.Experiment == "collision" {
			return c.setBodyParam(name, value)
		}
		return fmt.Errorf("unknown param for %s: %s", c.Experiment, name)
	}
	return nil
}

// setBodyParam handles the numbered collision keys, mass1 or vx2.
func (c *Config) setBodyParam(name string, value float64) error {
	var field string
	var n int
	for _, f := range []string{"mass", "vx"} {
		if strings.HasPrefix(name, f) {
			if i, err := strconv.Atoi(name[len(f):]); err == nil {
				field, n = f, i
			}
		}
	}
	if field == "" || n < 1 || n > len(c.Collision.Bodies) {
		return fmt.Errorf("unknown param for collision: %s", name)
	}
	switch field {
	case "mass":
		c.Collision.Bodies[n-1].Mass = value
	case "vx":
		c.Collision.Bodies[n-1].VX = value
	}
	return nil
}
