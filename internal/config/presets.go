package config

import "sort"

// Presets holds named variations per experiment. Each preset is applied on
// top of DefaultConfig.
var Presets = map[string]map[string]func(*Config){
	"projectile": {
		"classic": func(c *Config) {
			c.Projectile = ProjectileConfig{Speed: 20, Angle: 45, Height: 0}
		},
		"cliff": func(c *Config) {
			c.Projectile = ProjectileConfig{Speed: 15, Angle: 30, Height: 25}
		},
		"lob": func(c *Config) {
			c.Projectile = ProjectileConfig{Speed: 25, Angle: 75, Height: 0}
		},
		"moon": func(c *Config) {
			c.Env.Gravity = 1.62
			c.Duration = 30
			c.Projectile = ProjectileConfig{Speed: 20, Angle: 45, Height: 0}
		},
	},
	"pendulum": {
		"small": func(c *Config) {
			c.Pendulum.Angle = 5
			c.Pendulum.Damping = 1
			c.Duration = 20
		},
		"large": func(c *Config) {
			c.Pendulum.Angle = 150
			c.Duration = 20
		},
		"long": func(c *Config) {
			c.Pendulum.Length = 10
			c.Pendulum.Angle = 20
			c.Duration = 30
		},
	},
	"collision": {
		"equal": func(c *Config) {
			c.Collision.Bodies = []BodyConfig{
				{Mass: 1, X: 2, Y: 3, VX: 0.5, Radius: 0.2},
				{Mass: 1, X: 6, Y: 3, VX: -0.5, Radius: 0.2},
			}
		},
		"wall": func(c *Config) {
			c.Collision.Bodies = []BodyConfig{
				{Mass: 1, X: 2, Y: 3, VX: 1, Radius: 0.2},
				{Mass: 100, X: 6, Y: 3, Radius: 0.5, Fixed: true},
			}
		},
		"glancing": func(c *Config) {
			c.Collision.Bodies = []BodyConfig{
				{Mass: 1, X: 2, Y: 3, VX: 0.8, Radius: 0.2},
				{Mass: 1, X: 5, Y: 3.25, Radius: 0.2},
			}
		},
		"newton": func(c *Config) {
			c.Collision.Bodies = []BodyConfig{
				{Mass: 1, X: 1, Y: 3, VX: 1, Radius: 0.2},
				{Mass: 1, X: 4, Y: 3, Radius: 0.2},
				{Mass: 1, X: 4.45, Y: 3, Radius: 0.2},
				{Mass: 1, X: 4.9, Y: 3, Radius: 0.2},
			}
		},
	},
	"spring": {
		"bounce": func(c *Config) {
			c.Spring.Gravity = false
			c.Spring.Bob.X = 5
		},
		"stiff": func(c *Config) {
			c.Spring.Stiffness = 80
			c.Dt = 0.005
		},
		"hanging": func(c *Config) {
			c.Spring.Anchor.X, c.Spring.Anchor.Y = 4, 5
			c.Spring.Bob.X, c.Spring.Bob.Y = 4, 3.5
		},
	},
	"incline": {
		"icy": func(c *Config) {
			c.Incline = InclineConfig{Angle: 15, Mass: 5, Friction: 0.02}
		},
		"rough": func(c *Config) {
			c.Incline = InclineConfig{Angle: 20, Mass: 5, Friction: 0.6}
		},
		"steep": func(c *Config) {
			c.Incline = InclineConfig{Angle: 60, Mass: 5, Friction: 0.4}
		},
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(experiment, preset string) *Config {
	experimentPresets, ok := Presets[experiment]
	if !ok {
		return nil
	}
	apply, ok := experimentPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Experiment = experiment
	apply(cfg)
	return cfg
}

func ListPresets(experiment string) []string {
	experimentPresets, ok := Presets[experiment]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(experimentPresets))
	for name := range experimentPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
