package experiment

import (
	"fmt"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
)

// Ball is a body with the radius used for contact checks.
type Ball struct {
	Body   *mechanics.Body
	Radius float64
}

type Collision struct {
	env        mechanics.Env
	cfg        config.CollisionConfig
	balls      []Ball
	collisions int
	t          float64
}

func NewCollision(env mechanics.Env, cfg config.CollisionConfig) (*Collision, error) {
	if len(cfg.Bodies) < 2 {
		return nil, fmt.Errorf("collision: need at least two bodies, got %d: %w",
			len(cfg.Bodies), mechanics.ErrParameterBounds)
	}
	c := &Collision{env: env, cfg: cfg}
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Collision) Reset() error {
	balls := make([]Ball, 0, len(c.cfg.Bodies))
	for i, bc := range c.cfg.Bodies {
		body, err := newConfiguredBody(c.env, bc)
		if err != nil {
			return fmt.Errorf("body %d: %w", i+1, err)
		}
		if bc.Radius < 0 {
			return fmt.Errorf("body %d: negative radius: %w", i+1, mechanics.ErrParameterBounds)
		}
		balls = append(balls, Ball{Body: body, Radius: bc.Radius})
	}
	c.balls = balls
	c.collisions = 0
	c.t = 0
	return nil
}

func newConfiguredBody(env mechanics.Env, bc config.BodyConfig) (*mechanics.Body, error) {
	body, err := env.NewBody(bc.Mass, mechanics.Vec2{X: bc.X, Y: bc.Y})
	if err != nil {
		return nil, err
	}
	body.SetVelocity(mechanics.Vec2{X: bc.VX, Y: bc.VY})
	body.SetFixed(bc.Fixed)
	return body, nil
}

func (c *Collision) Name() string { return "collision" }

func (c *Collision) Columns() []string {
	cols := make([]string, 0, 4*len(c.balls))
	for i := range c.balls {
		n := i + 1
		cols = append(cols,
			fmt.Sprintf("x%d", n), fmt.Sprintf("y%d", n),
			fmt.Sprintf("vx%d", n), fmt.Sprintf("vy%d", n))
	}
	return cols
}

// Step integrates every body, then resolves every overlapping pair.
func (c *Collision) Step(dt float64) {
	for _, b := range c.balls {
		b.Body.Update(dt)
	}
	for i := 0; i < len(c.balls); i++ {
		for j := i + 1; j < len(c.balls); j++ {
			a, b := c.balls[i], c.balls[j]
			if !mechanics.CheckCircleCollision(a.Body, a.Radius, b.Body, b.Radius) {
				continue
			}
			if mechanics.ResolveCollision(a.Body, b.Body) {
				c.collisions++
			}
		}
	}
	c.t += dt
}

func (c *Collision) Sample() []float64 {
	out := make([]float64, 0, 4*len(c.balls))
	for _, b := range c.balls {
		p, v := b.Body.Position(), b.Body.Velocity()
		out = append(out, p.X, p.Y, v.X, v.Y)
	}
	return out
}

func (c *Collision) Readings() []Reading {
	readings := make([]Reading, 0, 4*len(c.balls)+4)
	for i, b := range c.balls {
		v := b.Body.Velocity()
		readings = append(readings,
			Reading{fmt.Sprintf("Mass %d", i+1), b.Body.Mass(), "kg"},
			Reading{fmt.Sprintf("Velocity %d X", i+1), v.X, "m/s"},
			Reading{fmt.Sprintf("Velocity %d Y", i+1), v.Y, "m/s"},
			Reading{fmt.Sprintf("KE %d", i+1), b.Body.KineticEnergy(), "J"},
		)
	}
	p := c.Momentum()
	readings = append(readings,
		Reading{"Total Momentum", p.Len(), "kg·m/s"},
		Reading{"Kinetic Energy", c.Energy(), "J"},
		Reading{"Collisions", float64(c.collisions), ""},
		scoreReading(ScoreCollision*c.collisions),
	)
	return readings
}

func (c *Collision) Done() bool { return false }

// Energy is the total kinetic energy of the free bodies.
func (c *Collision) Energy() float64 {
	var e float64
	for _, b := range c.balls {
		if !b.Body.Fixed() {
			e += b.Body.KineticEnergy()
		}
	}
	return e
}

func (c *Collision) Momentum() mechanics.Vec2 {
	var p mechanics.Vec2
	for _, b := range c.balls {
		if !b.Body.Fixed() {
			p = p.Add(b.Body.Momentum())
		}
	}
	return p
}

func (c *Collision) Balls() []Ball       { return c.balls }
func (c *Collision) CollisionCount() int { return c.collisions }
