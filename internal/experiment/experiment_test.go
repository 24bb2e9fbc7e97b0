package experiment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
)

func build(t *testing.T, cfg *config.Config) Experiment {
	t.Helper()
	exp, err := NewRegistry().Build(cfg)
	require.NoError(t, err)
	return exp
}

func defaults(name string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Experiment = name
	return cfg
}

func reading(readings []Reading, name string) (Reading, bool) {
	for _, r := range readings {
		if r.Name == name {
			return r, true
		}
	}
	return Reading{}, false
}

func TestRegistryList(t *testing.T) {
	assert.Equal(t, []string{"collision", "incline", "pendulum", "projectile", "spring"}, NewRegistry().List())
}

func TestRegistryBuildsEveryExperiment(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.List() {
		t.Run(name, func(t *testing.T) {
			exp := build(t, defaults(name))
			assert.Equal(t, name, exp.Name())
			assert.Len(t, exp.Sample(), len(exp.Columns()))
			assert.NotEmpty(t, exp.Readings())
		})
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build(defaults("rocket"))
	assert.ErrorContains(t, err, "unknown experiment")

	cfg := defaults("pendulum")
	cfg.Env.Gravity = 0
	_, err = r.Build(cfg)
	assert.ErrorIs(t, err, mechanics.ErrParameterBounds)

	cfg = defaults("pendulum")
	cfg.Pendulum.Length = 0
	_, err = r.Build(cfg)
	assert.ErrorIs(t, err, mechanics.ErrInvalidLength)

	cfg = defaults("collision")
	cfg.Collision.Bodies[1].Mass = -2
	_, err = r.Build(cfg)
	assert.ErrorIs(t, err, mechanics.ErrInvalidMass)
	assert.ErrorContains(t, err, "body 2")

	cfg = defaults("collision")
	cfg.Collision.Bodies = cfg.Collision.Bodies[:1]
	_, err = r.Build(cfg)
	assert.ErrorIs(t, err, mechanics.ErrParameterBounds)

	cfg = defaults("spring")
	cfg.Spring.Stiffness = -1
	_, err = r.Build(cfg)
	assert.ErrorIs(t, err, mechanics.ErrParameterBounds)

	cfg = defaults("incline")
	cfg.Incline.Angle = 95
	_, err = r.Build(cfg)
	assert.ErrorIs(t, err, mechanics.ErrParameterBounds)
}

func TestProjectileClockStopsAtLanding(t *testing.T) {
	p := build(t, defaults("projectile")).(*Projectile)
	tof := p.Motion().TimeOfFlight()

	assert.False(t, p.Done())
	for i := 0; i < 1000 && !p.Done(); i++ {
		p.Step(0.016)
	}
	assert.True(t, p.Done())
	assert.Equal(t, tof, p.Time())

	s := p.Sample()
	assert.InDelta(t, p.Motion().Range(), s[0], 1e-9)
	assert.InDelta(t, 0, s[1], 1e-9)

	p.Step(1)
	assert.Equal(t, tof, p.Time())

	require.NoError(t, p.Reset())
	assert.Zero(t, p.Time())
	assert.False(t, p.Done())
}

func TestProjectileEnergyIsConstant(t *testing.T) {
	p := build(t, defaults("projectile")).(*Projectile)
	e0 := p.Energy()
	assert.InDelta(t, 200, e0, 1e-9)
	for i := 0; i < 100; i++ {
		p.Step(0.02)
		assert.InDelta(t, e0, p.Energy(), 1e-9)
	}
}

func TestProjectileReadings(t *testing.T) {
	p := build(t, defaults("projectile"))
	r, ok := reading(p.Readings(), "Range")
	require.True(t, ok)
	assert.InDelta(t, 40.77, r.Value, 0.01)
	assert.Equal(t, "m", r.Unit)
}

func TestLabScore(t *testing.T) {
	score := func(exp Experiment) float64 {
		t.Helper()
		r, ok := reading(exp.Readings(), "Score")
		require.True(t, ok)
		return r.Value
	}

	p := build(t, defaults("projectile"))
	assert.Zero(t, score(p))
	for !p.Done() {
		p.Step(0.1)
	}
	assert.Equal(t, float64(ScoreLanding), score(p))
	require.NoError(t, p.Reset())
	assert.Zero(t, score(p))

	cfg := defaults("collision")
	cfg.Env.AirResistance = 0
	c := build(t, cfg).(*Collision)
	assert.Zero(t, score(c))
	for i := 0; i < 600; i++ {
		c.Step(0.016)
	}
	require.Equal(t, 1, c.CollisionCount())
	assert.Equal(t, float64(ScoreCollision), score(c))

	assert.Equal(t, float64(ScoreIncline), score(build(t, defaults("incline"))))
	assert.Equal(t, float64(MaxScore), scoreReading(ScoreCollision*9).Value)
}

func TestPendulumStep(t *testing.T) {
	p := build(t, defaults("pendulum")).(*Pendulum)
	assert.Equal(t, []string{"theta", "omega", "bob_x", "bob_y"}, p.Columns())

	s0 := p.Sample()
	assert.InDelta(t, math.Pi/6, s0[0], 1e-12)
	assert.InDelta(t, 4+2*math.Sin(math.Pi/6), s0[2], 1e-12)
	assert.InDelta(t, 1+2*math.Cos(math.Pi/6), s0[3], 1e-12)

	p.Step(0.016)
	assert.Less(t, p.Sample()[1], 0.0)
	assert.False(t, p.Done())

	period, ok := reading(p.Readings(), "Period")
	require.True(t, ok)
	assert.InDelta(t, 2*math.Pi*math.Sqrt(2/9.81), period.Value, 1e-9)
}

func TestPendulumUsesConfiguredDamping(t *testing.T) {
	cfg := defaults("pendulum")
	cfg.Pendulum.Damping = 1
	p := build(t, cfg).(*Pendulum)
	assert.Equal(t, 1.0, p.Pendulum().Damping())

	for _, bad := range []float64{0, -0.5, 1.5} {
		cfg.Pendulum.Damping = bad
		_, err := NewRegistry().Build(cfg)
		assert.ErrorIs(t, err, mechanics.ErrParameterBounds, "damping %g", bad)
	}
}

func TestCollisionDefaultSetup(t *testing.T) {
	cfg := defaults("collision")
	cfg.Env.AirResistance = 0
	c := build(t, cfg).(*Collision)

	assert.Equal(t, []string{"x1", "y1", "vx1", "vy1", "x2", "y2", "vx2", "vy2"}, c.Columns())
	p0 := c.Momentum()
	assert.InDelta(t, -0.1, p0.X, 1e-12)

	for i := 0; i < 600; i++ {
		c.Step(0.016)
	}
	assert.Equal(t, 1, c.CollisionCount())
	p1 := c.Momentum()
	assert.InDelta(t, p0.X, p1.X, 1e-9)
	assert.InDelta(t, 0.215, c.Energy(), 1e-9)

	// 1-D elastic result for m1=1, m2=2, u1=0.5, u2=-0.3.
	s := c.Sample()
	assert.InDelta(t, (1.0-2.0)/3*0.5+2*2.0/3*-0.3, s[2], 1e-9)
	assert.InDelta(t, 2*1.0/3*0.5+(2.0-1.0)/3*-0.3, s[6], 1e-9)

	count, ok := reading(c.Readings(), "Collisions")
	require.True(t, ok)
	assert.Equal(t, 1.0, count.Value)

	require.NoError(t, c.Reset())
	assert.Zero(t, c.CollisionCount())
	assert.InDelta(t, 2, c.Sample()[0], 1e-12)
}

func TestCollisionReadingsPerBody(t *testing.T) {
	cfg := defaults("collision")
	cfg.Collision.Bodies = []config.BodyConfig{
		{Mass: 2, X: 0, Y: 0, VX: 3, VY: -4, Radius: 0.5},
		{Mass: 1, X: 10, Y: 10, Radius: 0.5},
	}
	c := build(t, cfg).(*Collision)
	readings := c.Readings()

	want := map[string]float64{
		"Mass 1":       2,
		"Velocity 1 X": 3,
		"Velocity 1 Y": -4,
		"KE 1":         25,
		"Velocity 2 Y": 0,
		"KE 2":         0,
	}
	for name, value := range want {
		r, ok := reading(readings, name)
		require.True(t, ok, name)
		assert.InDelta(t, value, r.Value, 1e-12, name)
	}
	ke, _ := reading(readings, "KE 1")
	assert.Equal(t, "J", ke.Unit)
}

func TestCollisionWithFixedWall(t *testing.T) {
	cfg := defaults("collision")
	cfg.Env.AirResistance = 0
	cfg.Collision.Bodies = []config.BodyConfig{
		{Mass: 1, X: 0, Y: 0, VX: 1, Radius: 0.5},
		{Mass: 1, X: 2, Y: 0, Radius: 0.5, Fixed: true},
	}
	c := build(t, cfg).(*Collision)
	for i := 0; i < 200; i++ {
		c.Step(0.01)
	}
	assert.Equal(t, 2.0, c.Balls()[1].Body.Position().X)
	assert.LessOrEqual(t, c.Balls()[0].Body.Velocity().X, 1e-9)
	assert.GreaterOrEqual(t, c.CollisionCount(), 1)
}

func TestCollisionRejectsNegativeRadius(t *testing.T) {
	cfg := defaults("collision")
	cfg.Collision.Bodies[0].Radius = -1
	_, err := NewRegistry().Build(cfg)
	assert.ErrorIs(t, err, mechanics.ErrParameterBounds)
}

func TestSpringStartsStretched(t *testing.T) {
	s := build(t, defaults("spring")).(*Spring)
	assert.Equal(t, []string{"x", "y", "vx", "vy", "extension"}, s.Columns())
	assert.InDelta(t, 1.0, s.Sample()[4], 1e-12)

	s.Step(0.016)
	v := s.Bob().Velocity()
	assert.Less(t, v.X, 0.0, "spring pulls the bob toward the anchor")
	assert.Less(t, v.Y, 0.0, "gravity pulls the bob down")
	assert.Equal(t, mechanics.Vec2{X: 3, Y: 3}, s.Anchor().Position())
}

func TestSpringEnergyWithoutLosses(t *testing.T) {
	cfg := defaults("spring")
	cfg.Env.AirResistance = 0
	cfg.Spring.Damping = 0
	cfg.Spring.Gravity = false
	cfg.Spring.Bob.X = 4.5
	s := build(t, cfg).(*Spring)

	e0 := s.Energy()
	assert.InDelta(t, 1.25, e0, 1e-12)
	for i := 0; i < 2000; i++ {
		s.Step(0.001)
	}
	assert.InDelta(t, e0, s.Energy(), 0.05*e0)
}

func TestSpringDampingDrainsEnergy(t *testing.T) {
	cfg := defaults("spring")
	cfg.Spring.Gravity = false
	cfg.Spring.Bob.X = 4.5
	s := build(t, cfg).(*Spring)
	e0 := s.Energy()
	for i := 0; i < 1000; i++ {
		s.Step(0.01)
	}
	assert.Less(t, s.Energy(), e0)
}

func TestInclineIsStatic(t *testing.T) {
	inc := build(t, defaults("incline")).(*Incline)
	assert.True(t, inc.Done())

	before := inc.Sample()
	inc.Step(1)
	assert.Equal(t, before, inc.Sample())

	assert.InDelta(t, 5*9.81*math.Cos(math.Pi/6), before[0], 1e-9)
	assert.InDelta(t, 9.81*(0.5-0.2*math.Cos(math.Pi/6)), before[3], 1e-9)

	r, ok := reading(inc.Readings(), "Acceleration")
	require.True(t, ok)
	assert.Equal(t, "m/s²", r.Unit)
}
