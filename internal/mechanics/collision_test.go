package mechanics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechlab/internal/mechanics"
)

func newBody(mass, x, y, vx, vy float64) *mechanics.Body {
	b, err := mechanics.NewBody(mass, mechanics.Vec2{X: x, Y: y})
	Expect(err).NotTo(HaveOccurred())
	b.SetVelocity(mechanics.Vec2{X: vx, Y: vy})
	return b
}

func totalMomentum(bodies ...*mechanics.Body) mechanics.Vec2 {
	var p mechanics.Vec2
	for _, b := range bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

var _ = Describe("Collision", func() {
	Describe("CheckCircleCollision", func() {
		It("detects overlap strictly inside the radius sum", func() {
			a := newBody(1, 0, 0, 0, 0)
			b := newBody(1, 3, 4, 0, 0)
			Expect(mechanics.CheckCircleCollision(a, 2, b, 3.1)).To(BeTrue())
			Expect(mechanics.CheckCircleCollision(a, 2, b, 3)).To(BeFalse())
		})

		It("is symmetric", func() {
			a := newBody(1, 0.3, -1, 0, 0)
			b := newBody(5, 1.1, 0.2, 0, 0)
			for _, r := range [][2]float64{{0.5, 0.5}, {1, 0.2}, {0.1, 0.1}, {2, 3}} {
				Expect(mechanics.CheckCircleCollision(a, r[0], b, r[1])).
					To(Equal(mechanics.CheckCircleCollision(b, r[1], a, r[0])))
			}
		})
	})

	Describe("ResolveCollision", func() {
		It("swaps velocities of equal masses in a head-on collision", func() {
			a := newBody(1, 0, 0, 2, 0)
			b := newBody(1, 1, 0, -2, 0)
			Expect(mechanics.ResolveCollision(a, b)).To(BeTrue())
			Expect(a.Velocity().X).To(BeNumerically("~", -2, 1e-12))
			Expect(b.Velocity().X).To(BeNumerically("~", 2, 1e-12))
		})

		It("conserves momentum for unequal masses and oblique contacts", func() {
			cases := [][2]*mechanics.Body{
				{newBody(1, 0, 0, 5, 0), newBody(2, 0.3, 0, -3, 0)},
				{newBody(0.5, 0, 0, 1, 1), newBody(3, 0.2, 0.1, -1, 0.5)},
				{newBody(4, 1, 1, 0, -2), newBody(1, 1.1, 0.8, 0, 3)},
			}
			for _, c := range cases {
				before := totalMomentum(c[0], c[1])
				mechanics.ResolveCollision(c[0], c[1])
				after := totalMomentum(c[0], c[1])
				Expect(after.X).To(BeNumerically("~", before.X, 1e-9))
				Expect(after.Y).To(BeNumerically("~", before.Y, 1e-9))
			}
		})

		It("conserves kinetic energy along the normal", func() {
			a := newBody(1, 0, 0, 5, 0)
			b := newBody(2, 0.3, 0, -3, 0)
			before := a.KineticEnergy() + b.KineticEnergy()
			mechanics.ResolveCollision(a, b)
			Expect(a.KineticEnergy() + b.KineticEnergy()).To(BeNumerically("~", before, 1e-9))
		})

		It("ignores separating pairs", func() {
			a := newBody(1, 0, 0, -1, 0)
			b := newBody(1, 1, 0, 1, 0)
			Expect(mechanics.ResolveCollision(a, b)).To(BeFalse())
			Expect(a.Velocity().X).To(Equal(-1.0))
			Expect(a.Position().X).To(Equal(0.0))
			Expect(b.Position().X).To(Equal(1.0))
		})

		It("ignores coincident centers", func() {
			a := newBody(1, 2, 2, 1, 0)
			b := newBody(1, 2, 2, -1, 0)
			Expect(mechanics.ResolveCollision(a, b)).To(BeFalse())
			Expect(a.Velocity().X).To(Equal(1.0))
			Expect(b.Velocity().X).To(Equal(-1.0))
		})

		It("pushes free bodies apart by half the separation each", func() {
			a := newBody(1, 0, 0, 1, 0)
			b := newBody(1, 0.4, 0, -1, 0)
			mechanics.ResolveCollision(a, b)
			Expect(a.Position().X).To(BeNumerically("~", -0.2, 1e-12))
			Expect(b.Position().X).To(BeNumerically("~", 0.6, 1e-12))
		})

		It("never moves a fixed body", func() {
			wall := newBody(1, 0, 0, 0, 0)
			wall.SetFixed(true)
			ball := newBody(1, 0.5, 0, -2, 0)
			mechanics.ResolveCollision(wall, ball)
			Expect(wall.Position()).To(Equal(mechanics.Vec2{}))
			Expect(wall.Velocity()).To(Equal(mechanics.Vec2{}))
			// the impulse still uses the wall's nominal mass
			Expect(ball.Velocity().X).To(BeNumerically("~", 0, 1e-12))
		})
	})
})
