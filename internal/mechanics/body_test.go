package mechanics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechlab/internal/mechanics"
)

var _ = Describe("Body", func() {
	var body *mechanics.Body

	BeforeEach(func() {
		var err error
		body, err = mechanics.NewBody(2.0, mechanics.Vec2{X: 1, Y: 5})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects non-positive mass", func() {
			for _, m := range []float64{0, -1, math.NaN(), math.Inf(1)} {
				_, err := mechanics.NewBody(m, mechanics.Vec2{})
				Expect(err).To(MatchError(mechanics.ErrInvalidMass))
			}
		})

		It("rejects a non-finite position", func() {
			_, err := mechanics.NewBody(1, mechanics.Vec2{X: math.NaN()})
			Expect(err).To(MatchError(mechanics.ErrInvalidState))
		})

		It("rejects an invalid environment", func() {
			env := mechanics.Env{Gravity: -1}
			_, err := env.NewBody(1, mechanics.Vec2{})
			Expect(err).To(MatchError(mechanics.ErrParameterBounds))
		})

		It("starts at rest", func() {
			Expect(body.Velocity()).To(Equal(mechanics.Vec2{}))
			Expect(body.Force()).To(Equal(mechanics.Vec2{}))
			Expect(body.Fixed()).To(BeFalse())
		})
	})

	Describe("ApplyForce", func() {
		It("superposes contributions", func() {
			body.ApplyForce(mechanics.Vec2{X: 1, Y: 2})
			body.ApplyForce(mechanics.Vec2{X: 3, Y: -4})
			Expect(body.Force()).To(Equal(mechanics.Vec2{X: 4, Y: -2}))
		})

		It("ignores forces on fixed bodies", func() {
			body.SetFixed(true)
			body.ApplyForce(mechanics.Vec2{X: 10})
			Expect(body.Force()).To(Equal(mechanics.Vec2{}))
		})
	})

	Describe("Update", func() {
		It("integrates velocity before position and clears the force", func() {
			env := mechanics.Env{Gravity: 9.81, AirResistance: 0}
			b, err := env.NewBody(2.0, mechanics.Vec2{})
			Expect(err).NotTo(HaveOccurred())

			b.ApplyForce(mechanics.Vec2{X: 4})
			b.Update(0.5)

			Expect(b.Acceleration().X).To(BeNumerically("~", 2.0, 1e-12))
			Expect(b.Velocity().X).To(BeNumerically("~", 1.0, 1e-12))
			Expect(b.Position().X).To(BeNumerically("~", 0.5, 1e-12))
			Expect(b.Force()).To(Equal(mechanics.Vec2{}))
		})

		It("applies drag after the force update", func() {
			body.SetVelocity(mechanics.Vec2{X: 10})
			body.Update(0.1)
			Expect(body.Velocity().X).To(BeNumerically("~", 10*(1-0.1*0.1), 1e-12))
			Expect(body.Position().X).To(BeNumerically("~", 1+0.99, 1e-12))
		})

		It("decays free velocity toward zero without reversing sign", func() {
			body.SetVelocity(mechanics.Vec2{X: 3, Y: -2})
			prev := body.Velocity()
			for i := 0; i < 5000; i++ {
				body.Update(0.016)
				v := body.Velocity()
				Expect(v.X).To(BeNumerically(">", 0))
				Expect(v.Y).To(BeNumerically("<", 0))
				Expect(v.Len()).To(BeNumerically("<", prev.Len()))
				prev = v
			}
			Expect(prev.Len()).To(BeNumerically("<", 0.01))
		})

		It("stops rather than reverses under drag too strong for the step", func() {
			env := mechanics.Env{Gravity: 9.81, AirResistance: 40}
			b, err := env.NewBody(1, mechanics.Vec2{})
			Expect(err).NotTo(HaveOccurred())
			b.SetVelocity(mechanics.Vec2{X: 5})
			for i := 0; i < 10; i++ {
				b.Update(1.0 / 30)
				Expect(b.Velocity().X).To(BeNumerically(">=", 0))
				Expect(b.Velocity().X).To(BeNumerically("<=", 5))
			}
			Expect(b.Velocity().X).To(Equal(0.0))
		})

		It("advances the angle from angular velocity", func() {
			body.SetAngularVelocity(2)
			body.Update(0.25)
			Expect(body.Angle()).To(BeNumerically("~", 0.5, 1e-12))
		})

		It("leaves fixed bodies untouched", func() {
			body.SetVelocity(mechanics.Vec2{X: 1})
			body.SetAngularVelocity(1)
			body.SetFixed(true)
			body.Update(1)
			Expect(body.Position()).To(Equal(mechanics.Vec2{X: 1, Y: 5}))
			Expect(body.Angle()).To(BeZero())
		})
	})

	Describe("derived quantities", func() {
		It("computes energy and momentum", func() {
			body.SetVelocity(mechanics.Vec2{X: 3, Y: 4})
			Expect(body.KineticEnergy()).To(BeNumerically("~", 25, 1e-12))
			Expect(body.PotentialEnergy(1)).To(BeNumerically("~", 2*9.81*4, 1e-12))
			Expect(body.Momentum()).To(Equal(mechanics.Vec2{X: 6, Y: 8}))
		})
	})
})
