package mechanics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechlab/internal/mechanics"
)

var _ = Describe("Pendulum", func() {
	It("rejects non-positive length", func() {
		_, err := mechanics.NewPendulum(0, 10)
		Expect(err).To(MatchError(mechanics.ErrInvalidLength))
		_, err = mechanics.NewPendulum(-2, 10)
		Expect(err).To(MatchError(mechanics.ErrInvalidLength))
	})

	It("uses the small-angle period regardless of steps", func() {
		p, err := mechanics.NewPendulum(2.0, 0)
		Expect(err).NotTo(HaveOccurred())
		want := 2 * math.Pi * math.Sqrt(2.0/9.81)
		Expect(p.Period()).To(BeNumerically("~", want, 1e-12))
		Expect(p.Period()).To(BeNumerically("~", 2.84, 0.01))

		for i := 0; i < 100; i++ {
			p.Update(0.016)
		}
		Expect(p.Period()).To(BeNumerically("~", want, 1e-12))
	})

	It("stays at rest at the bottom", func() {
		p, err := mechanics.NewPendulum(1, 0)
		Expect(err).NotTo(HaveOccurred())
		p.Update(0.01)
		Expect(p.Angle()).To(BeZero())
		Expect(p.AngularVelocity()).To(BeZero())
	})

	It("follows one explicit step", func() {
		p, err := mechanics.NewPendulum(1, 90)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.SetDamping(1)).To(Succeed())

		p.Update(0.1)
		Expect(p.AngularAcceleration()).To(BeNumerically("~", -9.81, 1e-12))
		Expect(p.AngularVelocity()).To(BeNumerically("~", -0.981, 1e-12))
		Expect(p.Angle()).To(BeNumerically("~", math.Pi/2-0.0981, 1e-12))
	})

	It("places the bob below the pivot in screen coordinates", func() {
		p, err := mechanics.NewPendulum(2, 0)
		Expect(err).NotTo(HaveOccurred())
		bob := p.BobPosition(mechanics.Vec2{X: 4, Y: 1})
		Expect(bob.X).To(BeNumerically("~", 4, 1e-12))
		Expect(bob.Y).To(BeNumerically("~", 3, 1e-12))

		p, err = mechanics.NewPendulum(2, 90)
		Expect(err).NotTo(HaveOccurred())
		bob = p.BobPosition(mechanics.Vec2{})
		Expect(bob.X).To(BeNumerically("~", 2, 1e-12))
		Expect(bob.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("decays toward rest", func() {
		p, err := mechanics.NewPendulum(2, 30)
		Expect(err).NotTo(HaveOccurred())
		start := p.Energy(1)
		for i := 0; i < 5000; i++ {
			p.Update(0.016)
		}
		Expect(p.Energy(1)).To(BeNumerically("<", start*0.01))
		Expect(math.Abs(p.AngleDegrees())).To(BeNumerically("<", 3))
	})

	It("decays per step, so halving dt with twice the steps damps harder", func() {
		coarse, err := mechanics.NewPendulum(1, 20)
		Expect(err).NotTo(HaveOccurred())
		fine, err := mechanics.NewPendulum(1, 20)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 300; i++ {
			coarse.Update(0.01)
		}
		for i := 0; i < 600; i++ {
			fine.Update(0.005)
		}
		Expect(fine.Energy(1)).To(BeNumerically("<", coarse.Energy(1)))
	})

	It("rejects damping outside (0, 1]", func() {
		p, err := mechanics.NewPendulum(1, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.SetDamping(0)).To(MatchError(mechanics.ErrParameterBounds))
		Expect(p.SetDamping(1.1)).To(MatchError(mechanics.ErrParameterBounds))
	})
})
