package mechanics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechlab/internal/mechanics"
)

var _ = Describe("Projectile", func() {
	It("matches v²·sin(2θ)/g for ground launches", func() {
		p, err := mechanics.NewProjectile(20, 45, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Range()).To(BeNumerically("~", 400/9.81, 1e-9))
		Expect(p.Range()).To(BeNumerically("~", 40.8, 0.05))
	})

	It("computes peak height and flight time", func() {
		p, err := mechanics.NewProjectile(20, 30, 5)
		Expect(err).NotTo(HaveOccurred())

		vy := 20 * math.Sin(math.Pi/6)
		Expect(p.MaxHeight()).To(BeNumerically("~", 5+vy*vy/(2*9.81), 1e-9))

		tof := p.TimeOfFlight()
		Expect(tof).To(BeNumerically(">", 0))
		Expect(p.PositionAt(tof).Y).To(BeNumerically("~", 0, 1e-9))
		Expect(p.Range()).To(BeNumerically("~", p.PositionAt(tof).X, 1e-9))
	})

	It("lands immediately when dropped from the ground", func() {
		p, err := mechanics.NewProjectile(0, 45, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.TimeOfFlight()).To(BeZero())
		Expect(p.Range()).To(BeZero())
	})

	It("falls straight down from a height", func() {
		p, err := mechanics.NewProjectile(0, 0, 4.905)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.TimeOfFlight()).To(BeNumerically("~", 1, 1e-9))
	})

	It("lands at launch for a downward shot from the ground", func() {
		env := mechanics.DefaultEnv()
		p, err := env.NewProjectile(1, -90, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.TimeOfFlight()).To(BeNumerically("~", 0, 1e-12))
	})

	It("uses the environment's gravity", func() {
		moon := mechanics.Env{Gravity: 1.62, AirResistance: 0}
		p, err := moon.NewProjectile(20, 45, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Range()).To(BeNumerically("~", 400/1.62, 1e-9))
	})

	It("rejects invalid launch parameters", func() {
		_, err := mechanics.NewProjectile(-1, 45, 0)
		Expect(err).To(MatchError(mechanics.ErrParameterBounds))
		_, err = mechanics.NewProjectile(10, 45, -1)
		Expect(err).To(MatchError(mechanics.ErrParameterBounds))
		_, err = mechanics.NewProjectile(10, math.NaN(), 0)
		Expect(err).To(MatchError(mechanics.ErrParameterBounds))
	})

	Describe("Trajectory", func() {
		It("spans launch to landing with n+1 points", func() {
			p, err := mechanics.NewProjectile(15, 60, 2)
			Expect(err).NotTo(HaveOccurred())

			pts := p.Trajectory(10)
			Expect(pts).To(HaveLen(11))
			Expect(pts[0]).To(Equal(mechanics.Vec2{X: 0, Y: 2}))
			Expect(pts[10].X).To(BeNumerically("~", p.Range(), 1e-9))
			Expect(pts[10].Y).To(BeNumerically("~", 0, 1e-9))

			for i := 1; i < len(pts); i++ {
				Expect(pts[i].X).To(BeNumerically(">", pts[i-1].X))
			}
		})

		It("is restartable with different resolutions", func() {
			p, err := mechanics.NewProjectile(15, 60, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Trajectory(4)).To(HaveLen(5))
			Expect(p.Trajectory(100)).To(HaveLen(101))
			Expect(p.Trajectory(4)[2]).To(Equal(p.Trajectory(8)[4]))
		})

		It("collapses to the launch point for n < 1", func() {
			p, err := mechanics.NewProjectile(15, 60, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Trajectory(0)).To(Equal([]mechanics.Vec2{{X: 0, Y: 2}}))
		})
	})
})
