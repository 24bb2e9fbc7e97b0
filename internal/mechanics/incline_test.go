package mechanics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechlab/internal/mechanics"
)

var _ = Describe("Incline", func() {
	It("slides at 30° with μ=0.2", func() {
		in, err := mechanics.NewIncline(30, 5, 0.2)
		Expect(err).NotTo(HaveOccurred())

		want := 9.81 * (0.5 - 0.2*math.Cos(math.Pi/6))
		Expect(in.Acceleration()).To(BeNumerically("~", want, 1e-9))
		Expect(in.Acceleration()).To(BeNumerically("~", 3.2, 0.01))
		Expect(in.Slides()).To(BeTrue())
	})

	It("derives normal and friction forces", func() {
		in, err := mechanics.NewIncline(30, 5, 0.2)
		Expect(err).NotTo(HaveOccurred())

		n := 5 * 9.81 * math.Cos(math.Pi/6)
		Expect(in.NormalForce()).To(BeNumerically("~", n, 1e-9))
		Expect(in.FrictionForce()).To(BeNumerically("~", 0.2*n, 1e-9))
		Expect(in.ParallelForce()).To(BeNumerically("~", 5*9.81*0.5, 1e-9))
	})

	It("reports a negative acceleration when friction holds the block", func() {
		in, err := mechanics.NewIncline(10, 2, 0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Acceleration()).To(BeNumerically("<", 0))
		Expect(in.Slides()).To(BeFalse())
	})

	It("is independent of mass", func() {
		light, err := mechanics.NewIncline(40, 1, 0.3)
		Expect(err).NotTo(HaveOccurred())
		heavy, err := mechanics.NewIncline(40, 50, 0.3)
		Expect(err).NotTo(HaveOccurred())
		Expect(light.Acceleration()).To(BeNumerically("~", heavy.Acceleration(), 1e-9))
	})

	It("validates its inputs", func() {
		_, err := mechanics.NewIncline(30, 0, 0.2)
		Expect(err).To(MatchError(mechanics.ErrInvalidMass))
		_, err = mechanics.NewIncline(30, 5, -0.1)
		Expect(err).To(MatchError(mechanics.ErrParameterBounds))
		_, err = mechanics.NewIncline(95, 5, 0.2)
		Expect(err).To(MatchError(mechanics.ErrParameterBounds))
	})
})
