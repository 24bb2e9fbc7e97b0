package mechanics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechlab/internal/mechanics"
)

var _ = Describe("Vec2", func() {
	DescribeTable("Len",
		func(v mechanics.Vec2, want float64) {
			Expect(v.Len()).To(BeNumerically("~", want, 1e-12))
		},
		Entry("3-4-5", mechanics.Vec2{X: 3, Y: 4}, 5.0),
		Entry("unit", mechanics.Vec2{X: 1}, 1.0),
		Entry("zero", mechanics.Vec2{}, 0.0),
	)

	It("normalizes the zero vector to zero", func() {
		Expect(mechanics.Vec2{}.Normalize()).To(Equal(mechanics.Vec2{}))
		Expect(mechanics.Vec2{X: 0, Y: -2}.Normalize()).To(Equal(mechanics.Vec2{X: 0, Y: -1}))
	})

	It("does component arithmetic", func() {
		a := mechanics.Vec2{X: 1, Y: 2}
		b := mechanics.Vec2{X: 4, Y: 5}
		Expect(a.Add(b)).To(Equal(mechanics.Vec2{X: 5, Y: 7}))
		Expect(b.Sub(a)).To(Equal(mechanics.Vec2{X: 3, Y: 3}))
		Expect(a.Scale(2)).To(Equal(mechanics.Vec2{X: 2, Y: 4}))
		Expect(a.Dot(b)).To(Equal(14.0))
	})

	It("flags non-finite components", func() {
		Expect(mechanics.Vec2{X: math.Inf(1)}.IsValid()).To(BeFalse())
		Expect(mechanics.Vec2{X: 1, Y: 2}.IsValid()).To(BeTrue())
	})
})
