package mechanics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechlab/internal/mechanics"
)

var _ = Describe("Spring", func() {
	It("rejects degenerate endpoints and bounds", func() {
		a := newBody(1, 0, 0, 0, 0)
		b := newBody(1, 1, 0, 0, 0)

		_, err := mechanics.NewSpring(a, a, 1, 10)
		Expect(err).To(MatchError(mechanics.ErrDegenerateSpring))
		_, err = mechanics.NewSpring(nil, b, 1, 10)
		Expect(err).To(MatchError(mechanics.ErrDegenerateSpring))
		_, err = mechanics.NewSpring(a, b, -1, 10)
		Expect(err).To(MatchError(mechanics.ErrParameterBounds))
		_, err = mechanics.NewSpring(a, b, 1, -10)
		Expect(err).To(MatchError(mechanics.ErrParameterBounds))
	})

	It("applies no force at rest length", func() {
		a := newBody(1, 0, 0, 0, 0)
		b := newBody(1, 2, 0, 0, 0)
		s, err := mechanics.NewSpring(a, b, 2, 10)
		Expect(err).NotTo(HaveOccurred())

		s.Update()
		Expect(a.Force().Len()).To(BeNumerically("~", 0, 1e-12))
		Expect(b.Force().Len()).To(BeNumerically("~", 0, 1e-12))
		Expect(s.PotentialEnergy()).To(BeZero())
	})

	It("pulls stretched endpoints together with equal and opposite forces", func() {
		a := newBody(1, 0, 0, 0, 0)
		b := newBody(1, 3, 0, 0, 0)
		s, err := mechanics.NewSpring(a, b, 2, 10)
		Expect(err).NotTo(HaveOccurred())

		s.Update()
		Expect(b.Force().X).To(BeNumerically("~", -10, 1e-12))
		Expect(a.Force().X).To(BeNumerically("~", 10, 1e-12))
		Expect(s.Extension()).To(BeNumerically("~", 1, 1e-12))
		Expect(s.PotentialEnergy()).To(BeNumerically("~", 5, 1e-12))
	})

	It("damps the relative velocity along the axis", func() {
		a := newBody(1, 0, 0, 0, 0)
		b := newBody(1, 2, 0, 1, 0)
		s, err := mechanics.NewSpring(a, b, 2, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.SetDamping(0.5)).To(Succeed())

		s.Update()
		Expect(b.Force().X).To(BeNumerically("~", -0.5, 1e-12))
		Expect(a.Force().X).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("does nothing when the endpoints coincide", func() {
		a := newBody(1, 1, 1, 0, 0)
		b := newBody(1, 1, 1, 0, 0)
		s, err := mechanics.NewSpring(a, b, 2, 10)
		Expect(err).NotTo(HaveOccurred())

		s.Update()
		Expect(a.Force()).To(Equal(mechanics.Vec2{}))
		Expect(b.Force()).To(Equal(mechanics.Vec2{}))
	})

	It("leaves a fixed anchor in place while the bob oscillates", func() {
		anchor := newBody(1, 0, 0, 0, 0)
		anchor.SetFixed(true)
		bob := newBody(0.5, 2, 0, 0, 0)
		s, err := mechanics.NewSpring(anchor, bob, 1, 10)
		Expect(err).NotTo(HaveOccurred())

		minX := bob.Position().X
		for i := 0; i < 200; i++ {
			s.Update()
			anchor.Update(0.01)
			bob.Update(0.01)
			if x := bob.Position().X; x < minX {
				minX = x
			}
		}
		Expect(anchor.Position()).To(Equal(mechanics.Vec2{}))
		Expect(minX).To(BeNumerically("<", 1))
	})
})
