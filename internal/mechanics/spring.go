package mechanics

import "fmt"

const DefaultSpringDamping = 0.1

// Spring couples two bodies with a damped Hooke's-law force. It holds
// references only; the bodies stay owned by the caller.
type Spring struct {
	a, b       *Body
	restLength float64
	stiffness  float64
	damping    float64
}

func NewSpring(a, b *Body, restLength, stiffness float64) (*Spring, error) {
	if a == nil || b == nil || a == b {
		return nil, ErrDegenerateSpring
	}
	if !isFinite(restLength) || restLength < 0 {
		return nil, fmt.Errorf("rest length %v: %w", restLength, ErrParameterBounds)
	}
	if !isFinite(stiffness) || stiffness < 0 {
		return nil, fmt.Errorf("stiffness %v: %w", stiffness, ErrParameterBounds)
	}
	return &Spring{
		a:          a,
		b:          b,
		restLength: restLength,
		stiffness:  stiffness,
		damping:    DefaultSpringDamping,
	}, nil
}

func (s *Spring) SetDamping(c float64) error {
	if !isFinite(c) || c < 0 {
		return fmt.Errorf("spring damping %v: %w", c, ErrParameterBounds)
	}
	s.damping = c
	return nil
}

// Update adds the spring force to both endpoints. It does not integrate;
// call Body.Update afterwards.
func (s *Spring) Update() {
	delta := s.b.position.Sub(s.a.position)
	distance := delta.Len()
	if distance == 0 {
		return
	}
	n := delta.Scale(1 / distance)

	extension := distance - s.restLength
	magnitude := -s.stiffness * extension

	// damping acts on the closing speed along the axis
	magnitude -= s.damping * s.b.velocity.Sub(s.a.velocity).Dot(n)

	f := n.Scale(magnitude)
	s.a.ApplyForce(f.Scale(-1))
	s.b.ApplyForce(f)
}

func (s *Spring) Bodies() (*Body, *Body) { return s.a, s.b }
func (s *Spring) RestLength() float64    { return s.restLength }
func (s *Spring) Stiffness() float64     { return s.stiffness }
func (s *Spring) Damping() float64       { return s.damping }

func (s *Spring) Length() float64 {
	return s.b.position.Sub(s.a.position).Len()
}

func (s *Spring) Extension() float64 {
	return s.Length() - s.restLength
}

// PotentialEnergy returns the elastic energy ½kx².
func (s *Spring) PotentialEnergy() float64 {
	x := s.Extension()
	return 0.5 * s.stiffness * x * x
}
