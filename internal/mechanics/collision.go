package mechanics

// CheckCircleCollision reports whether circles of radius ra around a and rb
// around b overlap. There is no contact state; call it every step.
func CheckCircleCollision(a *Body, ra float64, b *Body, rb float64) bool {
	return b.position.Sub(a.position).Len() < ra+rb
}

// ResolveCollision applies a perfectly elastic impulse along the line of
// centers (head-on approximation) and then pushes the bodies apart.
//
// Pairs that are already separating along the normal are left untouched,
// so a pair that stays overlapped for a few steps is not kicked twice.
// Coincident centers have no normal and are ignored. The result reports
// whether an impulse was applied.
func ResolveCollision(a, b *Body) bool {
	delta := b.position.Sub(a.position)
	distance := delta.Len()
	if distance == 0 {
		return false
	}
	n := delta.Scale(1 / distance)

	dvn := b.velocity.Sub(a.velocity).Dot(n)
	if dvn >= 0 {
		return false
	}

	// e = 1
	impulse := 2 * dvn / (1/a.mass + 1/b.mass)

	if !a.fixed {
		a.velocity = a.velocity.Add(n.Scale(impulse / a.mass))
	}
	if !b.fixed {
		b.velocity = b.velocity.Sub(n.Scale(impulse / b.mass))
	}

	// Overlap heuristic: each free body moves half the center distance.
	correction := n.Scale(distance / 2)
	if !a.fixed {
		a.position = a.position.Sub(correction)
	}
	if !b.fixed {
		b.position = b.position.Add(correction)
	}
	return true
}
