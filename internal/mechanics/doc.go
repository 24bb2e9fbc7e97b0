// Package mechanics is a small deterministic 2D Newtonian-mechanics engine.
//
// The engine is built from a handful of independent pieces:
//
//   - [Body]: point mass with force accumulation and semi-implicit Euler steps
//   - [Spring]: damped Hooke's-law coupling between two bodies
//   - [CheckCircleCollision], [ResolveCollision]: elastic circle contacts
//   - [Pendulum]: damped simple-pendulum angular integrator
//   - [Projectile]: closed-form drag-free projectile kinematics
//   - [Incline]: static force analysis of a mass on a ramp
//
// Gravity and linear drag are carried by an [Env] value instead of globals,
// so independent experiments never share mutable constants.
//
// # Driving a Step
//
// A tick accumulates forces first and integrates once:
//
//	spring.Update()
//	bob.ApplyForce(mechanics.Vec2{Y: -bob.Mass() * env.Gravity})
//	anchor.Update(dt)
//	bob.Update(dt)
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. A body shared
// by several springs must be driven from a single goroutine.
package mechanics
