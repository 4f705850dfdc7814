// Package physics models the spinning wheel as a single rotational body.
//
//   - [Body]: angle and angular velocity under multiplicative air friction
//   - [Mapper]: converts a released drag into an angular velocity impulse
//
// Time is measured in ticks. One tick is one rendered frame at the
// engine's tick rate, so ω is in radians per tick and friction is the
// fraction of ω removed each tick.
//
// # Settling
//
// Damping is multiplicative, so ω only approaches zero. [Body.AtRest]
// applies an explicit threshold (default [DefaultRestThreshold]) for any
// behaviour gated on the wheel having stopped:
//
//	body, _ := physics.NewBody(physics.DefaultFrictionAir, physics.DefaultRestThreshold)
//	body.ApplyImpulse(10)
//	for !body.AtRest() {
//	    body.Integrate(1)
//	}
package physics
