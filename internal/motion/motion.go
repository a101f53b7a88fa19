// Package motion integrates accumulated movement into wrapped positions.
package motion

import (
	"math"

	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// Integrator advances movers once per tick.
//
// Without inertia, Movement is a per-tick displacement: it is clamped to
// MaxSpeed*dt, applied, and reset so forces start from zero next tick.
// With inertia it behaves as a velocity and carries over between ticks,
// decaying only through Friction.
type Integrator struct {
	MaxSpeed float64 // units/second
	Friction float64 // fraction of movement lost per second, inertia only
	Inertia  bool
}

// Merge folds a batch-local accumulator into the authoritative movement.
func Merge(movement, pending *physics.Vec2) {
	*movement = movement.Add(*pending)
	*pending = physics.Vec2{}
}

// Clamp limits movement when inertia is off.
func (in Integrator) Clamp(movement *physics.Vec2, dt float64) {
	if in.Inertia {
		return
	}
	*movement = movement.ClampLen(in.MaxSpeed * dt)
}

// Step clamps, applies and wraps one mover. The extent must be valid.
func (in Integrator) Step(pos, movement *physics.Vec2, dt float64, e physics.Extent) {
	in.Clamp(movement, dt)

	delta := *movement
	if in.Inertia {
		delta = movement.Mul(dt * 0.5)
	}
	*pos = physics.WrapPosition(pos.Add(delta), e)

	if !in.Inertia {
		*movement = physics.Vec2{}
		return
	}
	if in.Friction > 0 {
		*movement = movement.Mul(math.Max(0, 1-in.Friction*dt))
	}
}
