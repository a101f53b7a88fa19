package gizmo

import (
	"math"

	"github.com/olivierh59500/charge-sandbox/internal/particle"
)

// EmitterState accumulates time and spawns one particle per Interval.
type EmitterState struct {
	Interval float64
	Elapsed  float64
}

// Limit caps how many live particles emitters may top the population up to.
type Limit struct {
	Current uint32
	Step    uint32
}

// Raise increases the limit by one step, saturating at MaxUint32.
func (l *Limit) Raise() {
	if l.Current > math.MaxUint32-l.Step {
		l.Current = math.MaxUint32
		return
	}
	l.Current += l.Step
}

// Lower decreases the limit by one step, saturating at zero.
func (l *Limit) Lower() {
	if l.Current < l.Step {
		l.Current = 0
		return
	}
	l.Current -= l.Step
}

// Allows reports whether a population of n may grow by one.
func (l Limit) Allows(n int) bool {
	return uint64(n) < uint64(l.Current)
}

// Emit advances every emitter by dt and spawns the particles that are due,
// while the population stays under the limit. Excess time carries over, so a
// delayed tick catches up. While the limit blocks it, an emitter keeps at
// most one interval in reserve and emits once as soon as room appears.
func (s *Set) Emit(ps *particle.Store, limit Limit, dt float64) int {
	spawned := 0
	for gi := range s.items {
		g := &s.items[gi]
		if g.Kind != Emitter {
			continue
		}
		em := &g.Emitter
		em.Elapsed += dt
		for em.Interval > 0 && em.Elapsed >= em.Interval {
			if !limit.Allows(ps.Len()) {
				em.Elapsed = em.Interval
				break
			}
			ps.Spawn(g.Pos, g.Positive)
			em.Elapsed -= em.Interval
			spawned++
		}
	}
	return spawned
}
