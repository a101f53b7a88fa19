// Package sandbox wires particles and gizmos into the fixed-tick pipeline and
// the per-frame input handlers.
package sandbox

import (
	"github.com/olivierh59500/charge-sandbox/internal/config"
	"github.com/olivierh59500/charge-sandbox/internal/gizmo"
	"github.com/olivierh59500/charge-sandbox/internal/input"
	"github.com/olivierh59500/charge-sandbox/internal/motion"
	"github.com/olivierh59500/charge-sandbox/internal/particle"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// Stats counts what happened during the last tick.
type Stats struct {
	Ticks       uint64
	Deleted     int
	Emitted     int
	Annihilated int // pairs
	Captured    int
}

// World is the whole simulation state.
type World struct {
	Particles *particle.Store
	Gizmos    *gizmo.Set
	Limit     gizmo.Limit

	Engine     particle.Engine
	Integrator motion.Integrator
	Wrap       bool
	Paused     bool

	TickDuration   float64
	CancelDistance float64
	ClickRadius    float64

	Stats Stats

	extent    physics.Extent
	hasExtent bool
}

// New builds an empty world from c. The extent stays unknown until
// SetExtent is called.
func New(c *config.Config) *World {
	return &World{
		Particles: particle.NewStore(c.Particle.Initial),
		Gizmos:    gizmo.NewSet(c.Params()),
		Limit:     gizmo.Limit{Current: c.Particle.Limit, Step: c.Particle.LimitStep},
		Engine:    particle.Engine{Law: c.Particle.Force, Parallel: c.Sim.Parallel},
		Integrator: motion.Integrator{
			MaxSpeed: c.Sim.MaxSpeed,
			Friction: c.Sim.Friction,
			Inertia:  c.Sim.Inertia,
		},
		Wrap:           c.Sim.Wrap,
		TickDuration:   c.TickDuration(),
		CancelDistance: c.Particle.CancelDistance,
		ClickRadius:    c.Particle.ClickRadius,
	}
}

// SetExtent updates the world size from the window. Degenerate sizes are
// ignored and the last good extent is kept. It reports whether the extent
// changed.
func (w *World) SetExtent(width, height float64) bool {
	e := physics.Extent{W: width, H: height}
	if !e.Valid() || (w.hasExtent && e == w.extent) {
		return false
	}
	w.extent, w.hasExtent = e, true

	items := w.Particles.Items()
	for i := range items {
		items[i].Pos = physics.WrapPosition(items[i].Pos, e)
	}
	w.Gizmos.Rewrap(e)
	return true
}

// Extent returns the current extent, false before a valid one was seen.
func (w *World) Extent() (physics.Extent, bool) {
	return w.extent, w.hasExtent
}

// Topology returns the offset rules forces use this tick.
func (w *World) Topology() physics.Topology {
	return physics.Topology{Extent: w.extent, Wrap: w.Wrap}
}

// Seed places the initial ring of particles.
func (w *World) Seed(r particle.Ring) {
	if !w.hasExtent {
		return
	}
	w.Particles.SeedRing(r, w.extent)
}

// Tick advances the simulation by one fixed step. The input state is only
// consulted for SuspendRepulsion and may be nil.
//
// Order: removal effectors, emitters, field effectors, pairwise forces,
// annihilation, eaters, despawn, integration.
func (w *World) Tick(in input.State) {
	if w.Paused || !w.hasExtent {
		return
	}
	dt, e, topo := w.TickDuration, w.extent, w.Topology()
	ps, gs := w.Particles, w.Gizmos
	st := Stats{Ticks: w.Stats.Ticks + 1}

	gs.Recharge(dt)
	st.Deleted = gs.Delete(ps, e)
	st.Deleted += gs.SlowDelete(ps, e)
	ps.Sweep()

	st.Emitted = gs.Emit(ps, w.Limit, dt)

	gs.Attract(ps, topo, dt)
	gs.Push(ps)
	gs.Chase(ps, topo, dt)

	if in == nil || !in.Pressed(input.SuspendRepulsion) {
		w.Engine.Apply(ps, topo, dt)
	}

	st.Annihilated = ps.Annihilate(w.CancelDistance, e)

	gs.Rest(dt)
	st.Captured = gs.Feed(ps, e)

	ps.Sweep()

	ps.Integrate(w.Integrator, dt, e)
	gs.Integrate(w.Integrator, dt, e)

	w.Stats = st
}
