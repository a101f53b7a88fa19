package gizmo

import (
	"github.com/olivierh59500/charge-sandbox/internal/motion"
	"github.com/olivierh59500/charge-sandbox/internal/particle"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// EaterState tracks how much an eater has caught. Once Eaten reaches Target
// the eater releases its catch as a ring and stays dormant for a while.
type EaterState struct {
	Eaten  int
	Target int
	// Dormancy is the remaining dormant time in seconds, zero when active.
	Dormancy float64
}

func (e EaterState) Full() bool {
	return e.Eaten >= e.Target
}

func (e EaterState) Dormant() bool {
	return e.Dormancy > 0
}

// Scale grows from 1 towards fullScale as the eater fills and drops to half
// size while full.
func (e EaterState) Scale(fullScale float64) float64 {
	if e.Full() {
		return 0.5
	}
	if e.Target <= 0 {
		return 1
	}
	return 1 + float64(e.Eaten)/float64(e.Target)*(fullScale-1)
}

// Chase pulls every active eater towards the particles of opposite charge.
func (s *Set) Chase(ps *particle.Store, topo physics.Topology, dt float64) {
	items := ps.Items()
	for gi := range s.items {
		g := &s.items[gi]
		if g.Kind != Eater || g.Eater.Dormant() {
			continue
		}
		for i := range items {
			if items[i].Positive == g.Positive || ps.Removed(i) {
				continue
			}
			f := s.Params.Pursuit.At(topo.Offset(g.Pos, items[i].Pos)).Mul(dt)
			g.Movement = g.Movement.Sub(f)
		}
	}
}

// Rest counts down dormant eaters and empties them when they wake up.
func (s *Set) Rest(dt float64) {
	for gi := range s.items {
		e := &s.items[gi].Eater
		if s.items[gi].Kind != Eater || !e.Dormant() {
			continue
		}
		e.Dormancy -= dt
		if e.Dormancy <= chargeEpsilon {
			e.Dormancy = 0
			e.Eaten = 0
		}
	}
}

// Feed lets eaters capture particles. Each live particle is taken by the
// nearest opposite-charge eater within the capture radius that is neither
// full nor dormant; ties go to the earlier eater. Captured particles are
// cancelled. An eater that fills up turns dormant and spawns a ring of
// Target particles of its own charge, regardless of the particle limit.
func (s *Set) Feed(ps *particle.Store, e physics.Extent) int {
	captured := 0
	limit := s.Params.EaterRadius * s.Params.EaterRadius
	n := ps.Len()
	for i := 0; i < n; i++ {
		if ps.Removed(i) {
			continue
		}
		p := &ps.Items()[i]

		best, bestDist := -1, limit
		for gi := range s.items {
			g := &s.items[gi]
			if g.Kind != Eater || g.Positive == p.Positive || g.Eater.Full() || g.Eater.Dormant() {
				continue
			}
			if d := physics.WrapOffset(p.Pos, g.Pos, e).LenSq(); d < bestDist {
				best, bestDist = gi, d
			}
		}
		if best < 0 {
			continue
		}

		g := &s.items[best]
		g.Eater.Eaten++
		p.Cancelled = true
		captured++
		if g.Eater.Full() {
			g.Eater.Dormancy = s.Params.EaterDormancy
			for _, pos := range particle.CircularPoints(g.Pos, s.Params.EaterBurstRadius, g.Eater.Target) {
				ps.Spawn(physics.WrapPosition(pos, e), g.Positive)
			}
			if !g.Eater.Dormant() {
				g.Eater.Eaten = 0
			}
		}
	}
	return captured
}

// Integrate moves eaters by their accumulated movement.
func (s *Set) Integrate(in motion.Integrator, dt float64, e physics.Extent) {
	for gi := range s.items {
		g := &s.items[gi]
		if !catalog[g.Kind].Movable {
			continue
		}
		in.Step(&g.Pos, &g.Movement, dt, e)
	}
}
