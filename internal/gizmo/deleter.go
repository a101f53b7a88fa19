package gizmo

import (
	"github.com/olivierh59500/charge-sandbox/internal/particle"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// chargeEpsilon absorbs rounding when charge is accumulated in dt steps.
const chargeEpsilon = 1e-9

type DeleterState struct {
	Radius float64
}

// SlowDeleterState recharges at Rate per second and removes one particle
// each time Charge reaches 1.
type SlowDeleterState struct {
	Radius float64
	Rate   float64
	Charge float64
}

// Armed reports whether the deleter may remove a particle this tick.
func (d SlowDeleterState) Armed() bool {
	return d.Charge >= 1-chargeEpsilon
}

// Recharge advances every slow deleter by dt seconds.
func (s *Set) Recharge(dt float64) {
	for i := range s.items {
		if s.items[i].Kind == SlowDeleter {
			s.items[i].SlowDeleter.Charge += s.items[i].SlowDeleter.Rate * dt
		}
	}
}

// Delete despawns every particle inside any deleter. Each particle is
// counted once even when several deleters cover it.
func (s *Set) Delete(ps *particle.Store, e physics.Extent) int {
	removed := 0
	items := ps.Items()
	for i := range items {
		if ps.Removed(i) {
			continue
		}
		for gi := range s.items {
			g := &s.items[gi]
			if g.Kind != Deleter {
				continue
			}
			r := g.Deleter.Radius
			if physics.WrapOffset(items[i].Pos, g.Pos, e).LenSq() < r*r {
				ps.Despawn(i)
				removed++
				break
			}
		}
	}
	return removed
}

// SlowDelete lets each armed slow deleter remove the first particle in its
// radius, spending its charge.
func (s *Set) SlowDelete(ps *particle.Store, e physics.Extent) int {
	removed := 0
	items := ps.Items()
	for i := range items {
		if ps.Removed(i) {
			continue
		}
		for gi := range s.items {
			g := &s.items[gi]
			if g.Kind != SlowDeleter || !g.SlowDeleter.Armed() {
				continue
			}
			r := g.SlowDeleter.Radius
			if physics.WrapOffset(items[i].Pos, g.Pos, e).LenSq() < r*r {
				ps.Despawn(i)
				g.SlowDeleter.Charge = 0
				removed++
				break
			}
		}
	}
	return removed
}
