package gizmo

import (
	"math"

	"github.com/olivierh59500/charge-sandbox/internal/particle"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// FieldState is the payload of attractors and repulsors. A repulsor is an
// attractor with a negative base force.
type FieldState struct {
	Law physics.ForceLaw
}

// Attract adds the pull of every attractor and repulsor to every particle.
func (s *Set) Attract(ps *particle.Store, topo physics.Topology, dt float64) {
	items := ps.Items()
	for gi := range s.items {
		g := &s.items[gi]
		if g.Kind != Attractor && g.Kind != Repulsor {
			continue
		}
		for i := range items {
			p := &items[i]
			p.Movement = p.Movement.Add(g.Field.Law.At(topo.Offset(g.Pos, p.Pos)).Mul(dt))
		}
	}
}

// InPushZone reports whether pos lies in the pusher's rectangle, measured in
// the pusher's own frame without wrap-around.
func (s *Set) InPushZone(g *Gizmo, pos physics.Vec2) bool {
	local := physics.PlainOffset(g.Pos, pos).Rotate(-g.Angle)
	return math.Abs(local.X) <= s.Params.PusherHalfWidth && math.Abs(local.Y) <= s.Params.PusherHalfHeight
}

// Push moves particles inside a placed pusher's zone along its forward axis.
// Pushers still being placed have no effect.
func (s *Set) Push(ps *particle.Store) {
	items := ps.Items()
	for gi := range s.items {
		g := &s.items[gi]
		if g.Kind != Pusher {
			continue
		}
		push := physics.FromAngle(g.Angle).Mul(s.Params.PusherSpeed)
		for i := range items {
			if s.InPushZone(g, items[i].Pos) {
				items[i].Movement = items[i].Movement.Add(push)
			}
		}
	}
}
