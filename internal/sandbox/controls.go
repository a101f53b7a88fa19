package sandbox

import (
	"github.com/olivierh59500/charge-sandbox/internal/gizmo"
	"github.com/olivierh59500/charge-sandbox/internal/input"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

type binding struct {
	action   input.Action
	kind     gizmo.Kind
	positive bool
}

var gizmoBindings = []binding{
	{input.NegativeEmitter, gizmo.Emitter, false},
	{input.PositiveEmitter, gizmo.Emitter, true},
	{input.Deleter, gizmo.Deleter, false},
	{input.SlowDeleter, gizmo.SlowDeleter, false},
	{input.Attractor, gizmo.Attractor, false},
	{input.Repulsor, gizmo.Repulsor, false},
	{input.Pusher, gizmo.Pusher, false},
	{input.NegativeEater, gizmo.Eater, false},
	{input.PositiveEater, gizmo.Eater, true},
}

// HandleInput applies one frame of input: toggles, the particle limit,
// particle spawning and gizmo placement or removal. Actions needing the
// cursor are skipped while it is off-window or no extent is known.
func (w *World) HandleInput(in input.State) {
	if in == nil {
		return
	}

	if in.JustPressed(input.ToggleInertia) {
		w.Integrator.Inertia = !w.Integrator.Inertia
	}
	if in.JustPressed(input.ToggleWrap) {
		w.Wrap = !w.Wrap
	}
	if in.JustPressed(input.Pause) {
		w.Paused = !w.Paused
	}
	if in.JustPressed(input.RaiseParticleLimit) {
		w.Limit.Raise()
	}
	if in.JustPressed(input.LowerParticleLimit) {
		w.Limit.Lower()
	}

	cursor, ok := in.Cursor()
	if !ok || !w.hasExtent {
		return
	}
	w.handleParticles(in, cursor)
	for _, b := range gizmoBindings {
		w.handleGizmo(in, b, cursor)
	}
}

func (w *World) handleParticles(in input.State, cursor physics.Vec2) {
	if !in.JustPressed(input.SpawnParticle) {
		return
	}
	switch {
	case in.Pressed(input.DespawnAllModifier):
		w.Particles.Clear()
	case in.Pressed(input.DespawnModifier):
		if i := w.Particles.Nearest(cursor, w.ClickRadius, w.extent); i >= 0 {
			w.Particles.Despawn(i)
			w.Particles.Sweep()
		}
	default:
		w.Particles.Spawn(physics.WrapPosition(cursor, w.extent), true)
	}
}

func (w *World) handleGizmo(in input.State, b binding, cursor physics.Vec2) {
	gs := w.Gizmos
	if in.JustPressed(b.action) {
		switch {
		case in.Pressed(input.DespawnAllModifier):
			gs.DespawnAll(b.kind, b.positive)
		case in.Pressed(input.DespawnModifier):
			gs.DespawnNearest(b.kind, b.positive, cursor, w.ClickRadius, w.extent)
		default:
			gs.Place(b.kind, cursor, b.positive)
		}
		return
	}

	if gizmo.TraitsOf(b.kind).Placement != gizmo.WithRotation {
		return
	}
	switch {
	case in.Pressed(b.action):
		gs.Orient(b.kind, cursor)
	case in.JustReleased(b.action):
		gs.Commit(b.kind)
	default:
		gs.Discard(b.kind)
	}
}
