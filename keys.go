package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/charge-sandbox/internal/input"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// binding maps an action to the keys and mouse buttons that trigger it. Any
// one of them is enough.
type binding struct {
	keys    []ebiten.Key
	buttons []ebiten.MouseButton
}

type keymap [input.ActionCount]binding

func defaultKeymap() keymap {
	var km keymap
	km[input.SpawnParticle] = binding{buttons: []ebiten.MouseButton{ebiten.MouseButtonLeft}}
	km[input.PositiveEmitter] = binding{keys: []ebiten.Key{ebiten.KeyEqual, ebiten.KeyNumpadAdd}}
	km[input.NegativeEmitter] = binding{keys: []ebiten.Key{ebiten.KeyMinus, ebiten.KeyNumpadSubtract}}
	km[input.Deleter] = binding{keys: []ebiten.Key{ebiten.KeyD}}
	km[input.SlowDeleter] = binding{keys: []ebiten.Key{ebiten.KeyS}}
	km[input.Attractor] = binding{keys: []ebiten.Key{ebiten.KeyA}}
	km[input.Repulsor] = binding{keys: []ebiten.Key{ebiten.KeyR}}
	km[input.PositiveEater] = binding{keys: []ebiten.Key{ebiten.KeyBracketRight}}
	km[input.NegativeEater] = binding{keys: []ebiten.Key{ebiten.KeyBracketLeft}}
	km[input.Pusher] = binding{
		keys:    []ebiten.Key{ebiten.KeyP},
		buttons: []ebiten.MouseButton{ebiten.MouseButtonRight},
	}
	km[input.DespawnModifier] = binding{keys: []ebiten.Key{ebiten.KeyShift}}
	km[input.DespawnAllModifier] = binding{keys: []ebiten.Key{ebiten.KeyControl}}
	km[input.RaiseParticleLimit] = binding{keys: []ebiten.Key{ebiten.KeyArrowUp}}
	km[input.LowerParticleLimit] = binding{keys: []ebiten.Key{ebiten.KeyArrowDown}}
	km[input.ToggleInertia] = binding{keys: []ebiten.Key{ebiten.KeyI}}
	km[input.ToggleWrap] = binding{keys: []ebiten.Key{ebiten.KeyW}}
	km[input.SuspendRepulsion] = binding{keys: []ebiten.Key{ebiten.KeyX}}
	km[input.Pause] = binding{keys: []ebiten.Key{ebiten.KeySpace}}
	return km
}

func (b binding) phase() input.Phase {
	held, released := false, false
	for _, k := range b.keys {
		if inpututil.IsKeyJustPressed(k) {
			return input.JustPressed
		}
		held = held || ebiten.IsKeyPressed(k)
		released = released || inpututil.IsKeyJustReleased(k)
	}
	for _, mb := range b.buttons {
		if inpututil.IsMouseButtonJustPressed(mb) {
			return input.JustPressed
		}
		held = held || ebiten.IsMouseButtonPressed(mb)
		released = released || inpututil.IsMouseButtonJustReleased(mb)
	}
	switch {
	case held:
		return input.Held
	case released:
		return input.JustReleased
	}
	return input.Idle
}

// capture fills s with this frame's keyboard and mouse state. The cursor
// only counts while it is inside the w by h screen.
func (km *keymap) capture(s *input.Snapshot, w, h int) {
	s.Reset()
	for a := range km {
		s.Set(input.Action(a), km[a].phase())
	}
	x, y := ebiten.CursorPosition()
	if x >= 0 && y >= 0 && x < w && y < h {
		s.CursorPos = physics.Vec2{X: float64(x), Y: float64(y)}
		s.HasCursor = true
	}
}

const helpText = "LMB particle  +/- emitter  D/S deleter  A/R attractor/repulsor  [/] eater  P/RMB pusher\n" +
	"Shift despawn  Ctrl despawn all  Up/Down limit  I inertia  W wrap  X hold to suspend  Space pause  H help"
