// Package input defines the logical actions the sandbox reacts to and the
// per-frame view of their state.
package input

import "github.com/olivierh59500/charge-sandbox/internal/physics"

// Action is a named logical input, independent of the physical binding.
type Action uint8

const (
	SpawnParticle Action = iota
	PositiveEmitter
	NegativeEmitter
	Deleter
	SlowDeleter
	Attractor
	Repulsor
	PositiveEater
	NegativeEater
	Pusher
	DespawnModifier
	DespawnAllModifier
	RaiseParticleLimit
	LowerParticleLimit
	ToggleInertia
	ToggleWrap
	SuspendRepulsion
	Pause

	ActionCount
)

var actionNames = [ActionCount]string{
	SpawnParticle:      "SpawnParticle",
	PositiveEmitter:    "PositiveEmitter",
	NegativeEmitter:    "NegativeEmitter",
	Deleter:            "Deleter",
	SlowDeleter:        "SlowDeleter",
	Attractor:          "Attractor",
	Repulsor:           "Repulsor",
	PositiveEater:      "PositiveEater",
	NegativeEater:      "NegativeEater",
	Pusher:             "Pusher",
	DespawnModifier:    "DespawnModifier",
	DespawnAllModifier: "DespawnAllModifier",
	RaiseParticleLimit: "RaiseParticleLimit",
	LowerParticleLimit: "LowerParticleLimit",
	ToggleInertia:      "ToggleInertia",
	ToggleWrap:         "ToggleWrap",
	SuspendRepulsion:   "SuspendRepulsion",
	Pause:              "Pause",
}

func (a Action) String() string {
	if a < ActionCount {
		return actionNames[a]
	}
	return "Action(?)"
}

// State answers action queries for the current frame.
type State interface {
	JustPressed(Action) bool
	Pressed(Action) bool
	JustReleased(Action) bool
	// Cursor returns the pointer in world coordinates, false when it is
	// outside the window.
	Cursor() (physics.Vec2, bool)
}

// Phase is the state of one action during a frame.
type Phase uint8

const (
	Idle Phase = iota
	JustPressed
	Held
	JustReleased
)

// Snapshot is a State captured for a single frame.
type Snapshot struct {
	Phases    [ActionCount]Phase
	CursorPos physics.Vec2
	HasCursor bool
}

// JustPressed reports a press edge. A just-pressed action also counts as held.
func (s *Snapshot) JustPressed(a Action) bool {
	return s.Phases[a] == JustPressed
}

func (s *Snapshot) Pressed(a Action) bool {
	return s.Phases[a] == JustPressed || s.Phases[a] == Held
}

func (s *Snapshot) JustReleased(a Action) bool {
	return s.Phases[a] == JustReleased
}

func (s *Snapshot) Cursor() (physics.Vec2, bool) {
	return s.CursorPos, s.HasCursor
}

// Set records the phase of a for this frame.
func (s *Snapshot) Set(a Action, p Phase) {
	s.Phases[a] = p
}

// Reset clears every action and the cursor.
func (s *Snapshot) Reset() {
	*s = Snapshot{}
}

// Advance moves edge phases on to their steady state, as happens between
// frames when nothing changes.
func (s *Snapshot) Advance() {
	for a, p := range s.Phases {
		switch p {
		case JustPressed:
			s.Phases[a] = Held
		case JustReleased:
			s.Phases[a] = Idle
		}
	}
}
