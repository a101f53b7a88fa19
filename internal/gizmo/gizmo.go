// Package gizmo implements the user-placed effectors that push, pull,
// spawn and remove particles.
package gizmo

import (
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// Kind selects the gizmo variant.
type Kind uint8

const (
	Emitter Kind = iota
	Deleter
	SlowDeleter
	Attractor
	Repulsor
	Pusher
	Eater

	KindCount
)

var kindNames = [KindCount]string{"Emitter", "Deleter", "SlowDeleter", "Attractor", "Repulsor", "Pusher", "Eater"}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// PlacementStyle describes how a placement action creates a gizmo.
type PlacementStyle uint8

const (
	// Instant places the gizmo on press.
	Instant PlacementStyle = iota
	// WithRotation places on press, orients while held and commits on release.
	WithRotation
)

// Traits are the static properties of a kind.
type Traits struct {
	// Polar kinds come in positive and negative instances.
	Polar     bool
	Placement PlacementStyle
	// Movable kinds carry Movement and are integrated like particles.
	Movable bool
}

var catalog = [KindCount]Traits{
	Emitter:     {Polar: true},
	Deleter:     {},
	SlowDeleter: {},
	Attractor:   {},
	Repulsor:    {},
	Pusher:      {Placement: WithRotation},
	Eater:       {Polar: true, Movable: true},
}

// TraitsOf returns the catalogue entry for k.
func TraitsOf(k Kind) Traits {
	return catalog[k]
}

// Params are the tunables new gizmos are created with.
type Params struct {
	EmitterInterval float64

	DeleterRadius     float64
	SlowDeleterRadius float64
	SlowDeleterRate   float64

	Attractor physics.ForceLaw
	Repulsor  physics.ForceLaw

	PusherHalfWidth  float64
	PusherHalfHeight float64
	PusherSpeed      float64

	EaterTarget      int
	EaterRadius      float64
	EaterFullScale   float64
	EaterDormancy    float64
	EaterBurstRadius float64
	Pursuit          physics.ForceLaw
}

// DefaultParams mirror the values the sandbox was tuned with.
func DefaultParams() Params {
	return Params{
		EmitterInterval:   0.1,
		DeleterRadius:     100,
		SlowDeleterRadius: 100,
		SlowDeleterRate:   2,
		Attractor:         physics.ForceLaw{Base: 10000, Cap: 10, Exponent: 1.05},
		Repulsor:          physics.ForceLaw{Base: -30000, Cap: 2, Exponent: 1.5},
		PusherHalfWidth:   200,
		PusherHalfHeight:  100,
		PusherSpeed:       3,
		EaterTarget:       10,
		EaterRadius:       20,
		EaterFullScale:    2,
		EaterDormancy:     10,
		EaterBurstRadius:  25,
		Pursuit:           physics.ForceLaw{Base: 5000, Cap: 5, Exponent: 1.5},
	}
}

// Gizmo is one placed effector. Only the payload matching Kind is meaningful.
type Gizmo struct {
	ID       uint64
	Kind     Kind
	Pos      physics.Vec2
	Angle    float64
	Positive bool
	Movement physics.Vec2

	Emitter     EmitterState
	Deleter     DeleterState
	SlowDeleter SlowDeleterState
	Field       FieldState
	Eater       EaterState
}

// Set owns every gizmo plus the placement overlay of gizmos still being
// oriented by the user.
type Set struct {
	Params Params

	items   []Gizmo
	placing []Gizmo
	nextID  uint64
}

func NewSet(p Params) *Set {
	return &Set{Params: p}
}

// Items exposes placed gizmos for in-place updates.
func (s *Set) Items() []Gizmo {
	return s.items
}

// Placing returns gizmos that are still being placed.
func (s *Set) Placing() []Gizmo {
	return s.placing
}

// Count returns how many placed gizmos of kind k and polarity exist.
func (s *Set) Count(k Kind, positive bool) int {
	n := 0
	for i := range s.items {
		if s.items[i].Kind == k && s.items[i].Positive == positive {
			n++
		}
	}
	return n
}

func (s *Set) build(k Kind, pos physics.Vec2, positive bool) Gizmo {
	s.nextID++
	g := Gizmo{
		ID:       s.nextID,
		Kind:     k,
		Pos:      pos,
		Positive: positive && catalog[k].Polar,
	}
	switch k {
	case Emitter:
		g.Emitter = EmitterState{Interval: s.Params.EmitterInterval}
	case Deleter:
		g.Deleter = DeleterState{Radius: s.Params.DeleterRadius}
	case SlowDeleter:
		g.SlowDeleter = SlowDeleterState{Radius: s.Params.SlowDeleterRadius, Rate: s.Params.SlowDeleterRate}
	case Attractor:
		g.Field = FieldState{Law: s.Params.Attractor}
	case Repulsor:
		g.Field = FieldState{Law: s.Params.Repulsor}
	case Eater:
		g.Eater = EaterState{Target: s.Params.EaterTarget}
	}
	return g
}

// Place adds a gizmo at pos. Kinds placed with rotation enter the overlay
// instead; see BeginPlacement.
func (s *Set) Place(k Kind, pos physics.Vec2, positive bool) *Gizmo {
	if catalog[k].Placement == WithRotation {
		return s.BeginPlacement(k, pos, positive)
	}
	s.items = append(s.items, s.build(k, pos, positive))
	return &s.items[len(s.items)-1]
}

// BeginPlacement starts placing a gizmo at pos. A previous unfinished
// placement of the same kind is discarded.
func (s *Set) BeginPlacement(k Kind, pos physics.Vec2, positive bool) *Gizmo {
	s.Discard(k)
	s.placing = append(s.placing, s.build(k, pos, positive))
	return &s.placing[len(s.placing)-1]
}

// Orient points every gizmo of kind k being placed at the cursor.
func (s *Set) Orient(k Kind, cursor physics.Vec2) {
	for i := range s.placing {
		if s.placing[i].Kind == k {
			s.placing[i].Angle = physics.PlainOffset(cursor, s.placing[i].Pos).Angle()
		}
	}
}

// Commit promotes every gizmo of kind k being placed to a placed gizmo.
func (s *Set) Commit(k Kind) int {
	n := 0
	kept := s.placing[:0]
	for _, g := range s.placing {
		if g.Kind == k {
			s.items = append(s.items, g)
			n++
			continue
		}
		kept = append(kept, g)
	}
	s.placing = kept
	return n
}

// Discard drops unfinished placements of kind k.
func (s *Set) Discard(k Kind) int {
	n := 0
	kept := s.placing[:0]
	for _, g := range s.placing {
		if g.Kind == k {
			n++
			continue
		}
		kept = append(kept, g)
	}
	s.placing = kept
	return n
}

// Rewrap moves every gizmo, placed or being placed, back inside e.
func (s *Set) Rewrap(e physics.Extent) {
	for i := range s.items {
		s.items[i].Pos = physics.WrapPosition(s.items[i].Pos, e)
	}
	for i := range s.placing {
		s.placing[i].Pos = physics.WrapPosition(s.placing[i].Pos, e)
	}
}

// DespawnNearest removes the gizmo of kind k and polarity closest to pos
// within radius. It reports whether one was removed.
func (s *Set) DespawnNearest(k Kind, positive bool, pos physics.Vec2, radius float64, e physics.Extent) bool {
	best, bestDist := -1, radius*radius
	for i := range s.items {
		g := &s.items[i]
		if g.Kind != k || g.Positive != positive {
			continue
		}
		if d := physics.WrapOffset(pos, g.Pos, e).LenSq(); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return false
	}
	s.items = append(s.items[:best], s.items[best+1:]...)
	return true
}

// DespawnAll removes every gizmo of kind k and polarity.
func (s *Set) DespawnAll(k Kind, positive bool) int {
	kept := s.items[:0]
	for _, g := range s.items {
		if g.Kind == k && g.Positive == positive {
			continue
		}
		kept = append(kept, g)
	}
	n := len(s.items) - len(kept)
	clear(s.items[len(kept):])
	s.items = kept
	return n
}
