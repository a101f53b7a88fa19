package sandbox

import (
	"math"
	"math/rand"
	"testing"

	"github.com/olivierh59500/charge-sandbox/internal/config"
	"github.com/olivierh59500/charge-sandbox/internal/gizmo"
	"github.com/olivierh59500/charge-sandbox/internal/input"
	"github.com/olivierh59500/charge-sandbox/internal/particle"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

func vec(x, y float64) physics.Vec2 {
	return physics.Vec2{X: x, Y: y}
}

func newWorld(t *testing.T, mutate func(c *config.Config)) *World {
	t.Helper()
	c := config.Default()
	if mutate != nil {
		mutate(c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	w := New(c)
	if !w.SetExtent(800, 600) {
		t.Fatalf("SetExtent rejected a valid size")
	}
	return w
}

// frame builds a snapshot with the given phases and the cursor at pos.
func frame(pos physics.Vec2, phases map[input.Action]input.Phase) *input.Snapshot {
	s := &input.Snapshot{CursorPos: pos, HasCursor: true}
	for a, p := range phases {
		s.Set(a, p)
	}
	return s
}

func particleRing(n int) particle.Ring {
	return particle.Ring{Count: n, Positive: true, Jitter: 0.02, Seed: 1}
}

func suspended() *input.Snapshot {
	return frame(physics.Vec2{}, map[input.Action]input.Phase{input.SuspendRepulsion: input.Held})
}

func TestOppositePairAnnihilatesInOneTick(t *testing.T) {
	for _, in := range []input.State{nil, suspended()} {
		w := newWorld(t, nil)
		w.Particles.Spawn(vec(400, 300), true)
		w.Particles.Spawn(vec(402, 300), false)

		w.Tick(in)

		if w.Particles.Len() != 0 {
			t.Fatalf("%d particles left after annihilation", w.Particles.Len())
		}
		if w.Stats.Annihilated != 1 {
			t.Fatalf("annihilated pairs = %d, want 1", w.Stats.Annihilated)
		}
	}
}

func TestSuspendRepulsionKeepsParticlesStill(t *testing.T) {
	w := newWorld(t, nil)
	w.Particles.Spawn(vec(400, 300), true)
	w.Particles.Spawn(vec(420, 300), true)

	w.Tick(suspended())
	if got := w.Particles.Items()[0].Pos; got != vec(400, 300) {
		t.Fatalf("particle moved while repulsion suspended: %v", got)
	}

	w.Tick(nil)
	a, b := w.Particles.Items()[0].Pos, w.Particles.Items()[1].Pos
	if a.X >= 400 || b.X <= 420 {
		t.Fatalf("like charges did not repel: %v %v", a, b)
	}
}

func TestEmitterWaitsForLimit(t *testing.T) {
	w := newWorld(t, func(c *config.Config) {
		c.Particle.Limit = 4
		c.Particle.LimitStep = 100
	})
	for i := 0; i < 4; i++ {
		w.Particles.Spawn(vec(50+float64(i)*100, 500), true)
	}
	w.HandleInput(frame(vec(400, 100), map[input.Action]input.Phase{input.PositiveEmitter: input.JustPressed}))
	if w.Gizmos.Count(gizmo.Emitter, true) != 1 {
		t.Fatalf("emitter not placed")
	}

	for tick := 0; tick < 60; tick++ {
		w.Tick(nil)
		if w.Particles.Len() != 4 {
			t.Fatalf("tick %d: population %d grew past the limit", tick, w.Particles.Len())
		}
	}

	w.HandleInput(frame(vec(0, 0), map[input.Action]input.Phase{input.RaiseParticleLimit: input.JustPressed}))
	if w.Limit.Current != 104 {
		t.Fatalf("limit = %d, want 104", w.Limit.Current)
	}
	w.Tick(nil)
	if w.Particles.Len() != 5 || w.Stats.Emitted != 1 {
		t.Fatalf("after raising the limit population=%d emitted=%d, want 5/1", w.Particles.Len(), w.Stats.Emitted)
	}
}

func TestEaterDormancyCycle(t *testing.T) {
	w := newWorld(t, func(c *config.Config) { c.Gizmo.EaterTarget = 3 })
	w.HandleInput(frame(vec(400, 300), map[input.Action]input.Phase{input.PositiveEater: input.JustPressed}))
	w.Particles.Spawn(vec(405, 300), false)
	w.Particles.Spawn(vec(400, 308), false)
	w.Particles.Spawn(vec(393, 296), false)

	w.Tick(suspended())
	if w.Stats.Captured != 3 {
		t.Fatalf("captured %d, want 3", w.Stats.Captured)
	}
	eater := w.Gizmos.Items()[0]
	if !eater.Eater.Dormant() {
		t.Fatalf("eater not dormant after filling up: %+v", eater.Eater)
	}

	items := w.Particles.Items()
	if len(items) != 3 {
		t.Fatalf("burst left %d particles, want 3", len(items))
	}
	var centroid physics.Vec2
	for _, p := range items {
		if !p.Positive {
			t.Fatalf("burst particle has the wrong charge")
		}
		centroid = centroid.Add(p.Pos.Mul(1.0 / 3))
	}
	for _, p := range items {
		if d := p.Pos.Sub(centroid).Len(); math.Abs(d-25) > 1e-6 {
			t.Fatalf("burst particle %v at %v from centre, want 25", p.Pos, d)
		}
	}
	if d := centroid.Sub(vec(400, 300)).Len(); d > 1e-6 {
		t.Fatalf("burst centred on %v, want the eater at capture time", centroid)
	}

	// a fresh victim right next to the resting eater
	w.Particles.Spawn(eater.Pos.Add(vec(3, 0)), false)
	for tick := 2; tick <= 600; tick++ {
		w.Tick(suspended())
		if w.Stats.Captured != 0 {
			t.Fatalf("dormant eater captured at tick %d", tick)
		}
	}
	w.Tick(suspended())
	if w.Stats.Captured != 1 {
		t.Fatalf("eater did not resume 10s after filling up")
	}
}

func TestSlowDeleterCadence(t *testing.T) {
	w := newWorld(t, nil)
	w.HandleInput(frame(vec(100, 100), map[input.Action]input.Phase{input.SlowDeleter: input.JustPressed}))

	var hits []uint64
	for tick := 0; tick < 60; tick++ {
		if w.Particles.Len() == 0 {
			w.Particles.Spawn(vec(110, 100), true)
		}
		w.Tick(nil)
		if w.Stats.Deleted > 0 {
			hits = append(hits, w.Stats.Ticks)
		}
	}
	if len(hits) != 2 || hits[0] != 30 || hits[1] != 60 {
		t.Fatalf("slow deleter fired at ticks %v, want [30 60]", hits)
	}
}

func TestDeleterRemovesImmediately(t *testing.T) {
	w := newWorld(t, nil)
	w.HandleInput(frame(vec(100, 100), map[input.Action]input.Phase{input.Deleter: input.JustPressed}))
	w.Particles.Spawn(vec(150, 100), true)
	w.Particles.Spawn(vec(500, 500), true)
	w.Tick(nil)
	if w.Particles.Len() != 1 || w.Stats.Deleted != 1 {
		t.Fatalf("population %d deleted %d", w.Particles.Len(), w.Stats.Deleted)
	}
}

func TestPusherPlacementDrag(t *testing.T) {
	w := newWorld(t, nil)
	origin := vec(400, 300)

	w.HandleInput(frame(origin, map[input.Action]input.Phase{input.Pusher: input.JustPressed}))
	if len(w.Gizmos.Placing()) != 1 || len(w.Gizmos.Items()) != 0 {
		t.Fatalf("pusher not in placement")
	}
	w.HandleInput(frame(vec(400, 100), map[input.Action]input.Phase{input.Pusher: input.Held}))
	// released away from the press point still commits
	w.HandleInput(frame(vec(700, 700), map[input.Action]input.Phase{input.Pusher: input.JustReleased}))

	if len(w.Gizmos.Placing()) != 0 || len(w.Gizmos.Items()) != 1 {
		t.Fatalf("pusher not committed: placing=%d items=%d", len(w.Gizmos.Placing()), len(w.Gizmos.Items()))
	}
	p := w.Gizmos.Items()[0]
	if p.Pos != origin || math.Abs(p.Angle+math.Pi/2) > 1e-9 {
		t.Fatalf("pusher at %v angle %v, want %v angle -pi/2", p.Pos, p.Angle, origin)
	}

	w.HandleInput(frame(origin, map[input.Action]input.Phase{input.Pusher: input.JustPressed}))
	w.HandleInput(frame(origin, nil))
	if len(w.Gizmos.Placing()) != 0 || len(w.Gizmos.Items()) != 1 {
		t.Fatalf("interrupted placement kept: placing=%d items=%d", len(w.Gizmos.Placing()), len(w.Gizmos.Items()))
	}
}

func TestPusherMovesParticles(t *testing.T) {
	w := newWorld(t, nil)
	w.HandleInput(frame(vec(400, 300), map[input.Action]input.Phase{input.Pusher: input.JustPressed}))
	w.HandleInput(frame(vec(500, 300), map[input.Action]input.Phase{input.Pusher: input.Held}))
	w.HandleInput(frame(vec(500, 300), map[input.Action]input.Phase{input.Pusher: input.JustReleased}))

	w.Particles.Spawn(vec(450, 320), true)
	w.Tick(nil)
	if got := w.Particles.Items()[0].Pos; math.Abs(got.X-453) > 1e-9 || math.Abs(got.Y-320) > 1e-9 {
		t.Fatalf("pushed particle at %v, want {453 320}", got)
	}
}

func TestDespawnChords(t *testing.T) {
	w := newWorld(t, nil)
	cursor := vec(200, 200)

	w.HandleInput(frame(cursor, map[input.Action]input.Phase{input.SpawnParticle: input.JustPressed}))
	w.HandleInput(frame(vec(600, 400), map[input.Action]input.Phase{input.SpawnParticle: input.JustPressed}))
	if w.Particles.Len() != 2 || !w.Particles.Items()[0].Positive {
		t.Fatalf("click spawn failed: %d", w.Particles.Len())
	}

	w.HandleInput(frame(vec(205, 200), map[input.Action]input.Phase{
		input.SpawnParticle:   input.JustPressed,
		input.DespawnModifier: input.Held,
	}))
	if w.Particles.Len() != 1 || w.Particles.Items()[0].Pos != vec(600, 400) {
		t.Fatalf("despawn nearest particle failed: %+v", w.Particles.Items())
	}

	w.HandleInput(frame(cursor, map[input.Action]input.Phase{
		input.SpawnParticle:      input.JustPressed,
		input.DespawnAllModifier: input.Held,
	}))
	if w.Particles.Len() != 0 {
		t.Fatalf("despawn all particles left %d", w.Particles.Len())
	}

	for _, pos := range []physics.Vec2{vec(100, 100), vec(300, 300), vec(500, 500)} {
		w.HandleInput(frame(pos, map[input.Action]input.Phase{input.Attractor: input.JustPressed}))
	}
	w.HandleInput(frame(vec(305, 300), map[input.Action]input.Phase{
		input.Attractor:       input.JustPressed,
		input.DespawnModifier: input.Held,
	}))
	if w.Gizmos.Count(gizmo.Attractor, false) != 2 {
		t.Fatalf("despawn nearest attractor failed")
	}
	w.HandleInput(frame(vec(0, 0), map[input.Action]input.Phase{
		input.Attractor:          input.JustPressed,
		input.DespawnAllModifier: input.Held,
	}))
	if w.Gizmos.Count(gizmo.Attractor, false) != 0 {
		t.Fatalf("despawn all attractors failed")
	}
}

func TestPolarPlacement(t *testing.T) {
	w := newWorld(t, nil)
	w.HandleInput(frame(vec(10, 10), map[input.Action]input.Phase{input.NegativeEmitter: input.JustPressed}))
	w.HandleInput(frame(vec(20, 20), map[input.Action]input.Phase{input.PositiveEater: input.JustPressed}))
	if w.Gizmos.Count(gizmo.Emitter, false) != 1 || w.Gizmos.Count(gizmo.Eater, true) != 1 {
		t.Fatalf("polar gizmos placed with the wrong charge: %+v", w.Gizmos.Items())
	}
	// removing positive emitters leaves the negative one alone
	w.HandleInput(frame(vec(10, 10), map[input.Action]input.Phase{
		input.PositiveEmitter: input.JustPressed,
		input.DespawnModifier: input.Held,
	}))
	if w.Gizmos.Count(gizmo.Emitter, false) != 1 {
		t.Fatalf("despawn crossed polarity")
	}
}

func TestInputWithoutCursor(t *testing.T) {
	w := newWorld(t, nil)
	s := frame(vec(100, 100), map[input.Action]input.Phase{
		input.SpawnParticle: input.JustPressed,
		input.ToggleWrap:    input.JustPressed,
	})
	s.HasCursor = false
	w.HandleInput(s)
	if w.Particles.Len() != 0 {
		t.Fatalf("spawned without a cursor")
	}
	if w.Wrap {
		t.Fatalf("toggles should still apply without a cursor")
	}
	w.HandleInput(nil)
}

func TestToggles(t *testing.T) {
	w := newWorld(t, nil)
	start := w.Limit.Current
	w.HandleInput(frame(vec(0, 0), map[input.Action]input.Phase{
		input.ToggleInertia:      input.JustPressed,
		input.Pause:              input.JustPressed,
		input.LowerParticleLimit: input.JustPressed,
	}))
	if !w.Integrator.Inertia || !w.Paused || w.Limit.Current != start-w.Limit.Step {
		t.Fatalf("toggles not applied: inertia=%v paused=%v limit=%d", w.Integrator.Inertia, w.Paused, w.Limit.Current)
	}
	// held is not an edge
	w.HandleInput(frame(vec(0, 0), map[input.Action]input.Phase{input.ToggleInertia: input.Held}))
	if !w.Integrator.Inertia {
		t.Fatalf("held action toggled again")
	}

	w.Particles.Spawn(vec(400, 300), true)
	w.Particles.Items()[0].Movement = vec(50, 0)
	w.Tick(nil)
	if w.Stats.Ticks != 0 || w.Particles.Items()[0].Pos != vec(400, 300) {
		t.Fatalf("paused world advanced")
	}
}

func TestExtentHandling(t *testing.T) {
	w := New(config.Default())
	w.Particles.Spawn(vec(10, 10), true)
	w.Particles.Items()[0].Movement = vec(5, 0)

	w.Tick(nil)
	if w.Stats.Ticks != 0 || w.Particles.Items()[0].Pos != vec(10, 10) {
		t.Fatalf("ticked without an extent")
	}
	w.Seed(particleRing(5))
	if w.Particles.Len() != 1 {
		t.Fatalf("seeded without an extent")
	}

	if w.SetExtent(0, 0) {
		t.Fatalf("zero extent accepted")
	}
	if !w.SetExtent(640, 480) {
		t.Fatalf("valid extent rejected")
	}
	if w.SetExtent(640, 0) || w.SetExtent(640, 480) {
		t.Fatalf("degenerate or unchanged extent reported as a change")
	}
	if e, ok := w.Extent(); !ok || e != (physics.Extent{W: 640, H: 480}) {
		t.Fatalf("extent = %v %v", e, ok)
	}

	// shrinking the window wraps particles back inside
	w.Particles.Spawn(vec(600, 400), false)
	w.SetExtent(300, 300)
	for _, p := range w.Particles.Items() {
		if p.Pos.X < 0 || p.Pos.X >= 300 || p.Pos.Y < 0 || p.Pos.Y >= 300 {
			t.Fatalf("particle %v outside the shrunk extent", p.Pos)
		}
	}
}

func TestShrinkRewrapsGizmos(t *testing.T) {
	w := newWorld(t, nil)
	w.HandleInput(frame(vec(700, 500), map[input.Action]input.Phase{input.Deleter: input.JustPressed}))
	w.HandleInput(frame(vec(650, 450), map[input.Action]input.Phase{input.Pusher: input.JustPressed}))

	if !w.SetExtent(300, 200) {
		t.Fatalf("shrink rejected")
	}
	inRange := func(p physics.Vec2) bool {
		return p.X >= 0 && p.X < 300 && p.Y >= 0 && p.Y < 200
	}
	d := w.Gizmos.Items()[0]
	if !inRange(d.Pos) || d.Pos != vec(100, 100) {
		t.Fatalf("deleter at %v after shrink, want {100 100}", d.Pos)
	}
	if p := w.Gizmos.Placing()[0].Pos; !inRange(p) {
		t.Fatalf("pusher being placed left at %v", p)
	}

	w.Particles.Spawn(vec(120, 100), true)
	w.Tick(nil)
	if w.Particles.Len() != 0 || w.Stats.Deleted != 1 {
		t.Fatalf("deleter at its wrapped spot missed: %d left", w.Particles.Len())
	}

	w.HandleInput(frame(vec(100, 100), map[input.Action]input.Phase{
		input.Deleter:         input.JustPressed,
		input.DespawnModifier: input.Held,
	}))
	if w.Gizmos.Count(gizmo.Deleter, false) != 0 {
		t.Fatalf("despawn at the wrapped spot did not remove the deleter")
	}
}

func TestPositionsStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for _, inertia := range []bool{false, true} {
		w := newWorld(t, func(c *config.Config) { c.Sim.Inertia = inertia })
		for i := 0; i < 150; i++ {
			w.Particles.Spawn(vec(rng.Float64()*800, rng.Float64()*600), rng.Intn(2) == 0)
		}
		w.Gizmos.Place(gizmo.Attractor, vec(400, 300), false)
		w.Gizmos.Place(gizmo.Repulsor, vec(5, 5), false)
		w.Gizmos.Place(gizmo.Eater, vec(200, 200), true)

		for tick := 0; tick < 120; tick++ {
			w.Tick(nil)
			for _, p := range w.Particles.Items() {
				if p.Pos.X < 0 || p.Pos.X >= 800 || p.Pos.Y < 0 || p.Pos.Y >= 600 ||
					math.IsNaN(p.Pos.X) || math.IsNaN(p.Pos.Y) {
					t.Fatalf("inertia=%v tick %d: particle at %v", inertia, tick, p.Pos)
				}
			}
		}
		a, b := w.Particles.BatchSizes()
		if a+b != w.Particles.Len() {
			t.Fatalf("batch partition lost particles: %d+%d != %d", a, b, w.Particles.Len())
		}
	}
}

func TestSeedRing(t *testing.T) {
	w := newWorld(t, nil)
	w.Seed(particleRing(1000))
	if w.Particles.Len() != 1000 {
		t.Fatalf("seeded %d", w.Particles.Len())
	}
}

func TestDrawCommands(t *testing.T) {
	w := newWorld(t, func(c *config.Config) { c.Gizmo.EaterTarget = 2 })
	w.Particles.Spawn(vec(10, 10), true)
	w.Particles.Spawn(vec(20, 20), false)
	w.Gizmos.Place(gizmo.Emitter, vec(30, 30), true)
	w.Gizmos.Place(gizmo.Deleter, vec(40, 40), false)
	e := w.Gizmos.Place(gizmo.Eater, vec(50, 50), false)
	e.Eater.Eaten = 1
	w.Gizmos.Place(gizmo.Pusher, vec(60, 60), false)

	cmds := w.AppendDrawCommands(nil)
	if len(cmds) != 6 {
		t.Fatalf("got %d commands, want 6", len(cmds))
	}
	for i := 1; i < len(cmds); i++ {
		if cmds[i].Layer < cmds[i-1].Layer {
			t.Fatalf("commands not ordered by layer: %v before %v", cmds[i-1].Layer, cmds[i].Layer)
		}
	}

	var sawRing, sawEater, sawPlacing bool
	for _, c := range cmds {
		switch {
		case c.Sprite == SpriteDeleterRing:
			sawRing = c.Size == 100
		case c.Sprite == SpriteNone && c.Pos == vec(50, 50):
			sawEater = c.Size == 15
		case c.Sprite == SpritePusherArrow:
			sawPlacing = c.Tint.A < 0xff
		}
	}
	if !sawRing || !sawEater || !sawPlacing {
		t.Fatalf("ring=%v eater=%v placing=%v in %+v", sawRing, sawEater, sawPlacing, cmds)
	}

	reused := w.AppendDrawCommands(cmds[:0])
	if len(reused) != 6 {
		t.Fatalf("buffer reuse produced %d commands", len(reused))
	}
}
