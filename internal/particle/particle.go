// Package particle owns the charged particle population and the per-tick
// particle-particle interactions: pairwise forces, annihilation and movement
// integration.
package particle

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/olivierh59500/charge-sandbox/internal/motion"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// Batch partitions the population for the two force passes.
type Batch uint8

const (
	BatchA Batch = iota
	BatchB
)

func (b Batch) other() Batch {
	return b ^ 1
}

// Particle is a charged point mass.
type Particle struct {
	ID       uint64
	Pos      physics.Vec2
	Positive bool

	// Movement is written by effectors and by the merge step.
	Movement physics.Vec2
	// pending is written only by the force pass that owns the particle's batch.
	pending physics.Vec2

	// Cancelled marks the particle for the end-of-tick despawn pass.
	Cancelled bool
	Batch     Batch

	despawned bool
}

// Store holds the live population in spawn order.
type Store struct {
	items     []Particle
	nextID    uint64
	nextBatch Batch

	// reused index buffers, indexed by Batch
	batches [2][]int
	pos     []int
	neg     []int
}

func NewStore(capacity int) *Store {
	return &Store{items: make([]Particle, 0, capacity)}
}

// Spawn appends a particle and assigns the next batch from the rotating counter.
func (s *Store) Spawn(pos physics.Vec2, positive bool) *Particle {
	s.nextID++
	s.items = append(s.items, Particle{
		ID:       s.nextID,
		Pos:      pos,
		Positive: positive,
		Batch:    s.nextBatch,
	})
	s.nextBatch = s.nextBatch.other()
	return &s.items[len(s.items)-1]
}

// Len returns the number of particles, including any awaiting Sweep.
func (s *Store) Len() int {
	return len(s.items)
}

// Items exposes the population for in-place updates. The slice is invalidated
// by Spawn and Sweep.
func (s *Store) Items() []Particle {
	return s.items
}

// Despawn marks the particle at index i for removal by the next Sweep.
func (s *Store) Despawn(i int) {
	s.items[i].despawned = true
}

// Removed reports whether the particle at i is already marked for removal.
func (s *Store) Removed(i int) bool {
	return s.items[i].despawned || s.items[i].Cancelled
}

// Sweep removes cancelled and despawned particles, keeping spawn order.
// It returns how many were removed.
func (s *Store) Sweep() int {
	kept := s.items[:0]
	for _, p := range s.items {
		if p.despawned || p.Cancelled {
			continue
		}
		kept = append(kept, p)
	}
	removed := len(s.items) - len(kept)
	clear(s.items[len(kept):])
	s.items = kept
	return removed
}

// Clear removes every particle. The batch counter keeps rotating.
func (s *Store) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// Nearest returns the index of the live particle closest to pos within radius
// on the torus, or -1.
func (s *Store) Nearest(pos physics.Vec2, radius float64, e physics.Extent) int {
	best, bestDist := -1, radius*radius
	for i := range s.items {
		if s.Removed(i) {
			continue
		}
		d := physics.WrapOffset(pos, s.items[i].Pos, e).LenSq()
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// BatchSizes returns the number of particles tagged A and B.
func (s *Store) BatchSizes() (a, b int) {
	for i := range s.items {
		if s.items[i].Batch == BatchA {
			a++
		} else {
			b++
		}
	}
	return a, b
}

// Integrate merges each particle's batch accumulator into its movement and
// advances it. The extent must be valid.
func (s *Store) Integrate(in motion.Integrator, dt float64, e physics.Extent) {
	for i := range s.items {
		p := &s.items[i]
		motion.Merge(&p.Movement, &p.pending)
		in.Step(&p.Pos, &p.Movement, dt, e)
	}
}

// Ring describes the initial seeding of the population.
type Ring struct {
	Count    int
	Positive bool
	// Jitter perturbs each radius by up to this fraction using perlin noise.
	Jitter float64
	Seed   int64
}

// SeedRing spawns r.Count particles evenly spaced on a circle around the
// world centre with radius 0.45 of the smallest dimension.
func (s *Store) SeedRing(r Ring, e physics.Extent) {
	if r.Count <= 0 || !e.Valid() {
		return
	}
	radius := math.Min(e.W, e.H) * 0.9 / 2
	var noise *perlin.Perlin
	if r.Jitter > 0 {
		noise = perlin.NewPerlin(2, 2, 3, r.Seed)
	}
	for n := 0; n < r.Count; n++ {
		angle := float64(n) * 2 * math.Pi / float64(r.Count)
		rr := radius
		if noise != nil {
			rr *= 1 + r.Jitter*noise.Noise1D(angle)
		}
		pos := e.Center().Add(physics.Vec2{Y: rr}.Rotate(angle))
		s.Spawn(physics.WrapPosition(pos, e), r.Positive)
	}
}

// CircularPoints returns count points evenly spaced on a circle, starting
// straight along +Y from the midpoint.
func CircularPoints(mid physics.Vec2, radius float64, count int) []physics.Vec2 {
	pts := make([]physics.Vec2, 0, count)
	for n := 0; n < count; n++ {
		angle := float64(n) * 2 * math.Pi / float64(count)
		pts = append(pts, mid.Add(physics.Vec2{Y: radius}.Rotate(angle)))
	}
	return pts
}
