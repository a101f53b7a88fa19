package particle

import (
	"sync"

	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// Engine computes particle-particle forces.
//
// The population is split by batch tag. Pass A updates every A particle from
// all A-A pairs and from every B particle, pass B mirrors it. A pass writes
// only the pending accumulators of its own batch and reads only positions and
// charges of the other, so the two passes can run at the same time.
type Engine struct {
	Law      physics.ForceLaw
	Parallel bool
}

// Apply accumulates one tick of pairwise forces into the pending
// accumulators. Integrate folds them into Movement.
func (e Engine) Apply(s *Store, topo physics.Topology, dt float64) {
	s.batches[BatchA] = s.batches[BatchA][:0]
	s.batches[BatchB] = s.batches[BatchB][:0]
	for i := range s.items {
		if s.Removed(i) {
			continue
		}
		b := s.items[i].Batch
		s.batches[b] = append(s.batches[b], i)
	}

	a, b := s.batches[BatchA], s.batches[BatchB]
	if !e.Parallel {
		e.pass(s.items, a, b, topo, dt)
		e.pass(s.items, b, a, topo, dt)
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		e.pass(s.items, a, b, topo, dt)
	}()
	go func() {
		defer wg.Done()
		e.pass(s.items, b, a, topo, dt)
	}()
	wg.Wait()
}

// pass writes into the pending accumulators of own and only reads other.
func (e Engine) pass(items []Particle, own, other []int, topo physics.Topology, dt float64) {
	for n, i := range own {
		pi := &items[i]
		for _, j := range own[n+1:] {
			pj := &items[j]
			f := e.pair(pi, pj, topo, dt)
			pi.pending = pi.pending.Add(f)
			pj.pending = pj.pending.Sub(f)
		}
		for _, j := range other {
			pi.pending = pi.pending.Add(e.pair(pi, &items[j], topo, dt))
		}
	}
}

// pair returns the force on a from b. Like charges repel, opposite attract.
func (e Engine) pair(a, b *Particle, topo physics.Topology, dt float64) physics.Vec2 {
	if a.Pos == b.Pos {
		return physics.Vec2{}
	}
	f := e.Law.At(topo.Offset(a.Pos, b.Pos)).Mul(dt)
	if a.Positive != b.Positive {
		return f.Neg()
	}
	return f
}
