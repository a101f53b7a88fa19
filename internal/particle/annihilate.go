package particle

import "github.com/olivierh59500/charge-sandbox/internal/physics"

// Annihilate flags opposite-charge pairs closer than radius. Each positive
// particle cancels against at most one negative, the first unflagged one in
// spawn order. Flags are never cleared here, so a particle is matched at most
// once per tick. It returns the number of annihilated pairs.
func (s *Store) Annihilate(radius float64, e physics.Extent) int {
	s.pos, s.neg = s.pos[:0], s.neg[:0]
	for i := range s.items {
		if s.Removed(i) {
			continue
		}
		if s.items[i].Positive {
			s.pos = append(s.pos, i)
		} else {
			s.neg = append(s.neg, i)
		}
	}

	limit := radius * radius
	pairs := 0
	for _, i := range s.pos {
		p := &s.items[i]
		for _, j := range s.neg {
			n := &s.items[j]
			if n.Cancelled {
				continue
			}
			if physics.WrapOffset(p.Pos, n.Pos, e).LenSq() < limit {
				p.Cancelled = true
				n.Cancelled = true
				pairs++
				break
			}
		}
	}
	return pairs
}
