package physics

import "math"

// Extent is the size of the toroidal world. It follows the window and may be
// zero while the window is minimised.
type Extent struct {
	W, H float64
}

// Valid reports whether both dimensions are usable for wrapping.
func (e Extent) Valid() bool {
	return e.W > 0 && e.H > 0
}

func (e Extent) Center() Vec2 {
	return Vec2{e.W / 2, e.H / 2}
}

// WrapOffset returns the shortest vector from b to a on a torus of the given
// extent. Each axis of the result has magnitude at most half the extent.
func WrapOffset(a, b Vec2, e Extent) Vec2 {
	return Vec2{
		wrapAxis(a.X, b.X, e.W),
		wrapAxis(a.Y, b.Y, e.H),
	}
}

func wrapAxis(a, b, size float64) float64 {
	d := a - b
	if math.Abs(d) > size/2 {
		if a > b {
			return d - size
		}
		return d + size
	}
	return d
}

// PlainOffset returns a - b without wrap-around.
func PlainOffset(a, b Vec2) Vec2 {
	return a.Sub(b)
}

// Topology selects how force offsets are measured. Wrap off disables forces
// reaching across the edges; positions still wrap when integrated.
type Topology struct {
	Extent Extent
	Wrap   bool
}

// Offset returns the vector from b to a used by force laws.
func (t Topology) Offset(a, b Vec2) Vec2 {
	if t.Wrap {
		return WrapOffset(a, b, t.Extent)
	}
	return PlainOffset(a, b)
}

// WrapPosition maps p into [0, W) x [0, H) with a floored modulo.
func WrapPosition(p Vec2, e Extent) Vec2 {
	return Vec2{floorMod(p.X, e.W), floorMod(p.Y, e.H)}
}

func floorMod(x, size float64) float64 {
	r := math.Mod(x, size)
	if r < 0 {
		r += size
	}
	// r+size rounds up to size for tiny negative r
	if r >= size {
		r = 0
	}
	return r
}
