package physics

import "math"

// Force evaluates the capped power law. The offset is the vector from the
// source to the target; a positive base pushes the target away.
// The distance never drops below proximityCap, so nearby pairs stay finite.
func Force(base, proximityCap, exponent float64, offset Vec2) Vec2 {
	if offset.IsZero() {
		return Vec2{}
	}
	dist := offset.Len()
	magnitude := base / math.Pow(math.Max(dist, proximityCap), exponent)
	return Vec2{offset.X / dist * magnitude, offset.Y / dist * magnitude}
}

// ForceLaw bundles the tunables of one caller of Force.
type ForceLaw struct {
	Base     float64 `toml:"base"`
	Cap      float64 `toml:"cap"`
	Exponent float64 `toml:"exponent"`
}

// At evaluates the law for offset.
func (l ForceLaw) At(offset Vec2) Vec2 {
	return Force(l.Base, l.Cap, l.Exponent, offset)
}
