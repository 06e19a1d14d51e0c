package physics

import "github.com/go-gl/mathgl/mgl64"

// contactSlop keeps touching faces from counting as overlap.
const contactSlop = 1e-9

// AABB is an axis-aligned box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// AABBFromCenter builds a box from its centre and half extents.
func AABBFromCenter(center, half mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Overlaps reports whether a and b share volume. Boxes that only touch do
// not overlap.
func (a AABB) Overlaps(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i]-b.Min[i] <= contactSlop || b.Max[i]-a.Min[i] <= contactSlop {
			return false
		}
	}
	return true
}

// Resolve returns the smallest translation that pushes a out of b, or the
// zero vector when they do not overlap.
func (a AABB) Resolve(b AABB) mgl64.Vec3 {
	if !a.Overlaps(b) {
		return mgl64.Vec3{}
	}

	var result mgl64.Vec3
	best := -1.0
	for i := 0; i < 3; i++ {
		up := b.Max[i] - a.Min[i]
		down := a.Max[i] - b.Min[i]
		if best < 0 || up < best {
			best = up
			result = mgl64.Vec3{}
			result[i] = up
		}
		if down < best {
			best = down
			result = mgl64.Vec3{}
			result[i] = -down
		}
	}
	return result
}

// Contains reports whether p lies inside a, faces included.
func (a AABB) Contains(p mgl64.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}
