// Package physics is a small rigid-body world for box-shaped bodies:
// gravity, box-on-box contact, tipping over an unsupported edge, and a
// kill plane. Collision uses axis-aligned boxes; rotation is integrated
// for display only.
package physics

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// tipRate is the angular speed (rad/s) given to a body whose centre of
	// mass hangs past its support.
	tipRate = 2.0
	// tipPush is the sideways acceleration that slides it off.
	tipPush = 4.0
	// friction is the share of sideways velocity lost per resting sub-step.
	friction       = 0.2
	angularDamping = 0.01
)

// Transform is what a renderer needs to place a body.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Body is a box. Mass 0 makes it static: gravity and contacts never move
// it, though the owner may reposition it directly.
type Body struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	HalfExtents     mgl64.Vec3
	Mass            float64

	// Resting is set when the body ended the last step supported from
	// below. Sleeping bodies are skipped entirely.
	Resting  bool
	Sleeping bool
}

// NewBox returns a body at rest with the given full size.
func NewBox(position, size mgl64.Vec3, mass float64) *Body {
	return &Body{
		Position:    position,
		Rotation:    mgl64.QuatIdent(),
		HalfExtents: size.Mul(0.5),
		Mass:        mass,
	}
}

func (b *Body) Static() bool {
	return b.Mass <= 0
}

func (b *Body) Bounds() AABB {
	return AABBFromCenter(b.Position, b.HalfExtents)
}

func (b *Body) Transform() Transform {
	return Transform{Position: b.Position, Rotation: b.Rotation}
}

// Resize changes the full size of the box in place.
func (b *Body) Resize(size mgl64.Vec3) {
	b.HalfExtents = size.Mul(0.5)
}

// World owns a set of bodies and advances them in fixed sub-steps.
type World struct {
	Gravity mgl64.Vec3
	// Substeps splits every Step; at least one is always run.
	Substeps int
	// KillY puts bodies that fall below it to sleep.
	KillY float64

	bodies []*Body
}

func NewWorld(gravity float64, substeps int) *World {
	return &World{
		Gravity:  mgl64.Vec3{0, gravity, 0},
		Substeps: substeps,
		KillY:    -50,
	}
}

func (w *World) Add(b *Body) *Body {
	w.bodies = append(w.bodies, b)
	return b
}

// Remove drops b from the world. Unknown bodies are ignored.
func (w *World) Remove(b *Body) {
	if i := slices.Index(w.bodies, b); i >= 0 {
		w.bodies = slices.Delete(w.bodies, i, i+1)
	}
}

func (w *World) Clear() {
	clear(w.bodies)
	w.bodies = w.bodies[:0]
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

func (w *World) Len() int {
	return len(w.bodies)
}

// Step advances the world by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	n := max(w.Substeps, 1)
	h := dt / float64(n)
	for range n {
		w.substep(h)
	}
}

func (w *World) substep(h float64) {
	for _, b := range w.bodies {
		if b.Static() || b.Sleeping {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(h))
		b.Position = b.Position.Add(b.Velocity.Mul(h))
		b.Rotation = integrateRotation(b.Rotation, b.AngularVelocity, h)
		b.AngularVelocity = b.AngularVelocity.Mul(1 - angularDamping)
		b.Resting = false
	}

	for i, a := range w.bodies {
		if a.Static() || a.Sleeping {
			continue
		}
		for j, other := range w.bodies {
			if i == j || (other.Sleeping && !other.Static()) {
				continue
			}
			w.collide(a, other, h)
		}
	}

	for _, b := range w.bodies {
		if !b.Static() && !b.Sleeping && b.Position.Y() < w.KillY {
			b.Sleeping = true
			b.Velocity = mgl64.Vec3{}
			b.AngularVelocity = mgl64.Vec3{}
		}
	}
}

// collide pushes dynamic body a out of other along the axis of least
// penetration. A dynamic other takes half of the correction.
func (w *World) collide(a, other *Body, h float64) {
	push := a.Bounds().Resolve(other.Bounds())
	if push == (mgl64.Vec3{}) {
		return
	}

	if other.Static() {
		a.Position = a.Position.Add(push)
	} else {
		total := a.Mass + other.Mass
		a.Position = a.Position.Add(push.Mul(other.Mass / total))
		other.Position = other.Position.Sub(push.Mul(a.Mass / total))
	}

	for i := 0; i < 3; i++ {
		if push[i] != 0 && math.Signbit(push[i]) != math.Signbit(a.Velocity[i]) {
			a.Velocity[i] = 0
		}
	}

	if push.Y() > 0 {
		a.Resting = true
		w.support(a, other.Bounds(), h)
	}
}

// support applies tipping or friction to a body resting on top of s.
func (w *World) support(b *Body, s AABB, h float64) {
	com := b.Position
	var tipX, tipZ float64
	switch {
	case com.X() > s.Max.X():
		tipX = 1
	case com.X() < s.Min.X():
		tipX = -1
	}
	switch {
	case com.Z() > s.Max.Z():
		tipZ = 1
	case com.Z() < s.Min.Z():
		tipZ = -1
	}

	if tipX == 0 && tipZ == 0 {
		b.Velocity[0] *= 1 - friction
		b.Velocity[2] *= 1 - friction
		b.AngularVelocity = b.AngularVelocity.Mul(1 - friction)
		return
	}

	// Rolling the overhanging side down: negative about Z for +X, positive
	// about X for +Z.
	b.AngularVelocity[2] = -tipX * tipRate
	b.AngularVelocity[0] = tipZ * tipRate
	b.Velocity[0] += tipX * tipPush * h
	b.Velocity[2] += tipZ * tipPush * h
}

func integrateRotation(q mgl64.Quat, omega mgl64.Vec3, h float64) mgl64.Quat {
	if omega == (mgl64.Vec3{}) {
		return q
	}
	spin := mgl64.Quat{W: 0, V: omega}.Mul(q).Scale(0.5 * h)
	return q.Add(spin).Normalize()
}
