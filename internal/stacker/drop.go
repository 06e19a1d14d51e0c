package stacker

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis is the horizontal axis a layer slides along.
type Axis int

const (
	// AxisNone marks the foundation, which never moves.
	AxisNone Axis = iota
	AxisX
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	default:
		return "none"
	}
}

// Index is the axis' component index in a mgl64.Vec3.
func (a Axis) Index() int {
	if a == AxisZ {
		return 2
	}
	return 0
}

// Other is the axis the next layer travels on.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisZ
	}
	return AxisX
}

// Box is the footprint of a layer or fragment. Height is the same for
// every box and lives in the config.
type Box struct {
	Center mgl64.Vec3
	Width  float64 // along x
	Depth  float64 // along z
}

// Size is the box's extent along a.
func (b Box) Size(a Axis) float64 {
	if a == AxisZ {
		return b.Depth
	}
	return b.Width
}

func (b Box) withSize(a Axis, v float64) Box {
	if a == AxisZ {
		b.Depth = v
	} else {
		b.Width = v
	}
	return b
}

func (b Box) along(a Axis) float64 {
	return b.Center[a.Index()]
}

func (b Box) movedTo(a Axis, v float64) Box {
	b.Center[a.Index()] = v
	return b
}

// Dimensions is the full size of the box for a given height.
func (b Box) Dimensions(height float64) mgl64.Vec3 {
	return mgl64.Vec3{b.Width, height, b.Depth}
}

func (b Box) String() string {
	return fmt.Sprintf("box(%.3f,%.3f,%.3f %.3fx%.3f)", b.Center.X(), b.Center.Y(), b.Center.Z(), b.Width, b.Depth)
}

// OutcomeKind says whether a drop landed.
type OutcomeKind int

const (
	Miss OutcomeKind = iota
	Cut
)

func (k OutcomeKind) String() string {
	if k == Cut {
		return "cut"
	}
	return "miss"
}

// Outcome is the result of dropping the moving layer onto the one below.
type Outcome struct {
	Kind OutcomeKind
	// Delta is the signed offset of the top box from the box below along
	// the travel axis; Overhang is its magnitude.
	Delta    float64
	Overhang float64
	Overlap  float64

	// Kept is the top box trimmed to the overlap. Set on Cut only.
	Kept Box
	// Fragment falls away: the sliced remainder on Cut, the whole top box
	// on Miss.
	Fragment Box
	// Next is where the following layer starts, at the same height as the
	// top box; the caller lifts it. Set on Cut only.
	Next     Box
	NextAxis Axis
}

// HasFragment reports whether anything falls. A perfect drop cuts nothing.
func (o Outcome) HasFragment() bool {
	return o.Kind == Miss || o.Overhang > 0
}

// ResolveDrop decides what happens when top, sliding along axis, is
// dropped onto prev. The next layer starts at startOffset on its own axis.
func ResolveDrop(top, prev Box, axis Axis, startOffset float64) Outcome {
	delta := top.along(axis) - prev.along(axis)
	overhang := math.Abs(delta)
	size := top.Size(axis)
	overlap := size - overhang

	out := Outcome{
		Delta:    delta,
		Overhang: overhang,
		Overlap:  overlap,
	}
	if overlap <= 0 {
		out.Kind = Miss
		out.Fragment = top
		return out
	}

	out.Kind = Cut
	out.Kept = top.withSize(axis, overlap).movedTo(axis, top.along(axis)-delta/2)

	shift := (overlap/2 + overhang/2) * sign(delta)
	out.Fragment = out.Kept.withSize(axis, overhang).movedTo(axis, out.Kept.along(axis)+shift)

	out.NextAxis = axis.Other()
	out.Next = out.Kept.movedTo(out.NextAxis, startOffset)
	return out
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
