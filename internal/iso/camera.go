package iso

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/stackgames/internal/physics"
)

// eyeOffset places the camera above and in front of the point it looks at.
// The camera only ever translates, so the view direction is fixed.
var eyeOffset = mgl64.Vec3{4, 4, 4}

var (
	toEye   = eyeOffset.Normalize()
	toLight = mgl64.Vec3{10, 20, 0}.Normalize()
)

const (
	ambient     = 0.6
	directional = 0.6
)

// Camera is an orthographic camera at height Y.
type Camera struct {
	Y float64
	// Width is how many world units fit across the screen.
	Width float64
}

// ViewProjection maps world space to clip space for a screen of the given
// pixel size.
func (c Camera) ViewProjection(w, h float64) mgl64.Mat4 {
	target := mgl64.Vec3{0, c.Y - eyeOffset.Y(), 0}
	view := mgl64.LookAtV(target.Add(eyeOffset), target, mgl64.Vec3{0, 1, 0})

	halfW := c.Width / 2
	halfH := halfW * h / w
	proj := mgl64.Ortho(-halfW, halfW, -halfH, halfH, 0, 100)
	return proj.Mul4(view)
}

// Project returns p in pixels and its depth; larger depths are further
// from the camera.
func Project(vp mgl64.Mat4, p mgl64.Vec3, w, h float64) (mgl64.Vec2, float64) {
	clip := mgl64.TransformCoordinate(p, vp)
	return mgl64.Vec2{(clip.X() + 1) / 2 * w, (1 - clip.Y()) / 2 * h}, clip.Z()
}

// Face is one visible side of a box, ready to fill.
type Face struct {
	Points [4]mgl64.Vec2
	Color  colorful.Color
}

type side struct {
	normal  mgl64.Vec3
	corners [4]mgl64.Vec3
}

var sides = [6]side{
	{mgl64.Vec3{1, 0, 0}, [4]mgl64.Vec3{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}},
	{mgl64.Vec3{-1, 0, 0}, [4]mgl64.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{mgl64.Vec3{0, 1, 0}, [4]mgl64.Vec3{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}}},
	{mgl64.Vec3{0, -1, 0}, [4]mgl64.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	{mgl64.Vec3{0, 0, 1}, [4]mgl64.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{mgl64.Vec3{0, 0, -1}, [4]mgl64.Vec3{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}}},
}

// Shade lights c the way the tower is lit: an ambient term plus one
// directional light from above and to the side.
func Shade(c colorful.Color, normal mgl64.Vec3) colorful.Color {
	k := ambient + directional*max(0, normal.Dot(toLight))
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()
}

// projected is a mesh after projection: its faces, world bounds, screen
// bounds and depth.
type projected struct {
	faces     []Face
	bounds    physics.AABB
	screenMin mgl64.Vec2
	screenMax mgl64.Vec2
	depth     float64

	before int
	placed bool
}

func project(vp mgl64.Mat4, m *Mesh, w, h float64) (*projected, bool) {
	half := m.Size.Mul(0.5)
	rot := m.Transform.Rotation
	pos := m.Transform.Position

	inf := math.Inf(1)
	p := &projected{
		bounds:    physics.AABB{Min: pos, Max: pos},
		screenMin: mgl64.Vec2{inf, inf},
		screenMax: mgl64.Vec2{-inf, -inf},
	}
	_, p.depth = Project(vp, pos, w, h)

	for _, s := range sides {
		normal := rot.Rotate(s.normal)
		var pts [4]mgl64.Vec2
		for i, c := range s.corners {
			world := pos.Add(rot.Rotate(mgl64.Vec3{c[0] * half[0], c[1] * half[1], c[2] * half[2]}))
			for k := range 3 {
				p.bounds.Min[k] = min(p.bounds.Min[k], world[k])
				p.bounds.Max[k] = max(p.bounds.Max[k], world[k])
			}
			pts[i], _ = Project(vp, world, w, h)
			for k := range 2 {
				p.screenMin[k] = min(p.screenMin[k], pts[i][k])
				p.screenMax[k] = max(p.screenMax[k], pts[i][k])
			}
		}
		if normal.Dot(toEye) > 1e-9 {
			p.faces = append(p.faces, Face{Points: pts, Color: Shade(m.Color, normal)})
		}
	}

	visible := p.screenMax[0] >= 0 && p.screenMin[0] <= w && p.screenMax[1] >= 0 && p.screenMin[1] <= h
	return p, visible
}

// behind reports whether a must be drawn before b: some axis separates
// them with b on the camera side.
func behind(a, b *projected) bool {
	const eps = 1e-9
	for k := range 3 {
		if a.bounds.Max[k] <= b.bounds.Min[k]+eps {
			return true
		}
		if b.bounds.Max[k] <= a.bounds.Min[k]+eps {
			return false
		}
	}
	return a.depth > b.depth
}

func screenOverlap(a, b *projected) bool {
	return a.screenMin[0] < b.screenMax[0] && b.screenMin[0] < a.screenMax[0] &&
		a.screenMin[1] < b.screenMax[1] && b.screenMin[1] < a.screenMax[1]
}

// Faces projects meshes onto a w by h screen and returns their visible
// faces in drawing order. Meshes are ordered topologically by which one
// hides which; ties and cycles fall back to depth.
func (c Camera) Faces(meshes []*Mesh, w, h float64) []Face {
	vp := c.ViewProjection(w, h)

	var items []*projected
	for _, m := range meshes {
		if p, ok := project(vp, m, w, h); ok {
			items = append(items, p)
		}
	}
	slices.SortStableFunc(items, func(a, b *projected) int {
		return cmp.Compare(b.depth, a.depth)
	})

	// after[i] lists the items that must be drawn after item i.
	after := make([][]int, len(items))
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if !screenOverlap(items[i], items[j]) {
				continue
			}
			if behind(items[i], items[j]) {
				after[i] = append(after[i], j)
				items[j].before++
			} else {
				after[j] = append(after[j], i)
				items[i].before++
			}
		}
	}

	order := make([]int, 0, len(items))
	for len(order) < len(items) {
		next := -1
		for i, it := range items {
			if !it.placed && it.before == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			// Cycle: take the deepest remaining item.
			for i, it := range items {
				if !it.placed {
					next = i
					break
				}
			}
		}
		items[next].placed = true
		order = append(order, next)
		for _, j := range after[next] {
			items[j].before--
		}
	}

	var faces []Face
	for _, i := range order {
		faces = append(faces, items[i].faces...)
	}
	return faces
}
