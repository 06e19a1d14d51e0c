// Package stacker implements the box-stacking game: a layer slides back
// and forth over the tower and is cut to the overlap when dropped, with
// the remainder falling under physics.
package stacker

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/plus3/stackgames/internal/config"
	"github.com/plus3/stackgames/internal/lifecycle"
	"github.com/plus3/stackgames/internal/physics"
)

// Game is one stacker session plus the best score across sessions.
type Game struct {
	Phase      lifecycle.Phase
	Stack      []*Layer
	Fragments  []*Fragment
	Score      int
	Best       int
	Difficulty Difficulty
	// CameraY is the height the camera has risen to.
	CameraY   float64
	SessionID uuid.UUID

	cfg     config.Stacker
	scene   Scene
	world   *physics.World
	forward bool
}

// New builds the foundation and a first layer waiting at its start
// offset. Nothing moves until Start.
func New(cfg config.Stacker, scene Scene) *Game {
	if scene == nil {
		scene = NopScene{}
	}
	g := &Game{
		Difficulty: NewDifficulty(cfg.Difficulty),
		cfg:        cfg,
		scene:      scene,
		world:      physics.NewWorld(cfg.Gravity, cfg.SolverSubsteps),
	}
	g.reset()
	return g
}

func (g *Game) World() *physics.World { return g.world }

// Top is the moving layer, or the foundation after a miss.
func (g *Game) Top() *Layer {
	return g.Stack[len(g.Stack)-1]
}

// Start clears the tower and begins a new session. It restarts a session
// in progress too.
func (g *Game) Start() {
	g.reset()
	g.SessionID = uuid.New()
	g.Phase.Start()
}

func (g *Game) reset() {
	for _, l := range g.Stack {
		g.scene.Remove(l.mirror)
	}
	for _, f := range g.Fragments {
		g.scene.Remove(f.mirror)
	}
	g.world.Clear()
	g.Stack = g.Stack[:0]
	g.Fragments = g.Fragments[:0]
	g.Score = 0
	g.CameraY = g.cfg.CameraHeight
	g.forward = true

	size := g.cfg.BoxSize
	g.addLayer(Box{Width: size, Depth: size}, AxisNone)
	g.addLayer(Box{Center: mgl64.Vec3{g.cfg.StartOffset, 0, 0}, Width: size, Depth: size}, AxisX)
}

// addLayer puts b one level above the current top.
func (g *Game) addLayer(b Box, axis Axis) *Layer {
	b.Center[1] = g.cfg.BoxHeight * float64(len(g.Stack))
	spec := BoxSpec{Box: b, Height: g.cfg.BoxHeight, Level: len(g.Stack)}

	l := &Layer{
		Box:    b,
		Axis:   axis,
		Level:  spec.Level,
		height: g.cfg.BoxHeight,
		mirror: g.scene.Add(spec),
		body:   g.world.Add(physics.NewBox(b.Center, b.Dimensions(g.cfg.BoxHeight), 0)),
	}
	g.Stack = append(g.Stack, l)
	return l
}

// addFragment drops b from its current position. Its mass scales with its
// footprint.
func (g *Game) addFragment(b Box) *Fragment {
	size := g.cfg.BoxSize
	mass := g.cfg.FragmentMass * (b.Width / size) * (b.Depth / size)
	spec := BoxSpec{Box: b, Height: g.cfg.BoxHeight, Level: len(g.Stack), Falling: true}

	f := &Fragment{
		Box:    b,
		Level:  spec.Level,
		mirror: g.scene.Add(spec),
		body:   g.world.Add(physics.NewBox(b.Center, b.Dimensions(g.cfg.BoxHeight), mass)),
	}
	g.Fragments = append(g.Fragments, f)
	return f
}

func (g *Game) removeTop() {
	top := g.Top()
	g.world.Remove(top.body)
	g.scene.Remove(top.mirror)
	g.Stack = g.Stack[:len(g.Stack)-1]
}

// Place drops the moving layer. It reports false when there is nothing to
// drop: the session is not being played.
func (g *Game) Place() (Outcome, bool) {
	if !g.Phase.Active() || len(g.Stack) < 2 {
		return Outcome{}, false
	}

	top, prev := g.Top(), g.Stack[len(g.Stack)-2]
	out := ResolveDrop(top.Box, prev.Box, top.Axis, g.cfg.StartOffset)

	switch out.Kind {
	case Miss:
		g.addFragment(out.Fragment)
		g.removeTop()
		_ = g.Phase.End()

	case Cut:
		top.resize(out.Kept)
		if out.HasFragment() {
			g.addFragment(out.Fragment)
		}

		g.Score = len(g.Stack) - 1
		g.Best = max(g.Best, g.Score)

		g.addLayer(out.Next, out.NextAxis)
		g.forward = true
	}
	return out, true
}

// speed is the travel speed in units per millisecond.
func (g *Game) speed() float64 {
	return g.cfg.BaseSpeed * g.Difficulty.Value()
}

// Update advances the session by dt: the moving layer slides, the camera
// rises towards the top of the tower and fragments fall.
func (g *Game) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	ms := float64(dt) / float64(time.Millisecond)
	step := g.speed() * ms

	if top := g.Top(); g.Phase.Active() && top.Axis != AxisNone {
		pos := top.Box.along(top.Axis)
		if pos > g.cfg.TravelBound {
			g.forward = false
		}
		if pos < -g.cfg.TravelBound && !g.forward {
			g.forward = true
		}

		if g.forward {
			pos += step
		} else {
			pos -= step
		}
		top.moveTo(top.Box.movedTo(top.Axis, pos).Center)
	}

	if g.CameraY < g.cfg.BoxHeight*float64(len(g.Stack)-2)+g.cfg.CameraHeight {
		g.CameraY += step
	}

	g.world.Step(dt.Seconds())
	for _, f := range g.Fragments {
		f.sync()
	}
}

// Shade is the background brightness: it darkens by 2% per placed layer.
func (g *Game) Shade() float64 {
	if len(g.Stack) <= 2 {
		return 1
	}
	return max(0, 1-float64(len(g.Stack)-2)*0.02)
}
