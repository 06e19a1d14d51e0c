package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/ecs/debugui"
	"github.com/plus3/stackgames/internal/iso"
	"github.com/plus3/stackgames/internal/lifecycle"
	"github.com/plus3/stackgames/internal/stacker"
)

// ViewWidth is how many world units fit across the window.
const ViewWidth = 15

var (
	background = colorful.Color{R: 0xD0 / 255.0, G: 0xCB / 255.0, B: 0xC7 / 255.0}

	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type InputSystem struct {
	Tower ecs.Singleton[Tower]
	Input ecs.Singleton[InputState]
	Imgui ecs.Singleton[debugui.ImguiInputState]
}

func (s *InputSystem) pressed() bool {
	imgui := s.Imgui.Get()
	if imgui == nil || !imgui.WantCaptureKeyboard {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			return true
		}
	}
	if imgui == nil || !imgui.WantCaptureMouse {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			return true
		}
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	tower := s.Tower.Get()
	game := tower.Game

	if s.pressed() {
		if out, ok := game.Place(); ok && out.Kind == stacker.Miss {
			log.Printf("stacker: session %s missed by %.2f", game.SessionID, out.Delta)
		}
	}

	if imgui := s.Imgui.Get(); imgui != nil && imgui.WantCaptureKeyboard {
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.Input.Get().Quit = true
	case inpututil.IsKeyJustPressed(ebiten.KeyR), inpututil.IsKeyJustPressed(ebiten.KeyS):
		game.Start()
		tower.Compact = true
		log.Printf("stacker: session %s started at %s difficulty", game.SessionID, game.Difficulty.Label())
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		game.Difficulty.Harder()
		log.Printf("stacker: difficulty %s (%s)", game.Difficulty.Label(), game.Difficulty)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		game.Difficulty.Easier()
		log.Printf("stacker: difficulty %s (%s)", game.Difficulty.Label(), game.Difficulty)
	}
}

// StepSystem advances the slide, the camera and the falling fragments.
type StepSystem struct {
	Tower ecs.Singleton[Tower]
}

func (s *StepSystem) Execute(frame *ecs.UpdateFrame) {
	tower := s.Tower.Get()
	game := tower.Game
	game.Update(time.Duration(frame.DeltaTime * float64(time.Second)))

	if game.Phase == lifecycle.Ended && tower.lastPhase == lifecycle.Playing {
		log.Printf("stacker: session %s ended with score %d (best %d)", game.SessionID, game.Score, game.Best)
	}
	tower.lastPhase = game.Phase
}

type RenderSystem struct {
	Tower  ecs.Singleton[Tower]
	Screen ecs.Singleton[Screen]
	Meshes ecs.Query[struct{ *iso.Mesh }]

	meshes []*iso.Mesh
	path   vector.Path
	vs     []ebiten.Vertex
	is     []uint16
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get().Image
	game := s.Tower.Get().Game

	bg := colorful.Color{}.BlendRgb(background, game.Shade())
	screen.Fill(bg)

	s.meshes = s.meshes[:0]
	for m := range s.Meshes.Values() {
		s.meshes = append(s.meshes, m.Mesh)
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	cam := iso.Camera{Y: game.CameraY, Width: ViewWidth}
	for _, f := range cam.Faces(s.meshes, float64(w), float64(h)) {
		s.fill(screen, f)
	}

	s.drawHUD(screen, game, w, h)
}

func (s *RenderSystem) fill(screen *ebiten.Image, f iso.Face) {
	s.path = vector.Path{}
	s.path.MoveTo(float32(f.Points[0].X()), float32(f.Points[0].Y()))
	for _, p := range f.Points[1:] {
		s.path.LineTo(float32(p.X()), float32(p.Y()))
	}
	s.path.Close()

	s.vs, s.is = s.path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	for i := range s.vs {
		s.vs[i].SrcX, s.vs[i].SrcY = 1, 1
		s.vs[i].ColorR = float32(f.Color.R)
		s.vs[i].ColorG = float32(f.Color.G)
		s.vs[i].ColorB = float32(f.Color.B)
		s.vs[i].ColorA = 1
	}
	screen.DrawTriangles(s.vs, s.is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *RenderSystem) drawHUD(screen *ebiten.Image, game *stacker.Game, w, h int) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d", game.Score), w/2-24, 16)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Best Score: %d", game.Best), w-140, 16)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Difficulty: %s", game.Difficulty.Label()), w-140, 32)

	switch game.Phase {
	case lifecycle.NotStarted:
		panel(screen, w, h, "Stack the blocks on top of each other.\nClick, tap or press SPACE to drop the block.\n\nS or R to start, H harder, E easier.")
	case lifecycle.Ended:
		panel(screen, w, h, fmt.Sprintf("You missed the block!\nScore %d, best %d.\n\nPress R to restart.", game.Score, game.Best))
	}
}

func panel(screen *ebiten.Image, w, h int, text string) {
	const pw, ph = 320, 90
	x, y := float32(w-pw)/2, float32(h-ph)/2
	vector.DrawFilledRect(screen, x, y, pw, ph, color.RGBA{0, 0, 0, 160}, false)
	ebitenutil.DebugPrintAt(screen, text, int(x)+12, int(y)+12)
}
