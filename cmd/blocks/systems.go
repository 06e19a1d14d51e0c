package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/ecs/debugui"
	"github.com/plus3/stackgames/internal/blocks"
	"github.com/plus3/stackgames/internal/lifecycle"
)

const (
	CellSize = 24
	BoardX   = 20
	BoardY   = 20
	flashTTL = 0.25
)

var kindColors = func() [len(blocks.Kinds)]color.Color {
	var colors [len(blocks.Kinds)]color.Color
	for i := range colors {
		colors[i] = colorful.Hsv(float64(i)*360/float64(len(colors)), 0.55, 0.95).Clamped()
	}
	return colors
}()

type InputSystem struct {
	Session ecs.Singleton[Session]
	Input   ecs.Singleton[InputState]
	Imgui   ecs.Singleton[debugui.ImguiInputState]
}

// repeat reports whether a held key should fire this frame: immediately on
// press, then every RepeatRate after RepeatDelay.
func (s *InputSystem) repeat(key ebiten.Key, held *float64, dt float64) bool {
	input := s.Input.Get()
	switch {
	case inpututil.IsKeyJustPressed(key):
		*held = 0
		return true
	case ebiten.IsKeyPressed(key):
		*held += dt
		if *held > input.RepeatDelay {
			*held -= input.RepeatRate
			return true
		}
	default:
		*held = 0
	}
	return false
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	input := s.Input.Get()
	if imgui := s.Imgui.Get(); imgui != nil && imgui.WantCaptureKeyboard {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		input.Quit = true
		return
	}

	state := session.State
	restart := inpututil.IsKeyJustPressed(ebiten.KeyR)
	if restart || (inpututil.IsKeyJustPressed(ebiten.KeyEnter) && !state.Phase.Active()) {
		state.Start()
		session.ID = uuid.New()
		log.Printf("blocks: session %s started", session.ID)
		return
	}

	if !state.Phase.Active() {
		return
	}

	dt := frame.DeltaTime
	if s.repeat(ebiten.KeyArrowLeft, &input.MoveLeftTime, dt) {
		state.Move(-1, 0)
	}
	if s.repeat(ebiten.KeyArrowRight, &input.MoveRightTime, dt) {
		state.Move(1, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		input.DownTime += dt
		if input.DownTime > 0.05 {
			input.DownTime = 0
			state.Move(0, 1)
		}
	} else {
		input.DownTime = 0
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		state.Rotate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		state.RotateCounter()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		state.HardDrop()
	}
}

type GravitySystem struct {
	Session ecs.Singleton[Session]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	s.Session.Get().State.Tick(time.Duration(frame.DeltaTime * float64(time.Second)))
}

// WatchSystem turns state changes into entities and log lines: a flash per
// lock and a message when the game ends.
type WatchSystem struct {
	Session ecs.Singleton[Session]
}

func (s *WatchSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	state := session.State

	if state.LockedPieces < session.seenLocks {
		session.seenLocks = 0
	}
	if state.LockedPieces > session.seenLocks && len(state.LastLock) > 0 {
		frame.Commands.Spawn(LockFlash{
			Cells: append([]blocks.Cell(nil), state.LastLock...),
			TTL:   flashTTL,
			Total: flashTTL,
		})
	}
	session.seenLocks = state.LockedPieces

	if state.Phase == lifecycle.Ended && session.lastPhase == lifecycle.Playing {
		log.Printf("blocks: session %s ended: %d pieces locked, %d lines", session.ID, state.LockedPieces, state.Lines)
	}
	session.lastPhase = state.Phase
}

type FlashSystem struct {
	Flashes ecs.Query[struct{ *LockFlash }]
}

func (s *FlashSystem) Execute(frame *ecs.UpdateFrame) {
	for id, flash := range s.Flashes.Iter() {
		flash.TTL -= frame.DeltaTime
		if flash.TTL <= 0 {
			frame.Commands.Delete(id)
		}
	}
}

type RenderSystem struct {
	Session ecs.Singleton[Session]
	Screen  ecs.Singleton[Screen]
	Flashes ecs.Query[struct{ *LockFlash }]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get().Image
	state := s.Session.Get().State
	board := state.Board

	screen.Fill(color.RGBA{24, 24, 32, 255})

	w, h := float32(board.Cols()*CellSize), float32(board.Rows()*CellSize)
	vector.DrawFilledRect(screen, BoardX, BoardY, w, h, color.RGBA{12, 12, 16, 255}, false)
	vector.StrokeRect(screen, BoardX-2, BoardY-2, w+4, h+4, 2, color.RGBA{128, 128, 128, 255}, false)

	for y := 0; y < board.Rows(); y++ {
		for x := 0; x < board.Cols(); x++ {
			if k, ok := board.At(blocks.Cell{X: x, Y: y}); ok {
				drawCell(screen, x, y, kindColors[k])
			}
		}
	}

	if state.Phase.Active() {
		ghost := blocks.Piece{Matrix: state.Active.Matrix, Pos: state.Ghost()}
		for _, c := range ghost.Cells() {
			vector.StrokeRect(screen, cellX(c.X)+1, cellY(c.Y)+1, CellSize-2, CellSize-2, 1, color.RGBA{160, 160, 160, 255}, false)
		}
		for _, c := range state.Active.Cells() {
			drawCell(screen, c.X, c.Y, kindColors[state.Active.Kind])
		}
	}

	for flash := range s.Flashes.Values() {
		alpha := uint8(200 * max(0, flash.TTL) / flash.Total)
		for _, c := range flash.Cells {
			vector.DrawFilledRect(screen, cellX(c.X), cellY(c.Y), CellSize, CellSize, color.RGBA{alpha, alpha, alpha, alpha}, false)
		}
	}

	s.drawHUD(screen, state, BoardX+int(w)+20)
}

func (s *RenderSystem) drawHUD(screen *ebiten.Image, state *blocks.State, x int) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("PIECES %d", state.LockedPieces), x, BoardY)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LINES  %d", state.Lines), x, BoardY+20)
	ebitenutil.DebugPrintAt(screen, "<- -> move   down soft drop\nup/Z rotate  X counter\nspace drop   R restart", x, BoardY+60)

	switch state.Phase {
	case lifecycle.NotStarted:
		ebitenutil.DebugPrintAt(screen, "Press ENTER to start", x, BoardY+140)
	case lifecycle.Ended:
		ebitenutil.DebugPrintAt(screen, "GAME OVER\nPress R to restart", x, BoardY+140)
	}
}

func cellX(x int) float32 { return float32(BoardX + x*CellSize) }
func cellY(y int) float32 { return float32(BoardY + y*CellSize) }

func drawCell(screen *ebiten.Image, x, y int, c color.Color) {
	vector.DrawFilledRect(screen, cellX(x), cellY(y), CellSize, CellSize, c, false)
	vector.StrokeRect(screen, cellX(x), cellY(y), CellSize, CellSize, 1, color.Black, false)
}
