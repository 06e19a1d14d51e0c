package main

import (
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/internal/blocks"
	"github.com/plus3/stackgames/internal/lifecycle"
	debugui_ebiten "github.com/plus3/stackgames/ecs/debugui/ebiten"
)

// Session is the running game, held as a singleton.
type Session struct {
	State *blocks.State
	ID    uuid.UUID
	// seenLocks and lastPhase are what the watch system saw last frame.
	seenLocks int
	lastPhase lifecycle.Phase
}

type InputState struct {
	MoveLeftTime  float64
	MoveRightTime float64
	DownTime      float64
	RepeatDelay   float64
	RepeatRate    float64
	Quit          bool
}

// LockFlash briefly highlights cells that just locked.
type LockFlash struct {
	Cells []blocks.Cell
	TTL   float64
	Total float64
}

type Screen struct {
	*ebiten.Image
}

type Game struct {
	Storage         *ecs.Storage
	Scheduler       *ecs.Scheduler
	RenderScheduler *ecs.Scheduler
	ImguiBackend    *ecs.Singleton[debugui_ebiten.ImguiBackend]
	Screen          *ecs.Singleton[Screen]
	Input           *ecs.Singleton[InputState]
}
