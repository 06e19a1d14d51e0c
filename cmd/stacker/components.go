package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/stackgames/ecs"
	debugui_ebiten "github.com/plus3/stackgames/ecs/debugui/ebiten"
	"github.com/plus3/stackgames/internal/lifecycle"
	"github.com/plus3/stackgames/internal/stacker"
)

// Tower is the running game, held as a singleton.
type Tower struct {
	Game *stacker.Game
	// Compact asks the frame loop to compact storage once the frame is
	// done; set when a restart dropped every box.
	Compact   bool
	lastPhase lifecycle.Phase
}

type InputState struct {
	Quit bool
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
	Tower           *ecs.Singleton[Tower]
}
