// Command blocks is the falling-block game.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/ecs/debugui"
	debugui_ebiten "github.com/plus3/stackgames/ecs/debugui/ebiten"
	"github.com/plus3/stackgames/internal/blocks"
	"github.com/plus3/stackgames/internal/config"
)

const (
	ScreenWidth  = 880
	ScreenHeight = 540
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default tunables")
	debug := flag.Bool("debug", false, "show the ImGui debug windows")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Session](registry)
	ecs.RegisterComponent[InputState](registry)
	ecs.RegisterComponent[LockFlash](registry)
	ecs.RegisterComponent[Screen](registry)
	debugui.Register(registry)
	if *debug {
		ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)
	}

	storage := ecs.NewStorage(registry)

	ecs.NewSingleton[Session](storage, Session{State: blocks.New(cfg.Blocks)})

	game := &Game{
		Storage:         storage,
		Scheduler:       ecs.NewScheduler(storage),
		RenderScheduler: ecs.NewScheduler(storage),
		Screen:          ecs.NewSingleton[Screen](storage),
		Input: ecs.NewSingleton[InputState](storage, InputState{
			RepeatDelay: 0.17,
			RepeatRate:  0.05,
		}),
	}

	game.Scheduler.Register(&InputSystem{})
	game.Scheduler.Register(&GravitySystem{})
	game.Scheduler.Register(&WatchSystem{})
	game.Scheduler.Register(&FlashSystem{})
	game.RenderScheduler.Register(&RenderSystem{})

	if *debug {
		game.ImguiBackend = debugui_ebiten.Install(storage, "Blocks", ScreenWidth, ScreenHeight)
		debugui.Spawn(storage,
			debugui.NamedScheduler{Name: "update", Scheduler: game.Scheduler},
			debugui.NamedScheduler{Name: "render", Scheduler: game.RenderScheduler},
		)
		spawnInspector(storage)
		game.Scheduler.Register(&debugui.ImguiSystem{})
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Blocks")

	log.Printf("blocks: %dx%d board, drop every %s", cfg.Blocks.Cols, cfg.Blocks.Rows, cfg.Blocks.DropInterval)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func (g *Game) Update() error {
	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().BeginFrame()
		defer g.ImguiBackend.Get().EndFrame()
	}

	g.Scheduler.Once(1.0 / 60.0)

	if g.Input.Get().Quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Screen.Get().Image = screen
	g.RenderScheduler.Once(0)

	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
