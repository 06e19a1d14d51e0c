// Command stacker is the box-stacking game.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/ecs/debugui"
	debugui_ebiten "github.com/plus3/stackgames/ecs/debugui/ebiten"
	"github.com/plus3/stackgames/internal/config"
	"github.com/plus3/stackgames/internal/iso"
	"github.com/plus3/stackgames/internal/stacker"
)

const (
	ScreenWidth  = 960
	ScreenHeight = 720
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
	ecs.RegisterComponent[Tower](registry)
	ecs.RegisterComponent[InputState](registry)
	ecs.RegisterComponent[Screen](registry)
	iso.Register(registry)
	debugui.Register(registry)
	if *debug {
		ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)
	}

	storage := ecs.NewStorage(registry)

	game := &Game{
		Storage:         storage,
		Scheduler:       ecs.NewScheduler(storage),
		RenderScheduler: ecs.NewScheduler(storage),
		Screen:          ecs.NewSingleton[Screen](storage),
		Input:           ecs.NewSingleton[InputState](storage),
		Tower: ecs.NewSingleton[Tower](storage, Tower{
			Game: stacker.New(cfg.Stacker, iso.NewScene(storage)),
		}),
	}

	game.Scheduler.Register(&InputSystem{})
	game.Scheduler.Register(&StepSystem{})
	game.RenderScheduler.Register(&RenderSystem{})

	if *debug {
		game.ImguiBackend = debugui_ebiten.Install(storage, "Stacker", ScreenWidth, ScreenHeight)
		debugui.Spawn(storage,
			debugui.NamedScheduler{Name: "update", Scheduler: game.Scheduler},
			debugui.NamedScheduler{Name: "render", Scheduler: game.RenderScheduler},
		)
		spawnInspector(storage)
		game.Scheduler.Register(&debugui.ImguiSystem{})
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Stacker")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Printf("stacker: box %.1f, speed %g/ms, difficulty %s", cfg.Stacker.BoxSize, cfg.Stacker.BaseSpeed, game.Tower.Get().Game.Difficulty.Label())
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

	if tower := g.Tower.Get(); tower.Compact {
		g.Storage.Compact()
		tower.Compact = false
	}

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
