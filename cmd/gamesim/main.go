// Command gamesim runs bots against both games headlessly and prints a
// markdown report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/internal/blocks"
	"github.com/plus3/stackgames/internal/config"
	"github.com/plus3/stackgames/internal/iso"
	"github.com/plus3/stackgames/internal/stacker"
)

// compactEvery is how many frames pass between storage compactions.
const compactEvery = 600

type Sim struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Tally     *ecs.Singleton[Tally]
}

// NewSim spawns the bots. Stacker bots draw through an iso.Scene, so every
// box is a live entity.
func NewSim(cfg config.Config, blocksBots, stackerBots int, seed uint64) *Sim {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[BlocksBot](registry)
	ecs.RegisterComponent[StackerBot](registry)
	ecs.RegisterComponent[Tally](registry)
	iso.Register(registry)

	storage := ecs.NewStorage(registry)
	scene := iso.NewScene(storage)

	for i := range blocksBots {
		bc := cfg.Blocks
		bc.Seed = seed + uint64(i) + 1
		storage.Spawn(BlocksBot{
			State: blocks.New(bc),
			Rng:   rand.New(rand.NewPCG(seed, uint64(i))),
		})
	}
	for i := range stackerBots {
		rng := rand.New(rand.NewPCG(seed, uint64(blocksBots+i)))
		storage.Spawn(StackerBot{
			Game: stacker.New(cfg.Stacker, scene),
			Rng:  rng,
			Aim:  cfg.Stacker.BoxSize * (0.05 + 0.3*rng.Float64()),
		})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&BlocksBotSystem{})
	scheduler.Register(&StackerBotSystem{})
	scheduler.Register(&TallySystem{})

	return &Sim{
		Storage:   storage,
		Scheduler: scheduler,
		Tally:     ecs.NewSingleton[Tally](storage),
	}
}

// Frame runs one frame of dt seconds.
func (s *Sim) Frame(dt float64) {
	s.Scheduler.Once(dt)
	if s.Tally.Get().Frames%compactEvery == 0 {
		s.Storage.Compact()
	}
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the simulation should run for.")
	blocksBots := flag.Int("blocks-bots", 16, "Number of falling-block bots.")
	stackerBots := flag.Int("stacker-bots", 16, "Number of stacker bots.")
	seed := flag.Uint64("seed", 1, "Seed for the bots.")
	configPath := flag.String("config", "", "YAML file overriding the default tunables.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Spawning %d blocks bots and %d stacker bots...", *blocksBots, *stackerBots)
	sim := NewSim(cfg, *blocksBots, *stackerBots, *seed)

	report := &Report{
		Duration:       *duration,
		BlocksBots:     *blocksBots,
		StackerBots:    *stackerBots,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			sim.Frame(1.0 / 60.0)
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Tally = *sim.Tally.Get()
	report.Systems = sim.Scheduler.GetStats().Systems
	report.Entities = sim.Storage.CollectStats().TotalEntityCount
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println()
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
}
