package main

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/internal/blocks"
	"github.com/plus3/stackgames/internal/stacker"
)

// BlocksBot plays the falling-block game with random inputs.
type BlocksBot struct {
	State  *blocks.State
	Rng    *rand.Rand
	Games  int
	Locked int
}

// StackerBot drops each layer once it is within Aim of the layer below,
// and now and then at a random moment.
type StackerBot struct {
	Game  *stacker.Game
	Rng   *rand.Rand
	Aim   float64
	Games int
	// Placements counts cuts and misses.
	Placements int
	Fragments  int
}

// Tally is the running total of all bots.
type Tally struct {
	Frames       int64
	PiecesLocked int
	BlocksGames  int
	TowerGames   int
	BestTower    int
	Placements   int
	Fragments    int
}

type BlocksBotSystem struct {
	Bots ecs.Query[struct{ *BlocksBot }]
}

func (s *BlocksBotSystem) Execute(frame *ecs.UpdateFrame) {
	dt := time.Duration(frame.DeltaTime * float64(time.Second))
	for bot := range s.Bots.Values() {
		state := bot.State
		if !state.Phase.Active() {
			state.Start()
			bot.Games++
			continue
		}

		before := state.LockedPieces
		switch bot.Rng.IntN(12) {
		case 0:
			state.Move(-1, 0)
		case 1:
			state.Move(1, 0)
		case 2:
			state.Rotate()
		case 3:
			state.RotateCounter()
		case 4:
			state.Move(0, 1)
		case 5:
			if bot.Rng.IntN(4) == 0 {
				state.HardDrop()
			}
		}
		state.Tick(dt)
		bot.Locked += state.LockedPieces - before
	}
}

type StackerBotSystem struct {
	Bots ecs.Query[struct{ *StackerBot }]
}

func (s *StackerBotSystem) Execute(frame *ecs.UpdateFrame) {
	dt := time.Duration(frame.DeltaTime * float64(time.Second))
	for bot := range s.Bots.Values() {
		game := bot.Game
		if !game.Phase.Active() {
			game.Start()
			bot.Games++
			continue
		}

		game.Update(dt)

		top, prev := game.Top(), game.Stack[len(game.Stack)-2]
		i := top.Axis.Index()
		lined := math.Abs(top.Box.Center[i]-prev.Box.Center[i]) < bot.Aim
		if lined || bot.Rng.IntN(600) == 0 {
			before := len(game.Fragments)
			if _, ok := game.Place(); ok {
				bot.Placements++
				bot.Fragments += len(game.Fragments) - before
			}
		}
	}
}

// TallySystem sums the bots into the Tally singleton.
type TallySystem struct {
	Tally   ecs.Singleton[Tally]
	Blocks  ecs.Query[struct{ *BlocksBot }]
	Stacker ecs.Query[struct{ *StackerBot }]
}

func (s *TallySystem) Execute(frame *ecs.UpdateFrame) {
	tally := s.Tally.Get()
	frames := tally.Frames + 1
	best := tally.BestTower
	*tally = Tally{Frames: frames, BestTower: best}

	for bot := range s.Blocks.Values() {
		tally.PiecesLocked += bot.Locked
		tally.BlocksGames += bot.Games
	}
	for bot := range s.Stacker.Values() {
		tally.TowerGames += bot.Games
		tally.Placements += bot.Placements
		tally.Fragments += bot.Fragments
		tally.BestTower = max(tally.BestTower, bot.Game.Best)
	}
}
