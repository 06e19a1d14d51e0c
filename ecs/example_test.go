package ecs_test

import (
	"fmt"

	"github.com/plus3/stackgames/ecs"
)

type dropSystem struct {
	Cells ecs.Query[struct{ *Cell }]
	Floor ecs.Singleton[Score]
}

func (s *dropSystem) Execute(frame *ecs.UpdateFrame) {
	floor := int(*s.Floor.Get())
	for item := range s.Cells.Values() {
		if item.Cell.Y < floor {
			item.Cell.Y++
		}
	}
}

// A system declares what it reads as Query and Singleton fields; the
// scheduler wires them on Register and refreshes queries every frame.
func ExampleScheduler() {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage, 2)
	id := storage.Spawn(Cell{X: 4})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&dropSystem{})

	for i := 0; i < 5; i++ {
		scheduler.Once(1.0 / 60.0)
	}

	fmt.Println(*ecs.ReadComponent[Cell](storage, id))
	// Output: {4 2}
}

func ExampleStorage_ReadSingleton() {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage, 42)

	var score *Score
	if storage.ReadSingleton(&score) {
		fmt.Println("score:", *score)
	}

	var tint *Tint
	fmt.Println("tint present:", storage.ReadSingleton(&tint))
	// Output:
	// score: 42
	// tint present: false
}
