package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/stackgames/ecs"
	"github.com/stretchr/testify/assert"
)

type commandSystem struct {
	run func(frame *ecs.UpdateFrame)
}

func (s *commandSystem) Execute(frame *ecs.UpdateFrame) {
	s.run(frame)
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	doomed := storage.Spawn(Cell{X: 1})
	kept := storage.Spawn(Cell{X: 2}, Fall{})

	var order []string
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() { order = append(order, "defer") })
		frame.Commands.Spawn(Cell{X: 3})
		frame.Commands.AddComponent(doomed, Tint{})
		frame.Commands.Delete(doomed)
		frame.Commands.RemoveComponent(kept, reflect.TypeFor[Fall]())
		order = append(order, "execute")
	}})

	scheduler.Once(0)

	assert.Equal(t, []string{"execute", "defer"}, order)

	var xs []int
	for item := range ecs.NewView[struct{ *Cell }](storage).Values() {
		xs = append(xs, item.Cell.X)
	}
	assert.ElementsMatch(t, []int{2, 3}, xs)

	view := ecs.NewView[struct{ *Fall }](storage)
	for range view.Iter() {
		t.Fatal("Fall should have been removed")
	}
}

func TestCommandsAreFrameScoped(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	calls := 0
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
		if calls == 0 {
			frame.Commands.Spawn(Label("once"))
		}
		calls++
	}})

	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, 1, storage.CollectStats().TotalEntityCount)
}
