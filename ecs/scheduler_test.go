package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/stackgames/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gravitySystem struct {
	Falling ecs.Query[struct {
		*Cell
		*Fall
	}]
	Runs int
}

func (s *gravitySystem) Execute(frame *ecs.UpdateFrame) {
	s.Runs++
	for item := range s.Falling.Values() {
		item.Cell.Y += int(item.Fall.Speed * frame.DeltaTime)
	}
}

type scoreSystem struct {
	Cells ecs.Query[struct{ *Cell }]
	Score ecs.Singleton[Score]
}

func (s *scoreSystem) Execute(frame *ecs.UpdateFrame) {
	total := 0
	for item := range s.Cells.Values() {
		total += item.Cell.Y
	}
	*s.Score.Get() = Score(total)
}

type spawnerSystem struct{}

func (s *spawnerSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Cell{Y: 100})
}

func TestSchedulerRunsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage)
	storage.Spawn(Cell{}, Fall{Speed: 2})
	storage.Spawn(Cell{}, Fall{Speed: 3})

	gravity := &gravitySystem{}
	score := &scoreSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(gravity)
	scheduler.Register(score)

	scheduler.Once(1)
	assert.Equal(t, Score(5), *score.Score.Get())

	scheduler.Once(2)
	assert.Equal(t, Score(15), *score.Score.Get())
	assert.Equal(t, 2, gravity.Runs)
}

func TestSchedulerSeesFlushedSpawns(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage)

	score := &scoreSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&spawnerSystem{})
	scheduler.Register(score)

	scheduler.Once(0)
	assert.Equal(t, Score(0), *score.Score.Get(), "spawn is deferred to the end of the frame")

	scheduler.Once(0)
	assert.Equal(t, Score(100), *score.Score.Get())
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&gravitySystem{})
	scheduler.Register(&spawnerSystem{})

	for i := 0; i < 3; i++ {
		scheduler.Once(0)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "gravitySystem", stats.Systems[0].Name)
	assert.Equal(t, "spawnerSystem", stats.Systems[1].Name)
	assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)
	assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	gravity := &gravitySystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(gravity)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Positive(t, gravity.Runs)
}
