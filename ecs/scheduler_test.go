package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/moons/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * frame.DeltaTime
		item.Position.Y += item.Velocity.DY * frame.DeltaTime
	}
}

type MassTotalSystem struct {
	Entities ecs.Query[struct{ *Mass }]
	Total    float64
}

func (s *MassTotalSystem) Execute(frame *ecs.UpdateFrame) {
	s.Total = 0
	for item := range s.Entities.Iter() {
		s.Total += float64(*item.Mass)
	}
}

type gravitySystem struct {
	Gravity ecs.Singleton[Gravity]
	seen    float64
}

func (s *gravitySystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = s.Gravity.Get().G
}

type spawnOnceSystem struct {
	done bool
}

func (s *spawnOnceSystem) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(Position{X: 1}, Velocity{DX: 1})
}

// orderWatcher records the X of the first entity it sees.
type orderWatcher struct {
	Entities ecs.Query[struct{ *Position }]
	seenX    float64
}

func (s *orderWatcher) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Iter() {
		s.seenX = item.Position.X
		return
	}
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 0}, Velocity{DX: 10})

	scheduler := ecs.NewScheduler(storage)
	movement := &MovementSystem{}
	observer := &orderWatcher{}
	scheduler.Register(movement)
	scheduler.Register(observer)

	scheduler.Once(0.5)
	assert.Equal(t, 1, movement.ExecuteCount)
	assert.Equal(t, 5.0, observer.seenX, "later systems see earlier writes")

	scheduler.Once(0.5)
	assert.Equal(t, 2, movement.ExecuteCount)
	assert.Equal(t, 10.0, observer.seenX)
}

func TestSchedulerWiresSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Gravity{G: 8})

	scheduler := ecs.NewScheduler(storage)
	sys := &gravitySystem{}
	scheduler.Register(sys)
	scheduler.Once(0)

	assert.Equal(t, 8.0, sys.seen)
}

func TestSchedulerCustomState(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Mass(20))
	storage.Spawn(Mass(30))

	scheduler := ecs.NewScheduler(storage)
	total := &MassTotalSystem{}
	scheduler.Register(total)

	scheduler.Once(1)
	assert.Equal(t, 50.0, total.Total)

	storage.Spawn(Mass(5))
	scheduler.Once(1)
	assert.Equal(t, 55.0, total.Total)
}

func TestSchedulerFlushesCommandsAfterFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	scheduler.Register(&spawnOnceSystem{})
	scheduler.Register(movement)

	scheduler.Once(1)
	assert.Equal(t, 0, movement.Entities.Len(), "spawn is deferred to the end of the frame")

	scheduler.Once(1)
	require.Equal(t, 1, movement.Entities.Len())
	for item := range movement.Entities.Iter() {
		assert.Equal(t, 2.0, item.Position.X)
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	movement := &MovementSystem{}
	scheduler.Register(movement)

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
		t.Fatal("scheduler did not stop after context cancellation")
	}
	assert.Greater(t, movement.ExecuteCount, 0)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&MassTotalSystem{})

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

	for range 3 {
		scheduler.Once(1)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, int64(3), stats.Frames)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "MassTotalSystem", stats.Systems[1].Name)
	for _, sys := range stats.Systems {
		assert.Equal(t, int64(3), sys.ExecutionCount)
		assert.LessOrEqual(t, sys.MinDuration, sys.MaxDuration)
		assert.GreaterOrEqual(t, sys.TotalDuration, sys.MaxDuration)
	}
}
