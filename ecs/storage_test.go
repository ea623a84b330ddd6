package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/moons/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			entityId := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, entityId.ArchetypeId())
			assert.Equal(t, tt.index, entityId.Index())
		})
	}
}

func TestSpawnAndRead(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Mass(25), Label("moon"))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)
	assert.Equal(t, Mass(25), *ecs.ReadComponent[Mass](storage, id))
	assert.Equal(t, Label("moon"), *ecs.ReadComponent[Label](storage, id))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))

	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Mass]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
}

func TestSpawnCopiesComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	original := Position{X: 1, Y: 1}
	id := storage.Spawn(&original)
	original.X = 99

	assert.Equal(t, 1.0, ecs.ReadComponent[Position](storage, id).X)
}

func TestComponentOrderDoesNotMatter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Mass(1))
	b := storage.Spawn(Mass(2), Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.Len(t, storage.Archetypes(), 1)
	assert.Equal(t, 2, storage.GetArchetype(Position{}, Mass(0)).Len())
}

func TestComponentPointersStayValid(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 7})
	ptr := ecs.ReadComponent[Position](storage, first)

	// enough spawns to allocate several blocks
	for i := range 500 {
		storage.Spawn(Position{X: float64(i)})
	}

	ptr.X = 42
	assert.Equal(t, 42.0, ecs.ReadComponent[Position](storage, first).X)
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Gravity{G: 1}) }, "unregistered component")
	assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) }, "duplicate component")
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestArchetypeIterInSpawnOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var ids []ecs.EntityId
	for i := range 5 {
		ids = append(ids, storage.Spawn(Position{X: float64(i)}))
	}

	var seen []ecs.EntityId
	for id := range storage.GetArchetype(Position{}).Iter() {
		seen = append(seen, id)
	}
	assert.Equal(t, ids, seen)
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var g *Gravity
	assert.False(t, storage.ReadSingleton(&g))

	storage.AddSingleton(Gravity{G: 8})
	require.True(t, storage.ReadSingleton(&g))
	assert.Equal(t, 8.0, g.G)

	g.G = 4
	var again *Gravity
	require.True(t, storage.ReadSingleton(&again))
	assert.Equal(t, 4.0, again.G)

	// replacing keeps the same address
	storage.AddSingleton(Gravity{G: 2})
	assert.Equal(t, 2.0, g.G)

	assert.Panics(t, func() { storage.ReadSingleton(g) })
}
