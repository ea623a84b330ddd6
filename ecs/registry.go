package ecs

import (
	"iter"
	"reflect"
)

// componentStorage is a type-erased column of one component type.
type componentStorage interface {
	Append(item any) int
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to storage factories. Each Storage
// owns one, so independent simulations never share component columns.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates an empty registry
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers T so entities carrying it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

func (r *ComponentRegistry) newStorage(t reflect.Type) componentStorage {
	factory := r.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

// blockStorage keeps components in fixed-size blocks. Appending never moves
// existing components, so pointers handed out by Get stay valid for the
// lifetime of the storage.
type blockStorage[T any] struct {
	blocks [][blockSize]T
	count  int
}

func (s *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	index := s.count
	if index/blockSize >= len(s.blocks) {
		s.blocks = append(s.blocks, [blockSize]T{})
	}
	s.blocks[index/blockSize][index%blockSize] = value
	s.count++
	return index
}

func (s *blockStorage[T]) Get(index int) any {
	if !s.Has(index) {
		return nil
	}
	return &s.blocks[index/blockSize][index%blockSize]
}

func (s *blockStorage[T]) Has(index int) bool {
	return index >= 0 && index < s.count
}

func (s *blockStorage[T]) Len() int {
	return s.count
}

func (s *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
