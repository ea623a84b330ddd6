package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
)

func compareTypes(a, b reflect.Type) int {
	return cmp.Compare(a.String(), b.String())
}

// Archetype holds every entity sharing one exact set of component types.
// Column i stores the components of types[i]; all columns have equal length.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentStorage
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentStorage, len(types)),
	}
	for idx, typ := range types {
		a.storages[idx] = registry.newStorage(typ)
	}
	return a
}

// spawn appends one entity and returns its slot index. components must hold
// exactly one value per archetype type.
func (a *Archetype) spawn(components []any) uint32 {
	var index int
	for _, comp := range components {
		column := a.column(componentType(comp))
		if column < 0 {
			panic("component " + componentType(comp).String() + " does not belong to archetype")
		}
		index = a.storages[column].Append(comp)
	}
	return uint32(index)
}

func (a *Archetype) column(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// GetComponent returns a pointer to the component of type compType for the
// entity at index, or nil.
func (a *Archetype) GetComponent(index uint32, compType reflect.Type) any {
	column := a.column(compType)
	if column < 0 {
		return nil
	}
	return a.storages[column].Get(int(index))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.column(compType) >= 0
}

// ID returns the archetype's identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities in the archetype
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields every entity of the archetype in spawn order
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
