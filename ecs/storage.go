package ecs

import (
	"reflect"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// Storage owns every archetype and singleton of one world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	// spawn order of archetypes, so iteration is deterministic
	ordered []*Archetype

	singletons     *intmap.Map[int, *singletonEntry]
	singletonTypes []reflect.Type
}

type singletonEntry struct {
	typ     reflect.Type
	ptr     reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty world using the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		singletons: intmap.New[int, *singletonEntry](16),
	}
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; the storage always keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		types = append(types, componentType(comp))
	}
	slices.SortFunc(types, compareTypes)
	if len(slices.Compact(slices.Clone(types))) != len(types) {
		panic("cannot spawn entity with duplicate component types")
	}

	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.spawn(components))
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
		s.ordered = append(s.ordered, archetype)
	}
	return archetype
}

// GetArchetype returns the archetype holding exactly the given component
// types, or nil.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		types = append(types, componentType(comp))
	}
	slices.SortFunc(types, compareTypes)
	return s.archetypes[hashTypes(types)]
}

// Archetypes yields the archetypes in creation order
func (s *Storage) Archetypes() []*Archetype {
	return s.ordered
}

// GetComponent returns a pointer to the component for the given entity, or nil
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType) && archetype.storages[0].Has(int(id.Index()))
}

// AddSingleton stores value as the world's only instance of its type,
// replacing any previous instance in place.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if entry := s.getSingletonEntry(t); entry != nil {
		entry.ptr.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons.Put(typeId(t), &singletonEntry{
		typ:     t,
		ptr:     ptr,
		dataPtr: ptr.UnsafePointer(),
	})
	s.singletonTypes = append(s.singletonTypes, t)
}

// ReadSingleton points *out at the stored singleton. out must be a **T.
// Returns false when no singleton of type T exists.
func (s *Storage) ReadSingleton(out any) bool {
	outVal := reflect.ValueOf(out)
	if outVal.Kind() != reflect.Ptr || outVal.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(outVal.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	outVal.Elem().Set(entry.ptr)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	entry, ok := s.singletons.Get(typeId(t))
	if !ok {
		return nil
	}
	return entry
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	// Components can be structs or primitives, but not reference types
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return t
}

func typeId(t reflect.Type) int {
	return int(uintptr((*iface)(unsafe.Pointer(&t)).data))
}

// hashTypes generates an FNV-1a hash for a sorted slice of types
func hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uint64(typeId(t))
		h ^= uint32(ptr) ^ uint32(ptr>>32)
		h *= prime
	}
	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the T component of an entity, or nil
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp := reader.GetComponent(entityId, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
