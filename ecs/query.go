package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// Query iterates every entity carrying a set of components. T must be a
// struct whose fields are pointers to component types; an EntityId field may
// be embedded to receive the entity's id. Named fields tagged
// `ecs:"optional"` are nil when the entity lacks that component.
//
// Results are cached per frame: Execute rebuilds the cache (the Scheduler
// does this before each system runs) and Iter replays it.
type Query[T any] struct {
	storage *Storage
	fields  []queryField
	idField *uintptr

	archetypes         []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

type queryField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

var entityIdType = reflect.TypeFor[EntityId]()

// NewQuery creates a query bound to storage
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init parses T and binds the query to storage. Called by the Scheduler for
// Query fields of registered systems.
func (q *Query[T]) Init(storage *Storage) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	q.storage = storage
	q.fields = q.fields[:0]
	q.idField = nil
	q.archetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			offset := field.Offset
			q.idField = &offset
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("Query struct fields must be pointer types")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		q.fields = append(q.fields, queryField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
}

func (q *Query[T]) matches(archetype *Archetype) bool {
	for _, f := range q.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

func (q *Query[T]) refreshArchetypes() {
	count := len(q.storage.ordered)
	if count == q.lastArchetypeCount {
		return
	}
	q.lastArchetypeCount = count
	q.archetypes = q.archetypes[:0]
	for _, archetype := range q.storage.ordered {
		if q.matches(archetype) {
			q.archetypes = append(q.archetypes, archetype)
		}
	}
}

// Execute rebuilds the cached results from the current storage contents.
func (q *Query[T]) Execute() {
	q.refreshArchetypes()

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.archetypes {
		columns := make([]int, len(q.fields))
		for i, f := range q.fields {
			columns[i] = archetype.column(f.typ)
		}

		for index := range archetype.storages[0].Iter() {
			var result T
			ptr := unsafe.Pointer(&result)
			id := NewEntityId(archetype.id, uint32(index))

			for i, f := range q.fields {
				fieldPtr := unsafe.Add(ptr, f.offset)
				if columns[i] < 0 {
					*(*unsafe.Pointer)(fieldPtr) = nil
					continue
				}
				component := archetype.storages[columns[i]].Get(index)
				*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
			}
			if q.idField != nil {
				*(*EntityId)(unsafe.Add(ptr, *q.idField)) = id
			}

			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, result)
		}
	}

	q.cacheValid = true
}

// Iter yields the cached results. Panics if Execute has not run yet.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Entities yields the cached (id, result) pairs
func (q *Query[T]) Entities() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Entities() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the number of cached results
func (q *Query[T]) Len() int {
	return len(q.cachedComponents)
}
