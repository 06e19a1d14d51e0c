package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly one particular set of
// component types, one column per type. Slot i of every column belongs to
// the same entity.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype builds the columns for an already sorted type list. It
// panics on a type that was never registered.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

func (a *Archetype) column(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// Spawn appends one entity and returns its slot.
func (a *Archetype) Spawn(components []any) uint32 {
	var slot int
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}
		if idx := a.column(compType); idx >= 0 {
			slot = a.storages[idx].Append(comp)
		}
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the entity's component, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.column(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(entityIndex))
}

// Delete frees the entity's slot in every column and invalidates any
// EntityRef pointing at it.
func (a *Archetype) Delete(entityIndex uint32) {
	entityId := NewEntityId(a.id, entityIndex)

	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the archetype's component types sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len is the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Compact closes the holes left by deleted entities. Live EntityRefs are
// rewritten to the new slots; entity ids obtained before the call are stale.
func (a *Archetype) Compact() {
	if len(a.storages) == 0 {
		return
	}

	moved := a.storages[0].Compact()
	for _, storage := range a.storages[1:] {
		storage.Compact()
	}

	live := make(map[EntityId]weak.Pointer[EntityRef], a.refs.Len())
	for oldIdx, newIdx := range moved {
		weakPtr, ok := a.refs.Get(NewEntityId(a.id, uint32(oldIdx)))
		if !ok {
			continue
		}
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = NewEntityId(a.id, uint32(newIdx))
			live[ref.Id] = weakPtr
		}
	}

	a.refs.Clear()
	for id, weakPtr := range live {
		a.refs.Put(id, weakPtr)
	}
}

// Iter yields the id of every live entity in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
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
