package ecs

import (
	"reflect"
	"sort"
	"unsafe"
	"weak"
)

// Storage is one ECS world: its archetypes plus the singleton table.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

// singletonEntry owns a heap copy of a singleton value. dataPtr never
// changes once the entry exists, which is what lets Singleton cache it.
type singletonEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty world backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// CreateEntityRef returns the shared EntityRef for id, creating it on first
// use. Refs are held weakly by the archetype.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id behind ref.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// Spawn creates an entity from the given components (values or pointers).
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

func (s *Storage) archetypeFor(sortedTypes []reflect.Type) *Archetype {
	id := hashTypesToUint32(sortedTypes)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = NewArchetype(id, sortedTypes, s.registry)
		s.archetypes[id] = archetype
	}
	return archetype
}

// Delete removes the entity. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

// AddComponent moves the entity to the archetype that also has component's
// type and returns the entity's new id.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old := s.archetypes[id.ArchetypeId()]
	if old == nil {
		return 0
	}

	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	types := make([]reflect.Type, 0, len(old.types)+1)
	types = append(types, old.types...)
	types = append(types, compType)
	sort.Sort(byTypeName(types))

	components := make([]any, 0, len(types))
	for _, typ := range types {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, old.GetComponent(id.Index(), typ))
		}
	}

	return s.move(id, old, types, components)
}

// RemoveComponent moves the entity to the archetype without compType. An
// entity left with no components is deleted and 0 is returned.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	old := s.archetypes[id.ArchetypeId()]
	if old == nil {
		return 0
	}

	types := make([]reflect.Type, 0, len(old.types))
	for _, typ := range old.types {
		if typ != compType {
			types = append(types, typ)
		}
	}

	if len(types) == 0 {
		old.Delete(id.Index())
		return 0
	}

	components := make([]any, 0, len(types))
	for _, typ := range types {
		components = append(components, old.GetComponent(id.Index(), typ))
	}

	return s.move(id, old, types, components)
}

func (s *Storage) move(id EntityId, old *Archetype, types []reflect.Type, components []any) EntityId {
	next := s.archetypeFor(types)
	newId := NewEntityId(next.id, next.Spawn(components))

	if weakPtr, ok := old.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = next
			next.refs.Put(newId, weakPtr)
		}
		old.refs.Del(id)
	}

	old.Delete(id.Index())
	return newId
}

// GetComponent returns a pointer to the entity's component, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype carries compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.HasComponent(compType)
}

// Compact compacts every archetype. Call it between frames only.
func (s *Storage) Compact() {
	for _, archetype := range s.archetypes {
		archetype.Compact()
	}
}

// AddSingleton stores component as the singleton of its type, overwriting
// an existing value in place.
func (s *Storage) AddSingleton(component any) {
	value := reflect.ValueOf(component)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	typ := value.Type()

	if entry, ok := s.singletons[typ]; ok {
		reflect.NewAt(typ, entry.dataPtr).Elem().Set(value)
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(value)
	s.singletons[typ] = &singletonEntry{typ: typ, dataPtr: ptr.UnsafePointer()}
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// ReadSingleton points *out at the stored singleton of type T, where out is
// a **T. It reports whether the singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	typ := target.Elem().Type().Elem()
	entry := s.singletons[typ]
	if entry == nil {
		return false
	}
	target.Elem().Set(reflect.NewAt(typ, entry.dataPtr))
	return true
}

func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of a sorted
// type list.
func hashTypesToUint32(types []reflect.Type) uint32 {
	const prime uint32 = 16777619
	var h uint32 = 2166136261

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent is a typed GetComponent. It returns nil when the entity
// lacks a T.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
