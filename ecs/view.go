package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View reads entities through a struct of component pointers, e.g.
//
//	ecs.NewView[struct {
//		*Box
//		Tint *Tint `ecs:"optional"`
//	}](storage)
//
// Embedded fields are required. Named fields may be tagged
// `ecs:"optional"` and are nil when the entity lacks the component.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
}

// NewView builds a view for T. It panics if T is not a struct of pointers.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Fill points the fields of *ptr at the entity's components. It returns
// false if a required component is missing.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return v.populateResult(unsafe.Pointer(ptr), archetype, int(id.Index()), v.buildStorageIndices(archetype))
}

// Get returns the filled struct for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get through an EntityRef. Deleted entities yield nil.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, typ := range v.types {
		if !v.optional[i] && !archetype.HasComponent(typ) {
			return false
		}
	}
	return true
}

// buildStorageIndices maps each view field to its archetype column, -1 when
// the archetype has no such column.
func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, typ := range v.types {
		indices[i] = archetype.column(typ)
	}
	return indices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, entityIndex int, storageIndices []int) bool {
	for i, storageIdx := range storageIndices {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		var component any
		if storageIdx >= 0 {
			component = archetype.storages[storageIdx].Get(entityIndex)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Iter yields every matching entity. Archetype order is unspecified.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for archetypeId, archetype := range v.storage.archetypes {
			if !v.matchesArchetype(archetype) || len(archetype.storages) == 0 {
				continue
			}

			storageIndices := v.buildStorageIndices(archetype)
			var result T
			resultPtr := unsafe.Pointer(&result)

			for entityIndex := range archetype.storages[0].Iter() {
				if !v.populateResult(resultPtr, archetype, entityIndex, storageIndices) {
					continue
				}
				if !yield(NewEntityId(archetypeId, uint32(entityIndex)), result) {
					return
				}
			}
		}
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// iface is the runtime layout of an `any`; its data word is the component
// pointer the view hands out.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
