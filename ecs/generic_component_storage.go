package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to their storage factories.
// Every Storage gets its own registry so separate worlds (one per game,
// one per test) never share state.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// iComponentStorage is one archetype column with its element type erased.
// Deleted slots stay as holes until Compact, which returns old->new slots.
type iComponentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Compact() map[int]int
	Iter() iter.Seq[int]
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent makes T usable as a component or singleton.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &blockStorage[T]{}
	}
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage keeps components in fixed-size blocks allocated on the heap
// one at a time. Growing never moves an existing block, so a pointer
// returned by Get stays valid until the slot is deleted or compacted.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
}

func (cs *blockStorage[T]) slot(index int) (int, int, bool) {
	if index < 0 {
		return 0, 0, false
	}
	b, s := index/blockSize, index%blockSize
	if b >= len(cs.blocks) {
		return 0, 0, false
	}
	return b, s, true
}

// Append stores item (a T or *T) and returns its slot, reusing freed
// slots first. It returns -1 for a value of the wrong type.
func (cs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/blockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([blockSize]T))
			cs.filled = append(cs.filled, new([blockSize]bool))
		}
	}

	b, s := index/blockSize, index%blockSize
	cs.blocks[b][s] = value
	cs.filled[b][s] = true
	return index
}

// Get returns a *T for a filled slot, nil otherwise.
func (cs *blockStorage[T]) Get(index int) any {
	b, s, ok := cs.slot(index)
	if !ok || !cs.filled[b][s] {
		return nil
	}
	return &cs.blocks[b][s]
}

// Delete empties a slot and queues it for reuse.
func (cs *blockStorage[T]) Delete(index int) {
	b, s, ok := cs.slot(index)
	if !ok || !cs.filled[b][s] {
		return
	}
	var zero T
	cs.blocks[b][s] = zero
	cs.filled[b][s] = false
	cs.freeSlots = append(cs.freeSlots, index)
}

func (cs *blockStorage[T]) Has(index int) bool {
	b, s, ok := cs.slot(index)
	return ok && cs.filled[b][s]
}

// Len is the number of filled slots.
func (cs *blockStorage[T]) Len() int {
	return cs.nextIndex - len(cs.freeSlots)
}

// Compact packs filled slots to the front and returns old index -> new index.
func (cs *blockStorage[T]) Compact() map[int]int {
	moved := make(map[int]int)
	live := cs.Len()

	blocks := make([]*[blockSize]T, 0, (live+blockSize-1)/blockSize)
	filled := make([]*[blockSize]bool, 0, cap(blocks))

	write := 0
	for read := range cs.Iter() {
		if write%blockSize == 0 {
			blocks = append(blocks, new([blockSize]T))
			filled = append(filled, new([blockSize]bool))
		}
		rb, rs := read/blockSize, read%blockSize
		wb, ws := write/blockSize, write%blockSize
		blocks[wb][ws] = cs.blocks[rb][rs]
		filled[wb][ws] = true
		moved[read] = write
		write++
	}

	cs.blocks = blocks
	cs.filled = filled
	cs.freeSlots = nil
	cs.nextIndex = write
	return moved
}

// Iter yields filled slot indices in ascending order.
func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if cs.filled[i/blockSize][i%blockSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}
