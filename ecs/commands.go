package ecs

import "reflect"

// Commands buffers structural changes requested while systems run. The
// Scheduler flushes them once every system of the frame has executed, so
// queries never observe a half-updated world.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer runs fn after all other commands of the frame have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Flush applies the buffer to storage in a fixed order (deletes, removes,
// adds, spawns, defers) and empties it. Removes and adds aimed at an entity
// deleted in the same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))

	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = true
	}

	for _, cmd := range c.removes {
		if !deleted[cmd.entity] {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !deleted[cmd.entity] {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
