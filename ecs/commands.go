package ecs

// Commands buffers structural changes requested while systems run. The
// Scheduler flushes them once every system of the frame has executed, so a
// query never sees the world change halfway through a frame.
type Commands struct {
	spawns [][]any
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Defer queues fn to run after the frame's spawns.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.defers)
}

// Flush applies queued operations to storage and resets the buffer
func (c *Commands) Flush(storage *Storage) {
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
