package ecs

// System is a behaviour run once per frame. Implementations are usually
// structs whose Query and Singleton fields are wired by the Scheduler; any
// other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is passed to every system of one scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
