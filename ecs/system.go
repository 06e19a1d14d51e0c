package ecs

// System is one step of a frame. Exported Query and Singleton fields are
// wired to the storage when the system is registered; any other fields keep
// their values between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees of the current Scheduler.Once call:
// the step in seconds, the frame's deferred structural changes and the
// world itself for direct reads.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{DeltaTime: dt, Commands: newCommands(), Storage: storage}
}
