package debugui

import "github.com/plus3/stackgames/ecs"

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Game input systems check it so clicks on a debug window do not reach the game.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Register adds the debug UI component types to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
	ecs.RegisterComponent[PerformanceStats](registry)
}

// Spawn adds the input-state singleton and a performance window reporting
// on the given schedulers.
func Spawn(storage *ecs.Storage, schedulers ...NamedScheduler) {
	ecs.NewSingleton[ImguiInputState](storage)
	storage.Spawn(NewPerformanceStats(120, schedulers...))
}
