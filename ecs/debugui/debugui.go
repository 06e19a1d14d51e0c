// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stackgames/ecs"
)

// ImguiSystem queries all ImguiItem and PerformanceStats components and
// defers their rendering to the end of the frame. It also updates the
// ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	Panels     ecs.Query[struct{ *PerformanceStats }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}

	dt := float32(frame.DeltaTime)
	storage := frame.Storage
	for panel := range i.Panels.Values() {
		stats := panel.PerformanceStats
		frame.Commands.Defer(func() { stats.Render(storage, dt) })
	}
}

// Window returns an item that draws render inside a window first placed at
// (x, y) with size (w, h).
func Window(title string, x, y, w, h float32, render func()) ImguiItem {
	return ImguiItem{
		Render: func() {
			imgui.SetNextWindowPosV(imgui.NewVec2(x, y), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(w, h), imgui.CondOnce)
			if imgui.BeginV(title, nil, imgui.WindowFlagsNone) {
				render()
			}
			imgui.End()
		},
	}
}
