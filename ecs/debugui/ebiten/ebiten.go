// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stackgames/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// It lives in storage as a singleton so the game loop can bracket the
// scheduler with BeginFrame and EndFrame.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Install creates the backend and its window, and stores it in storage.
// imgui.ini is not written.
func Install(storage *ecs.Storage, title string, width, height int) *ecs.Singleton[ImguiBackend] {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return ecs.NewSingleton[ImguiBackend](storage, ImguiBackend{EbitenBackend: backend})
}
