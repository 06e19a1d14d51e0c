package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/ecs/debugui"
)

func spawnInspector(storage *ecs.Storage) {
	tower := ecs.NewSingleton[Tower](storage)

	storage.Spawn(debugui.Window("Tower", 10, 420, 340, 280, func() {
		game := tower.Get().Game
		imgui.Text(fmt.Sprintf("Session: %s", game.SessionID))
		imgui.Text(fmt.Sprintf("Phase: %s  Score: %d  Best: %d", game.Phase, game.Score, game.Best))
		imgui.Text(fmt.Sprintf("Difficulty: %s (%s)", game.Difficulty.Label(), game.Difficulty))
		imgui.Text(fmt.Sprintf("Camera: %.2f  Bodies: %d", game.CameraY, game.World().Len()))
		imgui.Separator()
		debugui.Inspect("Top", game.Top())
		for i, f := range game.Fragments {
			debugui.Inspect(fmt.Sprintf("Fragment %d", i), f.Transform())
		}
	}))
}
