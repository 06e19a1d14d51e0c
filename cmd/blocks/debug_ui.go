package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/ecs/debugui"
)

func spawnInspector(storage *ecs.Storage) {
	session := ecs.NewSingleton[Session](storage)

	storage.Spawn(debugui.Window("Session", 10, 340, 320, 300, func() {
		s := session.Get()
		imgui.Text(fmt.Sprintf("ID: %s", s.ID))
		imgui.Text(fmt.Sprintf("Board: %d cells filled", s.State.Board.Count()))
		imgui.Separator()
		debugui.Inspect("Active", &s.State.Active)
		debugui.Inspect("State", s.State)
	}))
}
