package main

import (
	"testing"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/ecs/entity"
	"github.com/milk9111/easekit/ecs/prop"
	"github.com/milk9111/easekit/prefabs"
	"github.com/milk9111/easekit/tween"
)

func addButton(t *testing.T, w *ecs.World, pos common.Vec3, layer int, screen bool, action string) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Scale: common.One}))
	must(ecs.Add(w, e, component.SizeComponent.Kind(), &component.Size{W: 100, H: 40}))
	must(ecs.Add(w, e, component.GraphicComponent.Kind(), &component.Graphic{Alpha: 1, Enabled: true, Layer: layer, Screen: screen}))
	must(ecs.Add(w, e, component.ButtonComponent.Kind(), &component.Button{Action: action, Interactable: true}))
	return e
}

func TestButtonAt(t *testing.T) {
	w := ecs.NewWorld()
	low := addButton(t, w, common.Vec3{X: 100, Y: 100}, 0, true, "low")
	addButton(t, w, common.Vec3{X: 120, Y: 100}, 5, true, "high")

	tests := []struct {
		name   string
		x, y   float64
		action string
		ok     bool
	}{
		{"miss", 400, 400, "", false},
		{"only low", 60, 100, "low", true},
		{"overlap picks higher layer", 110, 100, "high", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, btn, ok := buttonAt(w, tt.x, tt.y)
			if ok != tt.ok || btn.Action != tt.action {
				t.Fatalf("buttonAt(%v, %v) = %q %v, want %q %v", tt.x, tt.y, btn.Action, ok, tt.action, tt.ok)
			}
		})
	}

	prop.Interactable(w, low).SetEnabled(false)
	if _, btn, ok := buttonAt(w, 60, 100); ok {
		t.Fatalf("non-interactable button hit: %q", btn.Action)
	}
}

func TestButtonAtFollowsCamera(t *testing.T) {
	w := ecs.NewWorld()
	addButton(t, w, common.Vec3{X: 500, Y: 300}, 0, false, "world")
	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{Position: common.Vec3{X: 400, Y: 200}, Scale: common.One}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: 1}); err != nil {
		t.Fatal(err)
	}

	if _, _, ok := buttonAt(w, 500, 300); ok {
		t.Fatal("world button hit at its unprojected position")
	}
	if _, btn, ok := buttonAt(w, 100, 100); !ok || btn.Action != "world" {
		t.Fatalf("projected hit = %q %v", btn.Action, ok)
	}
}

func TestSettingsTriggerIsClickable(t *testing.T) {
	w := ecs.NewWorld()
	spec, err := prefabs.LoadModalSpec()
	if err != nil {
		t.Fatal(err)
	}
	m, err := entity.NewModal(w, tween.NewRunner(), spec, entity.BaseScreen)
	if err != nil {
		t.Fatal(err)
	}
	pos, _ := prop.Position(w, m.Trigger).Get()
	_, btn, ok := buttonAt(w, pos.X, pos.Y)
	if !ok || btn.Action != actionOpenModal {
		t.Fatalf("trigger click = %q %v, want %q", btn.Action, ok, actionOpenModal)
	}

	// The closed panel has zero scale so its close button cannot be hit.
	panelPos, _ := prop.Position(w, m.Panel).Get()
	if _, btn, ok := buttonAt(w, panelPos.X, panelPos.Y); ok && btn.Action == actionCloseModal {
		t.Fatal("close button of a closed panel was hit")
	}
}
