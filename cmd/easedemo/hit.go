package main

import (
	"math"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/ecs/prop"
)

// buttonAt returns the topmost interactable button under the screen point.
// World-space buttons are projected through the first camera.
func buttonAt(w *ecs.World, x, y float64) (ecs.Entity, component.Button, bool) {
	var (
		hit   ecs.Entity
		btn   component.Button
		layer = math.MinInt
		found bool
	)

	camPos, zoom := cameraView(w)
	ecs.ForEach3(w, component.ButtonComponent.Kind(), component.SizeComponent.Kind(), component.GraphicComponent.Kind(),
		func(e ecs.Entity, b *component.Button, size *component.Size, g *component.Graphic) {
			if !b.Interactable || !g.Enabled || g.Alpha <= 0 || !prop.ActiveInHierarchy(w, e) {
				return
			}
			pos, ok := prop.Position(w, e).Get()
			if !ok {
				return
			}
			scale := prop.WorldScale(w, e)
			if !g.Screen {
				pos = pos.Sub(camPos).Scale(zoom)
				scale = scale.Scale(zoom)
			}
			hw, hh := math.Abs(size.W*scale.X)/2, math.Abs(size.H*scale.Y)/2
			if hw == 0 || hh == 0 {
				return
			}
			if x < pos.X-hw || x > pos.X+hw || y < pos.Y-hh || y > pos.Y+hh {
				return
			}
			if !found || g.Layer >= layer {
				hit, btn, layer, found = e, *b, g.Layer, true
			}
		})
	return hit, btn, found
}

func cameraView(w *ecs.World) (pos common.Vec3, zoom float64) {
	zoom = 1
	cam, ok := w.First(component.CameraComponent)
	if !ok {
		return pos, zoom
	}
	pos, _ = prop.Position(w, cam).Get()
	if c, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		zoom = c.Zoom
	}
	return pos, zoom
}
