package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/ecs/prop"
	"golang.org/x/image/font/basicfont"
)

var face = text.NewGoXFace(basicfont.Face7x13)

// System draws every enabled Graphic whose ancestors are all active. Rects
// are centered on the entity's world position and sized by Size times world
// scale. World graphics are offset by the first camera's world position.
type System struct {
	camEntity ecs.Entity
}

func NewSystem() *System {
	return &System{}
}

func (s *System) Update(*ecs.World) {}

func (s *System) Draw(w *ecs.World, screen *ebiten.Image) {
	if s == nil || w == nil || screen == nil {
		return
	}

	if !s.camEntity.Valid() || !w.IsAlive(s.camEntity) {
		if cam, ok := w.First(component.CameraComponent); ok {
			s.camEntity = cam
		}
	}
	camPos, _ := prop.Position(w, s.camEntity).Get()
	zoom := 1.0
	if cam, ok := ecs.Get(w, s.camEntity, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		zoom = cam.Zoom
	}

	for _, item := range visible(w) {
		g := item.graphic
		pos, _ := prop.Position(w, item.entity).Get()
		scale := prop.WorldScale(w, item.entity)
		if !g.Screen {
			pos = pos.Sub(camPos).Scale(zoom)
			scale = scale.Scale(zoom)
		}
		clr := tint(g.Color, g.Alpha)

		switch g.Kind {
		case component.GraphicRect:
			size, ok := ecs.Get(w, item.entity, component.SizeComponent.Kind())
			if !ok {
				continue
			}
			rw, rh := size.W*scale.X, size.H*scale.Y
			if fill, ok := ecs.Get(w, item.entity, component.FillComponent.Kind()); ok {
				rw *= common.Clamp01(fill.Amount)
			}
			if slider, ok := ecs.Get(w, item.entity, component.SliderComponent.Kind()); ok {
				rw *= common.Clamp01(slider.Value)
			}
			if rw <= 0 || rh <= 0 {
				continue
			}
			vector.FillRect(screen, float32(pos.X-size.W*scale.X/2), float32(pos.Y-rh/2), float32(rw), float32(rh), clr, false)
		case component.GraphicText:
			if g.Text == "" || scale.X == 0 || scale.Y == 0 {
				continue
			}
			op := &text.DrawOptions{}
			op.PrimaryAlign = text.AlignCenter
			op.SecondaryAlign = text.AlignCenter
			op.GeoM.Scale(scale.X, scale.Y)
			op.GeoM.Translate(pos.X, pos.Y)
			op.ColorScale.ScaleWithColor(clr)
			text.Draw(screen, g.Text, face, op)
		}
	}
}

type item struct {
	entity  ecs.Entity
	graphic *component.Graphic
}

// visible returns drawable graphics sorted by layer, then slot order.
func visible(w *ecs.World) []item {
	var out []item
	for _, e := range w.Query(component.GraphicComponent, component.TransformComponent) {
		g, _ := ecs.Get(w, e, component.GraphicComponent.Kind())
		if !g.Enabled || g.Alpha <= 0 || !prop.ActiveInHierarchy(w, e) {
			continue
		}
		out = append(out, item{entity: e, graphic: g})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].graphic.Layer < out[j].graphic.Layer
	})
	return out
}

func tint(c color.RGBA, alpha float64) color.RGBA {
	a := common.Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
