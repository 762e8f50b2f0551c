// Package prop exposes world state as tween properties and fade targets.
// Every accessor re-resolves its entity on each call, so a destroyed entity
// reports an invalid target and the driving tween aborts.
package prop

import (
	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/tween"
)

type field[C, V any] struct {
	w    *ecs.World
	e    ecs.Entity
	kind component.ComponentKind[C]
	get  func(*C) V
	set  func(*C, V)
}

func (f field[C, V]) Get() (V, bool) {
	c, ok := ecs.Get(f.w, f.e, f.kind)
	if !ok {
		var zero V
		return zero, false
	}
	return f.get(c), true
}

func (f field[C, V]) Set(v V) bool {
	c, ok := ecs.Get(f.w, f.e, f.kind)
	if !ok {
		return false
	}
	f.set(c, v)
	return true
}

func transformField(w *ecs.World, e ecs.Entity, get func(*component.Transform) common.Vec3, set func(*component.Transform, common.Vec3)) tween.Property[common.Vec3] {
	return field[component.Transform, common.Vec3]{w: w, e: e, kind: component.TransformComponent.Kind(), get: get, set: set}
}

func LocalPosition(w *ecs.World, e ecs.Entity) tween.Property[common.Vec3] {
	return transformField(w, e,
		func(t *component.Transform) common.Vec3 { return t.Position },
		func(t *component.Transform, v common.Vec3) { t.Position = v })
}

func Euler(w *ecs.World, e ecs.Entity) tween.Property[common.Vec3] {
	return transformField(w, e,
		func(t *component.Transform) common.Vec3 { return t.Euler },
		func(t *component.Transform, v common.Vec3) { t.Euler = v })
}

func Scale(w *ecs.World, e ecs.Entity) tween.Property[common.Vec3] {
	return transformField(w, e,
		func(t *component.Transform) common.Vec3 { return t.Scale },
		func(t *component.Transform, v common.Vec3) { t.Scale = v })
}

func Forward(w *ecs.World, e ecs.Entity) tween.Property[common.Vec3] {
	return transformField(w, e,
		func(t *component.Transform) common.Vec3 { return t.Forward },
		func(t *component.Transform, v common.Vec3) { t.Forward = v })
}

// Position is the world-space position. A child's world position is its
// local position scaled by the parent's world scale, offset by the parent's
// world position. Rotation does not propagate.
func Position(w *ecs.World, e ecs.Entity) tween.Property[common.Vec3] {
	return worldPosition{w: w, e: e}
}

type worldPosition struct {
	w *ecs.World
	e ecs.Entity
}

func (p worldPosition) Get() (common.Vec3, bool) {
	t, ok := ecs.Get(p.w, p.e, component.TransformComponent.Kind())
	if !ok {
		return common.Vec3{}, false
	}
	origin, scale := ParentFrame(p.w, p.e)
	return origin.Add(t.Position.Mul(scale)), true
}

func (p worldPosition) Set(v common.Vec3) bool {
	t, ok := ecs.Get(p.w, p.e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	origin, scale := ParentFrame(p.w, p.e)
	t.Position = divide(v.Sub(origin), scale, t.Position)
	return true
}

// divide is v / s per axis; axes where s is zero keep fallback.
func divide(v, s, fallback common.Vec3) common.Vec3 {
	out := fallback
	if s.X != 0 {
		out.X = v.X / s.X
	}
	if s.Y != 0 {
		out.Y = v.Y / s.Y
	}
	if s.Z != 0 {
		out.Z = v.Z / s.Z
	}
	return out
}

// ParentFrame returns the world position and world scale of e's parent. An
// entity without a parent sits in the identity frame. A cycle or a dead
// ancestor ends the walk.
func ParentFrame(w *ecs.World, e ecs.Entity) (origin, scale common.Vec3) {
	var chain []*component.Transform
	seen := map[ecs.Entity]bool{e: true}
	for {
		par, ok := ecs.Get(w, e, component.ParentComponent.Kind())
		if !ok {
			break
		}
		e = ecs.Entity(par.Entity)
		if seen[e] {
			break
		}
		seen[e] = true
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			break
		}
		chain = append(chain, t)
	}

	scale = common.One
	for i := len(chain) - 1; i >= 0; i-- {
		origin = origin.Add(chain[i].Position.Mul(scale))
		scale = scale.Mul(chain[i].Scale)
	}
	return origin, scale
}

// WorldScale is e's own scale composed with its ancestors'.
func WorldScale(w *ecs.World, e ecs.Entity) common.Vec3 {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Zero
	}
	_, scale := ParentFrame(w, e)
	return scale.Mul(t.Scale)
}

func Alpha(w *ecs.World, e ecs.Entity) tween.Property[float64] {
	return field[component.Graphic, float64]{w: w, e: e, kind: component.GraphicComponent.Kind(),
		get: func(g *component.Graphic) float64 { return g.Alpha },
		set: func(g *component.Graphic, v float64) { g.Alpha = v }}
}

func Fill(w *ecs.World, e ecs.Entity) tween.Property[float64] {
	return field[component.Fill, float64]{w: w, e: e, kind: component.FillComponent.Kind(),
		get: func(f *component.Fill) float64 { return f.Amount },
		set: func(f *component.Fill, v float64) { f.Amount = v }}
}

func Slider(w *ecs.World, e ecs.Entity) tween.Property[float64] {
	return field[component.Slider, float64]{w: w, e: e, kind: component.SliderComponent.Kind(),
		get: func(s *component.Slider) float64 { return s.Value },
		set: func(s *component.Slider, v float64) { s.Value = v }}
}

func ScrollOffset(w *ecs.World, e ecs.Entity) tween.Property[common.Vec3] {
	return field[component.ScrollView, common.Vec3]{w: w, e: e, kind: component.ScrollViewComponent.Kind(),
		get: func(s *component.ScrollView) common.Vec3 { return s.Offset },
		set: func(s *component.ScrollView, v common.Vec3) { s.Offset = v }}
}
