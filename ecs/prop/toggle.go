package prop

import (
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
)

// Toggle flips one boolean on an entity. Writes to a dead entity are dropped.
type Toggle struct {
	set func(on bool)
}

func (t Toggle) SetEnabled(on bool) {
	if t.set != nil {
		t.set(on)
	}
}

// Active toggles the entity's Active component, adding it when missing.
func Active(w *ecs.World, e ecs.Entity) Toggle {
	return Toggle{set: func(on bool) {
		if a, ok := ecs.Get(w, e, component.ActiveComponent.Kind()); ok {
			a.On = on
			return
		}
		_ = ecs.Add(w, e, component.ActiveComponent.Kind(), &component.Active{On: on})
	}}
}

func Interactable(w *ecs.World, e ecs.Entity) Toggle {
	return Toggle{set: func(on bool) {
		if b, ok := ecs.Get(w, e, component.ButtonComponent.Kind()); ok {
			b.Interactable = on
		}
	}}
}

func ScrollInput(w *ecs.World, e ecs.Entity) Toggle {
	return Toggle{set: func(on bool) {
		if s, ok := ecs.Get(w, e, component.ScrollViewComponent.Kind()); ok {
			s.InputEnabled = on
		}
	}}
}

// IsActive treats a missing Active component as active.
func IsActive(w *ecs.World, e ecs.Entity) bool {
	if !ecs.IsAlive(w, e) {
		return false
	}
	a, ok := ecs.Get(w, e, component.ActiveComponent.Kind())
	return !ok || a.On
}

// ActiveInHierarchy reports whether e and all of its ancestors are active.
func ActiveInHierarchy(w *ecs.World, e ecs.Entity) bool {
	seen := map[ecs.Entity]bool{}
	for !seen[e] {
		seen[e] = true
		if !IsActive(w, e) {
			return false
		}
		par, ok := ecs.Get(w, e, component.ParentComponent.Kind())
		if !ok {
			return true
		}
		e = ecs.Entity(par.Entity)
	}
	return true
}

// Text sets the text of an entity's Graphic.
type Text struct {
	w *ecs.World
	e ecs.Entity
}

func TextOf(w *ecs.World, e ecs.Entity) Text {
	return Text{w: w, e: e}
}

func (t Text) SetText(s string) {
	if g, ok := ecs.Get(t.w, t.e, component.GraphicComponent.Kind()); ok {
		g.Text = s
	}
}

// Bounds reports an entity's Size. A missing Size reads as zero.
type Bounds struct {
	w *ecs.World
	e ecs.Entity
}

func BoundsOf(w *ecs.World, e ecs.Entity) Bounds {
	return Bounds{w: w, e: e}
}

func (b Bounds) Size() (float64, float64) {
	s, ok := ecs.Get(b.w, b.e, component.SizeComponent.Kind())
	if !ok {
		return 0, 0
	}
	return s.W, s.H
}
