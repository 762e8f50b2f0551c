package prop

import (
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/tween"
)

// Subtree is a fade root covering an entity and all of its descendants.
type Subtree struct {
	w    *ecs.World
	root ecs.Entity
}

func SubtreeOf(w *ecs.World, root ecs.Entity) Subtree {
	return Subtree{w: w, root: root}
}

func (s Subtree) Alive() bool {
	return ecs.IsAlive(s.w, s.root)
}

// Graphics lists every Graphic under the root, root first, breadth first.
func (s Subtree) Graphics() []tween.Graphic {
	var out []tween.Graphic
	for _, e := range Descendants(s.w, s.root) {
		if ecs.Has(s.w, e, component.GraphicComponent.Kind()) {
			out = append(out, graphic{w: s.w, e: e})
		}
	}
	return out
}

// Descendants returns root followed by its descendants in breadth-first,
// slot order.
func Descendants(w *ecs.World, root ecs.Entity) []ecs.Entity {
	if !ecs.IsAlive(w, root) {
		return nil
	}
	children := map[ecs.Entity][]ecs.Entity{}
	for _, e := range w.Query(component.ParentComponent) {
		par, _ := ecs.Get(w, e, component.ParentComponent.Kind())
		p := ecs.Entity(par.Entity)
		children[p] = append(children[p], e)
	}

	out := []ecs.Entity{root}
	seen := map[ecs.Entity]bool{root: true}
	for i := 0; i < len(out); i++ {
		for _, c := range children[out[i]] {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

type graphic struct {
	w *ecs.World
	e ecs.Entity
}

func (g graphic) SetAlpha(a float64) {
	if c, ok := ecs.Get(g.w, g.e, component.GraphicComponent.Kind()); ok {
		c.Alpha = a
	}
}

func (g graphic) SetEnabled(on bool) {
	if c, ok := ecs.Get(g.w, g.e, component.GraphicComponent.Kind()); ok {
		c.Enabled = on
	}
}
