package ecs

import "github.com/milk9111/easekit/ecs/component"

// Kind is any component kind, used where the value type does not matter.
type Kind interface {
	ID() component.ComponentID
}

// Query returns the live entities that carry every listed kind, in slot order.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		sets = append(sets, s)
	}
	var out []Entity
	for _, e := range w.entities.all() {
		match := true
		for _, s := range sets {
			if !s.has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the lowest-slot live entity carrying every listed kind.
func (w *World) First(kinds ...Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
