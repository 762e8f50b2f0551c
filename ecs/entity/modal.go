package entity

import (
	"fmt"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/ecs/prop"
	"github.com/milk9111/easekit/modal"
	"github.com/milk9111/easekit/prefabs"
	"github.com/milk9111/easekit/tween"
)

// Screen is a fixed-size modal.Sizer.
type Screen struct{ W, H float64 }

func (s Screen) Size() (float64, float64) { return s.W, s.H }

// BaseScreen is the reference resolution prefabs are authored against.
var BaseScreen = Screen{W: common.BaseWidth, H: common.BaseHeight}

type Modal struct {
	*modal.Modal
	Panel   ecs.Entity
	Trigger ecs.Entity
	Names   Names
}

func NewModal(w *ecs.World, runner *tween.Runner, spec prefabs.ModalSpec, screen modal.Sizer) (*Modal, error) {
	trigger, triggerNames, err := Build(w, spec.Trigger, 0)
	if err != nil {
		return nil, fmt.Errorf("modal: build trigger: %w", err)
	}
	panel, names, err := Build(w, spec.Panel, 0)
	if err != nil {
		return nil, fmt.Errorf("modal: build panel: %w", err)
	}
	for k, v := range triggerNames {
		if _, dup := names[k]; dup {
			return nil, fmt.Errorf("modal: %w: %q", ErrDuplicateName, k)
		}
		names[k] = v
	}

	el := modal.Element{
		Position: prop.Position(w, panel),
		Scale:    prop.Scale(w, panel),
		Bounds:   prop.BoundsOf(w, panel),
		Fade:     prop.SubtreeOf(w, panel),
		Trigger:  prop.Interactable(w, trigger),
	}
	if spec.UseScroll {
		scroll, ok := names[spec.Scroll]
		if !ok {
			return nil, fmt.Errorf("modal: scroll view %q not found in panel", spec.Scroll)
		}
		el.ScrollContent = prop.ScrollOffset(w, scroll)
		el.ScrollInput = prop.ScrollInput(w, scroll)
	}

	if !spec.StartOpen {
		if t, ok := ecs.Get(w, panel, component.TransformComponent.Kind()); ok {
			t.Scale = common.Zero
		}
	}

	cfg := modal.Config{
		OpenStyle:  spec.OpenStyle,
		CloseStyle: spec.CloseStyle,
		Duration:   spec.Duration,
		UseScroll:  spec.UseScroll,
		StartOpen:  spec.StartOpen,
	}
	if spec.Curve != nil {
		cfg.Curve = spec.Curve
	}
	if screen == nil {
		screen = BaseScreen
	}
	return &Modal{
		Modal:   modal.New(runner, el, screen, cfg),
		Panel:   panel,
		Trigger: trigger,
		Names:   names,
	}, nil
}

// Toggle opens a closed modal and closes an open one. Transitions in flight
// are left alone.
func (m *Modal) Toggle() error {
	switch m.State() {
	case modal.Closed:
		return m.OpenDefault(nil)
	case modal.Open:
		return m.CloseDefault(nil)
	}
	return modal.ErrBusy
}
