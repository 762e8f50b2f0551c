package system

import (
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/tween"
)

// TweenSystem advances a runner once per world update. Delta supplies the
// frame time in seconds; a nil Delta uses a fixed 60 Hz step.
type TweenSystem struct {
	runner *tween.Runner
	delta  func() float64
	paused bool
}

func NewTweenSystem(runner *tween.Runner, delta func() float64) *TweenSystem {
	if delta == nil {
		delta = func() float64 { return 1.0 / 60.0 }
	}
	return &TweenSystem{runner: runner, delta: delta}
}

// SetPaused freezes every running step. Paused frames are skipped, not
// replayed.
func (s *TweenSystem) SetPaused(paused bool) {
	s.paused = paused
}

func (s *TweenSystem) Paused() bool { return s.paused }

func (s *TweenSystem) Update(w *ecs.World) {
	if s == nil || s.runner == nil || s.paused {
		return
	}
	s.runner.Update(s.delta())
}
