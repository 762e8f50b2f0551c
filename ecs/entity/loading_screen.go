package entity

import (
	"fmt"

	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/prop"
	"github.com/milk9111/easekit/prefabs"
	"github.com/milk9111/easekit/transition"
	"github.com/milk9111/easekit/tween"
)

type LoadingScreen struct {
	*transition.Orchestrator
	Root  ecs.Entity
	Names Names
}

func NewLoadingScreen(w *ecs.World, runner *tween.Runner, loader transition.Loader, spec prefabs.LoadingScreenSpec, rnd transition.Random) (*LoadingScreen, error) {
	root, names, err := Build(w, spec.Root, 0)
	if err != nil {
		return nil, fmt.Errorf("loading screen: build: %w", err)
	}
	lookup := func(role, name string) (ecs.Entity, error) {
		e, ok := names[name]
		if !ok {
			return 0, fmt.Errorf("loading screen: %s %q not found", role, name)
		}
		return e, nil
	}

	bg, err := lookup("background", spec.Background)
	if err != nil {
		return nil, err
	}
	content, err := lookup("content", spec.Content)
	if err != nil {
		return nil, err
	}
	surfaces := transition.Surfaces{
		Root:       prop.Active(w, root),
		Background: prop.SubtreeOf(w, bg),
		Content:    prop.SubtreeOf(w, content),
	}
	if spec.Hint != "" {
		hint, err := lookup("hint", spec.Hint)
		if err != nil {
			return nil, err
		}
		surfaces.Hint = prop.TextOf(w, hint)
	}
	if spec.Progress != "" {
		bar, err := lookup("progress", spec.Progress)
		if err != nil {
			return nil, err
		}
		surfaces.Progress = prop.Slider(w, bar)
	}

	cfg := transition.Config{Duration: spec.Duration, Hints: spec.Hints}
	if spec.Curve != nil {
		cfg.Curve = spec.Curve
	}
	if spec.OpenCurve != nil {
		cfg.OpenCurve = spec.OpenCurve
	}
	return &LoadingScreen{
		Orchestrator: transition.New(runner, loader, surfaces, rnd, cfg),
		Root:         root,
		Names:        names,
	}, nil
}
