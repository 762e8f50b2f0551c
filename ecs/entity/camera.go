package entity

import (
	"fmt"

	"github.com/milk9111/easekit/camera"
	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/ecs/prop"
	"github.com/milk9111/easekit/prefabs"
	"github.com/milk9111/easekit/tween"
)

// Camera is a two-entity rig: Root carries the world position that moves
// follow, Lens is its child whose local offset absorbs shakes.
type Camera struct {
	Root  ecs.Entity
	Lens  ecs.Entity
	Rig   *camera.Rig
	Shake prefabs.ShakeSpec
}

func NewCamera(w *ecs.World, runner *tween.Runner, spec prefabs.CameraSpec) (*Camera, error) {
	root := ecs.CreateEntity(w)
	if err := ecs.Add(w, root, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position,
		Scale:    common.One,
		Forward:  common.Vec3{Z: 1},
	}); err != nil {
		return nil, fmt.Errorf("camera: add transform: %w", err)
	}
	if spec.Name != "" {
		if err := ecs.Add(w, root, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			return nil, fmt.Errorf("camera: add name: %w", err)
		}
	}

	lens := ecs.CreateEntity(w)
	if err := ecs.Add(w, lens, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Offset,
		Scale:    common.One,
		Forward:  common.Vec3{Z: 1},
	}); err != nil {
		return nil, fmt.Errorf("camera: add lens transform: %w", err)
	}
	if err := ecs.Add(w, lens, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(root)}); err != nil {
		return nil, fmt.Errorf("camera: add lens parent: %w", err)
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	if err := ecs.Add(w, lens, component.CameraComponent.Kind(), &component.Camera{Zoom: zoom}); err != nil {
		return nil, fmt.Errorf("camera: add camera component: %w", err)
	}

	seed := spec.Seed
	if seed == 0 {
		seed = 1
	}
	cfg := camera.Config{MoveDuration: spec.MoveDuration}
	if spec.MoveCurve != nil {
		cfg.MoveCurve = spec.MoveCurve
	}
	rig := camera.New(runner, prop.LocalPosition(w, lens), prop.Position(w, root), camera.NewRandom(seed), cfg)
	return &Camera{Root: root, Lens: lens, Rig: rig, Shake: spec.Shake}, nil
}
