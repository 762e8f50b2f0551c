package entity

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/prop"
	"github.com/milk9111/easekit/ecs/system"
	"github.com/milk9111/easekit/modal"
	"github.com/milk9111/easekit/prefabs"
	"github.com/milk9111/easekit/script"
	"github.com/milk9111/easekit/tween"
)

var ErrUnknownTarget = errors.New("entity: unknown target")

// Script action kinds understood by a Scene.
const (
	ActionShake      = "shake"
	ActionOpenModal  = "open_modal"
	ActionCloseModal = "close_modal"
	ActionLoadScene  = "load_scene"
	ActionRadialFill = "radial_fill"
	ActionAim        = "aim"
)

// Scene ties the built prefabs together and resolves script names against
// them.
type Scene struct {
	World   *ecs.World
	Runner  *tween.Runner
	Camera  *Camera
	Modals  map[string]*Modal
	Loading *LoadingScreen
	Curves  prefabs.CurveLibrary
	Names   Names
}

func NewScene(w *ecs.World, runner *tween.Runner) *Scene {
	return &Scene{World: w, Runner: runner, Modals: map[string]*Modal{}, Names: Names{}}
}

// AddModal registers m under the name of its panel entity and merges its
// names.
func (s *Scene) AddModal(name string, m *Modal) {
	s.Modals[name] = m
	s.merge(m.Names)
}

func (s *Scene) SetLoading(l *LoadingScreen) {
	s.Loading = l
	s.merge(l.Names)
}

// Adopt makes entities built outside the scene's own prefabs addressable
// from scripts.
func (s *Scene) Adopt(names Names) {
	s.merge(names)
}

func (s *Scene) merge(names Names) {
	for k, v := range names {
		if _, dup := s.Names[k]; dup {
			log.Printf("entity: name %q registered twice, keeping the first", k)
			continue
		}
		s.Names[k] = v
	}
}

func (s *Scene) entity(target string) (ecs.Entity, error) {
	e, ok := s.Names[target]
	if !ok || !ecs.IsAlive(s.World, e) {
		return 0, fmt.Errorf("%w %q", ErrUnknownTarget, target)
	}
	return e, nil
}

func (s *Scene) Position(target string) (tween.Property[common.Vec3], error) {
	e, err := s.entity(target)
	if err != nil {
		return nil, err
	}
	return prop.Position(s.World, e), nil
}

func (s *Scene) Scale(target string) (tween.Property[common.Vec3], error) {
	e, err := s.entity(target)
	if err != nil {
		return nil, err
	}
	return prop.Scale(s.World, e), nil
}

func (s *Scene) Euler(target string) (tween.Property[common.Vec3], error) {
	e, err := s.entity(target)
	if err != nil {
		return nil, err
	}
	return prop.Euler(s.World, e), nil
}

func (s *Scene) FadeTarget(target string) (tween.FadeTarget, error) {
	e, err := s.entity(target)
	if err != nil {
		return nil, err
	}
	return prop.SubtreeOf(s.World, e), nil
}

func (s *Scene) Curve(name string) (tween.Curve, error) {
	return s.Curves.Lookup(name)
}

func (s *Scene) Actions() []string {
	return []string{ActionShake, ActionOpenModal, ActionCloseModal, ActionLoadScene, ActionRadialFill, ActionAim}
}

func (s *Scene) Action(spec script.StepSpec) (tween.Step, error) {
	switch spec.Kind {
	case ActionShake:
		if s.Camera == nil {
			return nil, errors.New("scene has no camera")
		}
		shake := s.Camera.Shake
		duration, strength := spec.Duration, spec.Strength
		if duration == 0 {
			duration = shake.Duration
		}
		if strength == 0 {
			strength = shake.Strength
		}
		var c tween.Curve
		if shake.Curve != nil {
			c = shake.Curve
		}
		if spec.Curve != "" {
			named, err := s.Curve(spec.Curve)
			if err != nil {
				return nil, err
			}
			c = named
		}
		root := s.Camera.Root
		return tween.Call(func() {
			if err := system.RequestShake(s.World, root, duration, strength, c); err != nil {
				log.Printf("entity: shake request: %v", err)
			}
		}), nil
	case ActionOpenModal, ActionCloseModal:
		m, ok := s.Modals[spec.Target]
		if !ok {
			return nil, fmt.Errorf("%w modal %q", ErrUnknownTarget, spec.Target)
		}
		return modalStep(m, spec.Kind == ActionOpenModal), nil
	case ActionLoadScene:
		if s.Loading == nil {
			return nil, errors.New("scene has no loading screen")
		}
		l, scene := s.Loading, spec.Scene
		failed := false
		return tween.Sequence(
			tween.Call(func() {
				if _, err := l.StartAsyncLoad(scene); err != nil {
					log.Printf("entity: load %q: %v", scene, err)
					failed = true
				}
			}),
			tween.Until(func() bool { return failed || !l.Busy() }),
		), nil
	case ActionRadialFill:
		e, err := s.entity(spec.Target)
		if err != nil {
			return nil, err
		}
		c, err := s.Curve(spec.Curve)
		if err != nil {
			return nil, err
		}
		return tween.RadialFill(prop.Fill(s.World, e), c, spec.Duration), nil
	case ActionAim:
		e, err := s.entity(spec.Target)
		if err != nil {
			return nil, err
		}
		speed := spec.Strength
		if speed <= 0 {
			speed = 1
		}
		return tween.AimAt(prop.Forward(s.World, e), prop.Position(s.World, e), spec.To, speed), nil
	}
	return nil, fmt.Errorf("unknown action %q", spec.Kind)
}

// modalStep opens or closes m and waits for it to settle. A rejected request
// is logged and the step completes.
func modalStep(m *Modal, open bool) tween.Step {
	want := modal.Closed
	if open {
		want = modal.Open
	}
	failed := false
	return tween.Sequence(
		tween.Call(func() {
			var err error
			if open {
				err = m.OpenDefault(nil)
			} else {
				err = m.CloseDefault(nil)
			}
			if err != nil {
				log.Printf("entity: modal %v: %v", want, err)
				failed = true
			}
		}),
		tween.Until(func() bool { return failed || m.State() == want }),
	)
}

// RunScript compiles and runs a prefab script against the scene and starts
// the resulting sequence.
func (s *Scene) RunScript(name string, params map[string]any) (*tween.Handle, error) {
	p, err := script.Load(name)
	if err != nil {
		return nil, err
	}
	specs, err := p.Run(params)
	if err != nil {
		return nil, err
	}
	step, err := script.Build(specs, s)
	if err != nil {
		return nil, fmt.Errorf("entity: script %s: %w", name, err)
	}
	return s.Runner.Start(step), nil
}
