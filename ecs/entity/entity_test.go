package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/curve"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/ecs/prop"
	"github.com/milk9111/easekit/ecs/system"
	"github.com/milk9111/easekit/modal"
	"github.com/milk9111/easekit/prefabs"
	"github.com/milk9111/easekit/script"
	"github.com/milk9111/easekit/transition"
	"github.com/milk9111/easekit/tween"
)

func TestBuildTree(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.EntitySpec{
		Name: "root",
		Components: map[string]any{
			"transform": map[string]any{"position": map[string]any{"x": 10, "y": 20}},
			"graphic":   map[string]any{"kind": "rect", "color": "#ff000080"},
		},
		Children: []prefabs.EntitySpec{
			{Name: "child", Components: map[string]any{"transform": map[string]any{"position": map[string]any{"x": 5}}}},
		},
	}
	root, names, err := Build(w, spec, 0)
	if err != nil {
		t.Fatal(err)
	}
	if names["root"] != root || len(names) != 2 {
		t.Fatalf("names = %v", names)
	}

	g, ok := ecs.Get(w, root, component.GraphicComponent.Kind())
	if !ok || g.Color.R != 255 || g.Color.A != 0x80 || g.Alpha != 1 || !g.Enabled {
		t.Fatalf("graphic = %+v", g)
	}
	pos, _ := prop.Position(w, names["child"]).Get()
	if pos != (common.Vec3{X: 15, Y: 20}) {
		t.Fatalf("child world position = %v", pos)
	}
	if s, _ := prop.Scale(w, root).Get(); s != common.One {
		t.Fatalf("default scale = %v", s)
	}
}

func TestBuildErrorsCleanUp(t *testing.T) {
	tests := []struct {
		name string
		spec prefabs.EntitySpec
		want error
	}{
		{
			name: "unknown_component",
			spec: prefabs.EntitySpec{Name: "a", Children: []prefabs.EntitySpec{
				{Name: "b", Components: map[string]any{"rigidbody": map[string]any{}}},
			}},
		},
		{
			name: "bad_field",
			spec: prefabs.EntitySpec{Name: "a", Components: map[string]any{"size": map[string]any{"depth": 3}}},
		},
		{
			name: "duplicate_name",
			spec: prefabs.EntitySpec{Name: "a", Children: []prefabs.EntitySpec{{Name: "a"}}},
			want: ErrDuplicateName,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, _, err := Build(w, tc.spec, 0)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("%d entities left after failed build", n)
			}
		})
	}
}

func frames(s *ecs.Scheduler, w *ecs.World, n int, done func() bool) {
	for i := 0; i < n && !done(); i++ {
		s.Update(w)
	}
}

func TestModalPrefab(t *testing.T) {
	spec, err := prefabs.LoadModalSpec()
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()
	r := tween.NewRunner()
	m, err := NewModal(w, r, spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.State() != modal.Closed {
		t.Fatalf("state = %v", m.State())
	}
	if s, _ := prop.Scale(w, m.Panel).Get(); s != common.Zero {
		t.Fatalf("closed panel scale = %v", s)
	}

	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if b, _ := ecs.Get(w, m.Trigger, component.ButtonComponent.Kind()); b.Interactable {
		t.Fatalf("trigger interactable mid-transition")
	}
	s := ecs.NewScheduler(system.NewTweenSystem(r, nil))
	frames(s, w, 120, func() bool { return m.State() == modal.Open })

	if m.State() != modal.Open {
		t.Fatalf("state = %v, want open", m.State())
	}
	pos, _ := prop.Position(w, m.Panel).Get()
	if pos != (common.Vec3{X: 640, Y: 360}) {
		t.Fatalf("panel at %v, want anchor", pos)
	}
	sv, _ := ecs.Get(w, m.Names[spec.Scroll], component.ScrollViewComponent.Kind())
	if !sv.InputEnabled {
		t.Fatalf("scroll input not enabled after open")
	}

	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	frames(s, w, 120, func() bool { return m.State() == modal.Closed })
	if sc, _ := prop.Scale(w, m.Panel).Get(); m.State() != modal.Closed || sc != common.Zero {
		t.Fatalf("state = %v scale = %v after close", m.State(), sc)
	}
}

type instantLoader struct{ polls int }

func (l *instantLoader) Load(string) (transition.Operation, error) { return l, nil }

func (l *instantLoader) Poll() (float64, bool) {
	l.polls++
	return float64(l.polls) / 3, l.polls >= 3
}

func TestLoadingScreenPrefab(t *testing.T) {
	spec, err := prefabs.LoadLoadingScreenSpec()
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()
	r := tween.NewRunner()
	ls, err := NewLoadingScreen(w, r, &instantLoader{}, spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	if prop.IsActive(w, ls.Root) {
		t.Fatalf("loading root should start inactive")
	}

	h, err := ls.StartAsyncLoad("level_2")
	if err != nil {
		t.Fatal(err)
	}
	if !prop.IsActive(w, ls.Root) {
		t.Fatalf("loading root not activated")
	}
	hint, _ := ecs.Get(w, ls.Names[spec.Hint], component.GraphicComponent.Kind())
	if hint.Text == "" {
		t.Fatalf("hint not picked")
	}

	s := ecs.NewScheduler(system.NewTweenSystem(r, nil))
	frames(s, w, 300, h.Done)
	if ls.Phase() != transition.Done {
		t.Fatalf("phase = %v", ls.Phase())
	}
	if prop.IsActive(w, ls.Root) {
		t.Fatalf("loading root still active")
	}
	if v, _ := prop.Slider(w, ls.Names[spec.Progress]).Get(); v != 0 {
		t.Fatalf("progress = %v, want reset to 0", v)
	}
}

func TestSceneRunsIntroScript(t *testing.T) {
	w := ecs.NewWorld()
	r := tween.NewRunner()
	scene := NewScene(w, r)

	camSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		t.Fatal(err)
	}
	if scene.Camera, err = NewCamera(w, r, camSpec); err != nil {
		t.Fatal(err)
	}
	modalSpec, err := prefabs.LoadModalSpec()
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewModal(w, r, modalSpec, nil)
	if err != nil {
		t.Fatal(err)
	}
	scene.AddModal(modalSpec.Panel.Name, m)
	if scene.Curves, err = prefabs.LoadCurveLibrary(); err != nil {
		t.Fatal(err)
	}

	h, err := scene.RunScript("intro.tengo", map[string]any{"bounces": 1})
	if err != nil {
		t.Fatal(err)
	}

	s := ecs.NewScheduler(system.NewCameraShakeSystem(scene.Camera.Rig), system.NewTweenSystem(r, nil))
	sawOpen := false
	frames(s, w, 900, func() bool {
		if m.State() == modal.Open {
			sawOpen = true
		}
		return h.Done()
	})

	if h.Status() != tween.Completed {
		t.Fatalf("script status = %v", h.Status())
	}
	if !sawOpen || m.State() != modal.Closed {
		t.Fatalf("sawOpen=%v state=%v", sawOpen, m.State())
	}
	frames(s, w, 120, scene.Camera.Rig.Idle)
	if off, _ := prop.LocalPosition(w, scene.Camera.Lens).Get(); off != camSpec.Offset {
		t.Fatalf("lens offset = %v after shake, want %v", off, camSpec.Offset)
	}
}

func TestSceneUnknownTarget(t *testing.T) {
	scene := NewScene(ecs.NewWorld(), tween.NewRunner())
	if _, err := scene.Position("nobody"); !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("err = %v", err)
	}
	if _, err := scene.Action(scriptSpec(ActionOpenModal, "nobody")); !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("err = %v", err)
	}
}

func scriptSpec(kind, target string) script.StepSpec {
	return script.StepSpec{Kind: kind, Target: target}
}

func TestShakeActionResolvesCurves(t *testing.T) {
	w := ecs.NewWorld()
	r := tween.NewRunner()
	scene := NewScene(w, r)

	keyed, err := curve.New(curve.Keyframe{Time: 0, Value: 0.5}, curve.Keyframe{Time: 1, Value: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	camSpec := prefabs.CameraSpec{Shake: prefabs.ShakeSpec{Duration: 1, Strength: 2, Curve: keyed}}
	if scene.Camera, err = NewCamera(w, r, camSpec); err != nil {
		t.Fatal(err)
	}
	if scene.Curves, err = prefabs.LoadCurveLibrary(); err != nil {
		t.Fatal(err)
	}

	pending := func(spec script.StepSpec) tween.Curve {
		t.Helper()
		step, err := scene.Action(spec)
		if err != nil {
			t.Fatal(err)
		}
		step.Advance(0)
		req, ok := ecs.Get(w, scene.Camera.Root, component.CameraShakeRequestComponent.Kind())
		if !ok {
			t.Fatal("no shake request queued")
		}
		return req.Curve
	}

	if got := pending(script.StepSpec{Kind: ActionShake}); got != keyed {
		t.Fatalf("default shake curve = %v, want the camera's keyframed curve", got)
	}
	if got := pending(script.StepSpec{Kind: ActionShake, Curve: "overshoot"}); got != scene.Curves.Curves["overshoot"] {
		t.Fatalf("named shake curve = %v, want the library's overshoot", got)
	}
	if _, err := scene.Action(script.StepSpec{Kind: ActionShake, Curve: "wobbly"}); err == nil {
		t.Fatal("unknown shake curve accepted")
	}
}
