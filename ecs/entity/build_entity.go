package entity

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/prefabs"
)

var ErrDuplicateName = errors.New("entity: duplicate entity name")

// Names maps prefab node names to the entities built for them.
type Names map[string]ecs.Entity

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

var componentRegistry = map[string]componentBuildFn{
	"transform":   addTransform,
	"graphic":     addGraphic,
	"size":        addSize,
	"fill":        addFill,
	"button":      addButton,
	"scroll_view": addScrollView,
	"active":      addActive,
	"slider":      addSlider,
	"camera":      addCamera,
}

var componentBuildOrder = []string{
	"transform",
	"size",
	"graphic",
	"fill",
	"slider",
	"button",
	"scroll_view",
	"active",
	"camera",
}

// Build instantiates spec and its children under parent. parent may be zero.
// On error every entity created so far is destroyed.
func Build(w *ecs.World, spec prefabs.EntitySpec, parent ecs.Entity) (ecs.Entity, Names, error) {
	if w == nil {
		return 0, nil, fmt.Errorf("build entity: world is nil")
	}
	names := Names{}
	var created []ecs.Entity
	root, err := build(w, spec, parent, names, &created)
	if err != nil {
		for _, e := range created {
			ecs.DestroyEntity(w, e)
		}
		return 0, nil, err
	}
	return root, names, nil
}

func build(w *ecs.World, spec prefabs.EntitySpec, parent ecs.Entity, names Names, created *[]ecs.Entity) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	*created = append(*created, e)

	if spec.Name != "" {
		if _, dup := names[spec.Name]; dup {
			return 0, fmt.Errorf("%w: %q", ErrDuplicateName, spec.Name)
		}
		names[spec.Name] = e
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			return 0, fmt.Errorf("build entity: %q: add name: %w", spec.Name, err)
		}
	}
	if parent.Valid() {
		if err := ecs.Add(w, e, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)}); err != nil {
			return 0, fmt.Errorf("build entity: %q: add parent: %w", spec.Name, err)
		}
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}
	order := append([]string(nil), componentBuildOrder...)
	var extra []string
	for name := range remaining {
		if _, ok := componentRegistry[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	for _, name := range order {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		builder, ok := componentRegistry[name]
		if !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", spec.Name, name)
		}
		if err := builder(w, e, raw); err != nil {
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
	}

	for _, child := range spec.Children {
		if _, err := build(w, child, e, names, created); err != nil {
			return 0, err
		}
	}
	return e, nil
}

type transformSpec struct {
	Position common.Vec3  `mapstructure:"position"`
	Euler    common.Vec3  `mapstructure:"euler"`
	Scale    *common.Vec3 `mapstructure:"scale"`
	Forward  *common.Vec3 `mapstructure:"forward"`
}

func addTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponent[transformSpec](raw)
	if err != nil {
		return err
	}
	t := &component.Transform{
		Position: spec.Position,
		Euler:    spec.Euler,
		Scale:    common.One,
		Forward:  common.Vec3{Z: 1},
	}
	if spec.Scale != nil {
		t.Scale = *spec.Scale
	}
	if spec.Forward != nil {
		t.Forward = *spec.Forward
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type graphicSpec struct {
	Kind    string     `mapstructure:"kind"`
	Color   color.RGBA `mapstructure:"color"`
	Text    string     `mapstructure:"text"`
	Alpha   *float64   `mapstructure:"alpha"`
	Enabled *bool      `mapstructure:"enabled"`
	Layer   int        `mapstructure:"layer"`
	Screen  bool       `mapstructure:"screen"`
}

func addGraphic(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponent[graphicSpec](raw)
	if err != nil {
		return err
	}
	g := &component.Graphic{
		Color:   spec.Color,
		Text:    spec.Text,
		Alpha:   1,
		Enabled: true,
		Layer:   spec.Layer,
		Screen:  spec.Screen,
	}
	switch spec.Kind {
	case "", "rect":
		g.Kind = component.GraphicRect
	case "text":
		g.Kind = component.GraphicText
	default:
		return fmt.Errorf("unknown graphic kind %q", spec.Kind)
	}
	if g.Color == (color.RGBA{}) {
		g.Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	if spec.Alpha != nil {
		g.Alpha = *spec.Alpha
	}
	if spec.Enabled != nil {
		g.Enabled = *spec.Enabled
	}
	return ecs.Add(w, e, component.GraphicComponent.Kind(), g)
}

func addSize(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponent[struct {
		W float64 `mapstructure:"w"`
		H float64 `mapstructure:"h"`
	}](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.SizeComponent.Kind(), &component.Size{W: spec.W, H: spec.H})
}

func addFill(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponent[struct {
		Amount *float64 `mapstructure:"amount"`
	}](raw)
	if err != nil {
		return err
	}
	amount := 1.0
	if spec.Amount != nil {
		amount = *spec.Amount
	}
	return ecs.Add(w, e, component.FillComponent.Kind(), &component.Fill{Amount: amount})
}

func addSlider(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponent[struct {
		Value float64 `mapstructure:"value"`
	}](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.SliderComponent.Kind(), &component.Slider{Value: common.Clamp01(spec.Value)})
}

func addButton(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponent[struct {
		Action       string `mapstructure:"action"`
		Interactable *bool  `mapstructure:"interactable"`
	}](raw)
	if err != nil {
		return err
	}
	b := &component.Button{Action: spec.Action, Interactable: true}
	if spec.Interactable != nil {
		b.Interactable = *spec.Interactable
	}
	return ecs.Add(w, e, component.ButtonComponent.Kind(), b)
}

func addScrollView(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponent[struct {
		Offset       common.Vec3 `mapstructure:"offset"`
		InputEnabled bool        `mapstructure:"input_enabled"`
	}](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ScrollViewComponent.Kind(), &component.ScrollView{Offset: spec.Offset, InputEnabled: spec.InputEnabled})
}

func addActive(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponent[struct {
		On bool `mapstructure:"on"`
	}](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ActiveComponent.Kind(), &component.Active{On: spec.On})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponent[struct {
		Zoom float64 `mapstructure:"zoom"`
	}](raw)
	if err != nil {
		return err
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: spec.Zoom})
}
