package script

import (
	"fmt"
	"log"
	"slices"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/tween"
	"github.com/mitchellh/mapstructure"
)

// StepSpec is one decoded entry of a script's steps array. Which fields a
// step reads depends on Kind.
type StepSpec struct {
	Kind     string      `mapstructure:"kind"`
	Target   string      `mapstructure:"target"`
	Duration float64     `mapstructure:"duration"`
	Curve    string      `mapstructure:"curve"`
	To       common.Vec3 `mapstructure:"to"`
	By       common.Vec3 `mapstructure:"by"`
	IgnoreZ  bool        `mapstructure:"ignore_z"`
	Out      bool        `mapstructure:"out"`
	Strength float64     `mapstructure:"strength"`
	Scene    string      `mapstructure:"scene"`
	Message  string      `mapstructure:"message"`
}

// Built-in kinds. Hosts may accept more through Host.Action.
const (
	KindWait   = "wait"
	KindMove   = "move"
	KindScale  = "scale"
	KindRotate = "rotate"
	KindFade   = "fade"
	KindLog    = "log"
)

var builtin = []string{KindWait, KindMove, KindScale, KindRotate, KindFade, KindLog}

// Host resolves the names a script refers to.
type Host interface {
	Position(target string) (tween.Property[common.Vec3], error)
	Scale(target string) (tween.Property[common.Vec3], error)
	Euler(target string) (tween.Property[common.Vec3], error)
	FadeTarget(target string) (tween.FadeTarget, error)
	Curve(name string) (tween.Curve, error)
	// Action builds steps for kinds the host defines, such as shaking the
	// camera or opening a modal.
	Action(spec StepSpec) (tween.Step, error)
	Actions() []string
}

func decodeSteps(raw []any) ([]StepSpec, error) {
	out := make([]StepSpec, 0, len(raw))
	for i, item := range raw {
		var spec StepSpec
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			Result:           &spec,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(item); err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrBadStep, i, err)
		}
		if spec.Kind == "" {
			return nil, fmt.Errorf("%w %d: missing kind", ErrBadStep, i)
		}
		out = append(out, spec)
	}
	return out, nil
}

// Validate checks kinds and required fields without resolving anything.
// extra lists host-defined kinds that are also acceptable.
func Validate(specs []StepSpec, extra ...string) error {
	for i, s := range specs {
		known := slices.Contains(builtin, s.Kind) || slices.Contains(extra, s.Kind)
		if !known {
			return fmt.Errorf("%w %d: unknown kind %q", ErrBadStep, i, s.Kind)
		}
		switch s.Kind {
		case KindMove, KindScale, KindRotate, KindFade:
			if s.Target == "" {
				return fmt.Errorf("%w %d: %s needs a target", ErrBadStep, i, s.Kind)
			}
		}
		if s.Duration < 0 {
			return fmt.Errorf("%w %d: negative duration", ErrBadStep, i)
		}
	}
	return nil
}

// Build turns specs into one sequence. Targets are resolved now, so a name
// the host does not know fails here rather than mid-animation.
func Build(specs []StepSpec, host Host) (tween.Step, error) {
	if err := Validate(specs, host.Actions()...); err != nil {
		return nil, err
	}
	steps := make([]tween.Step, 0, len(specs))
	for i, s := range specs {
		step, err := build(s, host)
		if err != nil {
			return nil, fmt.Errorf("%w %d (%s): %v", ErrBadStep, i, s.Kind, err)
		}
		steps = append(steps, step)
	}
	return tween.Sequence(steps...), nil
}

func build(s StepSpec, host Host) (tween.Step, error) {
	switch s.Kind {
	case KindWait:
		return tween.Wait(s.Duration, nil, nil), nil
	case KindLog:
		msg := s.Message
		return tween.Call(func() { log.Printf("script: %s", msg) }), nil
	case KindMove, KindScale, KindRotate:
		c, err := host.Curve(s.Curve)
		if err != nil {
			return nil, err
		}
		var opts []tween.Option
		if s.IgnoreZ {
			opts = append(opts, tween.IgnoreZ())
		}
		switch s.Kind {
		case KindMove:
			p, err := host.Position(s.Target)
			if err != nil {
				return nil, err
			}
			if s.By != (common.Vec3{}) {
				return tween.MoveBy(p, s.By, c, s.Duration, opts...), nil
			}
			return tween.MoveTo(p, s.To, c, s.Duration, opts...), nil
		case KindScale:
			p, err := host.Scale(s.Target)
			if err != nil {
				return nil, err
			}
			return tween.ScaleTo(p, s.To, c, s.Duration), nil
		default:
			p, err := host.Euler(s.Target)
			if err != nil {
				return nil, err
			}
			return tween.RotateTo(p, s.To, c, s.Duration), nil
		}
	case KindFade:
		c, err := host.Curve(s.Curve)
		if err != nil {
			return nil, err
		}
		target, err := host.FadeTarget(s.Target)
		if err != nil {
			return nil, err
		}
		dir := tween.FadeIn
		if s.Out {
			dir = tween.FadeOut
		}
		return tween.Fade(target, dir, c, s.Duration), nil
	}
	return host.Action(s)
}
