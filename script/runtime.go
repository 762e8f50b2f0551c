// Package script builds tween sequences from tengo scripts. A script assigns a
// global `steps` array of maps; each map has a `kind` and kind-specific
// fields. Hosts pass numbers and strings in through the `params` global.
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/easekit/prefabs"
)

var (
	ErrNoSteps = errors.New("script: steps is not defined")
	ErrBadStep = errors.New("script: invalid step")
)

// Program is a compiled script. Run it once per sequence it should produce.
type Program struct {
	name     string
	compiled *tengo.Compiled
}

// Compile prepares src for running. name is used in error messages only.
func Compile(name string, src []byte) (*Program, error) {
	s := tengo.NewScript(src)
	_ = s.Add("params", map[string]any{})
	_ = s.Add("engine", engine())
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Program{name: name, compiled: compiled}, nil
}

// Load compiles a script from the prefab scripts directory.
func Load(name string) (*Program, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func (p *Program) Name() string { return p.name }

// Run executes the script with params and decodes its steps.
func (p *Program) Run(params map[string]any) ([]StepSpec, error) {
	if params == nil {
		params = map[string]any{}
	}
	c := p.compiled.Clone()
	if err := c.Set("params", params); err != nil {
		return nil, fmt.Errorf("script: %s: set params: %w", p.name, err)
	}
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", p.name, err)
	}
	if !c.IsDefined("steps") {
		return nil, fmt.Errorf("%w in %s", ErrNoSteps, p.name)
	}
	raw, ok := objectToAny(c.Get("steps").Object()).([]any)
	if !ok {
		return nil, fmt.Errorf("script: %s: steps must be an array", p.name)
	}
	specs, err := decodeSteps(raw)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", p.name, err)
	}
	return specs, nil
}

// engine exposes read-only helpers to scripts.
func engine() map[string]any {
	return map[string]any{
		"curves": &tengo.UserFunction{Name: "curves", Value: func(args ...tengo.Object) (tengo.Object, error) {
			lib, err := prefabs.LoadCurveLibrary()
			if err != nil {
				return tengo.UndefinedValue, nil
			}
			names := make([]tengo.Object, 0, len(lib.Curves))
			for name := range lib.Curves {
				names = append(names, &tengo.String{Value: name})
			}
			return &tengo.Array{Value: names}, nil
		}},
	}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return v.Value
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.ImmutableArray:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return objectAsString(v)
	}
}
