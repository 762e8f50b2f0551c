package curve

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either a preset name or a list of keyframes.
func (c *Curve) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		p, err := Preset(name)
		if err != nil {
			return fmt.Errorf("curve: line %d: %w", value.Line, err)
		}
		*c = *p
		return nil
	case yaml.SequenceNode:
		var keys []Keyframe
		if err := value.Decode(&keys); err != nil {
			return err
		}
		parsed, err := New(keys...)
		if err != nil {
			return fmt.Errorf("curve: line %d: %w", value.Line, err)
		}
		*c = *parsed
		return nil
	}
	return fmt.Errorf("curve: line %d: expected preset name or keyframe list", value.Line)
}

// MarshalYAML writes preset curves by name and custom curves as keyframes.
func (c *Curve) MarshalYAML() (any, error) {
	if c == nil {
		return nil, nil
	}
	if c.name != "" {
		return c.name, nil
	}
	return c.keys, nil
}
