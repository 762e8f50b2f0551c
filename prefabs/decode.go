package prefabs

import (
	"fmt"
	"image/color"
	"reflect"

	"github.com/milk9111/easekit/curve"
	"github.com/mitchellh/mapstructure"
)

// DecodeComponent decodes a raw component map from an EntitySpec into T.
// Fields are matched by their mapstructure tags; strings are accepted for
// colors ("#rrggbb") and curves (preset names).
func DecodeComponent[T any](raw any) (T, error) {
	var out T
	if raw == nil {
		return out, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(colorHook, curveHook),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(raw); err != nil {
		var zero T
		return zero, fmt.Errorf("prefabs: decode %T: %w", zero, err)
	}
	return out, nil
}

var (
	rgbaType  = reflect.TypeOf(color.RGBA{})
	curveType = reflect.TypeOf(&curve.Curve{})
)

func colorHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != rgbaType {
		return data, nil
	}
	return ParseColor(data.(string))
}

func curveHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != curveType {
		return data, nil
	}
	return curve.Preset(data.(string))
}
