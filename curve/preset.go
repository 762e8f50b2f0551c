package curve

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	PresetLinear      = "linear"
	PresetSmooth      = "smooth"
	PresetLowSmooth   = "low_smooth"
	PresetBounceOut   = "bounce_out"
	PresetSlowToSteep = "slow_to_steep"
)

const defaultLowSmoothEnd = 0.5

// Presets lists the names accepted by Preset.
func Presets() []string {
	return []string{PresetLinear, PresetSmooth, PresetLowSmooth, PresetBounceOut, PresetSlowToSteep}
}

// Linear is the identity line from (0,0) to (1,1).
func Linear() *Curve {
	return linear(0, 0, 1, 1).named(PresetLinear)
}

// Smooth eases in and out with flat tangents at both ends. It is the default
// curve everywhere a curve is optional.
func Smooth() *Curve {
	return easeInOut(0, 0, 1, 1).named(PresetSmooth)
}

// LowSmooth eases toward end instead of 1, for effects that should stop short.
// A non-positive end falls back to 0.5.
func LowSmooth(end float64) *Curve {
	if end <= 0 {
		end = defaultLowSmoothEnd
	}
	return easeInOut(0, 0, 1, end).named(fmt.Sprintf("%s:%g", PresetLowSmooth, end))
}

// BounceOut overshoots early and settles back toward 1.
func BounceOut() *Curve {
	return easeInOut(0, 0, 1, 1).
		WithKey(0.25, 0.9).
		WithKey(0.60, 0.75).
		named(PresetBounceOut)
}

// SlowToSteep stays low for three quarters of the run, then climbs steeply.
func SlowToSteep() *Curve {
	return linear(0, 0, 1, 1).
		WithKey(0.75, 0.2).
		WithTangents(1, 0, 0).
		named(PresetSlowToSteep)
}

// Preset resolves a preset by name. low_smooth accepts an optional end value
// as "low_smooth:0.3".
func Preset(name string) (*Curve, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	base, arg, hasArg := strings.Cut(n, ":")
	switch base {
	case PresetLinear:
		return Linear(), nil
	case PresetSmooth, "":
		return Smooth(), nil
	case PresetLowSmooth:
		end := defaultLowSmoothEnd
		if hasArg {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("curve: parse %s end %q: %w", PresetLowSmooth, arg, err)
			}
			end = v
		}
		return LowSmooth(end), nil
	case PresetBounceOut:
		return BounceOut(), nil
	case PresetSlowToSteep:
		return SlowToSteep(), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownPreset, name)
}

func linear(t0, v0, t1, v1 float64) *Curve {
	slope := (v1 - v0) / (t1 - t0)
	return mustNew(
		Keyframe{Time: t0, Value: v0, InTangent: slope, OutTangent: slope},
		Keyframe{Time: t1, Value: v1, InTangent: slope, OutTangent: slope},
	)
}

func easeInOut(t0, v0, t1, v1 float64) *Curve {
	return mustNew(
		Keyframe{Time: t0, Value: v0},
		Keyframe{Time: t1, Value: v1},
	)
}
