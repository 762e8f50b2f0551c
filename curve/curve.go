// Package curve maps normalized progress to a shaped value using keyframed
// cubic Hermite segments.
package curve

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	ErrTooFewKeys    = errors.New("curve: at least two keyframes are required")
	ErrDuplicateTime = errors.New("curve: keyframe times must be unique")
	ErrUnknownPreset = errors.New("curve: unknown preset")
)

// Keyframe pins the curve to Value at Time. Tangents are slopes (value per
// unit time) on either side of the key.
type Keyframe struct {
	Time       float64 `yaml:"time"`
	Value      float64 `yaml:"value"`
	InTangent  float64 `yaml:"in"`
	OutTangent float64 `yaml:"out"`
}

// Curve is an immutable, time-sorted list of keyframes. The zero value is not
// usable; build curves with New or one of the presets.
type Curve struct {
	keys []Keyframe
	name string
}

// New sorts keys by time and validates them.
func New(keys ...Keyframe) (*Curve, error) {
	if len(keys) < 2 {
		return nil, ErrTooFewKeys
	}
	sorted := slices.Clone(keys)
	slices.SortStableFunc(sorted, func(a, b Keyframe) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Time == sorted[i-1].Time {
			return nil, fmt.Errorf("%w: %g", ErrDuplicateTime, sorted[i].Time)
		}
	}
	return &Curve{keys: sorted}, nil
}

func mustNew(keys ...Keyframe) *Curve {
	c, err := New(keys...)
	if err != nil {
		panic(err)
	}
	return c
}

// Keys returns a copy of the keyframes.
func (c *Curve) Keys() []Keyframe {
	if c == nil {
		return nil
	}
	return slices.Clone(c.keys)
}

// Name reports the preset name the curve was built from, if any.
func (c *Curve) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Evaluate samples the curve at t. Outside the keyed range the boundary value
// is returned, and NaN reads as the first key. The result is not clamped to
// [0,1].
func (c *Curve) Evaluate(t float64) float64 {
	if c == nil || len(c.keys) == 0 {
		return t
	}
	first, last := c.keys[0], c.keys[len(c.keys)-1]
	if math.IsNaN(t) || t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	i, _ := slices.BinarySearchFunc(c.keys, t, func(k Keyframe, t float64) int {
		switch {
		case k.Time < t:
			return -1
		case k.Time > t:
			return 1
		}
		return 0
	})
	if i == 0 {
		return first.Value
	}
	if i < len(c.keys) && c.keys[i].Time == t {
		return c.keys[i].Value
	}
	return hermite(c.keys[i-1], c.keys[i], t)
}

func hermite(k0, k1 Keyframe, t float64) float64 {
	dt := k1.Time - k0.Time
	u := (t - k0.Time) / dt
	u2 := u * u
	u3 := u2 * u

	m0 := k0.OutTangent * dt
	m1 := k1.InTangent * dt

	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2
	return h00*k0.Value + h10*m0 + h01*k1.Value + h11*m1
}

// WithKey returns a copy of c with a key at (t, v). The new key gets a smooth
// tangent from its neighbours; an existing key at t is replaced.
func (c *Curve) WithKey(t, v float64) *Curve {
	keys := make([]Keyframe, 0, len(c.keys)+1)
	for _, k := range c.keys {
		if k.Time != t {
			keys = append(keys, k)
		}
	}
	idx, _ := slices.BinarySearchFunc(keys, t, func(k Keyframe, t float64) int {
		if k.Time < t {
			return -1
		}
		return 1
	})
	key := Keyframe{Time: t, Value: v}
	keys = slices.Insert(keys, idx, key)

	prev, next := keys[max(idx-1, 0)], keys[min(idx+1, len(keys)-1)]
	if next.Time != prev.Time {
		slope := (next.Value - prev.Value) / (next.Time - prev.Time)
		keys[idx].InTangent = slope
		keys[idx].OutTangent = slope
	}
	return &Curve{keys: keys}
}

// WithTangents returns a copy of c with the tangents of key i replaced.
func (c *Curve) WithTangents(i int, in, out float64) *Curve {
	keys := slices.Clone(c.keys)
	if i >= 0 && i < len(keys) {
		keys[i].InTangent = in
		keys[i].OutTangent = out
	}
	return &Curve{keys: keys, name: c.name}
}

func (c *Curve) named(name string) *Curve {
	c.name = name
	return c
}
