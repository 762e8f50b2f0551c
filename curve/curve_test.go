package curve

import (
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

const eps = 1e-9

func TestPresetEndpoints(t *testing.T) {
	cases := []struct {
		name  string
		curve *Curve
	}{
		{"linear", Linear()},
		{"smooth", Smooth()},
		{"bounce_out", BounceOut()},
		{"slow_to_steep", SlowToSteep()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.curve.Evaluate(0); got != 0 {
				t.Fatalf("Evaluate(0) = %v, want 0", got)
			}
			if got := c.curve.Evaluate(1); got != 1 {
				t.Fatalf("Evaluate(1) = %v, want 1", got)
			}
		})
	}
}

func TestLowSmoothEndsAtCap(t *testing.T) {
	c := LowSmooth(0.3)
	if got := c.Evaluate(1); got != 0.3 {
		t.Fatalf("expected cap 0.3, got %v", got)
	}
	if got := LowSmooth(0).Evaluate(1); got != 0.5 {
		t.Fatalf("expected default cap 0.5, got %v", got)
	}
}

func TestLinearIsIdentity(t *testing.T) {
	c := Linear()
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		if got := c.Evaluate(x); math.Abs(got-x) > eps {
			t.Fatalf("Evaluate(%v) = %v", x, got)
		}
	}
}

func TestSmoothIsSmoothstep(t *testing.T) {
	c := Smooth()
	for _, x := range []float64{0.1, 0.25, 0.5, 0.75} {
		want := x * x * (3 - 2*x)
		if got := c.Evaluate(x); math.Abs(got-want) > eps {
			t.Fatalf("Evaluate(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestClampOutsideRange(t *testing.T) {
	c := Smooth()
	if got := c.Evaluate(-2); got != 0 {
		t.Fatalf("expected 0 below range, got %v", got)
	}
	if got := c.Evaluate(3); got != 1 {
		t.Fatalf("expected 1 above range, got %v", got)
	}
}

func TestEvaluateNaN(t *testing.T) {
	for _, c := range []*Curve{Linear(), Smooth(), BounceOut(), SlowToSteep(), LowSmooth(0.5)} {
		if got := c.Evaluate(math.NaN()); got != 0 {
			t.Fatalf("%s: Evaluate(NaN) = %v, want first key value 0", c.Name(), got)
		}
	}
}

func TestInteriorKeys(t *testing.T) {
	b := BounceOut()
	if got := b.Evaluate(0.25); got != 0.9 {
		t.Fatalf("bounce key 0.25 = %v", got)
	}
	if got := b.Evaluate(0.60); got != 0.75 {
		t.Fatalf("bounce key 0.60 = %v", got)
	}

	s := SlowToSteep()
	if got := s.Evaluate(0.75); got != 0.2 {
		t.Fatalf("slow_to_steep key = %v", got)
	}
	keys := s.Keys()
	if keys[1].InTangent != 0 || keys[1].OutTangent != 0 {
		t.Fatalf("expected flat tangents on middle key, got %+v", keys[1])
	}
	if s.Evaluate(0.5) >= 0.5 {
		t.Fatalf("expected slow start, got %v at 0.5", s.Evaluate(0.5))
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Keyframe{Time: 0}); !errors.Is(err, ErrTooFewKeys) {
		t.Fatalf("expected ErrTooFewKeys, got %v", err)
	}
	if _, err := New(Keyframe{Time: 0}, Keyframe{Time: 0, Value: 1}); !errors.Is(err, ErrDuplicateTime) {
		t.Fatalf("expected ErrDuplicateTime, got %v", err)
	}
	c, err := New(Keyframe{Time: 1, Value: 1}, Keyframe{Time: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if keys := c.Keys(); keys[0].Time != 0 || keys[1].Time != 1 {
		t.Fatalf("expected sorted keys, got %+v", keys)
	}
}

func TestPresetByName(t *testing.T) {
	cases := []struct {
		in      string
		wantEnd float64
		wantErr error
	}{
		{"linear", 1, nil},
		{"Smooth", 1, nil},
		{"low_smooth", 0.5, nil},
		{"low_smooth:0.25", 0.25, nil},
		{"bounce_out", 1, nil},
		{"slow_to_steep", 1, nil},
		{"wobble", 0, ErrUnknownPreset},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := Preset(c.in)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if end := got.Evaluate(1); end != c.wantEnd {
				t.Fatalf("expected end %v, got %v", c.wantEnd, end)
			}
		})
	}
}

func TestCurveYAML(t *testing.T) {
	type doc struct {
		Open  *Curve `yaml:"open"`
		Close *Curve `yaml:"close"`
	}
	src := `
open: bounce_out
close:
  - {time: 0, value: 0, in: 0, out: 2}
  - {time: 1, value: 1, in: 0, out: 0}
`
	var d doc
	if err := yaml.Unmarshal([]byte(src), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Open.Name() != PresetBounceOut {
		t.Fatalf("expected bounce_out, got %q", d.Open.Name())
	}
	if len(d.Close.Keys()) != 2 || d.Close.Keys()[0].OutTangent != 2 {
		t.Fatalf("unexpected keys %+v", d.Close.Keys())
	}

	out, err := yaml.Marshal(doc{Open: Smooth()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back doc
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}
	if back.Open.Name() != PresetSmooth {
		t.Fatalf("expected smooth after round trip, got %q", back.Open.Name())
	}

	if err := yaml.Unmarshal([]byte("open: {a: 1}"), &d); err == nil {
		t.Fatalf("expected error for mapping node")
	}
}
