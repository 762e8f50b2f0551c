package tween

import (
	"math"
	"testing"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/curve"
)

func run(r *Runner, dt float64, ticks int) {
	for i := 0; i < ticks; i++ {
		r.Update(dt)
	}
}

func TestTweenReachesExactEnd(t *testing.T) {
	cases := []struct {
		name     string
		duration float64
		dts      []float64
	}{
		{"even_ticks", 1, []float64{0.25, 0.25, 0.25, 0.25}},
		{"uneven_ticks", 1, []float64{0.1, 0.33, 0.07, 0.2, 0.5}},
		{"thirds", 0.3, []float64{0.1, 0.1, 0.1, 0.1}},
		{"single_big_tick", 2, []float64{5}},
	}
	end := common.Vec3{X: 0.1, Y: 0.7, Z: -3.3}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewVar(common.Vec3{X: 1, Y: 2, Z: 3})
			calls := 0
			tw := MoveTo(p, end, curve.Smooth(), c.duration, OnComplete(func() {
				calls++
				if p.Value() != end {
					t.Fatalf("callback ran before final write")
				}
			}))
			r := NewRunner()
			h := r.Start(tw)
			for _, dt := range c.dts {
				r.Update(dt)
			}
			if p.Value() != end {
				t.Fatalf("expected exact %v, got %v", end, p.Value())
			}
			if calls != 1 {
				t.Fatalf("expected one completion, got %d", calls)
			}
			if h.Status() != Completed {
				t.Fatalf("expected completed, got %v", h.Status())
			}
			if r.Active() != 0 {
				t.Fatalf("expected runner to drop finished tween")
			}
		})
	}
}

func TestDegenerateDurationCompletesOnFirstTick(t *testing.T) {
	for _, d := range []float64{0, -1, math.NaN()} {
		p := NewVar(0.0)
		calls := 0
		r := NewRunner()
		r.Start(ValueTo(p, 5, curve.Linear(), d, OnComplete(func() { calls++ })))
		r.Update(0.016)
		if p.Value() != 5 || calls != 1 {
			t.Fatalf("duration %v: value=%v calls=%d", d, p.Value(), calls)
		}
		if p.Writes != 1 {
			t.Fatalf("duration %v: expected one write, got %d", d, p.Writes)
		}
	}
}

func TestOneWritePerTick(t *testing.T) {
	p := NewVar(common.Vec3{})
	r := NewRunner()
	r.Start(ScaleTo(p, common.One, curve.Linear(), 1))
	for i := 1; i <= 4; i++ {
		r.Update(0.25)
		if p.Writes != i {
			t.Fatalf("tick %d: expected %d writes, got %d", i, i, p.Writes)
		}
	}
	r.Update(0.25)
	if p.Writes != 4 {
		t.Fatalf("finished tween kept writing: %d", p.Writes)
	}
}

func TestProgressIsMonotonic(t *testing.T) {
	p := NewVar(0.0)
	r := NewRunner()
	r.Start(ValueTo(p, 1, curve.Smooth(), 1))
	last := -1.0
	for _, dt := range []float64{0.1, -0.5, 0, 0.2, 0.3, 0.1} {
		r.Update(dt)
		if p.Value() < last {
			t.Fatalf("progress went backwards: %v < %v", p.Value(), last)
		}
		last = p.Value()
	}
}

func TestInvalidatedTargetAborts(t *testing.T) {
	p := NewVar(common.Vec3{})
	calls := 0
	r := NewRunner()
	h := r.Start(MoveTo(p, common.Vec3{X: 10}, curve.Linear(), 1, OnComplete(func() { calls++ })))
	r.Update(0.25)
	p.Invalidate()
	r.Update(0.25)
	run(r, 1, 3)
	if calls != 0 {
		t.Fatalf("completion fired for invalid target")
	}
	if h.Status() != Aborted || h.Cancelled() {
		t.Fatalf("expected abort without cancel, got %v cancelled=%v", h.Status(), h.Cancelled())
	}
}

func TestIgnoreZ(t *testing.T) {
	p := NewVar(common.Vec3{X: 0, Y: 0, Z: -10})
	r := NewRunner()
	r.Start(MoveTo(p, common.Vec3{X: 4, Y: 4, Z: 99}, curve.Linear(), 1, IgnoreZ()))
	r.Update(0.5)
	if got := p.Value(); got.Z != -10 || math.Abs(got.X-2) > 1e-9 {
		t.Fatalf("unexpected mid value %v", got)
	}
	r.Update(0.5)
	if got := p.Value(); got != (common.Vec3{X: 4, Y: 4, Z: -10}) {
		t.Fatalf("unexpected end %v", got)
	}
}

func TestMoveBy(t *testing.T) {
	p := NewVar(common.Vec3{X: 1, Y: 1, Z: 1})
	r := NewRunner()
	r.Start(MoveBy(p, common.Vec3{X: 2, Z: 5}, nil, 0.5, IgnoreZ()))
	run(r, 0.25, 2)
	if got := p.Value(); got != (common.Vec3{X: 3, Y: 1, Z: 1}) {
		t.Fatalf("unexpected %v", got)
	}
}

func TestStartSnapshotIsLazy(t *testing.T) {
	p := NewVar(0.0)
	tw := ValueTo(p, 10, curve.Linear(), 1)
	p.Set(4)
	tw.Advance(0.5)
	if start, ok := tw.Start(); !ok || start != 4 {
		t.Fatalf("expected start snapshot 4, got %v ok=%v", start, ok)
	}
	if p.Value() != 7 {
		t.Fatalf("expected halfway 7, got %v", p.Value())
	}
}

func TestRadialFill(t *testing.T) {
	p := NewVar(0.3)
	r := NewRunner()
	r.Start(RadialFill(p, curve.Linear(), 1))
	r.Update(0.25)
	if math.Abs(p.Value()-0.75) > 1e-9 {
		t.Fatalf("expected fill from 1, got %v", p.Value())
	}
	run(r, 0.25, 3)
	if p.Value() != 0 {
		t.Fatalf("expected empty, got %v", p.Value())
	}
}

func TestRotateAndScaleOut(t *testing.T) {
	rot := NewVar(common.Vec3{})
	scale := NewVar(common.One)
	r := NewRunner()
	r.Start(RotateTo(rot, common.Vec3{Y: 90}, curve.Smooth(), 0.5))
	r.Start(ScaleOut(scale, curve.BounceOut(), 0.5))
	run(r, 0.1, 6)
	if rot.Value() != (common.Vec3{Y: 90}) {
		t.Fatalf("rotation %v", rot.Value())
	}
	if scale.Value() != common.Zero {
		t.Fatalf("scale %v", scale.Value())
	}
}

func TestCancel(t *testing.T) {
	p := NewVar(0.0)
	calls := 0
	r := NewRunner()
	h := r.Start(ValueTo(p, 1, nil, 1, OnComplete(func() { calls++ })))
	r.Update(0.1)
	h.Cancel()
	run(r, 1, 2)
	if calls != 0 || !h.Cancelled() || h.Status() != Aborted {
		t.Fatalf("cancel: calls=%d status=%v", calls, h.Status())
	}
	if p.Writes != 1 {
		t.Fatalf("expected no writes after cancel, got %d", p.Writes)
	}
}

func TestStartDuringUpdateWaitsForNextTick(t *testing.T) {
	r := NewRunner()
	p := NewVar(0.0)
	r.Start(Call(func() {
		r.Start(ValueTo(p, 1, curve.Linear(), 0))
	}))
	r.Update(0.1)
	if p.Writes != 0 {
		t.Fatalf("step started mid-update ran in the same tick")
	}
	r.Update(0.1)
	if p.Value() != 1 {
		t.Fatalf("expected started step to run next tick, got %v", p.Value())
	}
}

func TestRunnerOrderIsRegistrationOrder(t *testing.T) {
	p := NewVar(0.0)
	r := NewRunner()
	r.Start(ValueTo(p, 1, curve.Linear(), 0))
	r.Start(ValueTo(p, 2, curve.Linear(), 0))
	r.Update(0.1)
	if p.Value() != 2 {
		t.Fatalf("expected last writer to win, got %v", p.Value())
	}
}

func TestClear(t *testing.T) {
	r := NewRunner()
	h := r.Start(Wait(10, nil, nil))
	r.Clear()
	if r.Active() != 0 || !h.Cancelled() {
		t.Fatalf("clear left steps running")
	}
}

func TestClearFromInsideUpdate(t *testing.T) {
	r := NewRunner()
	p := NewVar(0.0)
	r.Start(Call(func() { r.Clear() }))
	later := r.Start(Wait(10, nil, nil))
	r.Update(0.1)
	if !later.Cancelled() || r.Active() != 0 {
		t.Fatalf("clear during update: later cancelled=%v active=%d", later.Cancelled(), r.Active())
	}

	r.Start(Call(func() {
		r.Clear()
		r.Start(ValueTo(p, 3, curve.Linear(), 0))
	}))
	r.Update(0.1)
	if r.Active() != 1 {
		t.Fatalf("step started after clear was dropped, active=%d", r.Active())
	}
	r.Update(0.1)
	if p.Value() != 3 {
		t.Fatalf("step started after clear did not run, got %v", p.Value())
	}
}
