package tween

import (
	"testing"

	"github.com/milk9111/easekit/curve"
)

func TestSequenceOrdersSteps(t *testing.T) {
	a := NewVar(0.0)
	b := NewVar(0.0)
	var order []string
	seq := Sequence(
		ValueTo(a, 1, curve.Linear(), 0.2, OnComplete(func() { order = append(order, "a") })),
		Call(func() { order = append(order, "call") }),
		ValueTo(b, 1, curve.Linear(), 0.2, OnComplete(func() { order = append(order, "b") })),
	)
	r := NewRunner()
	h := r.Start(seq)

	r.Update(0.1)
	if b.Writes != 0 {
		t.Fatalf("b started before a completed")
	}
	r.Update(0.1)
	if len(order) != 2 || order[0] != "a" || order[1] != "call" {
		t.Fatalf("expected a then call in the same tick, got %v", order)
	}
	if b.Writes != 0 {
		t.Fatalf("b should begin on the following tick")
	}
	r.Update(0.1)
	r.Update(0.1)
	if h.Status() != Completed {
		t.Fatalf("expected completed sequence, got %v", h.Status())
	}
	if len(order) != 3 || order[2] != "b" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestSequenceAbortStopsChain(t *testing.T) {
	a := NewVar(0.0)
	ran := false
	r := NewRunner()
	h := r.Start(Sequence(
		ValueTo(a, 1, curve.Linear(), 1),
		Call(func() { ran = true }),
	))
	r.Update(0.1)
	a.Invalidate()
	r.Update(0.1)
	r.Update(1)
	if ran || h.Status() != Aborted {
		t.Fatalf("expected abort without continuation, ran=%v status=%v", ran, h.Status())
	}
}

func TestEmptySequenceCompletes(t *testing.T) {
	if st := Sequence().Advance(0.1); st != Completed {
		t.Fatalf("expected completed, got %v", st)
	}
	if st := Sequence(nil, Call(nil)).Advance(0.1); st != Completed {
		t.Fatalf("expected completed, got %v", st)
	}
}

func TestWait(t *testing.T) {
	ticks, done := 0, 0
	r := NewRunner()
	r.Start(Wait(0.3, func() { ticks++ }, func() { done++ }))
	run(r, 0.1, 5)
	if ticks != 3 || done != 1 {
		t.Fatalf("expected 3 ticks and 1 completion, got %d/%d", ticks, done)
	}

	ticks, done = 0, 0
	r.Start(Wait(0, func() { ticks++ }, func() { done++ }))
	r.Update(0.1)
	if ticks != 0 || done != 1 {
		t.Fatalf("zero wait: ticks=%d done=%d", ticks, done)
	}
}

func TestDeferBuildsLazily(t *testing.T) {
	p := NewVar(0.0)
	built := 0
	r := NewRunner()
	r.Start(Sequence(
		ValueTo(p, 2, curve.Linear(), 0),
		Defer(func() Step {
			built++
			v, _ := p.Get()
			return ValueTo(p, v*10, curve.Linear(), 0)
		}),
	))
	r.Update(0.1)
	if built != 0 {
		t.Fatalf("deferred step built too early")
	}
	r.Update(0.1)
	if built != 1 || p.Value() != 20 {
		t.Fatalf("expected built once with value 20, got built=%d value=%v", built, p.Value())
	}
}

func TestUntil(t *testing.T) {
	ready := false
	r := NewRunner()
	h := r.Start(Until(func() bool { return ready }))
	run(r, 0.1, 3)
	if h.Done() {
		t.Fatalf("until finished early")
	}
	ready = true
	r.Update(0.1)
	if h.Status() != Completed {
		t.Fatalf("expected completion once condition holds")
	}
}
