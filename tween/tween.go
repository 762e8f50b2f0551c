// Package tween drives properties toward target values one tick at a time.
//
// Every effect is a Step polled by a Runner from the host's update loop. A
// step writes its property once per Advance and reports whether it is still
// running, finished normally or was aborted because its target went away.
package tween

import (
	"github.com/milk9111/easekit/curve"
)

// Status is the outcome of a single Advance.
type Status int

const (
	Running Status = iota
	Completed
	Aborted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Step is one resumable effect. Advance is called once per tick with the
// seconds elapsed since the previous tick.
type Step interface {
	Advance(dt float64) Status
}

// StepFunc adapts a function to Step.
type StepFunc func(dt float64) Status

func (f StepFunc) Advance(dt float64) Status { return f(dt) }

// Property is a mutable value the engine does not own. Get and Set report
// false once the owner is gone; the step using it then aborts.
type Property[T any] interface {
	Get() (T, bool)
	Set(T) bool
}

// Curve shapes normalized progress. *curve.Curve implements it.
type Curve interface {
	Evaluate(t float64) float64
}

type options struct {
	onComplete func()
	ignoreZ    bool
}

// Option configures a tween.
type Option func(*options)

// OnComplete registers fn to run once, after the final write.
func OnComplete(fn func()) Option {
	return func(o *options) { o.onComplete = fn }
}

// IgnoreZ keeps the depth axis at its starting value.
func IgnoreZ() Option {
	return func(o *options) { o.ignoreZ = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func orDefault(c Curve) Curve {
	if c == nil {
		return curve.Smooth()
	}
	return c
}

// progress turns elapsed time into curve input. A non-positive or NaN duration
// counts as already finished.
func progress(elapsed, duration float64) (float64, bool) {
	if !(duration > 0) || elapsed >= duration {
		return 1, true
	}
	return elapsed / duration, false
}

func sanitizeDelta(dt float64) float64 {
	if dt < 0 || dt != dt {
		return 0
	}
	return dt
}
