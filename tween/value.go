package tween

import "github.com/milk9111/easekit/common"

// Tween blends a property from its value at the first Advance to an end value.
type Tween[T any] struct {
	prop     Property[T]
	curve    Curve
	duration float64
	lerp     func(a, b T, t float64) T
	resolve  func(start, end T) (T, T)

	start   T
	end     T
	elapsed float64
	started bool

	onComplete func()
	status     Status
}

func newTween[T any](prop Property[T], end T, c Curve, duration float64, lerp func(a, b T, t float64) T, o options) *Tween[T] {
	return &Tween[T]{
		prop:       prop,
		curve:      orDefault(c),
		duration:   duration,
		lerp:       lerp,
		end:        end,
		onComplete: o.onComplete,
	}
}

func (tw *Tween[T]) Advance(dt float64) Status {
	if tw.status != Running {
		return tw.status
	}
	if tw.prop == nil {
		tw.status = Aborted
		return tw.status
	}
	if !tw.started {
		start, ok := tw.prop.Get()
		if !ok {
			tw.status = Aborted
			return tw.status
		}
		end := tw.end
		if tw.resolve != nil {
			start, end = tw.resolve(start, end)
		}
		tw.start, tw.end = start, end
		tw.started = true
	}

	tw.elapsed += sanitizeDelta(dt)
	p, done := progress(tw.elapsed, tw.duration)
	if done {
		if !tw.prop.Set(tw.end) {
			tw.status = Aborted
			return tw.status
		}
		tw.status = Completed
		if tw.onComplete != nil {
			tw.onComplete()
		}
		return tw.status
	}

	if !tw.prop.Set(tw.lerp(tw.start, tw.end, tw.curve.Evaluate(p))) {
		tw.status = Aborted
	}
	return tw.status
}

// Elapsed reports accumulated time.
func (tw *Tween[T]) Elapsed() float64 { return tw.elapsed }

// Start reports the snapshot taken on the first Advance.
func (tw *Tween[T]) Start() (T, bool) { return tw.start, tw.started }

// End reports the goal value, after any axis freezing was applied.
func (tw *Tween[T]) End() T { return tw.end }

func keepZ(ignore bool) func(start, end common.Vec3) (common.Vec3, common.Vec3) {
	if !ignore {
		return nil
	}
	return func(start, end common.Vec3) (common.Vec3, common.Vec3) {
		end.Z = start.Z
		return start, end
	}
}

// MoveTo tweens a position (world or local, depending on the property) to end.
func MoveTo(p Property[common.Vec3], end common.Vec3, c Curve, duration float64, opts ...Option) *Tween[common.Vec3] {
	o := buildOptions(opts)
	tw := newTween(p, end, c, duration, common.LerpVec3, o)
	tw.resolve = keepZ(o.ignoreZ)
	return tw
}

// MoveBy offsets a position by delta relative to where it starts.
func MoveBy(p Property[common.Vec3], delta common.Vec3, c Curve, duration float64, opts ...Option) *Tween[common.Vec3] {
	o := buildOptions(opts)
	tw := newTween(p, delta, c, duration, common.LerpVec3, o)
	tw.resolve = func(start, delta common.Vec3) (common.Vec3, common.Vec3) {
		end := start.Add(delta)
		if o.ignoreZ {
			end.Z = start.Z
		}
		return start, end
	}
	return tw
}

// RotateTo blends euler angles component-wise. No wrap-around is applied, so
// 350 -> 10 turns the long way.
func RotateTo(p Property[common.Vec3], euler common.Vec3, c Curve, duration float64, opts ...Option) *Tween[common.Vec3] {
	return newTween(p, euler, c, duration, common.LerpVec3, buildOptions(opts))
}

// ScaleTo tweens a scale vector to end.
func ScaleTo(p Property[common.Vec3], end common.Vec3, c Curve, duration float64, opts ...Option) *Tween[common.Vec3] {
	return newTween(p, end, c, duration, common.LerpVec3, buildOptions(opts))
}

// ScaleOut shrinks a scale vector to zero.
func ScaleOut(p Property[common.Vec3], c Curve, duration float64, opts ...Option) *Tween[common.Vec3] {
	return ScaleTo(p, common.Zero, c, duration, opts...)
}

// ValueTo tweens a scalar to end.
func ValueTo(p Property[float64], end float64, c Curve, duration float64, opts ...Option) *Tween[float64] {
	return newTween(p, end, c, duration, common.Lerp, buildOptions(opts))
}

// RadialFill drains a fill fraction from full to empty, whatever its current
// value.
func RadialFill(p Property[float64], c Curve, duration float64, opts ...Option) *Tween[float64] {
	tw := newTween(p, 0, c, duration, common.Lerp, buildOptions(opts))
	tw.resolve = func(_, end float64) (float64, float64) { return 1, end }
	return tw
}
