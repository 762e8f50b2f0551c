package tween

import "github.com/milk9111/easekit/common"

type aim struct {
	forward Property[common.Vec3]
	origin  Property[common.Vec3]
	target  func() (common.Vec3, bool)
	speed   float64

	onComplete func()
	status     Status
}

// AimAt turns a forward vector toward a fixed point at speed radians per
// second. It has no duration: it completes on the first tick whose write
// leaves the orientation unchanged.
func AimAt(forward, origin Property[common.Vec3], target common.Vec3, speed float64, opts ...Option) Step {
	return AimAtFunc(forward, origin, func() (common.Vec3, bool) { return target, true }, speed, opts...)
}

// AimAtFunc tracks a target that may move; target is sampled every tick and
// reporting false aborts the step. A target that never settles keeps the step
// running indefinitely.
func AimAtFunc(forward, origin Property[common.Vec3], target func() (common.Vec3, bool), speed float64, opts ...Option) Step {
	o := buildOptions(opts)
	return &aim{
		forward:    forward,
		origin:     origin,
		target:     target,
		speed:      speed,
		onComplete: o.onComplete,
	}
}

func (a *aim) Advance(dt float64) Status {
	if a.status != Running {
		return a.status
	}
	if a.forward == nil || a.origin == nil || a.target == nil {
		a.status = Aborted
		return a.status
	}
	cur, ok := a.forward.Get()
	if !ok {
		a.status = Aborted
		return a.status
	}
	pos, ok := a.origin.Get()
	if !ok {
		a.status = Aborted
		return a.status
	}
	tgt, ok := a.target()
	if !ok {
		a.status = Aborted
		return a.status
	}

	next := common.RotateTowards(cur, tgt.Sub(pos), a.speed*sanitizeDelta(dt))
	if !a.forward.Set(next) {
		a.status = Aborted
		return a.status
	}
	if next != cur {
		return a.status
	}

	a.status = Completed
	if a.onComplete != nil {
		a.onComplete()
	}
	return a.status
}
