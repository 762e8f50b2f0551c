// Package camera implements screen shake and eased camera moves on top of the
// tween runner.
package camera

import (
	"math/rand/v2"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/curve"
	"github.com/milk9111/easekit/tween"
)

// Random supplies shake jitter.
type Random interface {
	// InsideUnitSphere returns a uniformly distributed point with length <= 1.
	InsideUnitSphere() common.Vec3
}

type pcgRandom struct {
	r *rand.Rand
}

// NewRandom returns a seeded Random.
func NewRandom(seed uint64) Random {
	return &pcgRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgRandom) InsideUnitSphere() common.Vec3 {
	for {
		v := common.Vec3{
			X: p.r.Float64()*2 - 1,
			Y: p.r.Float64()*2 - 1,
			Z: p.r.Float64()*2 - 1,
		}
		if v.Dot(v) <= 1 {
			return v
		}
	}
}

type Config struct {
	MoveDuration float64
	MoveCurve    tween.Curve
}

// Rig owns the camera's shake and move effects.
//
// Shake and MoveTowards do not coordinate: running both at once races on the
// same transform and the last write in a tick wins.
type Rig struct {
	runner   *tween.Runner
	offset   tween.Property[common.Vec3]
	position tween.Property[common.Vec3]
	rnd      Random
	cfg      Config

	shake *tween.Handle
}

// New builds a rig. offset is the camera's local offset used for shaking and
// position is the world position used by MoveTowards.
func New(runner *tween.Runner, offset, position tween.Property[common.Vec3], rnd Random, cfg Config) *Rig {
	if rnd == nil {
		rnd = NewRandom(1)
	}
	if cfg.MoveCurve == nil {
		cfg.MoveCurve = curve.Smooth()
	}
	return &Rig{
		runner:   runner,
		offset:   offset,
		position: position,
		rnd:      rnd,
		cfg:      cfg,
	}
}

// Shake jitters the local offset for duration seconds. The jitter radius is
// c(progress) * strength; a non-positive strength means 1. When the shake ends
// the original offset is restored exactly before onComplete runs.
func (r *Rig) Shake(duration float64, c tween.Curve, strength float64, onComplete func()) *tween.Handle {
	if strength <= 0 {
		strength = 1
	}
	if c == nil {
		c = curve.Smooth()
	}
	r.shake = r.runner.Start(&shake{
		offset:     r.offset,
		rnd:        r.rnd,
		curve:      c,
		strength:   strength,
		duration:   duration,
		onComplete: onComplete,
	})
	return r.shake
}

// MoveTowards eases the camera's world position to target using the rig's
// move curve and duration. The depth axis is kept at its current value.
func (r *Rig) MoveTowards(target common.Vec3, onComplete func(), ignoreZ bool) *tween.Handle {
	opts := []tween.Option{tween.OnComplete(onComplete)}
	if cur, ok := r.position.Get(); ok {
		target.Z = cur.Z
	}
	if ignoreZ {
		opts = append(opts, tween.IgnoreZ())
	}
	return r.runner.Start(tween.MoveTo(r.position, target, r.cfg.MoveCurve, r.cfg.MoveDuration, opts...))
}

// Idle reports whether no shake is in flight.
func (r *Rig) Idle() bool {
	return r.shake.Done()
}

type shake struct {
	offset   tween.Property[common.Vec3]
	rnd      Random
	curve    tween.Curve
	strength float64
	duration float64

	origin  common.Vec3
	elapsed float64
	started bool

	onComplete func()
	status     tween.Status
}

func (s *shake) Advance(dt float64) tween.Status {
	if s.status != tween.Running {
		return s.status
	}
	if s.offset == nil {
		s.status = tween.Aborted
		return s.status
	}
	if !s.started {
		origin, ok := s.offset.Get()
		if !ok {
			s.status = tween.Aborted
			return s.status
		}
		s.origin = origin
		s.started = true
	}

	if dt > 0 {
		s.elapsed += dt
	}
	if !(s.duration > 0) || s.elapsed >= s.duration {
		if !s.offset.Set(s.origin) {
			s.status = tween.Aborted
			return s.status
		}
		s.status = tween.Completed
		if s.onComplete != nil {
			s.onComplete()
		}
		return s.status
	}

	amount := s.curve.Evaluate(s.elapsed/s.duration) * s.strength
	if !s.offset.Set(s.origin.Add(s.rnd.InsideUnitSphere().Scale(amount))) {
		s.status = tween.Aborted
	}
	return s.status
}
