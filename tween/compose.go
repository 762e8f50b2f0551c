package tween

// instant marks steps that finish in the same Advance they start in, so a
// sequence can run them without spending a tick.
type instant interface {
	instant()
}

type sequence struct {
	steps  []Step
	idx    int
	status Status
}

// Sequence runs steps one after another. Each step begins on the tick after
// its predecessor completes, except Call steps which run immediately. An
// aborted step aborts the whole sequence.
func Sequence(steps ...Step) Step {
	kept := make([]Step, 0, len(steps))
	for _, s := range steps {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &sequence{steps: kept}
}

func (s *sequence) Advance(dt float64) Status {
	if s.status != Running {
		return s.status
	}
	for s.idx < len(s.steps) {
		st := s.steps[s.idx].Advance(dt)
		switch st {
		case Running:
			return s.status
		case Aborted:
			s.status = Aborted
			return s.status
		}
		s.idx++
		if s.idx >= len(s.steps) {
			break
		}
		if _, ok := s.steps[s.idx].(instant); !ok {
			return s.status
		}
		dt = 0
	}
	s.status = Completed
	return s.status
}

// Index reports which step is current.
func (s *sequence) Index() int { return s.idx }

type call struct {
	fn func()
}

func (call) instant() {}

func (c call) Advance(float64) Status {
	if c.fn != nil {
		c.fn()
	}
	return Completed
}

// Call runs fn once and completes.
func Call(fn func()) Step {
	return call{fn: fn}
}

type wait struct {
	duration   float64
	elapsed    float64
	onTick     func()
	onComplete func()
	status     Status
}

// Wait is a pure delay. onTick runs on every tick spent waiting, onComplete
// once afterwards; either may be nil.
func Wait(duration float64, onTick, onComplete func()) Step {
	return &wait{duration: duration, onTick: onTick, onComplete: onComplete}
}

func (w *wait) Advance(dt float64) Status {
	if w.status != Running {
		return w.status
	}
	if w.duration > 0 {
		w.elapsed += sanitizeDelta(dt)
		if w.onTick != nil {
			w.onTick()
		}
		if w.elapsed < w.duration {
			return w.status
		}
	}
	w.status = Completed
	if w.onComplete != nil {
		w.onComplete()
	}
	return w.status
}

type deferred struct {
	build func() Step
	step  Step
	built bool
}

// Defer builds its step on the first Advance. Use it when a step must read
// state produced by earlier steps of a sequence. A nil result completes
// immediately.
func Defer(build func() Step) Step {
	return &deferred{build: build}
}

func (d *deferred) Advance(dt float64) Status {
	if !d.built {
		d.built = true
		if d.build != nil {
			d.step = d.build()
		}
	}
	if d.step == nil {
		return Completed
	}
	return d.step.Advance(dt)
}

// Until polls cond each tick and completes once it reports true.
func Until(cond func() bool) Step {
	return StepFunc(func(float64) Status {
		if cond == nil || cond() {
			return Completed
		}
		return Running
	})
}
