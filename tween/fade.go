package tween

// Graphic is one visible element (text or image) under a fade root.
type Graphic interface {
	SetAlpha(a float64)
	SetEnabled(on bool)
}

// FadeTarget is the root of a fade. Graphics is collected once, when the fade
// starts.
type FadeTarget interface {
	Alive() bool
	Graphics() []Graphic
}

type FadeDirection int

const (
	// FadeIn goes from transparent to opaque.
	FadeIn FadeDirection = iota
	// FadeOut goes from opaque to transparent.
	FadeOut
)

func (d FadeDirection) String() string {
	if d == FadeOut {
		return "out"
	}
	return "in"
}

type fade struct {
	target   FadeTarget
	dir      FadeDirection
	curve    Curve
	duration float64

	graphics []Graphic
	elapsed  float64
	started  bool

	onComplete func()
	status     Status
}

// Fade blends the alpha of every graphic under target. Fading in enables the
// graphics before the first blend so they accept input mid-fade; fading out
// disables them after the final write.
func Fade(target FadeTarget, dir FadeDirection, c Curve, duration float64, opts ...Option) Step {
	o := buildOptions(opts)
	return &fade{
		target:     target,
		dir:        dir,
		curve:      orDefault(c),
		duration:   duration,
		onComplete: o.onComplete,
	}
}

func (f *fade) Advance(dt float64) Status {
	if f.status != Running {
		return f.status
	}
	if f.target == nil || !f.target.Alive() {
		f.status = Aborted
		return f.status
	}
	if !f.started {
		f.graphics = f.target.Graphics()
		if f.dir == FadeIn {
			for _, g := range f.graphics {
				g.SetEnabled(true)
				g.SetAlpha(0)
			}
		}
		f.started = true
	}

	f.elapsed += sanitizeDelta(dt)
	p, done := progress(f.elapsed, f.duration)

	alpha := f.curve.Evaluate(p)
	if done {
		alpha = 1
	}
	if f.dir == FadeOut {
		alpha = 1 - alpha
	}
	for _, g := range f.graphics {
		g.SetAlpha(alpha)
	}
	if !done {
		return f.status
	}

	if f.dir == FadeOut {
		for _, g := range f.graphics {
			g.SetEnabled(false)
		}
	}
	f.status = Completed
	if f.onComplete != nil {
		f.onComplete()
	}
	return f.status
}
