// Package transition sequences the loading-screen flow used when switching
// scenes: fade the overlay in, load while reporting progress, fade it out.
package transition

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/easekit/curve"
	"github.com/milk9111/easekit/tween"
)

var (
	ErrInProgress = errors.New("transition: load already in progress")
	// ErrCancelled is reported when the running transition is cancelled
	// through its handle or a cleared runner.
	ErrCancelled = errors.New("transition: cancelled")
	// ErrSurfaceGone is reported when a faded surface is destroyed mid-run.
	ErrSurfaceGone = errors.New("transition: surface destroyed")
)

// Operation is an in-flight scene load. Poll is called once per tick.
type Operation interface {
	Poll() (progress float64, done bool)
}

// Loader starts asynchronous scene loads.
type Loader interface {
	Load(sceneID string) (Operation, error)
}

// Toggle activates or deactivates a surface.
type Toggle interface {
	SetEnabled(on bool)
}

// TextSetter displays a hint.
type TextSetter interface {
	SetText(s string)
}

// Random picks hints.
type Random interface {
	IntN(n int) int
}

// Surfaces are the loading screen parts the orchestrator drives. Hint and
// Progress may be nil.
type Surfaces struct {
	Root       Toggle
	Background tween.FadeTarget
	Content    tween.FadeTarget
	Hint       TextSetter
	Progress   tween.Property[float64]
}

type Config struct {
	// OpenCurve shapes the fades that cover the screen. Defaults to smooth.
	OpenCurve tween.Curve
	// Curve shapes the fades that reveal the new scene.
	Curve    tween.Curve
	Duration float64
	Hints    []string
}

type Phase int

const (
	Idle Phase = iota
	FadingInBackground
	FadingInContent
	Loading
	FadingOutContent
	FadingOutBackground
	Done
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FadingInBackground:
		return "fading_in_background"
	case FadingInContent:
		return "fading_in_content"
	case Loading:
		return "loading"
	case FadingOutContent:
		return "fading_out_content"
	case FadingOutBackground:
		return "fading_out_background"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Orchestrator runs one transition at a time. It is re-entered for every
// load request.
type Orchestrator struct {
	runner   *tween.Runner
	loader   Loader
	surfaces Surfaces
	rnd      Random
	cfg      Config

	phase   Phase
	sceneID string
	err     error
	handle  *tween.Handle

	// OnPhase, when set, observes every phase change.
	OnPhase func(Phase)
}

// New builds an orchestrator and primes the content surface so its first
// fade-in starts from transparent.
func New(runner *tween.Runner, loader Loader, surfaces Surfaces, rnd Random, cfg Config) *Orchestrator {
	if cfg.OpenCurve == nil {
		cfg.OpenCurve = curve.Smooth()
	}
	if cfg.Curve == nil {
		cfg.Curve = curve.Smooth()
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(1, 2))
	}
	o := &Orchestrator{runner: runner, loader: loader, surfaces: surfaces, rnd: rnd, cfg: cfg}
	if c := surfaces.Content; c != nil && c.Alive() {
		for _, g := range c.Graphics() {
			g.SetEnabled(true)
			g.SetAlpha(0)
		}
	}
	return o
}

func (o *Orchestrator) Phase() Phase {
	o.settle()
	return o.phase
}

// Err returns the error of the last failed run.
func (o *Orchestrator) Err() error {
	o.settle()
	return o.err
}

// Scene reports the scene requested by the current or last run.
func (o *Orchestrator) Scene() string { return o.sceneID }

// Busy reports whether a transition is running.
func (o *Orchestrator) Busy() bool {
	o.settle()
	return o.running()
}

func (o *Orchestrator) running() bool {
	switch o.phase {
	case Idle, Done, Failed:
		return false
	}
	return true
}

// StartAsyncLoad begins a transition to sceneID. There is no timeout: a load
// that never reports done keeps the loading screen up indefinitely.
func (o *Orchestrator) StartAsyncLoad(sceneID string) (*tween.Handle, error) {
	if o.Busy() {
		return nil, ErrInProgress
	}
	o.sceneID = sceneID
	o.err = nil

	if o.surfaces.Hint != nil && len(o.cfg.Hints) > 0 {
		o.surfaces.Hint.SetText(o.cfg.Hints[o.rnd.IntN(len(o.cfg.Hints))])
	}
	if o.surfaces.Root != nil {
		o.surfaces.Root.SetEnabled(true)
	}
	o.setPhase(FadingInBackground)

	seq := tween.Sequence(
		tween.Fade(o.surfaces.Background, tween.FadeIn, o.cfg.OpenCurve, o.cfg.Duration,
			tween.OnComplete(func() { o.setPhase(FadingInContent) })),
		tween.Fade(o.surfaces.Content, tween.FadeIn, o.cfg.OpenCurve, o.cfg.Duration,
			tween.OnComplete(func() { o.setPhase(Loading) })),
		&loadStep{o: o},
		tween.Fade(o.surfaces.Content, tween.FadeOut, o.cfg.Curve, o.cfg.Duration,
			tween.OnComplete(func() {
				o.setProgress(0)
				o.setPhase(FadingOutBackground)
			})),
		tween.Fade(o.surfaces.Background, tween.FadeOut, o.cfg.Curve, o.cfg.Duration,
			tween.OnComplete(func() {
				if o.surfaces.Root != nil {
					o.surfaces.Root.SetEnabled(false)
				}
				o.setPhase(Done)
			})),
	)
	o.handle = o.runner.Start(seq)
	return o.handle, nil
}

// settle fails a run whose sequence stopped without reaching Done or Failed.
func (o *Orchestrator) settle() {
	if !o.running() || !o.handle.Done() {
		return
	}
	if o.handle.Cancelled() {
		o.fail(ErrCancelled)
		return
	}
	o.fail(ErrSurfaceGone)
}

// fail records err and takes the overlay down so a failed load does not
// leave the screen covered.
func (o *Orchestrator) fail(err error) {
	o.err = err
	for _, t := range []tween.FadeTarget{o.surfaces.Background, o.surfaces.Content} {
		if t == nil || !t.Alive() {
			continue
		}
		for _, g := range t.Graphics() {
			g.SetAlpha(0)
		}
	}
	o.setProgress(0)
	if o.surfaces.Root != nil {
		o.surfaces.Root.SetEnabled(false)
	}
	o.setPhase(Failed)
}

func (o *Orchestrator) setPhase(p Phase) {
	o.phase = p
	if o.OnPhase != nil {
		o.OnPhase(p)
	}
}

func (o *Orchestrator) setProgress(v float64) {
	if o.surfaces.Progress != nil {
		o.surfaces.Progress.Set(v)
	}
}

// loadStep starts the load on its first tick and polls it every tick after,
// mirroring progress onto the indicator.
type loadStep struct {
	o    *Orchestrator
	op   Operation
	last float64
}

func (s *loadStep) Advance(float64) tween.Status {
	o := s.o
	if s.op == nil {
		if o.loader == nil {
			o.fail(errors.New("transition: no loader configured"))
			return tween.Aborted
		}
		op, err := o.loader.Load(o.sceneID)
		if err != nil {
			o.fail(fmt.Errorf("transition: load %q: %w", o.sceneID, err))
			return tween.Aborted
		}
		s.op = op
	}

	p, done := s.op.Poll()
	p = max(s.last, min(max(p, 0), 1))
	s.last = p
	o.setProgress(p)
	if done {
		o.setPhase(FadingOutContent)
		return tween.Completed
	}
	return tween.Running
}
