// Package modal runs the open/close lifecycle of a visual container.
package modal

import (
	"errors"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/curve"
	"github.com/milk9111/easekit/tween"
)

var (
	ErrBusy          = errors.New("modal: transition already in progress")
	ErrAlreadyOpen   = errors.New("modal: already open")
	ErrAlreadyClosed = errors.New("modal: already closed")
	ErrElementGone   = errors.New("modal: element no longer exists")
)

// Toggle switches an element's interactivity.
type Toggle interface {
	SetEnabled(on bool)
}

// Sizer reports a rendered width and height.
type Sizer interface {
	Size() (w, h float64)
}

// Element bundles the parts of the container a modal drives. Scroll fields are
// only used when Config.UseScroll is set.
type Element struct {
	Position tween.Property[common.Vec3]
	Scale    tween.Property[common.Vec3]
	Bounds   Sizer
	Fade     tween.FadeTarget
	Trigger  Toggle

	ScrollContent tween.Property[common.Vec3]
	ScrollInput   Toggle
}

type Config struct {
	OpenStyle  Style
	CloseStyle Style
	Curve      tween.Curve
	Duration   float64
	UseScroll  bool
	// StartOpen treats the element's current position as the anchor and
	// starts in Open.
	StartOpen bool
}

const defaultDuration = 1.0

// Modal is the Closed -> Opening -> Open -> Closing state machine. Slide
// offsets assume y-down screen coordinates.
type Modal struct {
	runner *tween.Runner
	el     Element
	screen Sizer
	cfg    Config

	state  State
	anchor common.Vec3
	handle *tween.Handle
}

func New(runner *tween.Runner, el Element, screen Sizer, cfg Config) *Modal {
	if cfg.Curve == nil {
		cfg.Curve = curve.Smooth()
	}
	if cfg.Duration == 0 {
		cfg.Duration = defaultDuration
	}
	m := &Modal{runner: runner, el: el, screen: screen, cfg: cfg}
	if cfg.StartOpen {
		if pos, ok := el.Position.Get(); ok {
			m.anchor = pos
			m.state = Open
		}
	}
	return m
}

func (m *Modal) State() State {
	m.settle()
	return m.state
}

// Anchor is the resting position captured when the modal last began opening.
func (m *Modal) Anchor() common.Vec3 { return m.anchor }

// Handle returns the in-flight transition, if any.
func (m *Modal) Handle() *tween.Handle { return m.handle }

func (m *Modal) OpenDefault(onDone func()) error {
	return m.Open(m.cfg.Curve, onDone)
}

func (m *Modal) CloseDefault(onDone func()) error {
	return m.Close(m.cfg.Curve, onDone)
}

// Open starts the opening transition with curve c. onDone runs once the modal
// is fully open and interactive again.
func (m *Modal) Open(c tween.Curve, onDone func()) error {
	m.settle()
	switch m.state {
	case Opening, Closing:
		return ErrBusy
	case Open:
		return ErrAlreadyOpen
	}
	if c == nil {
		c = m.cfg.Curve
	}

	anchor, ok := m.el.Position.Get()
	if !ok {
		return ErrElementGone
	}
	m.anchor = anchor
	m.setTrigger(false)
	m.resetScroll()
	if m.cfg.UseScroll && m.el.ScrollInput != nil {
		m.el.ScrollInput.SetEnabled(true)
	}

	done := tween.OnComplete(func() {
		m.state = Open
		m.setTrigger(true)
		if onDone != nil {
			onDone()
		}
	})

	if m.cfg.OpenStyle != Fade {
		m.restoreGraphics()
	}

	var step tween.Step
	switch m.cfg.OpenStyle {
	case SlideUp, SlideDown, SlideLeft, SlideRight:
		m.el.Scale.Set(common.One)
		m.el.Position.Set(m.offscreen(m.cfg.OpenStyle, anchor))
		step = tween.MoveTo(m.el.Position, anchor, c, m.cfg.Duration, done)
	case Fade:
		m.el.Scale.Set(common.One)
		step = tween.Fade(m.el.Fade, tween.FadeIn, c, m.cfg.Duration, done)
	default:
		step = tween.ScaleTo(m.el.Scale, common.One, c, m.cfg.Duration, done)
	}

	m.state = Opening
	m.handle = m.runner.Start(m.guard(step))
	return nil
}

// Close starts the closing transition with curve c. When it finishes the
// element is parked back at its anchor with zero scale, so the next Open
// starts clean, and then onDone runs.
func (m *Modal) Close(c tween.Curve, onDone func()) error {
	m.settle()
	switch m.state {
	case Opening, Closing:
		return ErrBusy
	case Closed:
		return ErrAlreadyClosed
	}
	if c == nil {
		c = m.cfg.Curve
	}

	m.setTrigger(false)

	done := tween.OnComplete(func() {
		m.resetScroll()
		if m.cfg.UseScroll && m.el.ScrollInput != nil {
			m.el.ScrollInput.SetEnabled(false)
		}
		m.el.Position.Set(m.anchor)
		m.el.Scale.Set(common.Zero)
		m.state = Closed
		if onDone != nil {
			onDone()
		}
	})

	var step tween.Step
	switch m.cfg.CloseStyle {
	case SlideUp, SlideDown, SlideLeft, SlideRight:
		from, ok := m.el.Position.Get()
		if !ok {
			return ErrElementGone
		}
		m.el.Scale.Set(common.One)
		step = tween.MoveTo(m.el.Position, m.offscreen(m.cfg.CloseStyle, from), c, m.cfg.Duration, done)
	case Fade:
		step = tween.Fade(m.el.Fade, tween.FadeOut, c, m.cfg.Duration, done)
	default:
		step = tween.ScaleOut(m.el.Scale, c, m.cfg.Duration, done)
	}

	m.state = Closing
	m.handle = m.runner.Start(m.guard(step))
	return nil
}

// guard drops the modal back to Closed if its element disappears mid-flight,
// so it does not report busy forever.
func (m *Modal) guard(step tween.Step) tween.Step {
	return tween.StepFunc(func(dt float64) tween.Status {
		st := step.Advance(dt)
		if st == tween.Aborted {
			m.state = Closed
		}
		return st
	})
}

// settle drops a transition that ended without its completion callback, as
// happens when the handle is cancelled or the runner is cleared, back to
// Closed with the trigger re-enabled.
func (m *Modal) settle() {
	if (m.state == Opening || m.state == Closing) && m.handle.Done() {
		m.state = Closed
		m.setTrigger(true)
	}
}

// offscreen returns a point one element height (or width) past the edge the
// style slides through.
func (m *Modal) offscreen(s Style, from common.Vec3) common.Vec3 {
	var w, h, sw, sh float64
	if m.el.Bounds != nil {
		w, h = m.el.Bounds.Size()
	}
	if m.screen != nil {
		sw, sh = m.screen.Size()
	}
	switch s {
	case SlideUp:
		from.Y = -h
	case SlideDown:
		from.Y = sh + h
	case SlideLeft:
		from.X = -w
	case SlideRight:
		from.X = sw + w
	}
	return from
}

// restoreGraphics undoes a previous fade-out so non-fade styles open visible.
func (m *Modal) restoreGraphics() {
	if m.el.Fade == nil || !m.el.Fade.Alive() {
		return
	}
	for _, g := range m.el.Fade.Graphics() {
		g.SetEnabled(true)
		g.SetAlpha(1)
	}
}

func (m *Modal) setTrigger(on bool) {
	if m.el.Trigger != nil {
		m.el.Trigger.SetEnabled(on)
	}
}

func (m *Modal) resetScroll() {
	if m.cfg.UseScroll && m.el.ScrollContent != nil {
		m.el.ScrollContent.Set(common.Zero)
	}
}
