package tween

// Runner owns the set of active steps and advances them once per Update, in
// the order they were started. It is not safe for concurrent use; all calls
// are expected from the host's update goroutine.
type Runner struct {
	active []*Handle
}

func NewRunner() *Runner {
	return &Runner{}
}

// Start registers step. Its first Advance happens on the next Update, even
// when Start is called from inside a running step or completion callback.
func (r *Runner) Start(step Step) *Handle {
	h := &Handle{step: step}
	if step == nil {
		h.status = Completed
		return h
	}
	r.active = append(r.active, h)
	return h
}

// Update advances every step that was active when the call began.
func (r *Runner) Update(dt float64) {
	if r == nil {
		return
	}
	dt = sanitizeDelta(dt)

	// Steps may Start or Clear while they run, so walk a fixed view of the
	// handles active at the start of the tick.
	n := len(r.active)
	for _, h := range r.active[:n:n] {
		if h.status != Running {
			continue
		}
		h.status = h.step.Advance(dt)
	}

	kept := r.active[:0]
	for _, h := range r.active {
		if h.status == Running {
			kept = append(kept, h)
		}
	}
	clear(r.active[len(kept):])
	r.active = kept
}

// Active reports the number of steps still running.
func (r *Runner) Active() int {
	if r == nil {
		return 0
	}
	count := 0
	for _, h := range r.active {
		if h.status == Running {
			count++
		}
	}
	return count
}

// Clear cancels everything. No completion callbacks run.
func (r *Runner) Clear() {
	if r == nil {
		return
	}
	for _, h := range r.active {
		h.Cancel()
	}
	r.active = nil
}

// Handle tracks one started step.
type Handle struct {
	step      Step
	status    Status
	cancelled bool
}

func (h *Handle) Status() Status {
	if h == nil {
		return Completed
	}
	return h.status
}

// Done reports whether the step finished, either normally or by abort.
func (h *Handle) Done() bool {
	return h.Status() != Running
}

// Cancel stops the step before its next Advance. The step's completion
// callback does not run.
func (h *Handle) Cancel() {
	if h == nil || h.status != Running {
		return
	}
	h.status = Aborted
	h.cancelled = true
}

// Cancelled distinguishes an explicit Cancel from a target going away.
func (h *Handle) Cancelled() bool {
	return h != nil && h.cancelled
}
