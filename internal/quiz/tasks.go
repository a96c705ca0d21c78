package quiz

// TaskRunner schedules callbacks measured in simulated milliseconds. It is
// advanced from the tick loop, which keeps delayed work (feedback
// auto-dismiss, flow restart) deterministic and single-threaded. Every
// scheduled task returns a handle that can be cancelled, so a superseding
// state change suppresses a stale callback instead of relying on the
// callback's own no-op guard.
type TaskRunner struct {
	tasks []*task
}

type task struct {
	remainingMs float64
	fn          func()
	cancelled   bool
}

// TaskHandle identifies a scheduled task.
type TaskHandle struct {
	t *task
}

// Cancel prevents the task from running. Cancelling an already-fired or
// already-cancelled task is a no-op.
func (h *TaskHandle) Cancel() {
	if h != nil && h.t != nil {
		h.t.cancelled = true
	}
}

// NewTaskRunner creates an empty task runner.
func NewTaskRunner() *TaskRunner {
	return &TaskRunner{}
}

// After schedules fn to run once delayMs of simulated time has elapsed.
// A non-positive delay fires on the next Advance call.
func (r *TaskRunner) After(delayMs float64, fn func()) *TaskHandle {
	t := &task{remainingMs: delayMs, fn: fn}
	r.tasks = append(r.tasks, t)
	return &TaskHandle{t: t}
}

// Advance moves simulated time forward and runs every task whose delay has
// elapsed. Tasks fire in scheduling order.
func (r *TaskRunner) Advance(deltaMs float64) {
	if deltaMs < 0 {
		return
	}

	var due []*task
	remaining := r.tasks[:0]
	for _, t := range r.tasks {
		if t.cancelled {
			continue
		}
		t.remainingMs -= deltaMs
		if t.remainingMs <= 0 {
			due = append(due, t)
			continue
		}
		remaining = append(remaining, t)
	}
	r.tasks = remaining

	for _, t := range due {
		if !t.cancelled {
			t.fn()
		}
	}
}

// Pending returns the number of scheduled, not yet fired tasks.
func (r *TaskRunner) Pending() int {
	n := 0
	for _, t := range r.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Clear cancels all scheduled tasks.
func (r *TaskRunner) Clear() {
	for _, t := range r.tasks {
		t.cancelled = true
	}
	r.tasks = nil
}
