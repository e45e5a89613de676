// Package frame provides the per-frame callback scheduler that drives the
// visuals. The host calls Step once per displayed frame.
package frame

// Scheduler runs callbacks requested for the next frame.
// It is not safe for concurrent use; everything runs on the frame goroutine.
type Scheduler struct {
	pending []func()
	running []func()
	frame   int64
}

// Request registers fn to run on the next Step. Registrations are one-shot:
// a callback that wants to keep running must request again.
func (s *Scheduler) Request(fn func()) {
	if fn == nil {
		return
	}
	s.pending = append(s.pending, fn)
}

// Step runs the callbacks that were pending when it was called and returns
// how many ran. Callbacks requested during Step run on the following Step.
func (s *Scheduler) Step() int {
	s.running, s.pending = s.pending, s.running[:0]
	for i, fn := range s.running {
		fn()
		s.running[i] = nil
	}
	n := len(s.running)
	s.running = s.running[:0]
	s.frame++
	return n
}

// Pending returns the number of callbacks waiting for the next Step.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Frame returns the number of completed Steps.
func (s *Scheduler) Frame() int64 {
	return s.frame
}

// Loop re-registers a callback after every run until stopped, so there is
// never more than one pending request per loop.
type Loop struct {
	sched   *Scheduler
	fn      func()
	stopped bool
	runs    int64
}

// Animate starts calling fn once per frame on s.
func Animate(s *Scheduler, fn func()) *Loop {
	l := &Loop{sched: s, fn: fn}
	s.Request(l.run)
	return l
}

func (l *Loop) run() {
	if l.stopped {
		return
	}
	l.fn()
	l.runs++
	if !l.stopped {
		l.sched.Request(l.run)
	}
}

// Stop ends the loop. A pending request becomes a no-op.
func (l *Loop) Stop() {
	l.stopped = true
}

// Running reports whether the loop is still scheduled.
func (l *Loop) Running() bool {
	return !l.stopped
}

// Runs returns how many times the callback has run.
func (l *Loop) Runs() int64 {
	return l.runs
}
