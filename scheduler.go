package piemenu

import "time"

// Timer is a pending single-shot callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// fired or was stopped before.
	Stop() bool
}

// Scheduler is the time source every timeline and controller depends on.
// All callbacks run on the goroutine that drives the scheduler.
type Scheduler interface {
	// Now returns the current time, measured from an arbitrary origin.
	Now() time.Duration

	// AfterFunc runs f once, d after Now.
	AfterFunc(d time.Duration, f func()) Timer

	// AddTicker calls tick once per advance with the current time until the
	// returned remove function is called.
	AddTicker(tick func(now time.Duration)) (remove func())
}

// FrameScheduler is a Scheduler driven by the host frame loop.
// Call Advance once per frame with the frame's delta time.
//
// FrameScheduler is not safe for concurrent use; it belongs to the
// goroutine that runs the UI loop.
type FrameScheduler struct {
	now     time.Duration
	seq     uint64
	timers  []*frameTimer
	tickers map[uint64]func(time.Duration)
	order   []uint64
}

// frameTimer is the Timer returned by FrameScheduler.AfterFunc.
type frameTimer struct {
	due  time.Duration
	seq  uint64
	f    func()
	done bool
}

// NewFrameScheduler creates a scheduler whose clock starts at zero.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		tickers: make(map[uint64]func(time.Duration)),
	}
}

// Now returns the scheduler's current time.
func (s *FrameScheduler) Now() time.Duration {
	return s.now
}

// AfterFunc schedules f to run d after Now. Negative delays run on the next
// advance.
func (s *FrameScheduler) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &frameTimer{due: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// AddTicker registers tick to be called on every advance.
func (s *FrameScheduler) AddTicker(tick func(now time.Duration)) func() {
	s.seq++
	id := s.seq
	s.tickers[id] = tick
	s.order = append(s.order, id)
	return func() {
		if _, ok := s.tickers[id]; !ok {
			return
		}
		delete(s.tickers, id)
		for i, o := range s.order {
			if o == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *FrameScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// Tickers returns the number of registered tickers.
func (s *FrameScheduler) Tickers() int {
	return len(s.tickers)
}

// Advance moves the clock forward by dt. Timers due within the window fire
// in due order with Now set to their due time, including timers scheduled by
// other callbacks during the window. Tickers then run once at the final time.
func (s *FrameScheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		t.done = true
		if t.due > s.now {
			s.now = t.due
		}
		t.f()
	}
	s.compact()
	s.now = target

	// Tickers may add or remove tickers while running.
	ids := append([]uint64(nil), s.order...)
	for _, id := range ids {
		if tick, ok := s.tickers[id]; ok {
			tick(s.now)
		}
	}
}

// nextDue returns the earliest live timer due at or before target.
func (s *FrameScheduler) nextDue(target time.Duration) *frameTimer {
	var next *frameTimer
	for _, t := range s.timers {
		if t.done || t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

// compact drops fired and stopped timers, keeping scheduling order.
func (s *FrameScheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

// Stop cancels the timer.
func (t *frameTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// Stopwatch measures elapsed time on a Scheduler's clock.
type Stopwatch struct {
	sched   Scheduler
	start   time.Duration
	elapsed time.Duration
	running bool
}

// NewStopwatch creates a stopped stopwatch reading zero.
func NewStopwatch(sched Scheduler) *Stopwatch {
	return &Stopwatch{sched: sched}
}

// Start starts or resumes measuring.
func (w *Stopwatch) Start() {
	if w.running {
		return
	}
	w.start = w.sched.Now()
	w.running = true
}

// Stop pauses measuring, keeping the elapsed time.
func (w *Stopwatch) Stop() {
	if !w.running {
		return
	}
	w.elapsed += w.sched.Now() - w.start
	w.running = false
}

// Reset sets the elapsed time to zero without changing the running state.
func (w *Stopwatch) Reset() {
	w.elapsed = 0
	w.start = w.sched.Now()
}

// Elapsed returns the measured time.
func (w *Stopwatch) Elapsed() time.Duration {
	if w.running {
		return w.elapsed + w.sched.Now() - w.start
	}
	return w.elapsed
}

// Running reports whether the stopwatch is measuring.
func (w *Stopwatch) Running() bool {
	return w.running
}
