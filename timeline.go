package piemenu

import (
	"math"
	"time"
)

// Status is the direction or resting state of a Timeline.
type Status int

const (
	StatusDismissed Status = iota // Stopped at 0
	StatusForward                 // Running toward 1
	StatusReverse                 // Running toward 0
	StatusCompleted               // Stopped at 1
)

func (s Status) String() string {
	switch s {
	case StatusForward:
		return "forward"
	case StatusReverse:
		return "reverse"
	case StatusCompleted:
		return "completed"
	default:
		return "dismissed"
	}
}

// Timeline drives a value between 0 and 1 over time.
// It registers a ticker on its Scheduler only while animating.
type Timeline struct {
	// Duration is the time a full 0 to 1 run takes.
	Duration time.Duration
	// ReverseDuration is the time a full 1 to 0 run takes.
	// Zero means Duration.
	ReverseDuration time.Duration
	// Curve eases the value while running forward or resting.
	Curve Curve
	// ReverseCurve eases the value while running in reverse. Nil means Curve.
	ReverseCurve Curve

	sched  Scheduler
	value  float64
	status Status

	// Current run
	from, to     float64
	start        time.Duration
	span         time.Duration
	removeTicker func()
	disposed     bool
}

// NewTimeline creates a dismissed timeline.
func NewTimeline(sched Scheduler, duration time.Duration) *Timeline {
	return &Timeline{
		Duration: duration,
		sched:    sched,
	}
}

// Value returns the linear progress.
func (tl *Timeline) Value() float64 {
	return tl.value
}

// Curved returns the progress with the active curve applied.
func (tl *Timeline) Curved() float64 {
	if tl.status == StatusReverse && tl.ReverseCurve != nil {
		return tl.ReverseCurve.transform(tl.value)
	}
	return tl.Curve.transform(tl.value)
}

// Status returns the current direction or resting state.
func (tl *Timeline) Status() Status {
	return tl.status
}

// Animating reports whether a run is in progress.
func (tl *Timeline) Animating() bool {
	return tl.removeTicker != nil
}

// Forward runs toward 1. The run takes the part of Duration that
// corresponds to the remaining distance.
func (tl *Timeline) Forward() {
	tl.run(1, scaleDuration(tl.Duration, 1-tl.value), StatusForward)
}

// Reverse runs toward 0.
func (tl *Timeline) Reverse() {
	d := tl.ReverseDuration
	if d == 0 {
		d = tl.Duration
	}
	tl.run(0, scaleDuration(d, tl.value), StatusReverse)
}

// AnimateTo runs to target over exactly d. A zero d jumps immediately.
func (tl *Timeline) AnimateTo(target float64, d time.Duration) {
	target = math.Max(0, math.Min(1, target))
	dir := StatusForward
	if target < tl.value {
		dir = StatusReverse
	}
	tl.run(target, d, dir)
}

// Stop halts a run in place.
func (tl *Timeline) Stop() {
	if tl.removeTicker != nil {
		tl.removeTicker()
		tl.removeTicker = nil
	}
}

// Dispose stops the timeline for good. Later calls are ignored.
func (tl *Timeline) Dispose() {
	tl.Stop()
	tl.disposed = true
}

func (tl *Timeline) run(target float64, span time.Duration, dir Status) {
	tl.Stop()
	if tl.disposed {
		return
	}
	if span <= 0 || tl.value == target {
		tl.value = target
		tl.status = restingStatus(target, dir)
		return
	}
	tl.from, tl.to = tl.value, target
	tl.start = tl.sched.Now()
	tl.span = span
	tl.status = dir
	tl.removeTicker = tl.sched.AddTicker(tl.tick)
}

func (tl *Timeline) tick(now time.Duration) {
	t := float64(now-tl.start) / float64(tl.span)
	if t >= 1 {
		tl.value = tl.to
		tl.status = restingStatus(tl.to, tl.status)
		tl.Stop()
		return
	}
	tl.value = tl.from + (tl.to-tl.from)*t
}

// restingStatus is the status after settling at v. Only the end points have
// a resting status of their own.
func restingStatus(v float64, dir Status) Status {
	switch v {
	case 0:
		return StatusDismissed
	case 1:
		return StatusCompleted
	}
	return dir
}

func scaleDuration(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}
