package piemenu

import "log/slog"

// Bounce is the press feedback of a menu's child: a forward run while the
// pointer is down and a reverse run on release. Every bounce stays visible
// for a minimum time so that very fast taps are still perceptible.
type Bounce struct {
	sched     Scheduler
	theme     *Theme
	timeline  *Timeline
	stopwatch *Stopwatch
	logger    *slog.Logger

	running        bool
	pendingReverse Timer
}

// NewBounce creates a bounce that reads its settings from theme on every
// call, so theme changes apply to the next press.
func NewBounce(sched Scheduler, theme *Theme, logger *slog.Logger) *Bounce {
	if logger == nil {
		logger = defaultLogger
	}
	return &Bounce{
		sched:     sched,
		theme:     theme,
		timeline:  NewTimeline(sched, theme.ChildBounceDuration),
		stopwatch: NewStopwatch(sched),
		logger:    logger,
	}
}

// Bounce starts the forward run. It does nothing when bouncing is disabled
// or a forward run is already under way. A reverse still waiting from the
// previous release is cancelled.
func (b *Bounce) Bounce() {
	if !b.theme.ChildBounceEnabled || b.running {
		return
	}
	b.cancelPendingReverse()
	b.running = true
	b.stopwatch.Reset()
	b.stopwatch.Start()
	b.configure()
	b.timeline.Forward()
}

// Debounce ends the forward run. The reverse starts right away if the bounce
// has been visible long enough, otherwise it is scheduled one full minimum
// visibility from now. A run in progress is always finished, even if
// bouncing was disabled since it started.
func (b *Bounce) Debounce() {
	if !b.running {
		return
	}
	b.running = false
	b.stopwatch.Stop()

	visible := b.stopwatch.Elapsed()
	minVisible := b.theme.minBounceVisible()
	if visible > minVisible {
		b.timeline.Reverse()
		return
	}

	b.logger.Debug("bounce reverse deferred", "visible", visible, "delay", minVisible)
	b.cancelPendingReverse()
	b.pendingReverse = b.sched.AfterFunc(minVisible, func() {
		b.pendingReverse = nil
		b.timeline.Reverse()
	})
}

// Running reports whether a forward run is in progress.
func (b *Bounce) Running() bool {
	return b.running
}

// ReversePending reports whether a deferred reverse is waiting to start.
func (b *Bounce) ReversePending() bool {
	return b.pendingReverse != nil
}

// Progress returns the curved progress of the press feedback, 0 at rest.
func (b *Bounce) Progress() float64 {
	return b.timeline.Curved()
}

// Scale returns the child's scale factor: 1 at rest, ChildBounceFactor at
// full press.
func (b *Bounce) Scale() float32 {
	return 1 - (1-b.theme.ChildBounceFactor)*float32(b.timeline.Curved())
}

// Dispose cancels the deferred reverse and stops the timeline.
func (b *Bounce) Dispose() {
	b.cancelPendingReverse()
	b.running = false
	b.stopwatch.Stop()
	b.timeline.Dispose()
}

func (b *Bounce) cancelPendingReverse() {
	if b.pendingReverse != nil {
		b.pendingReverse.Stop()
		b.pendingReverse = nil
	}
}

func (b *Bounce) configure() {
	b.timeline.Duration = b.theme.ChildBounceDuration
	b.timeline.Curve = b.theme.ChildBounceCurve
	b.timeline.ReverseCurve = b.theme.ChildBounceReverseCurve
}
