package piemenu

// FadeEdge is what an OverlayFade reconciliation did.
type FadeEdge int

const (
	FadeNone        FadeEdge = iota // Nothing changed
	FadeActivated                   // This token's menu opened; fading in
	FadeDeactivated                 // This token's menu closed; fading out
	FadeSnapped                     // Another token owns the menu; cleared at once
)

func (e FadeEdge) String() string {
	switch e {
	case FadeActivated:
		return "activated"
	case FadeDeactivated:
		return "deactivated"
	case FadeSnapped:
		return "snapped"
	default:
		return "none"
	}
}

// OverlayFade drives the dimming overlay of one controller from edges of
// the shared activation state.
type OverlayFade struct {
	theme     *Theme
	timeline  *Timeline
	wasActive bool
}

// NewOverlayFade creates a transparent fade.
func NewOverlayFade(sched Scheduler, theme *Theme) *OverlayFade {
	return &OverlayFade{
		theme:    theme,
		timeline: NewTimeline(sched, theme.FadeDuration),
	}
}

// Reconcile compares state with the previous call. It is edge triggered:
// calling it twice with the same state does nothing the second time.
func (f *OverlayFade) Reconcile(state ActivationState, token Token) FadeEdge {
	active := state.ActiveFor(token)
	wasActive := f.wasActive
	f.wasActive = active

	if state.Owner != token && state.Owner != NoToken {
		if f.timeline.Value() == 0 && !f.timeline.Animating() {
			return FadeNone
		}
		f.timeline.AnimateTo(0, 0)
		return FadeSnapped
	}

	switch {
	case active && !wasActive:
		f.configure()
		f.timeline.Forward()
		return FadeActivated
	case !active && wasActive:
		f.configure()
		f.timeline.Reverse()
		return FadeDeactivated
	}
	return FadeNone
}

// Opacity returns the overlay opacity in [0, 1].
func (f *OverlayFade) Opacity() float32 {
	if f.theme.OverlayStyle == OverlayNone {
		return 0
	}
	return clampf(float32(f.timeline.Curved()), 0, 1)
}

// Progress returns the linear fade progress.
func (f *OverlayFade) Progress() float64 {
	return f.timeline.Value()
}

// Dispose stops the fade.
func (f *OverlayFade) Dispose() {
	f.timeline.Dispose()
}

func (f *OverlayFade) configure() {
	f.timeline.Duration = f.theme.FadeDuration
	f.timeline.Curve = f.theme.FadeCurve
}
