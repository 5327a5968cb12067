package piemenu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeline_ForwardCompletes(t *testing.T) {
	s := NewFrameScheduler()
	tl := NewTimeline(s, 100*time.Millisecond)

	tl.Forward()
	assert.Equal(t, StatusForward, tl.Status())
	assert.True(t, tl.Animating())

	s.Advance(50 * time.Millisecond)
	assert.InDelta(t, 0.5, tl.Value(), 1e-9)

	s.Advance(50 * time.Millisecond)
	assert.Equal(t, 1.0, tl.Value())
	assert.Equal(t, StatusCompleted, tl.Status())
	assert.False(t, tl.Animating())
	assert.Zero(t, s.Tickers(), "ticker is removed once settled")
}

func TestTimeline_ReverseTakesRemainingShare(t *testing.T) {
	s := NewFrameScheduler()
	tl := NewTimeline(s, 100*time.Millisecond)

	tl.Forward()
	s.Advance(50 * time.Millisecond)
	tl.Reverse()
	assert.Equal(t, StatusReverse, tl.Status())

	s.Advance(25 * time.Millisecond)
	assert.InDelta(t, 0.25, tl.Value(), 1e-9)

	s.Advance(25 * time.Millisecond)
	assert.Equal(t, 0.0, tl.Value())
	assert.Equal(t, StatusDismissed, tl.Status())
}

func TestTimeline_ReverseDuration(t *testing.T) {
	s := NewFrameScheduler()
	tl := NewTimeline(s, 100*time.Millisecond)
	tl.ReverseDuration = 200 * time.Millisecond

	tl.AnimateTo(1, 0)
	tl.Reverse()
	s.Advance(100 * time.Millisecond)
	assert.InDelta(t, 0.5, tl.Value(), 1e-9)
}

func TestTimeline_AnimateToZeroDurationSnaps(t *testing.T) {
	s := NewFrameScheduler()
	tl := NewTimeline(s, 100*time.Millisecond)
	tl.Forward()
	s.Advance(30 * time.Millisecond)

	tl.AnimateTo(0, 0)
	assert.Equal(t, 0.0, tl.Value())
	assert.Equal(t, StatusDismissed, tl.Status())
	assert.False(t, tl.Animating())
	assert.Zero(t, s.Tickers())
}

func TestTimeline_ZeroDurationForward(t *testing.T) {
	s := NewFrameScheduler()
	tl := NewTimeline(s, 0)
	tl.Forward()
	assert.Equal(t, 1.0, tl.Value())
	assert.Equal(t, StatusCompleted, tl.Status())
}

func TestTimeline_CurvedUsesReverseCurveWhileReversing(t *testing.T) {
	s := NewFrameScheduler()
	tl := NewTimeline(s, 100*time.Millisecond)
	tl.Curve = Linear
	tl.ReverseCurve = func(t float64) float64 { return t * t }

	tl.Forward()
	s.Advance(50 * time.Millisecond)
	assert.InDelta(t, 0.5, tl.Curved(), 1e-9)

	tl.AnimateTo(1, 0)
	tl.Reverse()
	s.Advance(50 * time.Millisecond)
	assert.InDelta(t, 0.25, tl.Curved(), 1e-9)
}

func TestTimeline_DisposeStopsAndIgnoresRuns(t *testing.T) {
	s := NewFrameScheduler()
	tl := NewTimeline(s, 100*time.Millisecond)
	tl.Forward()
	s.Advance(20 * time.Millisecond)

	tl.Dispose()
	assert.Zero(t, s.Tickers())

	tl.Forward()
	s.Advance(100 * time.Millisecond)
	assert.InDelta(t, 0.2, tl.Value(), 1e-9)
	assert.False(t, tl.Animating())
}
