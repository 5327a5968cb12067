package piemenu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fadeTheme() *Theme {
	t := DefaultTheme()
	t.FadeDuration = 100 * time.Millisecond
	t.FadeCurve = Linear
	return &t
}

func TestOverlayFade_Edges(t *testing.T) {
	s := NewFrameScheduler()
	f := NewOverlayFade(s, fadeTheme())
	tok := NewToken()

	assert.Equal(t, FadeNone, f.Reconcile(ActivationState{}, tok))

	open := ActivationState{Owner: tok, Active: true}
	assert.Equal(t, FadeActivated, f.Reconcile(open, tok))
	assert.Equal(t, FadeNone, f.Reconcile(open, tok), "same state twice is not an edge")

	s.Advance(100 * time.Millisecond)
	assert.Equal(t, float32(1), f.Opacity())

	assert.Equal(t, FadeDeactivated, f.Reconcile(ActivationState{Owner: tok}, tok))
	s.Advance(50 * time.Millisecond)
	assert.InDelta(t, 0.5, f.Opacity(), 1e-6)
	s.Advance(50 * time.Millisecond)
	assert.Equal(t, float32(0), f.Opacity())
}

func TestOverlayFade_OtherOwnerSnaps(t *testing.T) {
	s := NewFrameScheduler()
	f := NewOverlayFade(s, fadeTheme())
	mine, other := NewToken(), NewToken()

	f.Reconcile(ActivationState{Owner: mine, Active: true}, mine)
	s.Advance(40 * time.Millisecond)
	assert.Greater(t, f.Opacity(), float32(0))

	taken := ActivationState{Owner: other, Active: true}
	assert.Equal(t, FadeSnapped, f.Reconcile(taken, mine))
	assert.Equal(t, float32(0), f.Opacity())
	assert.Zero(t, s.Tickers())

	assert.Equal(t, FadeNone, f.Reconcile(taken, mine))
}

func TestOverlayFade_ReleasedStateFadesOut(t *testing.T) {
	s := NewFrameScheduler()
	f := NewOverlayFade(s, fadeTheme())
	tok := NewToken()

	f.Reconcile(ActivationState{Owner: tok, Active: true}, tok)
	s.Advance(100 * time.Millisecond)

	assert.Equal(t, FadeDeactivated, f.Reconcile(ActivationState{}, tok))
}

func TestOverlayFade_StyleNoneIsTransparent(t *testing.T) {
	s := NewFrameScheduler()
	theme := fadeTheme()
	theme.OverlayStyle = OverlayNone
	f := NewOverlayFade(s, theme)
	tok := NewToken()

	f.Reconcile(ActivationState{Owner: tok, Active: true}, tok)
	s.Advance(100 * time.Millisecond)
	assert.Equal(t, 1.0, f.Progress())
	assert.Equal(t, float32(0), f.Opacity())
}
