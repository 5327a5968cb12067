package piemenu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingCanvas records requests without ever opening a menu.
type recordingCanvas struct {
	requests []MenuRequest
	detached []Token
}

func (c *recordingCanvas) AttachMenu(req MenuRequest) { c.requests = append(c.requests, req) }
func (c *recordingCanvas) DetachMenu(token Token)     { c.detached = append(c.detached, token) }

var regionBounds = Rect{X: 100, Y: 200, W: 200, H: 100}

type pressLog struct {
	clicks  int
	devices []PointerKind
	toggles []bool
}

func (l *pressLog) options() []Option {
	return []Option{
		WithBounds(regionBounds),
		WithLogger(discardLogger()),
		WithActions(Action{ID: "a"}, Action{ID: "b"}, Action{ID: "c"}),
		OnPressed(func() { l.clicks++ }),
		OnPressedWithDevice(func(k PointerKind) { l.devices = append(l.devices, k) }),
		OnToggle(func(active bool) { l.toggles = append(l.toggles, active) }),
	}
}

func testTheme(delay time.Duration) Theme {
	t := DefaultTheme()
	t.Delay = delay
	t.ChildBounceDuration = 100 * time.Millisecond
	t.FadeDuration = 100 * time.Millisecond
	t.FadeCurve = Linear
	t.HoverDuration = 100 * time.Millisecond
	return t
}

func newRecordingController(theme Theme) (*Controller, *recordingCanvas, *FrameScheduler, *pressLog) {
	sched := NewFrameScheduler()
	canvas := &recordingCanvas{}
	log := &pressLog{}
	opts := append(log.options(), WithTheme(theme))
	c := NewController(NewActivationStore(), canvas, sched, opts...)
	return c, canvas, sched, log
}

func mouse(x, y float32, buttons Buttons) PointerEvent {
	return PointerEvent{Position: Vec2{X: x, Y: y}, Buttons: buttons, Kind: PointerMouse}
}

func touch(x, y float32) PointerEvent {
	return PointerEvent{Position: Vec2{X: x, Y: y}, Kind: PointerTouch}
}

func TestController_SmallMoveStillClicks(t *testing.T) {
	c, canvas, _, log := newRecordingController(testTheme(350 * time.Millisecond))

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	c.PointerMove(mouse(153, 250, ButtonPrimary))
	c.PointerUp(mouse(153, 250, 0))

	assert.Equal(t, 1, log.clicks)
	assert.Equal(t, []PointerKind{PointerMouse}, log.devices)
	require.Len(t, canvas.requests, 1)
	assert.False(t, canvas.requests[0].RightClicked)
	assert.Equal(t, Vec2{X: 150, Y: 250}, canvas.requests[0].Offset)
}

func TestController_DragCancelsClick(t *testing.T) {
	c, _, _, log := newRecordingController(testTheme(350 * time.Millisecond))

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	c.PointerMove(mouse(170, 250, ButtonPrimary))
	assert.True(t, c.PressCanceled())
	c.PointerMove(mouse(150, 250, ButtonPrimary))
	c.PointerUp(mouse(150, 250, 0))

	assert.Zero(t, log.clicks, "returning to the origin does not revive the press")
	assert.Empty(t, log.devices)
}

func TestController_SecondaryIgnoredWhenRightClickDisabled(t *testing.T) {
	c, canvas, sched, log := newRecordingController(testTheme(350 * time.Millisecond))

	c.PointerDown(mouse(150, 250, ButtonSecondary))
	assert.Empty(t, canvas.requests)
	assert.False(t, c.bounce.Running())
	assert.Zero(t, sched.Tickers())

	c.PointerUp(mouse(150, 250, 0))
	assert.Zero(t, log.clicks)
}

func TestController_SecondaryOpensImmediately(t *testing.T) {
	theme := testTheme(350 * time.Millisecond)
	theme.RightClickShowsMenu = true
	c, canvas, _, _ := newRecordingController(theme)

	c.PointerDown(mouse(150, 250, ButtonSecondary))

	require.Len(t, canvas.requests, 1)
	assert.True(t, canvas.requests[0].RightClicked)
	assert.True(t, c.bounce.Running(), "right-click bounces on press")
}

func TestController_OtherButtonsIgnored(t *testing.T) {
	theme := testTheme(0)
	theme.RightClickShowsMenu = true
	c, canvas, _, log := newRecordingController(theme)

	for _, buttons := range []Buttons{ButtonTertiary, ButtonPrimary | ButtonSecondary, ButtonBack} {
		c.PointerDown(mouse(150, 250, buttons))
		c.PointerUp(mouse(150, 250, 0))
	}

	assert.Empty(t, canvas.requests)
	assert.False(t, c.bounce.Running())
	assert.Zero(t, log.clicks)
}

func TestController_LeftClickMenuDisabled(t *testing.T) {
	theme := testTheme(0)
	theme.LeftClickShowsMenu = false
	c, canvas, _, log := newRecordingController(theme)

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	assert.True(t, c.bounce.Running(), "immediate mode still bounces")
	assert.Empty(t, canvas.requests)

	c.PointerUp(mouse(150, 250, 0))
	assert.Equal(t, 1, log.clicks)
}

func TestController_DelayedPressDoesNotBounceOnDown(t *testing.T) {
	c, canvas, _, _ := newRecordingController(testTheme(350 * time.Millisecond))

	c.PointerDown(mouse(150, 250, ButtonPrimary))

	assert.False(t, c.bounce.Running())
	assert.Len(t, canvas.requests, 1)
}

func TestController_TouchQuickReleaseClicks(t *testing.T) {
	c, canvas, sched, log := newRecordingController(testTheme(500 * time.Millisecond))

	c.PointerDown(touch(150, 250))
	assert.False(t, c.bounce.Running())
	require.Len(t, canvas.requests, 1)

	sched.Advance(50 * time.Millisecond)
	c.PointerUp(touch(150, 250))

	assert.Equal(t, 1, log.clicks)
	assert.Equal(t, []PointerKind{PointerTouch}, log.devices)
}

func TestController_TouchImmediateBounces(t *testing.T) {
	c, _, _, _ := newRecordingController(testTheme(50 * time.Millisecond))

	c.PointerDown(PointerEvent{Position: Vec2{X: 150, Y: 250}, Kind: PointerStylus})
	assert.True(t, c.bounce.Running())
}

func TestController_QuickTapBounceStaysVisible(t *testing.T) {
	c, _, sched, _ := newRecordingController(testTheme(0))

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	sched.Advance(20 * time.Millisecond)
	c.PointerUp(mouse(150, 250, 0))

	require.True(t, c.bounce.ReversePending())
	sched.Advance(99 * time.Millisecond)
	assert.True(t, c.bounce.ReversePending())
	sched.Advance(time.Millisecond)
	assert.False(t, c.bounce.ReversePending())
}

func TestController_UnmountedSkipsRequest(t *testing.T) {
	c, canvas, _, log := newRecordingController(testTheme(350 * time.Millisecond))
	c.Unmount()

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	assert.Empty(t, canvas.requests)

	c.PointerUp(mouse(150, 250, 0))
	assert.Equal(t, 1, log.clicks)
}

func TestController_UpWithoutDownIsNotAClick(t *testing.T) {
	c, _, _, log := newRecordingController(testTheme(350 * time.Millisecond))
	c.PointerUp(mouse(150, 250, 0))
	assert.Zero(t, log.clicks)
}

func TestController_DisposeCancelsPendingReverse(t *testing.T) {
	c, canvas, sched, _ := newRecordingController(testTheme(0))

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	sched.Advance(10 * time.Millisecond)
	c.PointerUp(mouse(150, 250, 0))
	require.Equal(t, 1, sched.Pending())

	c.Dispose()
	assert.Zero(t, sched.Pending())
	assert.Zero(t, sched.Tickers())
	assert.Equal(t, []Token{c.Token()}, canvas.detached)

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	assert.Len(t, canvas.requests, 1, "disposed controller ignores input")
	assert.NotPanics(t, func() { sched.Advance(time.Second) })
}

// Tests below run against a real MenuCanvas.

type canvasFixture struct {
	sched  *FrameScheduler
	store  *ActivationStore
	canvas *MenuCanvas
}

func newCanvasFixture() *canvasFixture {
	sched := NewFrameScheduler()
	store := NewActivationStore()
	canvas := NewMenuCanvas(store, sched,
		WithCanvasLogger(discardLogger()),
		WithViewport(Rect{W: 800, H: 600}))
	return &canvasFixture{sched: sched, store: store, canvas: canvas}
}

func (f *canvasFixture) controller(theme Theme) (*Controller, *pressLog) {
	log := &pressLog{}
	opts := append(log.options(), WithTheme(theme))
	return NewController(f.store, f.canvas, f.sched, opts...), log
}

func TestController_LongPressOpensMenuWithoutClick(t *testing.T) {
	f := newCanvasFixture()
	c, log := f.controller(testTheme(350 * time.Millisecond))

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	f.sched.Advance(349 * time.Millisecond)
	assert.False(t, c.Active())

	f.sched.Advance(time.Millisecond)
	require.True(t, c.Active())
	assert.Equal(t, []bool{true}, log.toggles)
	assert.True(t, c.PressCanceled())
	assert.True(t, c.bounce.Running(), "delayed open bounces")

	c.PointerUp(mouse(150, 250, 0))
	f.canvas.PointerUp(mouse(150, 250, 0))
	assert.Zero(t, log.clicks)
	assert.True(t, c.Active(), "release off the buttons keeps the menu")
}

func TestController_ImmediateOpenIsNotAClick(t *testing.T) {
	f := newCanvasFixture()
	c, log := f.controller(testTheme(0))

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	assert.True(t, c.Active())
	c.PointerUp(mouse(150, 250, 0))

	assert.Zero(t, log.clicks)
	assert.Equal(t, []bool{true}, log.toggles)
}

func TestController_MoveWhileActiveIgnored(t *testing.T) {
	f := newCanvasFixture()
	c, _ := f.controller(testTheme(0))

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	require.True(t, c.Active())
	c.PointerMove(mouse(150, 150, ButtonPrimary))

	assert.True(t, c.bounce.Running(), "drag over the menu does not debounce")
}

func TestController_DownWhileActiveDoesNotReattach(t *testing.T) {
	f := newCanvasFixture()
	c, log := f.controller(testTheme(0))

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	c.PointerUp(mouse(150, 250, 0))
	c.PointerDown(mouse(160, 260, ButtonPrimary))

	assert.True(t, c.Active())
	assert.Equal(t, []bool{true}, log.toggles)
	assert.Equal(t, Vec2{X: 160, Y: 260}, c.press.origin)
}

func TestController_OverlayFollowsActivation(t *testing.T) {
	f := newCanvasFixture()
	c, _ := f.controller(testTheme(0))

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	f.sched.Advance(100 * time.Millisecond)
	assert.Equal(t, float32(1), c.OverlayOpacity())

	f.canvas.Dismiss()
	assert.False(t, c.Active())
	f.sched.Advance(100 * time.Millisecond)
	assert.Equal(t, float32(0), c.OverlayOpacity())
}

func TestController_AtMostOneActive(t *testing.T) {
	f := newCanvasFixture()
	a, logA := f.controller(testTheme(0))
	b, _ := f.controller(testTheme(0))

	a.PointerDown(mouse(150, 250, ButtonPrimary))
	f.sched.Advance(50 * time.Millisecond)
	require.True(t, a.Active())
	require.Greater(t, a.OverlayOpacity(), float32(0))

	b.PointerDown(mouse(150, 250, ButtonPrimary))

	assert.False(t, a.Active())
	assert.True(t, b.Active())
	assert.Equal(t, float32(0), a.OverlayOpacity(), "previous owner snaps clear")
	assert.False(t, a.fade.timeline.Animating())
	assert.Equal(t, []bool{true, false}, logA.toggles)
}

func TestController_HoverDimsChild(t *testing.T) {
	f := newCanvasFixture()
	c, _ := f.controller(testTheme(0))

	c.PointerDown(mouse(400, 300, ButtonPrimary))
	buttons := f.canvas.Buttons()
	require.Len(t, buttons, 3)

	f.canvas.PointerMove(PointerEvent{Position: buttons[1].Center, Buttons: ButtonPrimary, Kind: PointerMouse})
	assert.Equal(t, "b", f.store.State().HoveredAction)

	f.sched.Advance(100 * time.Millisecond)
	assert.InDelta(t, c.Theme().ChildOpacityOnButtonHover, c.ChildOpacity(), 1e-6)

	f.canvas.PointerMove(mouse(400, 300, ButtonPrimary))
	f.sched.Advance(100 * time.Millisecond)
	assert.Equal(t, float32(1), c.ChildOpacity())
}

func TestController_DisposeReleasesOpenMenu(t *testing.T) {
	f := newCanvasFixture()
	c, log := f.controller(testTheme(0))

	c.PointerDown(mouse(150, 250, ButtonPrimary))
	require.True(t, f.canvas.Open())

	c.Dispose()
	assert.False(t, f.canvas.Open())
	assert.Equal(t, ActivationState{}, f.store.State())
	assert.Equal(t, []bool{true, false}, log.toggles, "teardown reports the close")
}

func TestController_DisposeInactiveDoesNotToggle(t *testing.T) {
	c, _, _, log := newRecordingController(testTheme(350 * time.Millisecond))
	c.PointerDown(mouse(150, 250, ButtonPrimary))

	c.Dispose()
	c.Dispose()
	assert.Empty(t, log.toggles)
}

func TestController_BounceDisabledMidPressStillReverses(t *testing.T) {
	c, _, sched, _ := newRecordingController(testTheme(0))

	c.PointerDown(touch(150, 250))
	sched.Advance(200 * time.Millisecond)
	require.Less(t, c.BounceScale(), float32(1))

	theme := c.Theme()
	theme.ChildBounceEnabled = false
	c.SetTheme(theme)
	c.PointerUp(touch(150, 250))
	sched.Advance(time.Second)

	assert.False(t, c.bounce.Running())
	assert.Equal(t, float32(1), c.BounceScale())
}

func TestController_UsesCanvasTheme(t *testing.T) {
	sched := NewFrameScheduler()
	theme := testTheme(200 * time.Millisecond)
	canvas := NewMenuCanvas(NewActivationStore(), sched, WithCanvasTheme(theme))

	c := NewController(NewActivationStore(), canvas, sched)
	assert.Equal(t, 200*time.Millisecond, c.Theme().Delay)
}
