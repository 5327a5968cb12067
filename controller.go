package piemenu

import "log/slog"

// pressRecord is the bookkeeping of the current press. It is overwritten
// by every pointer-down.
type pressRecord struct {
	origin  Vec2
	local   Vec2
	buttons Buttons
	kind    PointerKind
}

// Controller turns the pointer stream of one interactive region into menu
// requests, click callbacks and press feedback.
//
// A Controller is driven from the UI goroutine: pointer events, scheduler
// callbacks and store notifications all arrive there. It reconciles its
// animations whenever the ActivationStore changes; hosts that repaint on
// every frame may also call Reconcile themselves.
type Controller struct {
	token   Token
	store   *ActivationStore
	canvas  Canvas
	sched   Scheduler
	theme   Theme
	actions []Action
	logger  *slog.Logger

	onPressed           func()
	onPressedWithDevice func(PointerKind)
	onToggle            func(active bool)

	bounds  Rect
	mounted bool

	press         pressRecord
	pressing      bool
	pressCanceled bool

	bounce  *Bounce
	fade    *OverlayFade
	hover   *Timeline
	hovered bool

	unsubscribe func()
	disposed    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithTheme sets the controller's own theme instead of the canvas theme.
func WithTheme(t Theme) Option {
	return func(c *Controller) { c.theme = t }
}

// WithActions sets the menu's actions, in display order.
func WithActions(actions ...Action) Option {
	return func(c *Controller) { c.actions = actions }
}

// WithBounds mounts the controller with the given global bounds.
func WithBounds(r Rect) Option {
	return func(c *Controller) { c.bounds, c.mounted = r, true }
}

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// OnPressed sets the plain-click callback.
func OnPressed(f func()) Option {
	return func(c *Controller) { c.onPressed = f }
}

// OnPressedWithDevice sets the plain-click callback that receives the
// pointer kind.
func OnPressedWithDevice(f func(PointerKind)) Option {
	return func(c *Controller) { c.onPressedWithDevice = f }
}

// OnToggle sets the callback fired when this controller's menu opens or
// closes.
func OnToggle(f func(active bool)) Option {
	return func(c *Controller) { c.onToggle = f }
}

// NewController creates a controller with a fresh token and subscribes it to
// store. Without WithTheme it uses the canvas theme if the canvas provides
// one, else DefaultTheme.
func NewController(store *ActivationStore, canvas Canvas, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		token:  NewToken(),
		store:  store,
		canvas: canvas,
		sched:  sched,
		logger: defaultLogger,
	}
	if tp, ok := canvas.(ThemeProvider); ok {
		c.theme = tp.Theme()
	} else {
		c.theme = DefaultTheme()
	}
	for _, opt := range opts {
		opt(c)
	}

	c.bounce = NewBounce(sched, &c.theme, c.logger)
	c.fade = NewOverlayFade(sched, &c.theme)
	c.hover = NewTimeline(sched, c.theme.HoverDuration)
	c.unsubscribe = store.Subscribe(func(prev, next ActivationState) {
		c.Reconcile()
	})
	return c
}

// Token returns the controller's identity.
func (c *Controller) Token() Token {
	return c.token
}

// Theme returns the controller's theme.
func (c *Controller) Theme() Theme {
	return c.theme
}

// SetTheme replaces the theme. Running animations keep their settings
// until their next run.
func (c *Controller) SetTheme(t Theme) {
	c.theme = t
}

// SetActions replaces the menu's actions for the next press.
func (c *Controller) SetActions(actions ...Action) {
	c.actions = actions
}

// SetBounds mounts the controller at r, in global coordinates.
func (c *Controller) SetBounds(r Rect) {
	c.bounds = r
	c.mounted = true
}

// Bounds returns the global bounds and whether the region is mounted.
func (c *Controller) Bounds() (Rect, bool) {
	return c.bounds, c.mounted
}

// Unmount marks the region as no longer laid out. An unmounted controller
// never requests a menu.
func (c *Controller) Unmount() {
	c.mounted = false
}

// Active reports whether this controller's menu is open.
func (c *Controller) Active() bool {
	return c.store.State().ActiveFor(c.token)
}

// PressCanceled reports whether the current press can no longer be a click.
func (c *Controller) PressCanceled() bool {
	return c.pressCanceled
}

// BounceScale returns the scale to draw the child with.
func (c *Controller) BounceScale() float32 {
	return c.bounce.Scale()
}

// OverlayOpacity returns the opacity of the dimming overlay.
func (c *Controller) OverlayOpacity() float32 {
	return c.fade.Opacity()
}

// ChildOpacity returns the opacity to draw the child with. It drops to
// ChildOpacityOnButtonHover while one of the menu's buttons is hovered.
func (c *Controller) ChildOpacity() float32 {
	return 1 - (1-c.theme.ChildOpacityOnButtonHover)*float32(c.hover.Curved())
}

// PointerDown handles a press inside the region.
func (c *Controller) PointerDown(ev PointerEvent) {
	if c.disposed {
		return
	}
	// The record is kept even while the menu is open so drags can still be
	// measured from it.
	c.press = pressRecord{
		origin:  ev.Position,
		local:   ev.LocalPosition,
		buttons: ev.Buttons,
		kind:    ev.Kind,
	}
	c.pressing = true

	if c.store.State().ActiveFor(c.token) {
		return
	}
	c.pressCanceled = false

	class := classifyPress(ev.Kind, ev.Buttons)
	switch class {
	case pressMouseOther:
		c.logger.Debug("press ignored", "token", c.token, "class", class, "buttons", ev.Buttons)
		return
	case pressMouseSecondary:
		if !c.theme.RightClickShowsMenu {
			c.logger.Debug("press ignored: right-click disabled", "token", c.token)
			return
		}
	}

	if c.theme.immediate() || class == pressMouseSecondary {
		c.bounce.Bounce()
	}

	if class == pressMousePrimary && !c.theme.LeftClickShowsMenu {
		return
	}
	c.attach(class == pressMouseSecondary)
}

// PointerMove handles motion of a pointer pressed inside the region.
func (c *Controller) PointerMove(ev PointerEvent) {
	if c.disposed || !c.pressing {
		return
	}
	if c.store.State().ActiveFor(c.token) {
		return
	}
	if ev.Position.Dist(c.press.origin) > MoveThreshold {
		if !c.pressCanceled {
			c.logger.Debug("press canceled: moved", "token", c.token)
		}
		c.pressCanceled = true
		c.bounce.Debounce()
	}
}

// PointerUp handles the release of a pointer pressed inside the region.
func (c *Controller) PointerUp(ev PointerEvent) {
	if c.disposed {
		return
	}
	wasPressing := c.pressing
	c.pressing = false
	c.bounce.Debounce()

	if !wasPressing || c.pressCanceled {
		return
	}
	// A press that opened a delayed menu is not also a click.
	if c.store.State().Active && c.theme.Delay != 0 {
		return
	}
	// Release events carry no buttons; use the mask recorded on press.
	if c.press.kind == PointerMouse && c.press.buttons != ButtonPrimary {
		return
	}

	if c.onPressed != nil {
		c.onPressed()
	}
	if c.onPressedWithDevice != nil {
		c.onPressedWithDevice(ev.Kind)
	}
}

// Reconcile reads the shared state and moves the overlay, bounce and hover
// animations along any edge since the previous call.
func (c *Controller) Reconcile() {
	if c.disposed {
		return
	}
	state := c.store.State()

	edge := c.fade.Reconcile(state, c.token)
	if edge == FadeActivated {
		c.bounce.Bounce()
	}
	if edge != FadeNone {
		c.logger.Debug("overlay", "token", c.token, "edge", edge)
	}

	hovered := state.ActiveFor(c.token) && state.HoveredAction != ""
	if hovered != c.hovered {
		c.hovered = hovered
		c.hover.Duration = c.theme.HoverDuration
		if hovered {
			c.hover.Forward()
		} else {
			c.hover.Reverse()
		}
	}
}

// Dispose tears the controller down: pending callbacks are cancelled,
// animations stopped and the shared state released if this controller owns
// it. An open menu is reported closed through OnToggle. The controller
// ignores all calls afterwards.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	wasActive := c.Active()
	c.disposed = true
	c.unsubscribe()
	c.bounce.Dispose()
	c.fade.Dispose()
	c.hover.Dispose()
	if d, ok := c.canvas.(Detacher); ok {
		d.DetachMenu(c.token)
	}
	c.store.Release(c.token)
	if wasActive && c.onToggle != nil {
		c.onToggle(false)
	}
}

func (c *Controller) attach(rightClicked bool) {
	if !c.mounted || c.bounds.Empty() {
		c.logger.Error("menu request skipped: region not measurable",
			"token", c.token, "mounted", c.mounted, "bounds", c.bounds)
		return
	}
	c.logger.Debug("menu requested", "token", c.token, "rightClicked", rightClicked)
	c.canvas.AttachMenu(MenuRequest{
		Token:        c.token,
		RightClicked: rightClicked,
		Offset:       c.press.origin,
		LocalOffset:  c.press.local,
		Bounds:       c.bounds,
		Actions:      c.actions,
		Theme:        c.theme,
		OnToggle:     c.toggled,
	})
}

// toggled is handed to the canvas. Any open or close during a press means
// the press is not a click.
func (c *Controller) toggled(active bool) {
	c.pressCanceled = true
	if c.disposed {
		return
	}
	if c.onToggle != nil {
		c.onToggle(active)
	}
}
