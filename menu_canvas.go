package piemenu

import (
	"log/slog"
	"math"
)

// MenuButton is a laid-out action of the open menu.
type MenuButton struct {
	Action  Action
	Center  Vec2
	Size    float32
	Hovered bool
}

// Rect returns the square the button occupies.
func (b MenuButton) Rect() Rect {
	corner := b.Center.Sub(Vec2{X: 1, Y: 1}.Mul(b.Size / 2))
	return Rect{X: corner.X, Y: corner.Y, W: b.Size, H: b.Size}
}

// MenuCanvas is the application-wide Canvas. It times long presses, lays
// the open menu out on a ring around the press, tracks the hovered button and
// selects actions.
//
// Lifecycle of a request:
//  1. AttachMenu stores it as pending and starts the delay (or opens at once
//     for right-clicks and delays under MinDelay).
//  2. Moving past MoveThreshold or releasing before the delay drops it.
//  3. Opening activates the token in the store and calls OnToggle(true).
//  4. Releasing over a button selects it; releasing elsewhere keeps the menu
//     open so a second tap can pick a button. A tap outside every button
//     closes the menu.
type MenuCanvas struct {
	store    *ActivationStore
	sched    Scheduler
	theme    Theme
	logger   *slog.Logger
	viewport Rect

	req         *MenuRequest // Pending or open request
	attachTimer Timer
	open        bool
	pressing    bool
	pointer     Vec2
	buttons     []MenuButton
}

// CanvasOption configures a MenuCanvas.
type CanvasOption func(*MenuCanvas)

// WithCanvasTheme sets the ambient theme.
func WithCanvasTheme(t Theme) CanvasOption {
	return func(c *MenuCanvas) { c.theme = t }
}

// WithCanvasLogger sets the canvas logger.
func WithCanvasLogger(l *slog.Logger) CanvasOption {
	return func(c *MenuCanvas) { c.logger = l }
}

// WithViewport sets the screen area menus should stay inside.
func WithViewport(r Rect) CanvasOption {
	return func(c *MenuCanvas) { c.viewport = r }
}

// NewMenuCanvas creates a canvas writing to store.
func NewMenuCanvas(store *ActivationStore, sched Scheduler, opts ...CanvasOption) *MenuCanvas {
	c := &MenuCanvas{
		store:  store,
		sched:  sched,
		theme:  DefaultTheme(),
		logger: defaultLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Theme returns the ambient theme.
func (c *MenuCanvas) Theme() Theme {
	return c.theme
}

// SetViewport updates the screen area, e.g. after a window resize.
func (c *MenuCanvas) SetViewport(r Rect) {
	c.viewport = r
}

// Open reports whether a menu is showing.
func (c *MenuCanvas) Open() bool {
	return c.open
}

// Pending reports whether a request is waiting for its delay.
func (c *MenuCanvas) Pending() bool {
	return c.req != nil && !c.open
}

// Request returns the pending or open request.
func (c *MenuCanvas) Request() (MenuRequest, bool) {
	if c.req == nil {
		return MenuRequest{}, false
	}
	return *c.req, true
}

// Buttons returns the laid-out buttons of the open menu.
func (c *MenuCanvas) Buttons() []MenuButton {
	return c.buttons
}

// AttachMenu implements Canvas.
func (c *MenuCanvas) AttachMenu(req MenuRequest) {
	if req.Token == NoToken || req.Bounds.Empty() {
		c.logger.Error("menu request rejected: region not measurable",
			"token", req.Token, "bounds", req.Bounds)
		return
	}
	if c.open {
		if c.req.Token == req.Token {
			return
		}
		c.closeMenu(true)
	}

	c.cancelAttach()
	c.req = &req
	c.pressing = true
	c.pointer = req.Offset

	if req.RightClicked || req.Theme.immediate() {
		c.openMenu()
		return
	}
	c.logger.Debug("menu pending", "token", req.Token, "delay", req.Theme.Delay)
	c.attachTimer = c.sched.AfterFunc(req.Theme.Delay, func() {
		c.attachTimer = nil
		c.openMenu()
	})
}

// DetachMenu implements Detacher.
func (c *MenuCanvas) DetachMenu(token Token) {
	if c.req == nil || c.req.Token != token {
		return
	}
	c.cancelAttach()
	wasOpen := c.open
	c.reset()
	if wasOpen {
		c.store.Deactivate(token)
	}
}

// Dismiss closes the open menu or drops the pending request.
func (c *MenuCanvas) Dismiss() {
	if c.open {
		c.closeMenu(true)
		return
	}
	c.cancelAttach()
	c.reset()
}

// PointerDown handles a press anywhere on screen. It returns true if the
// press belonged to the open menu and must not reach the regions below.
func (c *MenuCanvas) PointerDown(ev PointerEvent) bool {
	c.pointer = ev.Position
	if !c.open {
		return false
	}
	id := c.hitTest(ev.Position)
	if id == "" {
		c.closeMenu(true)
		return true
	}
	c.pressing = true
	c.updateHover()
	return true
}

// PointerMove handles pointer motion anywhere on screen. It returns true
// while a menu is open.
func (c *MenuCanvas) PointerMove(ev PointerEvent) bool {
	c.pointer = ev.Position
	if c.req == nil {
		return false
	}
	if !c.open {
		if c.pressing && ev.Position.Dist(c.req.Offset) > MoveThreshold {
			c.logger.Debug("menu pending dropped: moved", "token", c.req.Token)
			c.cancelAttach()
			c.reset()
		}
		return false
	}
	c.updateHover()
	return true
}

// PointerUp handles a release anywhere on screen. It returns true while a
// menu is open.
func (c *MenuCanvas) PointerUp(ev PointerEvent) bool {
	c.pointer = ev.Position
	if c.req == nil {
		return false
	}
	if !c.open {
		c.logger.Debug("menu pending dropped: released", "token", c.req.Token)
		c.cancelAttach()
		c.reset()
		return false
	}
	wasPressing := c.pressing
	c.pressing = false
	if id := c.hitTest(ev.Position); wasPressing && id != "" {
		c.selectAction(id)
	}
	return true
}

func (c *MenuCanvas) openMenu() {
	if c.req == nil || c.open {
		return
	}
	c.open = true
	c.layout()
	token := c.req.Token
	c.logger.Debug("menu opened", "token", token, "actions", len(c.req.Actions))
	c.store.Activate(token)
	c.updateHover()
	if c.req != nil && c.req.OnToggle != nil {
		c.req.OnToggle(true)
	}
}

func (c *MenuCanvas) closeMenu(notify bool) {
	if c.req == nil {
		return
	}
	token, onToggle := c.req.Token, c.req.OnToggle
	c.reset()
	c.logger.Debug("menu closed", "token", token)
	c.store.Deactivate(token)
	if notify && onToggle != nil {
		onToggle(false)
	}
}

func (c *MenuCanvas) selectAction(id string) {
	var selected Action
	for _, b := range c.buttons {
		if b.Action.ID == id {
			selected = b.Action
			break
		}
	}
	c.closeMenu(true)
	c.logger.Debug("action selected", "action", id)
	if selected.OnSelect != nil {
		selected.OnSelect()
	}
}

func (c *MenuCanvas) reset() {
	c.req = nil
	c.open = false
	c.pressing = false
	c.buttons = nil
}

func (c *MenuCanvas) cancelAttach() {
	if c.attachTimer != nil {
		c.attachTimer.Stop()
		c.attachTimer = nil
	}
}

func (c *MenuCanvas) updateHover() {
	if !c.open {
		return
	}
	id := c.hitTest(c.pointer)
	for i := range c.buttons {
		c.buttons[i].Hovered = c.buttons[i].Action.ID == id
	}
	c.store.SetHovered(c.req.Token, id)
}

func (c *MenuCanvas) hitTest(p Vec2) string {
	for _, b := range c.buttons {
		if p.Dist(b.Center) <= b.Size/2 {
			return b.Action.ID
		}
	}
	return ""
}

// layout places the actions on an arc of the ring around the press origin.
// The arc points up, or down when the origin is too close to the top of the
// viewport. The first action is the leftmost.
func (c *MenuCanvas) layout() {
	theme := c.req.Theme
	if theme.Radius <= 0 {
		theme.Radius = DefaultTheme().Radius
	}
	origin := c.req.Offset
	n := len(c.req.Actions)
	c.buttons = make([]MenuButton, n)
	if n == 0 {
		return
	}

	base := 90.0
	if !c.viewport.Empty() && origin.Y-theme.Radius-theme.ButtonSize/2 < c.viewport.Y {
		base = 270
	}
	step := float64(theme.ButtonSize/theme.Radius)*180/math.Pi + theme.Spacing
	if base == 270 {
		step = -step
	}

	for i, a := range c.req.Actions {
		angle := (base + (float64(n-1)/2-float64(i))*step) * math.Pi / 180
		c.buttons[i] = MenuButton{
			Action: a,
			Center: origin.Add(Vec2{X: float32(math.Cos(angle)), Y: -float32(math.Sin(angle))}.Mul(theme.Radius)),
			Size: theme.ButtonSize,
		}
	}
}
