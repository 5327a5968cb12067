package piemenu

// Action is one button of a radial menu.
type Action struct {
	ID       string // Unique within its menu; published as HoveredAction
	Label    string
	OnSelect func()
}

// MenuRequest asks a canvas to show a controller's menu.
type MenuRequest struct {
	Token        Token
	RightClicked bool
	Offset       Vec2 // Press position in global coordinates
	LocalOffset  Vec2 // Press position relative to Bounds
	Bounds       Rect // Global bounds of the pressed region
	Actions      []Action
	Theme        Theme

	// OnToggle is called with true when the menu opens and false when it
	// closes.
	OnToggle func(active bool)
}

// Canvas reveals menus on behalf of controllers. AttachMenu is fire and
// forget: the canvas owns delay timing and reports back only by writing the
// ActivationStore.
type Canvas interface {
	AttachMenu(req MenuRequest)
}

// Detacher is implemented by canvases that can drop a controller's pending
// or open menu without notifying it. Controllers call it on teardown.
type Detacher interface {
	DetachMenu(token Token)
}

// ThemeProvider is implemented by canvases that supply the ambient theme for
// controllers created without one.
type ThemeProvider interface {
	Theme() Theme
}
