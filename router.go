package piemenu

// Router dispatches a window's pointer stream to the canvas and to the
// controller under the pointer. The pressed controller keeps receiving
// moves and the release even after the pointer leaves its bounds.
type Router struct {
	canvas      *MenuCanvas
	controllers []*Controller
	captured    *Controller
}

// NewRouter creates a router in front of canvas.
func NewRouter(canvas *MenuCanvas) *Router {
	return &Router{canvas: canvas}
}

// Register adds c on top of the already registered controllers.
func (r *Router) Register(c *Controller) {
	r.controllers = append(r.controllers, c)
}

// Unregister removes c. A press captured by c is dropped.
func (r *Router) Unregister(c *Controller) {
	for i, rc := range r.controllers {
		if rc == c {
			r.controllers = append(r.controllers[:i], r.controllers[i+1:]...)
			break
		}
	}
	if r.captured == c {
		r.captured = nil
	}
}

// Controllers returns the registered controllers, bottom first.
func (r *Router) Controllers() []*Controller {
	return r.controllers
}

// PointerDown routes a press. An open menu gets it first; otherwise the
// topmost controller containing the position captures the pointer.
func (r *Router) PointerDown(ev PointerEvent) {
	if r.canvas != nil && r.canvas.PointerDown(ev) {
		r.captured = nil
		return
	}
	r.captured = r.hitTest(ev.Position)
	if r.captured == nil {
		return
	}
	r.captured.PointerDown(r.localize(r.captured, ev))
}

// PointerMove routes motion to the canvas and the capturing controller.
func (r *Router) PointerMove(ev PointerEvent) {
	if r.canvas != nil {
		r.canvas.PointerMove(ev)
	}
	if r.captured != nil {
		r.captured.PointerMove(r.localize(r.captured, ev))
	}
}

// PointerUp routes a release. The controller sees it before the canvas so
// that it still observes the menu state the press produced.
func (r *Router) PointerUp(ev PointerEvent) {
	if c := r.captured; c != nil {
		r.captured = nil
		c.PointerUp(r.localize(c, ev))
	}
	if r.canvas != nil {
		r.canvas.PointerUp(ev)
	}
}

// Reconcile runs the reconciliation step of every controller.
func (r *Router) Reconcile() {
	for _, c := range r.controllers {
		c.Reconcile()
	}
}

func (r *Router) hitTest(p Vec2) *Controller {
	for i := len(r.controllers) - 1; i >= 0; i-- {
		c := r.controllers[i]
		if b, mounted := c.Bounds(); mounted && b.Contains(p) {
			return c
		}
	}
	return nil
}

func (r *Router) localize(c *Controller, ev PointerEvent) PointerEvent {
	b, _ := c.Bounds()
	ev.LocalPosition = ev.Position.Sub(b.Min())
	return ev
}
