/*
Package piemenu implements the interaction core of a press-and-hold radial
menu. It decides, from a stream of pointer events with no lookahead, whether
a press is a tap, a drag, a long press that opens the menu or a right-click
that opens it at once, and it drives the press feedback and overlay fade that
go with it.

# Overview

Every interactive region gets a Controller. All controllers of an
application share one ActivationStore, one Canvas and one Scheduler:

	sched := piemenu.NewFrameScheduler()
	store := piemenu.NewActivationStore()
	canvas := piemenu.NewMenuCanvas(store, sched)
	router := piemenu.NewRouter(canvas)

	c := piemenu.NewController(store, canvas, sched,
	    piemenu.WithBounds(piemenu.Rect{X: 10, Y: 10, W: 200, H: 100}),
	    piemenu.WithActions(
	        piemenu.Action{ID: "copy", OnSelect: copyItem},
	        piemenu.Action{ID: "delete", OnSelect: deleteItem},
	    ),
	    piemenu.OnPressed(openItem),
	)
	router.Register(c)

	// Frame loop
	for running {
	    // feed pointer events to router.PointerDown/Move/Up
	    sched.Advance(deltaTime)
	    draw(c.BounceScale(), c.OverlayOpacity(), c.ChildOpacity(), canvas.Buttons())
	}

# Press disambiguation

On pointer-down a controller records the press and classifies it:

	mouse, primary button      opens the menu if Theme.LeftClickShowsMenu
	mouse, secondary button    opens at once if Theme.RightClickShowsMenu
	mouse, any other buttons   ignored
	touch, stylus, trackpad    opens the menu

Presses with a Theme.Delay under MinDelay and right-clicks bounce at once;
other presses bounce when the menu actually opens. Moving more than
MoveThreshold from the press origin cancels the click. Releasing fires the
OnPressed callbacks unless the press was cancelled, opened a delayed menu,
or came from a mouse button other than the primary one.

# Bounce

The child bounces forward while pressed and back on release. Each bounce is
visible for at least 100ms (with a zero delay) or 75ms, so fast taps remain
perceptible; a new bounce cancels a reverse that is still waiting.

# Shared state

ActivationStore holds {Owner, Active, HoveredAction}. Only the canvas writes
it, and at most one token is active at any time. Controllers subscribe to it
and reconcile their overlay fade on the rising and falling edges of their
own activation; a fade left over while another controller owns the menu is
cleared immediately. Dispose releases the store if the controller still
owns it.

# Threading

Everything runs on the UI goroutine. Scheduler callbacks, store listeners
and pointer handlers never run concurrently with each other.

# Configuration

Theme holds every tunable. DefaultTheme is the ambient default; LoadTheme
reads a TOML file on top of it:

	delay = "400ms"
	right_click_shows_menu = true
	child_bounce_curve = "ease-out-back"
	overlay_style = "around"
	overlay_color = "#000000b4"

SetVerbose(true) enables debug logging of gesture decisions.
*/
package piemenu
