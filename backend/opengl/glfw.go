package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/piemenu"
)

// PointerSink receives the pointer stream of a window. *piemenu.Router
// implements it.
type PointerSink interface {
	PointerDown(ev piemenu.PointerEvent)
	PointerMove(ev piemenu.PointerEvent)
	PointerUp(ev piemenu.PointerEvent)
}

// GLFWInputAdapter translates GLFW mouse callbacks into pointer events.
// GLFW reports one button per callback; the adapter keeps the pressed mask
// and emits a down for the first button and an up when the last is
// released, like a single pointer.
type GLFWInputAdapter struct {
	window  *glfw.Window
	sink    PointerSink
	buttons piemenu.Buttons
	pos     piemenu.Vec2
	scale   piemenu.Vec2
}

// NewGLFWInputAdapter installs mouse callbacks on window that forward to sink.
func NewGLFWInputAdapter(window *glfw.Window, sink PointerSink) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		sink:   sink,
		scale:  piemenu.Vec2{X: 1, Y: 1},
	}

	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// SetContentScale sets the factor from window coordinates to framebuffer
// coordinates, for HiDPI displays.
func (a *GLFWInputAdapter) SetContentScale(x, y float32) {
	a.scale = piemenu.Vec2{X: x, Y: y}
}

// Buttons returns the currently pressed buttons.
func (a *GLFWInputAdapter) Buttons() piemenu.Buttons {
	return a.buttons
}

func (a *GLFWInputAdapter) event(buttons piemenu.Buttons) piemenu.PointerEvent {
	return piemenu.PointerEvent{
		Position: a.pos,
		Buttons:  buttons,
		Kind:     piemenu.PointerMouse,
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b := glfwMouseButton(button)
	if b == 0 {
		return
	}

	switch action {
	case glfw.Press:
		wasUp := a.buttons == 0
		a.buttons |= b
		if wasUp {
			a.sink.PointerDown(a.event(a.buttons))
		}
	case glfw.Release:
		if a.buttons&b == 0 {
			return
		}
		a.buttons &^= b
		if a.buttons == 0 {
			a.sink.PointerUp(a.event(0))
		}
	}
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.pos = piemenu.Vec2{X: float32(xpos) * a.scale.X, Y: float32(ypos) * a.scale.Y}
	a.sink.PointerMove(a.event(a.buttons))
}

// glfwMouseButton maps GLFW mouse buttons to pointer button bits.
func glfwMouseButton(button glfw.MouseButton) piemenu.Buttons {
	switch button {
	case glfw.MouseButtonLeft:
		return piemenu.ButtonPrimary
	case glfw.MouseButtonRight:
		return piemenu.ButtonSecondary
	case glfw.MouseButtonMiddle:
		return piemenu.ButtonTertiary
	case glfw.MouseButton4:
		return piemenu.ButtonBack
	case glfw.MouseButton5:
		return piemenu.ButtonForward
	default:
		return 0
	}
}
