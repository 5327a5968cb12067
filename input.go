package piemenu

// PointerKind identifies the device that produced a pointer event.
type PointerKind int

const (
	PointerUnknown PointerKind = iota
	PointerMouse
	PointerTouch
	PointerStylus
	PointerInvertedStylus
	PointerTrackpad
)

// String returns a human-readable name for the pointer kind.
func (k PointerKind) String() string {
	switch k {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	case PointerStylus:
		return "stylus"
	case PointerInvertedStylus:
		return "inverted-stylus"
	case PointerTrackpad:
		return "trackpad"
	default:
		return "unknown"
	}
}

// Buttons is a bit mask of pressed pointer buttons.
type Buttons uint8

const (
	ButtonPrimary   Buttons = 1 << 0
	ButtonSecondary Buttons = 1 << 1
	ButtonTertiary  Buttons = 1 << 2
	ButtonBack      Buttons = 1 << 3
	ButtonForward   Buttons = 1 << 4
)

// PointerEvent is a single pointer sample delivered to a controller.
// Position is in global coordinates, LocalPosition relative to the
// receiving region.
type PointerEvent struct {
	Position      Vec2
	LocalPosition Vec2
	Buttons       Buttons
	Kind          PointerKind
}

// pressClass is the device/button classification of a pointer-down.
type pressClass int

const (
	pressNonMouse pressClass = iota
	pressMousePrimary
	pressMouseSecondary
	pressMouseOther
)

func (c pressClass) String() string {
	switch c {
	case pressMousePrimary:
		return "mouse-primary"
	case pressMouseSecondary:
		return "mouse-secondary"
	case pressMouseOther:
		return "mouse-other"
	default:
		return "non-mouse"
	}
}

// classifyPress maps a device kind and button mask onto a press class.
// Only an exact primary or secondary mask counts; chords are "other".
func classifyPress(kind PointerKind, buttons Buttons) pressClass {
	if kind != PointerMouse {
		return pressNonMouse
	}
	switch buttons {
	case ButtonPrimary:
		return pressMousePrimary
	case ButtonSecondary:
		return pressMouseSecondary
	default:
		return pressMouseOther
	}
}
