package piemenu

import (
	"fmt"
	"strings"
	"time"
)

// Fixed gesture thresholds. They do not depend on the theme.
const (
	// MoveThreshold is how far a press may travel before it stops being a tap.
	MoveThreshold float32 = 8

	// MinDelay is the open delay below which a press counts as immediate.
	MinDelay = 100 * time.Millisecond

	// Minimum visible bounce before the reverse may start, for a zero open
	// delay and for any other delay.
	bounceVisibleNoDelay = 100 * time.Millisecond
	bounceVisibleDelayed = 75 * time.Millisecond
)

// OverlayStyle controls how the dimming overlay relates to the pressed child.
type OverlayStyle int

const (
	OverlayNone   OverlayStyle = iota // No overlay
	OverlayBehind                     // Overlay is drawn above the child
	OverlayAround                     // Child stays visible above the overlay
)

func (s OverlayStyle) String() string {
	switch s {
	case OverlayBehind:
		return "behind"
	case OverlayAround:
		return "around"
	default:
		return "none"
	}
}

// ParseOverlayStyle parses the name produced by OverlayStyle.String.
func ParseOverlayStyle(name string) (OverlayStyle, error) {
	switch strings.ToLower(name) {
	case "none", "":
		return OverlayNone, nil
	case "behind":
		return OverlayBehind, nil
	case "around":
		return OverlayAround, nil
	}
	return OverlayNone, fmt.Errorf("unknown overlay style %q", name)
}

// Theme is the read-only configuration consumed by controllers and canvases.
type Theme struct {
	// Delay is how long a press must be held before the menu opens.
	// Right-clicks always open immediately.
	Delay time.Duration

	// LeftClickShowsMenu lets a primary mouse press open the menu.
	LeftClickShowsMenu bool
	// RightClickShowsMenu lets a secondary mouse press open the menu.
	RightClickShowsMenu bool

	// Child bounce
	ChildBounceEnabled      bool
	ChildBounceDuration     time.Duration
	ChildBounceFactor       float32 // Child scale at full press, e.g. 0.95
	ChildBounceCurve        Curve
	ChildBounceReverseCurve Curve

	// Overlay fade
	FadeDuration time.Duration
	FadeCurve    Curve
	OverlayStyle OverlayStyle
	OverlayColor uint32

	// ChildOpacityOnButtonHover is the child opacity while one of its menu
	// buttons is hovered.
	ChildOpacityOnButtonHover float32
	HoverDuration             time.Duration

	// Ring layout
	Radius     float32 // Distance from the press origin to button centers
	ButtonSize float32 // Button diameter
	Spacing    float64 // Angle between neighbouring buttons, in degrees
}

// DefaultTheme returns the ambient theme.
func DefaultTheme() Theme {
	return Theme{
		Delay:                     350 * time.Millisecond,
		LeftClickShowsMenu:        true,
		RightClickShowsMenu:       false,
		ChildBounceEnabled:        true,
		ChildBounceDuration:       150 * time.Millisecond,
		ChildBounceFactor:         0.95,
		ChildBounceCurve:          Decelerate,
		ChildBounceReverseCurve:   nil,
		FadeDuration:              250 * time.Millisecond,
		FadeCurve:                 Decelerate,
		OverlayStyle:              OverlayAround,
		OverlayColor:              RGBA(0, 0, 0, 180),
		ChildOpacityOnButtonHover: 0.5,
		HoverDuration:             250 * time.Millisecond,
		Radius:                    80,
		ButtonSize:                56,
		Spacing:                   10,
	}
}

// immediate reports whether the theme's delay is short enough to open the
// menu on press.
func (t Theme) immediate() bool {
	return t.Delay < MinDelay
}

// minBounceVisible returns how long a bounce must stay visible.
func (t Theme) minBounceVisible() time.Duration {
	if t.Delay == 0 {
		return bounceVisibleNoDelay
	}
	return bounceVisibleDelayed
}
