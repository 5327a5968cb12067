package piemenu

import (
	"fmt"
	"math"
	"strings"
)

// Curve maps linear animation progress in [0, 1] to eased progress.
// Curves must return 0 for 0 and 1 for 1; values in between may overshoot.
type Curve func(t float64) float64

// Built-in curves.
var (
	Linear Curve = func(t float64) float64 { return t }

	EaseIn Curve = func(t float64) float64 { return t * t * t }

	EaseOut Curve = func(t float64) float64 {
		u := 1 - t
		return 1 - u*u*u
	}

	EaseInOut Curve = func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	}

	// Decelerate starts fast and slows down quadratically.
	Decelerate Curve = func(t float64) float64 {
		u := 1 - t
		return 1 - u*u
	}

	// EaseOutBack overshoots the target slightly before settling.
	EaseOutBack Curve = func(t float64) float64 {
		const c1 = 1.70158
		const c3 = c1 + 1
		u := t - 1
		return 1 + c3*u*u*u + c1*u*u
	}
)

var curvesByName = map[string]Curve{
	"linear":      Linear,
	"easein":      EaseIn,
	"easeout":     EaseOut,
	"easeinout":   EaseInOut,
	"decelerate":  Decelerate,
	"easeoutback": EaseOutBack,
}

// CurveByName looks up a built-in curve. Names are case-insensitive and
// ignore '-' and '_', so "ease-out", "ease_out" and "easeOut" are equal.
func CurveByName(name string) (Curve, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	c, ok := curvesByName[key]
	if !ok {
		return nil, fmt.Errorf("unknown curve %q", name)
	}
	return c, nil
}

// transform applies c to t, treating a nil curve as Linear and pinning the
// end points so overshooting curves still settle exactly.
func (c Curve) transform(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case c == nil:
		return t
	}
	v := c(t)
	if math.IsNaN(v) {
		return t
	}
	return v
}
